package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Client wraps the asynq client so domain services can enqueue tasks without
// depending on asynq directly.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

// Enqueue marshals payload and submits a task of the given type.
func (c *Client) Enqueue(taskType string, payload interface{}, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(taskType, data)
	if _, err := c.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue task %s: %w", taskType, err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
