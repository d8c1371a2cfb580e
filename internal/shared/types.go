package shared

// Task type names shared between the API (enqueue side) and the worker.
const (
	TypeProcessMediaImage   = "media:process_image"
	TypeCleanupOrphanMedia  = "media:cleanup_orphans"
	TypeSendMessageResponse = "message:send_response"
	TypeCleanupOldMessages  = "message:cleanup_old"
)

// ProcessMediaImagePayload asks the worker to build resized variants for an
// uploaded image.
type ProcessMediaImagePayload struct {
	MediaID string `json:"mediaId"`
}

// SendMessageResponsePayload asks the worker to email an admin response to
// the contact-message sender. The worker loads the message row itself so the
// payload stays small and retries see current state.
type SendMessageResponsePayload struct {
	MessageID string `json:"messageId"`
}

// CleanupOldMessagesPayload prunes responded contact messages older than the
// given number of days.
type CleanupOldMessagesPayload struct {
	OlderThanDays int `json:"olderThanDays"`
}

// CleanupOrphanMediaPayload sweeps storage objects that no longer have a
// media row.
type CleanupOrphanMediaPayload struct{}
