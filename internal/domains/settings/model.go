package settings

import "time"

// Setting is a single site configuration entry (site title, contact email,
// social links...). Keys are free-form strings managed by the admin panel.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
