package types

// WebhookInfo is the current webhook status. URL is empty when the bot uses
// getUpdates.
type WebhookInfo struct {
	URL                          string          `json:"url"`
	HasCustomCertificate         bool            `json:"has_custom_certificate"`
	PendingUpdateCount           int             `json:"pending_update_count"`
	IPAddress                    string          `json:"ip_address,omitempty"`
	LastErrorDate                int64           `json:"last_error_date,omitempty"`
	LastErrorMessage             string          `json:"last_error_message,omitempty"`
	LastSynchronizationErrorDate int64           `json:"last_synchronization_error_date,omitempty"`
	MaxConnections               int             `json:"max_connections,omitempty"`
	AllowedUpdates               []AllowedUpdate `json:"allowed_updates,omitempty"`
}
