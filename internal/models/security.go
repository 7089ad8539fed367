package models

// Security event types.
const (
	EventLoginSuccess = "login_success"
	EventLoginFailed  = "login_failed"
	EventLogout       = "logout"
)

// SecurityEvent is an append-only record of an authentication-related event.
// EmailHash is the SHA-256 hex digest of the lowercased address; the raw
// email is never stored here.
type SecurityEvent struct {
	BaseModel
	EventType string `gorm:"index" json:"event_type"`
	EmailHash string `json:"email_hash"`
	Severity  string `json:"severity"`
	IPAddress string `json:"ip_address"`
}

func (SecurityEvent) TableName() string {
	return "security_events"
}
