package models

import "time"

// ContactSubmission records one public contact-form submission. Rows are
// written by the public endpoint and only read back in the admin area.
type ContactSubmission struct {
	BaseModel
	Name        string    `json:"name"`
	Email       string    `gorm:"index" json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Subject     string    `json:"subject"`
	Message     string    `gorm:"type:text" json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
	IPAddress   string    `json:"ip_address"`
	UserAgent   string    `json:"user_agent"`
}

func (ContactSubmission) TableName() string {
	return "contact_submissions"
}
