package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/tavola/internal/models"
)

// Bundle is the full-content JSON backup offered as a download. There is no
// restore path; an uploaded bundle is only parsed back for display.
type Bundle struct {
	GeneratedAt     time.Time                  `json:"generated_at"`
	ContactInfo     []models.ContactInfo       `json:"contact_info"`
	Reviews         []models.Review            `json:"reviews"`
	ContentSections []models.ContentSection    `json:"content_sections"`
	Partners        []models.Partner           `json:"partners_logos"`
	Submissions     []models.ContactSubmission `json:"contact_submissions"`
}

// Marshal renders the bundle as indented JSON.
func (b *Bundle) Marshal() ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// Filename returns the timestamped download name for a bundle generated at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("tavola-backup-%s.json", t.Format("20060102-150405"))
}

// ParseBundle reads an uploaded backup file back into memory.
func ParseBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("invalid backup file: %w", err)
	}
	return &b, nil
}

// Counts summarizes a parsed bundle for the restore-preview screen.
func (b *Bundle) Counts() map[string]int {
	return map[string]int{
		"contact_info":        len(b.ContactInfo),
		"reviews":             len(b.Reviews),
		"content_sections":    len(b.ContentSections),
		"partners_logos":      len(b.Partners),
		"contact_submissions": len(b.Submissions),
	}
}
