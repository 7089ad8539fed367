// Package export serializes entity lists for admin downloads: per-entity
// CSV files and a timestamped JSON backup bundle.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/example/tavola/internal/models"
)

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const timeLayout = "2006-01-02 15:04:05"

// ContactInfoCSV renders contact info rows.
func ContactInfoCSV(items []models.ContactInfo) ([]byte, error) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ID.String(), it.Type, it.Value, it.Label,
			it.CreatedAt.Format(timeLayout), it.UpdatedAt.Format(timeLayout),
		})
	}
	return writeCSV([]string{"id", "type", "value", "label", "created_at", "updated_at"}, rows)
}

// ReviewsCSV renders review rows.
func ReviewsCSV(items []models.Review) ([]byte, error) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ID.String(), it.UserName, it.Comment, strconv.Itoa(it.Rating),
			it.CreatedAt.Format(timeLayout), it.UpdatedAt.Format(timeLayout),
		})
	}
	return writeCSV([]string{"id", "user_name", "comment", "rating", "created_at", "updated_at"}, rows)
}

// ContentSectionsCSV renders content section rows.
func ContentSectionsCSV(items []models.ContentSection) ([]byte, error) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ID.String(), it.SectionKey, it.Title, it.Content, it.ImageURL,
			it.CreatedAt.Format(timeLayout), it.UpdatedAt.Format(timeLayout),
		})
	}
	return writeCSV([]string{"id", "section_key", "title", "content", "image_url", "created_at", "updated_at"}, rows)
}

// PartnersCSV renders partner rows in display order.
func PartnersCSV(items []models.Partner) ([]byte, error) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ID.String(), it.PartnerName, it.LogoURL, it.WebsiteURL,
			strconv.Itoa(it.DisplayOrder),
			it.CreatedAt.Format(timeLayout), it.UpdatedAt.Format(timeLayout),
		})
	}
	return writeCSV([]string{"id", "partner_name", "logo_url", "website_url", "display_order", "created_at", "updated_at"}, rows)
}

// SubmissionsCSV renders contact submission rows.
func SubmissionsCSV(items []models.ContactSubmission) ([]byte, error) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ID.String(), it.Name, it.Email, it.Phone, it.Subject, it.Message,
			it.SubmittedAt.Format(timeLayout), it.IPAddress, it.UserAgent,
		})
	}
	return writeCSV([]string{"id", "name", "email", "phone", "subject", "message", "submitted_at", "ip_address", "user_agent"}, rows)
}
