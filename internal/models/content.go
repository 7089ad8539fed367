package models

// Contact info types accepted by validation.
var ContactInfoTypes = []string{
	"phone", "email", "address", "hours", "social", "zone", "whatsapp", "fax", "website",
}

// ContactInfo is a single displayed contact detail (phone line, address, working hours...).
// Value may span multiple lines for address and hours entries.
type ContactInfo struct {
	BaseModel
	Type  string `gorm:"index" json:"type"`
	Value string `gorm:"type:text" json:"value"`
	Label string `json:"label,omitempty"`
}

func (ContactInfo) TableName() string {
	return "contact_info"
}

// ContentSection stores an admin-editable block of page copy, looked up by key.
// SectionKey is immutable after creation.
type ContentSection struct {
	BaseModel
	SectionKey string `gorm:"uniqueIndex" json:"section_key"`
	Title      string `json:"title,omitempty"`
	Content    string `gorm:"type:text" json:"content,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
}

func (ContentSection) TableName() string {
	return "content_sections"
}

// Partner is a displayed partner logo; DisplayOrder defines the render
// sequence and is re-assigned 0..n-1 whenever the admin reorders the list.
type Partner struct {
	BaseModel
	PartnerName  string `json:"partner_name"`
	LogoURL      string `json:"logo_url"`
	WebsiteURL   string `json:"website_url,omitempty"`
	DisplayOrder int    `gorm:"index" json:"display_order"`
}

func (Partner) TableName() string {
	return "partners_logos"
}
