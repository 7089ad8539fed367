package models

// Review is a customer testimonial shown on the public site.
type Review struct {
	BaseModel
	UserName string `json:"user_name"`
	Comment  string `gorm:"type:text" json:"comment"`
	Rating   int    `json:"rating"`
}

func (Review) TableName() string {
	return "reviews"
}
