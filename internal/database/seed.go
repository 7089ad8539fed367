package database

import (
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/example/tavola/internal/models"
	"github.com/example/tavola/internal/utils"
)

// SeedAdmin creates the initial back-office account and its admin role when
// the users table is empty. It is a no-op when credentials are not configured
// or a user already exists.
func SeedAdmin(conn *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		DisplayName:  "Administrator",
		PasswordHash: hash,
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		role := models.UserRole{UserID: user.ID, Role: models.RoleAdmin}
		if err := tx.Create(&role).Error; err != nil {
			return err
		}
		log.Printf("seeded admin account %s", user.Email)
		return nil
	})
}
