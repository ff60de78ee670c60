package config

import (
	"errors"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"p9e.in/sitestock/models"
)

// RunAllSeeding runs all seeding operations in the correct order
func RunAllSeeding() error {
	log.Println("=== Starting Database Seeding ===")

	log.Println("[1/2] Seeding Product Categories...")
	SeedProductCategories()

	log.Println("[2/2] Seeding Default Admin...")
	SeedDefaultAdmin()

	log.Println("=== Database Seeding Complete ===")
	return nil
}

// SeedProductCategories creates the default catalog categories. Existing
// categories are left alone.
func SeedProductCategories() {
	categories := []string{
		"Concrete & Masonry",
		"Lumber & Framing",
		"Steel & Rebar",
		"Electrical",
		"Plumbing",
		"Finishes",
		"Safety Equipment",
		"Tools & Hardware",
	}

	for _, name := range categories {
		var existing models.ProductCategory
		err := DB.Where("name = ?", name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := DB.Create(&models.ProductCategory{Name: name}).Error; err != nil {
				log.Printf("❌ Failed to seed category %q: %v", name, err)
				continue
			}
			log.Printf("✅ Seeded category: %s", name)
		}
	}
}

// SeedDefaultAdmin creates the bootstrap super_admin account when no admin
// exists yet. Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD; seeding is
// skipped when they are unset.
func SeedDefaultAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seeding")
		return
	}

	var count int64
	DB.Model(&models.UserProfile{}).Where("role = ?", models.RoleSuperAdmin).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ Failed to hash admin password: %v", err)
		return
	}

	id := uuid.New()
	err = DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.User{
			ID:           id,
			Email:        email,
			PasswordHash: string(hash),
			IsActive:     true,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserProfile{
			ID:       id,
			FullName: "System Administrator",
			Role:     models.RoleSuperAdmin,
		}).Error
	})
	if err != nil {
		log.Printf("❌ Failed to seed admin user: %v", err)
		return
	}
	log.Printf("✅ Seeded super_admin account: %s", email)
}
