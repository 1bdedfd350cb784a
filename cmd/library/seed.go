package main

import (
	"fmt"

	"gorm.io/gorm"

	catalogdomain "github.com/tair/library-management/internal/catalog/domain"
	userdomain "github.com/tair/library-management/internal/user/domain"
	"github.com/tair/library-management/pkg/auth"
	"github.com/tair/library-management/pkg/logger"
)

// seed creates the default accounts and a small starter catalog. It only
// runs against empty tables so restarting the service never duplicates
// data or resets changed passwords.
func seed(db *gorm.DB) error {
	if err := seedAccounts(db); err != nil {
		return err
	}
	return seedBooks(db)
}

func seedAccounts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&userdomain.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		username string
		email    string
		password string
		fullName string
		role     string
	}{
		{"admin", "admin@library.local", "admin123", "Library Administrator", userdomain.RoleAdmin},
		{"member", "member@library.local", "member123", "Sample Member", userdomain.RoleMember},
	}

	for _, d := range defaults {
		hashed, err := auth.HashPassword(d.password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		user := userdomain.User{
			Username:     d.username,
			Email:        d.email,
			PasswordHash: hashed,
			FullName:     d.fullName,
			Role:         d.role,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed account %q: %w", d.username, err)
		}
		logger.Logger.Info().
			Str("username", d.username).
			Str("role", d.role).
			Msg("Seeded account")
	}
	return nil
}

func seedBooks(db *gorm.DB) error {
	var count int64
	if err := db.Model(&catalogdomain.Book{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}
	if count > 0 {
		return nil
	}

	books := []catalogdomain.Book{
		{Title: "The Go Programming Language", Author: "Alan A. A. Donovan", Category: "Programming", Quantity: 3, Available: 3},
		{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Category: "Programming", Quantity: 2, Available: 2},
		{Title: "The Name of the Wind", Author: "Patrick Rothfuss", Category: "Fantasy", Quantity: 4, Available: 4},
		{Title: "A Brief History of Time", Author: "Stephen Hawking", Category: "Science", Quantity: 2, Available: 2},
		{Title: "Thinking, Fast and Slow", Author: "Daniel Kahneman", Category: "Psychology", Quantity: 3, Available: 3},
		{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Category: "Programming", Quantity: 1, Available: 1},
	}

	if err := db.Create(&books).Error; err != nil {
		return fmt.Errorf("failed to seed books: %w", err)
	}

	logger.Logger.Info().
		Int("count", len(books)).
		Msg("Seeded starter catalog")
	return nil
}
