package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// User is the owner of all other resources. Every query against the
// ledger filters on the user ID.
type User struct {
	DefaultModel
	Name         string `json:"name" example:"Meghana"`
	Email        string `json:"email" example:"meghana@example.com" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
}

var ErrEmailTaken = errors.New("this email address is already registered")

// BeforeSave normalizes the email so that uniqueness is
// case-insensitive.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	return nil
}
