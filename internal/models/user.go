// Package models contains data structures for the application's domain models.
package models

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"
)

// User represents a registered DevBook account.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GravatarURL derives the avatar URL for an email address. The hash input is
// the trimmed, lowercased address, per the Gravatar spec.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&d=mm&r=pg", hash)
}
