// Package models contains data structures for the application's domain models.
package models

import "time"

// Group is a topic authors may attach their posts to. Posts reference a
// group weakly: deleting a group clears the reference, it never removes
// the posts themselves.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
