// Package models contains data structures for the application's domain models.
package models

import "time"

// Follow is a directed edge meaning "UserID sees AuthorID's posts in their
// follow feed". At most one edge exists per ordered pair; the self-follow
// rule is enforced in the service layer, not by the schema.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"user_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
