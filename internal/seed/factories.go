// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"quill/internal/models"
	"quill/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// demoPassword is the shared password for seeded accounts.
const demoPassword = "Quill-demo-pass1"

// CreateUser persists a user with a realistic profile.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	user := &models.User{
		Username:  gofakeit.Username(),
		Email:     gofakeit.Email(),
		Password:  string(hashed),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Bio:       gofakeit.Sentence(12),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreateGroup persists a group whose slug derives from its title.
func (f *Factory) CreateGroup(title string) (*models.Group, error) {
	group := &models.Group{
		Title:       title,
		Slug:        validation.Slugify(title),
		Description: gofakeit.Sentence(15),
	}
	if err := f.db.Create(group).Error; err != nil {
		return nil, fmt.Errorf("create group %q: %w", title, err)
	}
	return group, nil
}

// CreatePost persists a post by user, optionally tagged to group, with
// a created_at spread over the past maxDays for realistic feed ordering.
func (f *Factory) CreatePost(user *models.User, group *models.Group, maxDays int) (*models.Post, error) {
	if maxDays <= 0 {
		maxDays = 90
	}

	post := &models.Post{
		Text:      gofakeit.Paragraph(1, 3, 8, "\n"),
		UserID:    user.ID,
		CreatedAt: f.pastTime(maxDays),
	}
	if group != nil {
		id := group.ID
		post.GroupID = &id
	}
	if f.rng.Intn(3) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// CreateComment persists a comment by user on post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Text:      gofakeit.Sentence(10),
		UserID:    user.ID,
		PostID:    post.ID,
		CreatedAt: post.CreatedAt.Add(time.Duration(f.rng.Intn(72)) * time.Hour),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// CreateFollow persists a follow edge; self-follows are skipped.
func (f *Factory) CreateFollow(user, author *models.User) error {
	if user.ID == author.ID {
		return nil
	}
	follow := &models.Follow{UserID: user.ID, AuthorID: author.ID}
	if err := f.db.Create(follow).Error; err != nil {
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

func (f *Factory) pastTime(maxDays int) time.Time {
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(hoursBack) * time.Hour).
		Add(-time.Duration(minsBack) * time.Minute)
}
