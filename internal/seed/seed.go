package seed

import (
	"fmt"
	"math/rand"
	"time"

	"quill/internal/middleware"
	"quill/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var groupTitles = []string{
	"Go Enthusiasts", "Short Fiction", "Travel Notes", "Home Cooking",
	"Street Photography", "Book Club", "City Gardening", "Vinyl Collectors",
}

// Seed populates the database with demo users, groups, posts, comments
// and follow edges.
func Seed(db *gorm.DB, opts Options) error {
	middleware.Logger.Info("seeding database", "users", opts.NumUsers, "posts", opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			middleware.Logger.Warn("could not clear all existing data, continuing", "error", err)
		}
	}

	factory := NewFactory(db)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	middleware.Logger.Info("users created", "count", len(users))

	groups := make([]*models.Group, 0, len(groupTitles))
	for _, title := range groupTitles {
		group, err := factory.CreateGroup(title)
		if err != nil {
			return fmt.Errorf("failed to create groups: %w", err)
		}
		groups = append(groups, group)
	}
	middleware.Logger.Info("groups created", "count", len(groups))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[rng.Intn(len(users))]
		// Roughly a third of posts stay ungrouped.
		var group *models.Group
		if rng.Intn(3) != 0 {
			group = groups[rng.Intn(len(groups))]
		}
		post, err := factory.CreatePost(author, group, 90)
		if err != nil {
			return fmt.Errorf("failed to create posts: %w", err)
		}
		posts = append(posts, post)
	}
	middleware.Logger.Info("posts created", "count", len(posts))

	comments := 0
	for _, post := range posts {
		for i := rng.Intn(4); i > 0; i-- {
			commenter := users[rng.Intn(len(users))]
			if _, err := factory.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("failed to create comments: %w", err)
			}
			comments++
		}
	}
	middleware.Logger.Info("comments created", "count", comments)

	follows := 0
	for _, user := range users {
		for i := rng.Intn(5); i > 0; i-- {
			author := users[rng.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			if err := factory.CreateFollow(user, author); err != nil {
				// Duplicate picks hit the unique pair index; not a failure.
				continue
			}
			follows++
		}
	}
	middleware.Logger.Info("follow edges created", "count", follows)

	middleware.Logger.Info("seeding complete")
	return nil
}

// clearData removes seedable tables' contents, children first.
func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Comment{},
		&models.Follow{},
		&models.Post{},
		&models.Group{},
		&models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
