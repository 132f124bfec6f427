// Package seed populates a development database with plausible test data.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"kindling/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the login password shared by every seeded user.
const DefaultPassword = "password123"

// Options controls the size and behavior of a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with test data. Upvote counters and reply
// counters are derived from the rows actually inserted so the seeded data
// satisfies the same bookkeeping the API maintains.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	comments, err := createComments(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("created %d comments", len(comments))

	if err := createUpvotes(db, users, posts, comments); err != nil {
		return fmt.Errorf("failed to create upvotes: %w", err)
	}

	log.Println("Seeding complete.")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comment_upvotes, post_upvotes, comments, posts, sessions, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	users := make([]models.User, 0, count)
	for len(users) < count {
		username := strings.ToLower(gofakeit.Username())
		if len(username) < 3 || len(username) > 32 || seen[username] {
			continue
		}
		seen[username] = true

		user := models.User{
			Username: username,
			Password: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			UserID: author.ID,
			Title:  gofakeit.Sentence(gofakeit.Number(3, 10)),
		}
		// Mix of link posts, text posts, and both.
		switch rand.Intn(3) {
		case 0:
			post.URL = gofakeit.URL()
		case 1:
			post.Body = gofakeit.Paragraph(1, gofakeit.Number(1, 4), gofakeit.Number(5, 15), " ")
		default:
			post.URL = gofakeit.URL()
			post.Body = gofakeit.Paragraph(1, 2, gofakeit.Number(5, 15), " ")
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// createComments builds shallow threads: a few root comments per post, each
// with a chance of nested replies up to depth 3.
func createComments(db *gorm.DB, users []models.User, posts []models.Post) ([]models.Comment, error) {
	var all []models.Comment
	for _, post := range posts {
		roots := rand.Intn(5)
		for i := 0; i < roots; i++ {
			root, err := insertComment(db, users, post.ID, nil, 0)
			if err != nil {
				return nil, err
			}
			all = append(all, *root)

			parent := root
			for depth := 1; depth <= 3 && rand.Intn(2) == 0; depth++ {
				reply, err := insertComment(db, users, post.ID, &parent.ID, depth)
				if err != nil {
					return nil, err
				}
				all = append(all, *reply)
				parent = reply
			}
		}
	}
	return all, nil
}

func insertComment(db *gorm.DB, users []models.User, postID uint, parentID *uint, depth int) (*models.Comment, error) {
	comment := models.Comment{
		PostID:          postID,
		UserID:          users[rand.Intn(len(users))].ID,
		ParentCommentID: parentID,
		Content:         gofakeit.Sentence(gofakeit.Number(5, 25)),
		Depth:           depth,
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}

	// Keep the reply counters consistent with the inserted row.
	if err := db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
		return nil, err
	}
	if parentID != nil {
		if err := db.Model(&models.Comment{}).Where("id = ?", *parentID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
			return nil, err
		}
	}
	return &comment, nil
}

// createUpvotes inserts upvote rows for random (voter, target) pairs and
// bumps the points columns to match.
func createUpvotes(db *gorm.DB, users []models.User, posts []models.Post, comments []models.Comment) error {
	for _, post := range posts {
		for _, voter := range pickVoters(users) {
			upvote := models.PostUpvote{PostID: post.ID, UserID: voter.ID}
			if err := db.Create(&upvote).Error; err != nil {
				return err
			}
			if err := db.Model(&models.Post{}).Where("id = ?", post.ID).
				UpdateColumn("points", gorm.Expr("points + 1")).Error; err != nil {
				return err
			}
		}
	}

	for _, comment := range comments {
		for _, voter := range pickVoters(users) {
			upvote := models.CommentUpvote{CommentID: comment.ID, UserID: voter.ID}
			if err := db.Create(&upvote).Error; err != nil {
				return err
			}
			if err := db.Model(&models.Comment{}).Where("id = ?", comment.ID).
				UpdateColumn("points", gorm.Expr("points + 1")).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// pickVoters selects a random subset of distinct users.
func pickVoters(users []models.User) []models.User {
	n := rand.Intn(len(users)/2 + 1)
	perm := rand.Perm(len(users))
	voters := make([]models.User, 0, n)
	for _, idx := range perm[:n] {
		voters = append(voters, users[idx])
	}
	return voters
}
