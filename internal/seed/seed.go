// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"postpilot/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Seeder populates the database with demo organizations, schedules and
// templates.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes all seeded tables.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"schedules", "users", "templates"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// SeedUsers creates n demo users, each with a schedule holding a handful of
// posts. Returns the created users.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := s.BuildUser()
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		schedule := &models.Schedule{UserID: user.ID, Posts: models.PostList{}}
		for j := 0; j < s.rng.Intn(5)+1; j++ {
			schedule.Posts.Insert(s.BuildPost())
		}
		if err := s.db.Create(schedule).Error; err != nil {
			return nil, fmt.Errorf("failed to create schedule: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users with schedules", n)
	return users, nil
}

// SeedTemplates creates n demo templates.
func (s *Seeder) SeedTemplates(n int) ([]*models.Template, error) {
	templates := make([]*models.Template, 0, n)
	for i := 0; i < n; i++ {
		tmpl := s.BuildTemplate()
		if err := s.db.Create(tmpl).Error; err != nil {
			return nil, fmt.Errorf("failed to create template: %w", err)
		}
		templates = append(templates, tmpl)
	}
	log.Printf("Seeded %d templates", n)
	return templates, nil
}

// BuildUser constructs an unsaved demo user.
func (s *Seeder) BuildUser() *models.User {
	org := gofakeit.Company()
	orgID := int64(s.rng.Intn(900000) + 100000)
	return &models.User{
		OrgID: orgID,
		Data: models.JSONMap{
			"user": map[string]any{
				"name":  gofakeit.Name(),
				"email": gofakeit.Email(),
			},
			"ngo": map[string]any{
				"id":          orgID,
				"name":        org,
				"description": gofakeit.Sentence(8),
			},
		},
	}
}

// BuildPost constructs an unsaved demo post. The caller inserts it through a
// schedule's post list so it gets a proper id.
func (s *Seeder) BuildPost() models.Post {
	platforms := []string{
		models.PlatformInstagram,
		models.PlatformFacebook,
		models.PlatformTwitter,
		models.PlatformLinkedIn,
		models.PlatformTikTok,
	}
	date := time.Now().AddDate(0, 0, s.rng.Intn(30)+1)
	seedID := gofakeit.UUID()
	return models.Post{
		Platform:  platforms[s.rng.Intn(len(platforms))],
		PostText:  gofakeit.Sentence(12),
		PostDate:  date.Format("2006-01-02"),
		PostTime:  fmt.Sprintf("%02d:%02d", s.rng.Intn(24), s.rng.Intn(60)),
		ImagePath: fmt.Sprintf("uploads/usersTemplates/%d-%s.png", time.Now().UnixMilli(), seedID[:8]),
		ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s/800/800", seedID),
	}
}

// BuildTemplate constructs an unsaved demo template.
func (s *Seeder) BuildTemplate() *models.Template {
	seedID := gofakeit.UUID()
	return &models.Template{
		Name:      gofakeit.Sentence(3),
		ImagePath: fmt.Sprintf("uploads/usersTemplates/%d-%s.png", time.Now().UnixMilli(), seedID[:8]),
		ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s/600/400", seedID),
	}
}
