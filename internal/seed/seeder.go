package seed

import (
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with a realistic demo dataset.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder returns a Seeder for the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded rows. Order matters for referential sanity.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.ArticleLike{},
		&models.Comment{},
		&models.ArticleTag{},
		&models.Article{},
		&models.UserProfile{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return err
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// Run creates numAuthors profiles and numArticles articles with a spread of
// statuses and like activity. The first profile created becomes the admin,
// matching the production bootstrap rule.
func (s *Seeder) Run(numAuthors, numArticles int) error {
	profiles := make([]*models.UserProfile, 0, numAuthors)
	for i := 0; i < numAuthors; i++ {
		isFirst := i == 0
		profile, err := s.factory.CreateProfile(func(p *models.UserProfile) {
			p.IsAdmin = isFirst
		})
		if err != nil {
			return err
		}
		profiles = append(profiles, profile)
	}
	log.Printf("Created %d profiles", len(profiles))

	statuses := []models.ArticleStatus{
		models.StatusPublished, models.StatusPublished, models.StatusPublished,
		models.StatusPending, models.StatusDraft, models.StatusHidden,
	}

	articles := make([]*models.Article, 0, numArticles)
	for i := 0; i < numArticles; i++ {
		author := profiles[s.factory.rng.Intn(len(profiles))]
		status := statuses[s.factory.rng.Intn(len(statuses))]
		article, err := s.factory.CreateArticle(author, func(a *models.Article) {
			a.Status = status
		})
		if err != nil {
			return err
		}
		articles = append(articles, article)
	}
	log.Printf("Created %d articles", len(articles))

	likes := 0
	for _, article := range articles {
		if article.Status != models.StatusPublished {
			continue
		}
		n := s.factory.rng.Intn(len(profiles))
		for _, liker := range profiles[:n] {
			if err := s.factory.LikeArticle(article, liker); err != nil {
				return err
			}
			likes++
		}
	}
	log.Printf("Created %d likes", likes)
	return nil
}
