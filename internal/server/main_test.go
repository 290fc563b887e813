package server

import (
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/identity"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// newTestServer wires a Server against an in-memory database without the
// metrics registry, which must only be initialized once per process.
func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db := setupHandlerTestDB(t)

	articleRepo := repository.NewArticleRepository(db)
	tagRepo := repository.NewTagRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	s := &Server{
		config:         &config.Config{Env: "test"},
		db:             db,
		identityClient: identity.NewClient("http://127.0.0.1:1", "test-key"),
		articleRepo:    articleRepo,
		tagRepo:        tagRepo,
		profileRepo:    profileRepo,
	}
	s.articleService = service.NewArticleService(articleRepo, tagRepo)
	s.feedService = service.NewFeedService(articleRepo)
	s.moderationService = service.NewModerationService(articleRepo)
	s.profileService = service.NewProfileService(profileRepo)
	return s, db
}

// stubAuth plants an authenticated external user in locals, standing in for
// the session-cookie middleware.
func stubAuth(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		c.Locals("identityUser", &identity.User{
			ID:    userID,
			Email: userID + "@example.com",
			Name:  userID,
		})
		return c.Next()
	}
}
