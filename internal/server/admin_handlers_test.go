package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func adminApp(t *testing.T, s *Server, db *gorm.DB) *fiber.App {
	t.Helper()
	require.NoError(t, db.Create(&models.UserProfile{
		ExternalID: "admin-1", Username: "admin", IsAdmin: true,
	}).Error)

	app := fiber.New()
	admin := app.Group("/api/admin", stubAuth("admin-1"), s.AdminRequired())
	admin.Get("/articles", s.GetModerationQueue)
	admin.Put("/articles/:id/status", s.SetArticleStatus)
	return app
}

func TestModerationQueueContents(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	app := adminApp(t, s, db)

	for _, st := range []models.ArticleStatus{
		models.StatusDraft, models.StatusPending, models.StatusPublished,
		models.StatusRejected, models.StatusHidden,
	} {
		slug := "queue-" + string(st)
		publishedArticle(t, db, string(st), slug, func(a *models.Article) {
			a.Status = st
			if st != models.StatusPublished {
				a.PublishedAt = nil
			}
		})
	}

	resp := doJSON(t, app, http.MethodGet, "/api/admin/articles", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	articles := decodeBody[[]models.Article](t, resp)

	statuses := make([]models.ArticleStatus, 0, len(articles))
	for _, a := range articles {
		statuses = append(statuses, a.Status)
	}
	assert.ElementsMatch(t,
		[]models.ArticleStatus{models.StatusPending, models.StatusPublished, models.StatusHidden},
		statuses, "drafts and rejected articles stay out of the queue")
}

func TestSetStatusStampsPublishedAtOnce(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	app := adminApp(t, s, db)

	article := publishedArticle(t, db, "Reviewed", "reviewed-1", func(a *models.Article) {
		a.Status = models.StatusPending
		a.PublishedAt = nil
	})
	path := fmt.Sprintf("/api/admin/articles/%d/status", article.ID)

	resp := doJSON(t, app, http.MethodPut, path,
		map[string]any{"status": "published", "admin_notes": "looks good"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var afterPublish models.Article
	require.NoError(t, db.First(&afterPublish, article.ID).Error)
	require.NotNil(t, afterPublish.PublishedAt)
	assert.Equal(t, "looks good", afterPublish.AdminNotes)
	firstStamp := *afterPublish.PublishedAt

	// Hide, then restore. The original timestamp must survive.
	resp = doJSON(t, app, http.MethodPut, path, map[string]any{"status": "hidden"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var hidden models.Article
	require.NoError(t, db.First(&hidden, article.ID).Error)
	require.NotNil(t, hidden.PublishedAt, "hiding never clears the publish timestamp")

	time.Sleep(10 * time.Millisecond)
	resp = doJSON(t, app, http.MethodPut, path, map[string]any{"status": "published"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var restored models.Article
	require.NoError(t, db.First(&restored, article.ID).Error)
	require.NotNil(t, restored.PublishedAt)
	assert.True(t, restored.PublishedAt.Equal(firstStamp),
		"re-publishing must not re-stamp published_at")
}

func TestSetStatusValidation(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	app := adminApp(t, s, db)

	article := publishedArticle(t, db, "Target", "status-target", func(a *models.Article) {
		a.Status = models.StatusPending
		a.PublishedAt = nil
	})
	path := fmt.Sprintf("/api/admin/articles/%d/status", article.ID)

	resp := doJSON(t, app, http.MethodPut, path, map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/admin/articles/424242/status",
		map[string]any{"status": "published"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Rejecting never touches published_at.
	resp = doJSON(t, app, http.MethodPut, path, map[string]any{"status": "rejected"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rejected models.Article
	require.NoError(t, db.First(&rejected, article.ID).Error)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	assert.Nil(t, rejected.PublishedAt)
}

func TestAdminRoutesRequireAdminProfile(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)

	require.NoError(t, db.Create(&models.UserProfile{
		ExternalID: "pleb-1", Username: "pleb",
	}).Error)

	app := fiber.New()
	// Authenticated as a regular user and as a user with no profile at all.
	app.Get("/as-user/articles", stubAuth("pleb-1"), s.AdminRequired(), s.GetModerationQueue)
	app.Get("/as-ghost/articles", stubAuth("ghost-1"), s.AdminRequired(), s.GetModerationQueue)

	resp := doJSON(t, app, http.MethodGet, "/as-user/articles", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/as-ghost/articles", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
