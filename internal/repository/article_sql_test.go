package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Verifies the SQL shape the list query sends to postgres: published filter,
// case-insensitive search, tag AND-matching via HAVING, and the row cap.
func TestListQueryShape(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	repo := NewArticleRepository(db)

	mock.ExpectQuery(`SELECT articles\..+FROM "articles".+JOIN article_tags ON article_tags\.article_id = articles\.id.+articles\.status = .+LOWER\(articles\.title\) LIKE .+LOWER\(articles\.content\) LIKE .+LOWER\(articles\.excerpt\) LIKE .+article_tags\.tag_name IN .+GROUP BY.+HAVING COUNT\(DISTINCT article_tags\.tag_name\) = .+ORDER BY articles\.published_at DESC.+LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug"}))

	_, err = repo.List(context.Background(), ListFilter{
		Query:  "go",
		Tags:   []string{"go", "web"},
		SortBy: "latest",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
