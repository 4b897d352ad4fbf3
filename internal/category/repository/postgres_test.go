package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestFindCategoryByID(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM categories WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "Drinks"))

	c, err := repo.FindCategoryByID(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, int64(2), c.ID)
	assert.Equal(t, "Drinks", c.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCategoryByID_Missing(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("FROM categories").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	c, err := repo.FindCategoryByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestFindSubcategoryByID(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, imageurl, categoryid FROM subcategories WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "imageurl", "categoryid"}).
			AddRow(5, "Soda", "https://cdn.example.com/soda.png", 2))

	s, err := repo.FindSubcategoryByID(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Soda", s.Name)
	assert.Equal(t, int64(2), s.CategoryID)
	assert.Equal(t, "https://cdn.example.com/soda.png", s.ImageURL)
}

func TestFindSubcategoryByID_StoreError(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("FROM subcategories").
		WithArgs(int64(5)).
		WillReturnError(errors.New("connection reset"))

	s, err := repo.FindSubcategoryByID(context.Background(), 5)
	assert.Nil(t, s)
	assert.Equal(t, apperror.KindStore, apperror.KindOf(err))
}

var joinedColumns = []string{"id", "name", "imageurl", "categoryid", "category_id", "category_name"}

func TestFindSubcategoryWithCategory(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN categories c ON c.id = s.categoryid")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(joinedColumns).AddRow(5, "Soda", "soda.png", 2, 2, "Drinks"))

	s, c, err := repo.FindSubcategoryWithCategory(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, s)
	require.NotNil(t, c)
	assert.Equal(t, "Soda", s.Name)
	assert.Equal(t, int64(2), s.CategoryID)
	assert.Equal(t, int64(2), c.ID)
	assert.Equal(t, "Drinks", c.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindSubcategoryWithCategory_DanglingCategory(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("FROM subcategories s").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(joinedColumns).AddRow(5, "Orphans", "", 42, nil, nil))

	s, c, err := repo.FindSubcategoryWithCategory(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(42), s.CategoryID)
	assert.Nil(t, c)
}

func TestFindSubcategoryWithCategory_Missing(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("FROM subcategories s").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(joinedColumns))

	s, c, err := repo.FindSubcategoryWithCategory(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Nil(t, c)
}
