package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storecatalog/internal/model"
	repo "storecatalog/internal/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return gormDB, mock
}

func TestCategoryRepository_FindBySlug(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewCategoryRepository(db)

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "slug", "created_at", "updated_at"}).
		AddRow(id.String(), "Rings", "rings", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `categories` WHERE slug = ?")).
		WillReturnRows(rows)

	category, err := r.FindBySlug(context.Background(), "rings")
	require.NoError(t, err)
	assert.Equal(t, id, category.ID)
	assert.Equal(t, "Rings", category.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_FindBySlug_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewCategoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `categories` WHERE slug = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "created_at", "updated_at"}))

	_, err := r.FindBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_List_NewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewCategoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `categories` ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(uuid.NewString(), "B", "b").
			AddRow(uuid.NewString(), "A", "a"))

	categories, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "b", categories[0].Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_CountByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewProductRepository(db)

	categoryID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `products` WHERE category_id = ?")).
		WithArgs(categoryID).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	n, err := r.CountByCategory(context.Background(), categoryID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductImageRepository_DeleteByURLs(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewProductImageRepository(db)

	productID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `product_images` WHERE product_id = ? AND image_url IN (?,?)")).
		WithArgs(productID, "u1", "u2").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := r.DeleteByURLs(context.Background(), productID, []string{"u1", "u2"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductImageRepository_DeleteByURLs_EmptyIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewProductImageRepository(db)

	n, err := r.DeleteByURLs(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductImageRepository_ListByProducts(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewProductImageRepository(db)

	p1, p2 := uuid.New(), uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `product_images` WHERE product_id IN (?,?) ORDER BY created_at ASC, id ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "image_url", "created_at"}).
			AddRow(1, p1.String(), "a", now).
			AddRow(2, p2.String(), "b", now).
			AddRow(3, p1.String(), "c", now))

	images, err := r.ListByProducts(context.Background(), []uuid.UUID{p1, p2})
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, p1, images[2].ProductID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductImageRepository_ListByProducts_NoIDs(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewProductImageRepository(db)

	images, err := r.ListByProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, images)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewCredentialRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `credentials`")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := r.Create(context.Background(), &model.Credential{ID: uuid.New(), Email: "a@b.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
