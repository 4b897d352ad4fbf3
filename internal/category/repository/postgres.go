package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	query := `SELECT id, name FROM categories WHERE id = $1`
	err := r.DB.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Store("FindCategoryByID", err)
	}
	return &c, nil
}

func (r *PGRepository) FindSubcategoryByID(ctx context.Context, id int64) (*model.Subcategory, error) {
	var s model.Subcategory
	query := `SELECT id, name, imageurl, categoryid FROM subcategories WHERE id = $1`
	err := r.DB.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Store("FindSubcategoryByID", err)
	}
	return &s, nil
}

type subcategoryRow struct {
	model.Subcategory
	ParentID   sql.NullInt64  `db:"category_id"`
	ParentName sql.NullString `db:"category_name"`
}

func (r *PGRepository) FindSubcategoryWithCategory(ctx context.Context, id int64) (*model.Subcategory, *model.Category, error) {
	var row subcategoryRow
	query := `
        SELECT s.id, s.name, s.imageurl, s.categoryid,
               c.id AS category_id, c.name AS category_name
        FROM subcategories s
        LEFT JOIN categories c ON c.id = s.categoryid
        WHERE s.id = $1
    `
	err := r.DB.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, apperror.Store("FindSubcategoryWithCategory", err)
	}

	sub := row.Subcategory
	if !row.ParentID.Valid {
		return &sub, nil, nil
	}
	return &sub, &model.Category{ID: row.ParentID.Int64, Name: row.ParentName.String}, nil
}
