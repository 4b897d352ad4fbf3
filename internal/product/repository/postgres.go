package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	productColumns   = `p.id, p.name, p.price, p.discount, p.imageurl, p.subcategoryid, p.description`
	returningColumns = `id, name, price, discount, imageurl, subcategoryid, description`

	pqForeignKeyViolation = "23503"
)

// productRow mirrors a products row as stored; price and discount are NUMERIC.
type productRow struct {
	ID              int64           `db:"id"`
	Name            string          `db:"name"`
	Price           decimal.Decimal `db:"price"`
	Discount        decimal.Decimal `db:"discount"`
	ImageURL        string          `db:"imageurl"`
	SubcategoryID   int64           `db:"subcategoryid"`
	Description     string          `db:"description"`
	SubcategoryName sql.NullString  `db:"subcategoryname"`
}

func (r productRow) toModel() model.Product {
	return model.Product{
		ID:              r.ID,
		Name:            r.Name,
		Price:           toInt(r.Price),
		Discount:        toInt(r.Discount),
		ImageURL:        r.ImageURL,
		SubcategoryID:   r.SubcategoryID,
		Description:     r.Description,
		SubcategoryName: r.SubcategoryName.String,
	}
}

// toInt rounds half away from zero, as a SQL integer cast of NUMERIC does.
func toInt(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func toModels(rows []productRow) []model.Product {
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toModel())
	}
	return products
}

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	var rows []productRow
	query := `
        SELECT ` + productColumns + `, s.name AS subcategoryname
        FROM products p
        LEFT JOIN subcategories s ON s.id = p.subcategoryid
        ORDER BY p.id
    `
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperror.Store("FindAll", err)
	}
	return toModels(rows), nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var row productRow
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`
	err := r.DB.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Store("FindByID", err)
	}
	p := row.toModel()
	return &p, nil
}

func (r *PGRepository) FindBySubcategoryID(ctx context.Context, subcategoryID int64) ([]model.Product, error) {
	var rows []productRow
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.subcategoryid = $1 ORDER BY p.id`
	if err := r.DB.SelectContext(ctx, &rows, query, subcategoryID); err != nil {
		return nil, apperror.Store("FindBySubcategoryID", err)
	}
	return toModels(rows), nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	var rows []productRow
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = ANY($1) ORDER BY p.id`
	if err := r.DB.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, apperror.Store("FindByIDs", err)
	}
	return toModels(rows), nil
}

func (r *PGRepository) SearchByName(ctx context.Context, term string, limit int) ([]model.Product, error) {
	var rows []productRow
	query := `
        SELECT ` + productColumns + `
        FROM products p
        WHERE p.name ILIKE $1 ESCAPE '\'
        ORDER BY p.id
        LIMIT $2
    `
	pattern := "%" + escapeLike(term) + "%"
	if err := r.DB.SelectContext(ctx, &rows, query, pattern, limit); err != nil {
		return nil, apperror.Store("SearchByName", err)
	}
	return toModels(rows), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE metacharacters in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) (int64, error) {
	var id int64
	query := `
        INSERT INTO products (name, price, discount, imageurl, subcategoryid, description)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err := r.DB.GetContext(ctx, &id, query,
		p.Name, p.Price, p.Discount, p.ImageURL, p.SubcategoryID, p.Description)
	if err != nil {
		return 0, writeError("Create", err)
	}
	return id, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	query := `
        UPDATE products
        SET name = $1,
            price = $2,
            discount = $3,
            imageurl = $4,
            description = $5
        WHERE id = $6
        RETURNING ` + returningColumns
	return r.updateReturning(ctx, "Update", query, p.Name, p.Price, p.Discount, p.ImageURL, p.Description, p.ID)
}

func (r *PGRepository) UpdateDetails(ctx context.Context, p *model.Product) (*model.Product, error) {
	query := `UPDATE products SET name = $1, price = $2, discount = $3 WHERE id = $4 RETURNING ` + returningColumns
	return r.updateReturning(ctx, "UpdateDetails", query, p.Name, p.Price, p.Discount, p.ID)
}

// updateReturning runs a single-row UPDATE and scans the row as written.
func (r *PGRepository) updateReturning(ctx context.Context, op, query string, args ...interface{}) (*model.Product, error) {
	var row productRow
	err := r.DB.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, writeError(op, err)
	}
	updated := row.toModel()
	return &updated, nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, writeError("Delete", err)
	}
	return rowsAffected("Delete", res)
}

func (r *PGRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id)
	if err != nil {
		return false, apperror.Store("Exists", err)
	}
	return exists, nil
}

func rowsAffected(op string, res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.Store(op, err)
	}
	return n, nil
}

func writeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return apperror.Constraint(op, pqErr.Constraint, "subcategory does not exist", err)
	}
	return apperror.Store(op, err)
}
