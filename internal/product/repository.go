package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Repository owns all product SQL. Finders and updates return nil, nil for
// a missing row; updates return the row as written.
type Repository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindBySubcategoryID(ctx context.Context, subcategoryID int64) ([]model.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	SearchByName(ctx context.Context, term string, limit int) ([]model.Product, error)

	Create(ctx context.Context, p *model.Product) (int64, error)
	// Update rewrites name, price, discount, image and description.
	Update(ctx context.Context, p *model.Product) (*model.Product, error)
	// UpdateDetails rewrites name, price and discount only.
	UpdateDetails(ctx context.Context, p *model.Product) (*model.Product, error)
	// Delete reports the number of deleted rows.
	Delete(ctx context.Context, id int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
