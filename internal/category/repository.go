package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Repository is read-only: categories and subcategories are managed outside
// this service. Finders return nil, nil when the row does not exist.
type Repository interface {
	FindCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	FindSubcategoryByID(ctx context.Context, id int64) (*model.Subcategory, error)
	// FindSubcategoryWithCategory reads a subcategory and its parent in one
	// statement. The category is nil when the reference dangles.
	FindSubcategoryWithCategory(ctx context.Context, id int64) (*model.Subcategory, *model.Category, error)
}
