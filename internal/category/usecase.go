package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	GetSubcategory(ctx context.Context, id int64) (*model.Subcategory, error)
}
