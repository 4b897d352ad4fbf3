package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

type UseCase interface {
	GetProducts(ctx context.Context) ([]model.Product, error)
	GetProductByID(ctx context.Context, id int64) (*model.Product, error)
	GetProductsBySubcategoryID(ctx context.Context, subcategoryID int64) (*model.CategoryPage, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	SearchProductsByName(ctx context.Context, term string) ([]model.Product, error)

	AddProduct(ctx context.Context, input *dto.AddProductInput) (*model.StoredImage, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) error
	DeleteProduct(ctx context.Context, id int64) error
}
