package usecase

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/blob"
	"github.com/fekuna/omnipos-catalog-service/pkg/broker"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	searchLimit      = 8
	maxSearchTermLen = 200

	EventProductCreated = "ProductCreated"
	EventProductUpdated = "ProductUpdated"
	EventProductDeleted = "ProductDeleted"
)

type Options struct {
	// LegacyDelete reports success when deleting a product that does not exist.
	LegacyDelete bool
}

type productUseCase struct {
	repo       product.Repository
	categories category.Repository
	store      blob.Store
	events     broker.Dispatcher
	opts       Options
	logger     logger.ZapLogger
}

func NewProductUseCase(
	repo product.Repository,
	categories category.Repository,
	store blob.Store,
	events broker.Dispatcher,
	opts Options,
	log logger.ZapLogger,
) product.UseCase {
	return &productUseCase{
		repo:       repo,
		categories: categories,
		store:      store,
		events:     events,
		opts:       opts,
		logger:     log,
	}
}

func (uc *productUseCase) GetProducts(ctx context.Context) ([]model.Product, error) {
	products, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(products), nil
}

func (uc *productUseCase) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, apperror.Validation("GetProductByID", "product id must be a positive integer")
	}

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("GetProductByID", "product not found")
	}
	return p, nil
}

// GetProductsBySubcategoryID loads the products of a subcategory together
// with the subcategory and its parent category. The product list and the
// joined subcategory/category row are read concurrently.
func (uc *productUseCase) GetProductsBySubcategoryID(ctx context.Context, subcategoryID int64) (*model.CategoryPage, error) {
	const op = "GetProductsBySubcategoryID"
	if subcategoryID <= 0 {
		return nil, apperror.Validation(op, "subcategory id must be a positive integer")
	}

	var (
		products []model.Product
		sub      *model.Subcategory
		cat      *model.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = uc.repo.FindBySubcategoryID(gctx, subcategoryID)
		return err
	})
	g.Go(func() error {
		var err error
		sub, cat, err = uc.categories.FindSubcategoryWithCategory(gctx, subcategoryID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if sub == nil {
		return nil, apperror.NotFound(op, "subcategory not found")
	}
	if cat == nil {
		uc.logger.Warn("subcategory references a missing category",
			zap.Int64("subcategory_id", sub.ID),
			zap.Int64("category_id", sub.CategoryID),
		)
		return nil, apperror.NotFound(op, "category not found")
	}

	return &model.CategoryPage{
		Category:    cat,
		Subcategory: sub,
		Products:    nonNil(products),
	}, nil
}

func (uc *productUseCase) GetProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	for _, id := range ids {
		if id <= 0 {
			return nil, apperror.Validation("GetProductsByIDs", "product ids must be positive integers")
		}
	}

	products, err := uc.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return nonNil(products), nil
}

func (uc *productUseCase) SearchProductsByName(ctx context.Context, term string) ([]model.Product, error) {
	if utf8.RuneCountInString(term) > maxSearchTermLen {
		return nil, apperror.Validation("SearchProductsByName", "search string is too long")
	}

	products, err := uc.repo.SearchByName(ctx, term, searchLimit)
	if err != nil {
		return nil, err
	}
	return nonNil(products), nil
}

// AddProduct uploads the image and only then inserts the row pointing at it.
func (uc *productUseCase) AddProduct(ctx context.Context, input *dto.AddProductInput) (*model.StoredImage, error) {
	const op = "AddProduct"
	if input.SubcategoryID <= 0 {
		return nil, apperror.Validation(op, "subcategory id must be a positive integer")
	}
	if err := validateDetails(op, input.Name, input.Price, input.Discount); err != nil {
		return nil, err
	}
	if input.Image == nil || len(input.Image.Data) == 0 {
		return nil, apperror.Validation(op, "image file is required")
	}

	name, err := uc.upload(ctx, op, input.Image)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		Name:          strings.TrimSpace(input.Name),
		Price:         input.Price,
		Discount:      input.Discount,
		ImageURL:      uc.store.PublicURL(name),
		SubcategoryID: input.SubcategoryID,
		Description:   input.Description,
	}

	id, err := uc.repo.Create(ctx, p)
	if err != nil {
		uc.logger.Warn("product insert failed after image upload, object left orphaned",
			zap.String("object", name),
			zap.Error(err),
		)
		return nil, err
	}
	p.ID = id

	uc.logger.Info("product created", zap.Int64("product_id", id), zap.String("object", name))
	uc.publish(EventProductCreated, id, *p)

	return &model.StoredImage{
		ID:           id,
		Filename:     name,
		OriginalName: input.Image.OriginalName,
		Size:         int64(len(input.Image.Data)),
		Path:         uc.store.Container() + "/" + name,
		URL:          p.ImageURL,
	}, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) error {
	const op = "UpdateProduct"
	if input.ID <= 0 {
		return apperror.Validation(op, "product id must be a positive integer")
	}
	if err := validateDetails(op, input.Name, input.Price, input.Discount); err != nil {
		return err
	}

	p := &model.Product{
		ID:       input.ID,
		Name:     strings.TrimSpace(input.Name),
		Price:    input.Price,
		Discount: input.Discount,
	}

	var (
		updated *model.Product
		err     error
	)
	if input.Image == nil {
		updated, err = uc.repo.UpdateDetails(ctx, p)
	} else {
		updated, err = uc.replaceImage(ctx, op, p, input)
	}
	if err != nil {
		return err
	}
	if updated == nil {
		return apperror.NotFound(op, "product not found")
	}

	uc.publish(EventProductUpdated, updated.ID, updatedPayload{Product: *updated, ImageReplaced: input.Image != nil})
	return nil
}

// replaceImage checks the product exists before uploading so a missing
// product never leaves an orphaned object behind. The upload runs outside
// any transaction; the final UPDATE decides whether the row still exists.
func (uc *productUseCase) replaceImage(ctx context.Context, op string, p *model.Product, input *dto.UpdateProductInput) (*model.Product, error) {
	if len(input.Image.Data) == 0 {
		return nil, apperror.Validation(op, "image file is empty")
	}

	exists, err := uc.repo.Exists(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound(op, "product not found")
	}

	name, err := uc.upload(ctx, op, input.Image)
	if err != nil {
		return nil, err
	}
	p.ImageURL = uc.store.PublicURL(name)
	p.Description = input.Description

	updated, err := uc.repo.Update(ctx, p)
	if err != nil {
		uc.logger.Warn("product update failed after image upload, object left orphaned",
			zap.Int64("product_id", p.ID),
			zap.String("object", name),
			zap.Error(err),
		)
		return nil, err
	}
	return updated, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "DeleteProduct"
	if id <= 0 {
		return apperror.Validation(op, "product id must be a positive integer")
	}

	affected, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		if uc.opts.LegacyDelete {
			uc.logger.Debug("delete of missing product reported as success", zap.Int64("product_id", id))
			return nil
		}
		return apperror.NotFound(op, "product not found")
	}

	uc.publish(EventProductDeleted, id, deletedPayload{ID: id})
	return nil
}

// upload stores the image under its sanitized base name and waits for the
// store to acknowledge it.
func (uc *productUseCase) upload(ctx context.Context, op string, img *dto.Image) (string, error) {
	name, err := blob.ObjectName(img.OriginalName)
	if err != nil {
		return "", apperror.Validation(op, "image file name is invalid")
	}

	if err := uc.store.Upload(ctx, name, img.Data, img.ContentType); err != nil {
		uc.logger.Error("image upload failed", zap.String("object", name), zap.Error(err))
		return "", apperror.Upload(op, err)
	}
	return name, nil
}

type updatedPayload struct {
	model.Product
	ImageReplaced bool `json:"imageReplaced"`
}

type deletedPayload struct {
	ID int64 `json:"id"`
}

// publish hands the event to the dispatcher; delivery failures are logged there.
func (uc *productUseCase) publish(eventType string, productID int64, payload interface{}) {
	uc.events.Dispatch(strconv.FormatInt(productID, 10), broker.NewEvent(eventType, payload))
}

func validateDetails(op, name string, price, discount int64) error {
	if strings.TrimSpace(name) == "" {
		return apperror.Validation(op, "name is required")
	}
	if price < 0 {
		return apperror.Validation(op, "price cannot be negative")
	}
	if discount < 0 {
		return apperror.Validation(op, "discount cannot be negative")
	}
	return nil
}

func nonNil(products []model.Product) []model.Product {
	if products == nil {
		return []model.Product{}
	}
	return products
}
