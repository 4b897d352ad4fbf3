package usecase

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	if id <= 0 {
		return nil, apperror.Validation("GetCategory", "category id must be a positive integer")
	}

	c, err := uc.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("GetCategory", "category not found")
	}
	return c, nil
}

func (uc *categoryUseCase) GetSubcategory(ctx context.Context, id int64) (*model.Subcategory, error) {
	if id <= 0 {
		return nil, apperror.Validation("GetSubcategory", "subcategory id must be a positive integer")
	}

	s, err := uc.repo.FindSubcategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		uc.logger.Debug("subcategory not found", zap.Int64("subcategory_id", id))
		return nil, apperror.NotFound("GetSubcategory", "subcategory not found")
	}
	return s, nil
}
