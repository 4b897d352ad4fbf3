package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	categories    map[int64]*model.Category
	subcategories map[int64]*model.Subcategory
	err           error
}

func (f *fakeRepo) FindCategoryByID(_ context.Context, id int64) (*model.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories[id], nil
}

func (f *fakeRepo) FindSubcategoryByID(_ context.Context, id int64) (*model.Subcategory, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.subcategories[id], nil
}

func (f *fakeRepo) FindSubcategoryWithCategory(_ context.Context, id int64) (*model.Subcategory, *model.Category, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	s := f.subcategories[id]
	if s == nil {
		return nil, nil, nil
	}
	return s, f.categories[s.CategoryID], nil
}

func TestGetCategory(t *testing.T) {
	repo := &fakeRepo{categories: map[int64]*model.Category{1: {ID: 1, Name: "Drinks"}}}
	uc := NewCategoryUseCase(repo, logger.NewNop())

	c, err := uc.GetCategory(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Drinks", c.Name)

	_, err = uc.GetCategory(context.Background(), 2)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = uc.GetCategory(context.Background(), 0)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestGetSubcategory(t *testing.T) {
	repo := &fakeRepo{subcategories: map[int64]*model.Subcategory{3: {ID: 3, Name: "Soda", CategoryID: 1}}}
	uc := NewCategoryUseCase(repo, logger.NewNop())

	s, err := uc.GetSubcategory(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.CategoryID)

	_, err = uc.GetSubcategory(context.Background(), 4)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestGetSubcategory_StoreError(t *testing.T) {
	storeErr := apperror.Store("FindSubcategoryByID", errors.New("conn refused"))
	uc := NewCategoryUseCase(&fakeRepo{err: storeErr}, logger.NewNop())

	_, err := uc.GetSubcategory(context.Background(), 3)
	assert.ErrorIs(t, err, storeErr)
}
