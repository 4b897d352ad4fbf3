package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/httpresponse"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/categories/:id", h.GetCategory)
	router.GET("/subcategories/:id", h.GetSubcategory)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := httpresponse.PathID(c, "id")
	if !ok {
		return
	}

	cat, err := h.uc.GetCategory(c.Request.Context(), id)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) GetSubcategory(c *gin.Context) {
	id, ok := httpresponse.PathID(c, "id")
	if !ok {
		return
	}

	sub, err := h.uc.GetSubcategory(c.Request.Context(), id)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}
