package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/httpresponse"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	imageField = "image"
	// multipartMemory is held in memory per request; larger parts spill to disk.
	multipartMemory = 32 << 20
)

var errBodyTooLarge = errors.New("request body too large")

type ProductHandler struct {
	uc             product.UseCase
	logger         logger.ZapLogger
	maxUploadBytes int64
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger, maxUploadBytes int64) *ProductHandler {
	return &ProductHandler{
		uc:             uc,
		logger:         log,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.GetProducts)
		products.GET("/:id", h.GetProductByID)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.POST("/ids", h.GetProductsByIDs)
		products.POST("/search", h.SearchProducts)
	}

	subcategories := router.Group("/subcategories")
	{
		subcategories.GET("/:id/products", h.GetProductsBySubcategoryID)
		subcategories.POST("/:id/products", h.AddProduct)
	}
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.uc.GetProducts(c.Request.Context())
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := httpresponse.PathID(c, "id")
	if !ok {
		return
	}

	p, err := h.uc.GetProductByID(c.Request.Context(), id)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) GetProductsBySubcategoryID(c *gin.Context) {
	id, ok := httpresponse.PathID(c, "id")
	if !ok {
		return
	}

	page, err := h.uc.GetProductsBySubcategoryID(c.Request.Context(), id)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type idsRequest struct {
	IDs json.RawMessage `json:"ids"`
}

func (h *ProductHandler) GetProductsByIDs(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BadRequest(c, "invalid request body")
		return
	}

	ids, err := parseIDs(req.IDs)
	if err != nil {
		httpresponse.BadRequest(c, "ids must be an array of integers")
		return
	}

	products, err := h.uc.GetProductsByIDs(c.Request.Context(), ids)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// parseIDs accepts a JSON array of integers, or the same array encoded
// as a JSON string.
func parseIDs(raw json.RawMessage) ([]int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, err
		}
		raw = []byte(strings.TrimSpace(encoded))
		if len(raw) == 0 {
			return nil, nil
		}
	}

	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

type searchRequest struct {
	SearchString string `json:"searchString"`
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BadRequest(c, "invalid request body")
		return
	}

	products, err := h.uc.SearchProductsByName(c.Request.Context(), req.SearchString)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) AddProduct(c *gin.Context) {
	subcategoryID, ok := httpresponse.PathID(c, "id")
	if !ok {
		return
	}

	details, err := h.parseDetails(c)
	if err != nil {
		formError(c, err)
		return
	}

	img, err := h.readImage(c)
	if err != nil {
		formError(c, err)
		return
	}

	res, err := h.uc.AddProduct(c.Request.Context(), &dto.AddProductInput{
		SubcategoryID: subcategoryID,
		Name:          details.name,
		Price:         details.price,
		Discount:      details.discount,
		Description:   details.description,
		Image:         img,
	})
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := httpresponse.PathID(c, "id")
	if !ok {
		return
	}

	details, err := h.parseDetails(c)
	if err != nil {
		formError(c, err)
		return
	}

	img, err := h.readImage(c)
	if err != nil {
		formError(c, err)
		return
	}

	err = h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:          id,
		Name:        details.name,
		Price:       details.price,
		Discount:    details.discount,
		Description: details.description,
		Image:       img,
	})
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, httpresponse.MessageResponse{Message: "Product updated successfully"})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := httpresponse.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.DeleteProduct(c.Request.Context(), id); err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, httpresponse.MessageResponse{Message: "Product deleted successfully"})
}

type productDetails struct {
	name        string
	price       int64
	discount    int64
	description string
}

func (h *ProductHandler) parseDetails(c *gin.Context) (*productDetails, error) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		h.logger.Debug("failed to parse multipart form", zap.Error(err))
		return nil, errors.New("invalid multipart form")
	}

	price, err := formAmount(c, "price")
	if err != nil {
		return nil, err
	}
	discount, err := formAmount(c, "discount")
	if err != nil {
		return nil, err
	}

	return &productDetails{
		name:        c.PostForm("name"),
		price:       price,
		discount:    discount,
		description: c.PostForm("description"),
	}, nil
}

// formAmount reads an optional numeric form field; a missing field is zero.
// Fractions round half away from zero, the same way stored amounts are read.
func formAmount(c *gin.Context, key string) (int64, error) {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return d.Round(0).IntPart(), nil
}

func formError(c *gin.Context, err error) {
	if errors.Is(err, errBodyTooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, httpresponse.ErrorResponse{Error: err.Error()})
		return
	}
	httpresponse.BadRequest(c, err.Error())
}

// readImage returns nil when the request carries no image part.
func (h *ProductHandler) readImage(c *gin.Context) (*dto.Image, error) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		h.logger.Debug("failed to read multipart form", zap.Error(err))
		return nil, errors.New("invalid multipart form")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errors.New("failed to read image")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.New("failed to read image")
	}

	return &dto.Image{
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		Data:         data,
	}, nil
}
