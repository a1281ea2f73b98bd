package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/hdr13/ecommerce-api/internal/es"
	"github.com/hdr13/ecommerce-api/internal/logging"
	"github.com/hdr13/ecommerce-api/internal/models"
	"github.com/hdr13/ecommerce-api/internal/mykafka"
	"github.com/hdr13/ecommerce-api/internal/transport"
	"github.com/hdr13/ecommerce-api/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

// index mirrors the product into Elasticsearch. Like event publishing, a
// failure is logged but does not fail the request; the database stays the
// source of truth.
func (h *ProductHandler) index(c echo.Context, p *models.Product) {
	if h.ES == nil {
		return
	}
	if err := es.IndexProduct(c.Request().Context(), h.ES, h.Index, p); err != nil {
		logging.FromContext(c.Request().Context()).Error("es_index_error", "productID", p.ID, "error", err)
	}
}

func (h *ProductHandler) unindex(c echo.Context, id uint) {
	if h.ES == nil {
		return
	}
	if err := es.DeleteProduct(c.Request().Context(), h.ES, h.Index, id); err != nil {
		logging.FromContext(c.Request().Context()).Error("es_delete_error", "productID", id, "error", err)
	}
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	var items []models.Product
	if err := h.DB.WithContext(ctx).Model(&models.Product{}).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": listMeta(page, limit, offset, total),
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}

	if err := h.DB.WithContext(ctx).Create(&product).Error; err != nil {
		l.Error("create_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	h.index(c, &product)
	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("create_product_success", "productID", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_product_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("update_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price

	if err := h.DB.WithContext(ctx).Save(&product).Error; err != nil {
		l.Error("update_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	h.index(c, &product)
	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("update_product_success", "productID", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	res := h.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		l.Error("delete_product_error", "status", 500, "error", res.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}
	if res.RowsAffected == 0 {
		l.Warn("delete_product_error", "status", 404, "reason", "product not found")
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	h.unindex(c, uint(id))
	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("delete_product_success", "productID", id)
	return c.NoContent(http.StatusNoContent)
}
