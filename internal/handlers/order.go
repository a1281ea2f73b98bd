package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/hdr13/ecommerce-api/internal/logging"
	"github.com/hdr13/ecommerce-api/internal/models"
	"github.com/hdr13/ecommerce-api/internal/mykafka"
	"github.com/hdr13/ecommerce-api/internal/transport"
)

type OrderHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	var user models.User
	if err := h.DB.WithContext(ctx).First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("create_order_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("create_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	order := models.Order{
		UserID:    user.ID,
		OrderDate: time.Now().UTC(),
	}

	if err := h.DB.WithContext(ctx).Create(&order).Error; err != nil {
		l.Error("create_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"userID":  order.UserID,
	})

	l.Info("create_order_success", "orderID", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var order models.Order
	if err := h.DB.WithContext(ctx).Preload("Products").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_order_error", "status", 404, "reason", "order not found")
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get order")
	}

	return c.JSON(http.StatusOK, order)
}

// DeleteOrder removes the order and its association rows in one transaction.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_order")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("delete_order_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	err = h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderProduct{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_order_error", "status", 404, "reason", "order not found")
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("delete_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete order")
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(id), map[string]any{
		"type":    "order_deleted",
		"orderID": id,
	})

	l.Info("delete_order_success", "orderID", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.add_product")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("add_product_error", "status", 400, "reason", "order id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "order id is not an integer")
	}
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		l.Warn("add_product_error", "status", 400, "reason", "product id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "product id is not an integer")
	}

	var order models.Order
	if err := h.DB.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("add_product_error", "status", 404, "reason", "order not found")
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("add_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to order")
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("add_product_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("add_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to order")
	}

	link := models.OrderProduct{OrderID: order.ID, ProductID: product.ID}
	if err := h.DB.WithContext(ctx).Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Warn("add_product_error", "status", 409, "reason", "product already in order")
			return echo.NewHTTPError(http.StatusConflict, "product already in order")
		}
		l.Error("add_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to order")
	}

	if err := h.DB.WithContext(ctx).Preload("Products").First(&order, orderID).Error; err != nil {
		l.Error("add_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to order")
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":      "order_product_added",
		"orderID":   order.ID,
		"productID": product.ID,
	})

	l.Info("add_product_success", "orderID", order.ID, "productID", product.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) RemoveProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.remove_product")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("remove_product_error", "status", 400, "reason", "order id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "order id is not an integer")
	}
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		l.Warn("remove_product_error", "status", 400, "reason", "product id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "product id is not an integer")
	}

	res := h.DB.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Delete(&models.OrderProduct{})
	if res.Error != nil {
		l.Error("remove_product_error", "status", 500, "error", res.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove product from order")
	}
	if res.RowsAffected == 0 {
		l.Warn("remove_product_error", "status", 404, "reason", "product not found in order")
		return echo.NewHTTPError(http.StatusNotFound, "product not found in order")
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(orderID), map[string]any{
		"type":      "order_product_removed",
		"orderID":   orderID,
		"productID": productID,
	})

	l.Info("remove_product_success", "orderID", orderID, "productID", productID)
	return c.JSON(http.StatusOK, Response{
		Status:  "ok",
		Message: "product removed from order",
	})
}

func (h *OrderHandler) GetUserOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_user_orders")

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_user_orders_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var user models.User
	if err := h.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_user_orders_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("get_user_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}

	var orders []models.Order
	if err := h.DB.WithContext(ctx).Preload("Products").Where("user_id = ?", userID).Order("order_date DESC").Find(&orders).Error; err != nil {
		l.Error("get_user_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrderProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order_products")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_order_products_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var order models.Order
	if err := h.DB.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_order_products_error", "status", 404, "reason", "order not found")
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	var products []models.Product
	if err := h.DB.WithContext(ctx).Model(&order).Association("Products").Find(&products); err != nil {
		l.Error("get_order_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}
	if products == nil {
		products = []models.Product{}
	}

	return c.JSON(http.StatusOK, products)
}
