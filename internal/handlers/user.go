package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/hdr13/ecommerce-api/internal/logging"
	"github.com/hdr13/ecommerce-api/internal/models"
	"github.com/hdr13/ecommerce-api/internal/mykafka"
	"github.com/hdr13/ecommerce-api/internal/transport"
	"github.com/hdr13/ecommerce-api/internal/util"
)

type UserHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *UserHandler) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_users")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		l.Error("get_users_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list users")
	}

	var items []models.User
	if err := h.DB.WithContext(ctx).Model(&models.User{}).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		l.Error("get_users_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list users")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": listMeta(page, limit, offset, total),
	})
}

func (h *UserHandler) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_user")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_user_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var user models.User
	if err := h.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_user_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("get_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get user")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create_user")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_user_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	user := models.User{
		Name:    req.Name,
		Address: req.Address,
		Email:   req.Email,
	}

	if err := h.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Warn("create_user_error", "status", 409, "reason", "email already registered")
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		}
		l.Error("create_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create user")
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":   "user_created",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("create_user_success", "userID", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_user")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_user_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_user_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("update_user_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	var user models.User
	if err := h.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_user_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("update_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update user")
	}

	user.Name = req.Name
	user.Address = req.Address
	user.Email = req.Email

	if err := h.DB.WithContext(ctx).Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Warn("update_user_error", "status", 409, "reason", "email already registered")
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		}
		l.Error("update_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update user")
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":   "user_updated",
		"userID": user.ID,
	})

	l.Info("update_user_success", "userID", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete_user")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("delete_user_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	res := h.DB.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		l.Error("delete_user_error", "status", 500, "error", res.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete user")
	}
	if res.RowsAffected == 0 {
		l.Warn("delete_user_error", "status", 404, "reason", "user not found")
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(id), map[string]any{
		"type":   "user_deleted",
		"userID": id,
	})

	l.Info("delete_user_success", "userID", id)
	return c.NoContent(http.StatusNoContent)
}
