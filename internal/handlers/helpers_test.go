package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hdr13/ecommerce-api/internal/config"
	"github.com/hdr13/ecommerce-api/internal/models"
	"github.com/hdr13/ecommerce-api/internal/transport"
)

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = transport.NewValidator()
	return e
}

func doJSONRequest(t *testing.T, e *echo.Echo, method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, c
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Address: "somewhere", Email: email}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{Name: name, Description: "test product", Price: price}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}
