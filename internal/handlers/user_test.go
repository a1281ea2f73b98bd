package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hdr13/ecommerce-api/internal/models"
	"github.com/hdr13/ecommerce-api/internal/mykafka"
)

func TestCreateUser(t *testing.T) {
	db := InitTestDB(t)
	e := newTestEcho()
	h := &UserHandler{DB: db, Producer: &mykafka.Producer{}}

	payload := map[string]string{
		"name":    "Jordan Ryder",
		"address": "12 Main St",
		"email":   "jordan@example.com",
	}
	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/v1/users", payload)
	require.NoError(t, h.CreateUser(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.Equal(t, "Jordan Ryder", created.Name)
	require.Equal(t, "jordan@example.com", created.Email)
}

func TestCreateUserValidation(t *testing.T) {
	db := InitTestDB(t)
	e := newTestEcho()
	h := &UserHandler{DB: db, Producer: &mykafka.Producer{}}

	cases := []map[string]string{
		{"address": "12 Main St", "email": "jordan@example.com"}, // missing name
		{"name": "Jordan"},                                       // missing email
		{"name": "Jordan", "email": "not-an-email"},
	}
	for i, payload := range cases {
		_, c := doJSONRequest(t, e, http.MethodPost, "/api/v1/users", payload)
		err := h.CreateUser(c)
		require.Error(t, err, "case %d", i)
		requireHTTPError(t, err, http.StatusBadRequest)
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := InitTestDB(t)
	e := newTestEcho()
	h := &UserHandler{DB: db, Producer: &mykafka.Producer{}}
	seedUser(t, db, "First", "dup@example.com")

	payload := map[string]string{"name": "Second", "email": "dup@example.com"}
	_, c := doJSONRequest(t, e, http.MethodPost, "/api/v1/users", payload)
	requireHTTPError(t, h.CreateUser(c), http.StatusConflict)
}

func TestGetUser(t *testing.T) {
	db := InitTestDB(t)
	e := newTestEcho()
	h := &UserHandler{DB: db, Producer: &mykafka.Producer{}}
	user := seedUser(t, db, "Jordan", "jordan@example.com")

	rec, c := doJSONRequest(t, e, http.MethodGet, "/api/v1/users/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(user.ID))
	require.NoError(t, h.GetUser(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, user.Email, got.Email)
}

func TestGetUserNotFound(t *testing.T) {
	db := InitTestDB(t)
	e := newTestEcho()
	h := &UserHandler{DB: db, Producer: &mykafka.Producer{}}

	_, c := doJSONRequest(t, e, http.MethodGet, "/api/v1/users/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	requireHTTPError(t, h.GetUser(c), http.StatusNotFound)

	_, c = doJSONRequest(t, e, http.MethodGet, "/api/v1/users/abc", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	requireHTTPError(t, h.GetUser(c), http.StatusBadRequest)
}

func TestGetUsersPagination(t *testing.T) {
	db := InitTestDB(t)
	e := newTestEcho()
	h := &UserHandler{DB: db, Producer: &mykafka.Producer{}}

	for i := 0; i < 3; i++ {
		seedUser(t, db, fmt.Sprintf("user%d", i), fmt.Sprintf("user%d@example.com", i))
	}

	rec, c := doJSONRequest(t, e, http.MethodGet, "/api/v1/users?page=1&size=2", nil)
	require.NoError(t, h.GetUsers(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.User `json:"data"`
		Meta struct {
			Page       int   `json:"page"`
			Size       int   `json:"size"`
			Total      int64 `json:"total"`
			TotalPages int64 `json:"total_pages"`
			HasPrev    bool  `json:"has_prev"`
			HasNext    bool  `json:"has_next"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, int64(3), resp.Meta.Total)
	require.Equal(t, int64(2), resp.Meta.TotalPages)
	require.False(t, resp.Meta.HasPrev)
	require.True(t, resp.Meta.HasNext)
}

func TestUpdateUser(t *testing.T) {
	db := InitTestDB(t)
	e := newTestEcho()
	h := &UserHandler{DB: db, Producer: &mykafka.Producer{}}
	user := seedUser(t, db, "Before", "before@example.com")

	payload := map[string]string{
		"name":    "After",
		"address": "new address",
		"email":   "after@example.com",
	}
	rec, c := doJSONRequest(t, e, http.MethodPut, "/api/v1/users/1", payload)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(user.ID))
	require.NoError(t, h.UpdateUser(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.Equal(t, "After", stored.Name)
	require.Equal(t, "after@example.com", stored.Email)
}

func TestUpdateUserNotFound(t *testing.T) {
	db := InitTestDB(t)
	e := newTestEcho()
	h := &UserHandler{DB: db, Producer: &mykafka.Producer{}}

	payload := map[string]string{"name": "Ghost", "email": "ghost@example.com"}
	_, c := doJSONRequest(t, e, http.MethodPut, "/api/v1/users/42", payload)
	c.SetParamNames("id")
	c.SetParamValues("42")
	requireHTTPError(t, h.UpdateUser(c), http.StatusNotFound)
}

func TestDeleteUser(t *testing.T) {
	db := InitTestDB(t)
	e := newTestEcho()
	h := &UserHandler{DB: db, Producer: &mykafka.Producer{}}
	user := seedUser(t, db, "Jordan", "jordan@example.com")

	rec, c := doJSONRequest(t, e, http.MethodDelete, "/api/v1/users/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(user.ID))
	require.NoError(t, h.DeleteUser(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, c = doJSONRequest(t, e, http.MethodDelete, "/api/v1/users/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(user.ID))
	requireHTTPError(t, h.DeleteUser(c), http.StatusNotFound)
}
