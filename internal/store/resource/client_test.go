package resource

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, time.Second, nil)
	require.NoError(t, err)
	return c
}

func TestFindUsersSendsExactMatchQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "a@b.co", r.URL.Query().Get("email"))
		assert.Equal(t, "Secret#1", r.URL.Query().Get("password"))
		w.Write([]byte(`[{"id":1,"name":"Ann","email":"a@b.co","role":"user","cart":[]}]`))
	})

	got, err := c.Users().Find(context.Background(), store.UserFilter{Email: "a@b.co", Password: "Secret#1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.ID("1"), got[0].ID)
	assert.Equal(t, "Ann", got[0].Name)
}

func TestPatchSendsOnlyNamedField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/u1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		var doc map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body, &doc))
		assert.Len(t, doc, 1)
		assert.JSONEq(t, `[{"id":"p1","name":"Air","price":100,"size":"9","quantity":2,"image_url":""}]`, string(doc["cart"]))

		w.Write([]byte(`{"id":"u1","cart":[{"id":"p1","size":"9","quantity":2,"price":100}]}`))
	})

	cart := []models.CartItem{{ProductID: "p1", Name: "Air", Price: 100, Size: "9", Quantity: 2}}
	u, err := c.Users().Patch(context.Background(), "u1", store.Fields{store.FieldCart: cart})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, 2, u.Cart[0].Quantity)
}

func TestNotFoundMapsToStoreError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.Products().Get(context.Background(), "404")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestServerErrorMapsToUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.Users().Delete(context.Background(), "u1")
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestTransportFailureMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := New(srv.URL, time.Second, nil)
	require.NoError(t, err)
	srv.Close()

	_, err = c.Users().List(context.Background())
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestPatchWithEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	p, err := c.Products().Patch(context.Background(), "p1", store.Fields{store.FieldInStock: false})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("localhost:3000", time.Second, nil)
	assert.Error(t, err)
}
