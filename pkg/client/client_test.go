package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/handler"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const adminKey = "s3cret"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	svc := service.NewProductService(repository.NewMemoryProductRepository(), nil, logger)
	r := gin.New()
	handler.NewProductHandler(svc, logger).RegisterRoutes(r.Group("/api"), middleware.AdminKey(adminKey, logger))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func ptr[T any](v T) *T { return &v }

func input(name string, inventory int) domain.ProductInput {
	return domain.ProductInput{
		Name:        ptr(name),
		Slug:        ptr(service.Slugify(name)),
		Description: ptr("about " + name),
		Price:       ptr(12.5),
		Category:    ptr("Home"),
		Inventory:   ptr(inventory),
	}
}

func TestClient_CatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t)
	admin := New(srv.URL+"/api/", WithAdminKey(adminKey))
	public := New(srv.URL + "/api")

	created, err := admin.CreateProduct(ctx, input("Desk Lamp", 3))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	bySlug, err := public.GetProductBySlug(ctx, "desk-lamp")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	byID, err := public.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", byID.Name)

	updated, err := admin.UpdateProduct(ctx, created.ID, domain.ProductInput{Inventory: ptr(30)})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.Inventory)

	stats, err := public.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Empty(t, stats.LowStockItems)

	recs, err := public.Recommendations(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	require.NoError(t, admin.DeleteProduct(ctx, created.ID))

	_, err = public.GetProduct(ctx, created.ID)
	assert.True(t, IsNotFound(err))

	products, err := public.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestClient_Seed(t *testing.T) {
	ctx := context.Background()
	c := New(newServer(t).URL+"/api", WithAdminKey(adminKey))

	created, err := c.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(service.SampleProducts()), created)

	created, err = c.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestClient_APIErrors(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t)

	_, err := New(srv.URL+"/api").CreateProduct(ctx, input("Desk Lamp", 3))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Unauthorized", apiErr.Message)

	bad := input("Desk Lamp", 3)
	bad.Description = nil
	_, err = New(srv.URL+"/api", WithAdminKey(adminKey)).CreateProduct(ctx, bad)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Missing required field: description", apiErr.Message)

	_, err = New(srv.URL+"/api").GetProductBySlug(ctx, "missing")
	assert.True(t, IsNotFound(err))
}

func TestClient_NonEnvelopeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := New(srv.URL).ListProducts(context.Background())
	assert.True(t, IsNotFound(err))
	assert.False(t, errors.Is(err, ErrNetwork))
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).ListProducts(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClient_Wishlisted(t *testing.T) {
	ctx := context.Background()
	c := New(newServer(t).URL+"/api", WithAdminKey(adminKey))

	a, err := c.CreateProduct(ctx, input("A", 1))
	require.NoError(t, err)
	_, err = c.CreateProduct(ctx, input("B", 1))
	require.NoError(t, err)
	d, err := c.CreateProduct(ctx, input("D", 1))
	require.NoError(t, err)

	got, err := c.Wishlisted(ctx, []string{d.ID, "deleted-id", a.ID})
	require.NoError(t, err)

	ids := []string{}
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{a.ID, d.ID}, ids)

	got, err = c.Wishlisted(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
