package service

import (
	"context"
	"errors"
	"testing"

	"shopsync/internal/common"
	"shopsync/internal/domain/integration"
	"shopsync/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProductRepo struct {
	products map[string]*model.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]*model.Product)}
}

func (r *memProductRepo) Create(_ context.Context, p *model.Product) error {
	stored := *p
	r.products[p.ID] = &stored
	return nil
}

func (r *memProductRepo) FindByIDAndOwner(_ context.Context, id, userID string) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.UserID != userID {
		return nil, common.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memProductRepo) ListByOwner(_ context.Context, userID string) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range r.products {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) UpdateFields(_ context.Context, p *model.Product) error {
	stored, ok := r.products[p.ID]
	if !ok {
		return common.ErrNotFound
	}
	stored.Name = p.Name
	stored.Slug = p.Slug
	stored.Description = p.Description
	stored.Price = p.Price
	stored.ImageURL = p.ImageURL
	return nil
}

func (r *memProductRepo) MarkSynced(_ context.Context, id string, wooID int64) error {
	stored, ok := r.products[id]
	if !ok {
		return common.ErrNotFound
	}
	stored.WooCommerceID = &wooID
	stored.Status = model.StatusSynced
	return nil
}

func (r *memProductRepo) MarkSyncFailed(_ context.Context, id string) error {
	stored, ok := r.products[id]
	if !ok {
		return common.ErrNotFound
	}
	stored.Status = model.StatusSyncFailed
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

type fakeCatalog struct {
	createID    int64
	err         error
	createCalls int
	updateCalls int
	deleteCalls int
	lastPayload integration.RemoteProduct
	lastID      int64
}

func (c *fakeCatalog) CreateProduct(_ context.Context, p integration.RemoteProduct) (int64, error) {
	c.createCalls++
	c.lastPayload = p
	if c.err != nil {
		return 0, c.err
	}
	return c.createID, nil
}

func (c *fakeCatalog) UpdateProduct(_ context.Context, remoteID int64, p integration.RemoteProduct) error {
	c.updateCalls++
	c.lastID = remoteID
	c.lastPayload = p
	return c.err
}

func (c *fakeCatalog) DeleteProduct(_ context.Context, remoteID int64) error {
	c.deleteCalls++
	c.lastID = remoteID
	return c.err
}

func validRequest() ProductRequest {
	return ProductRequest{
		Name:        "Mug",
		Description: "A sturdy mug",
		Price:       decimal.RequireFromString("9.99"),
		ImageURL:    "http://x/y.png",
	}
}

func TestCreateProduct_RemoteSuccess(t *testing.T) {
	repo := newMemProductRepo()
	catalog := &fakeCatalog{createID: 42}
	svc := NewProductService(repo, catalog)

	product, err := svc.CreateProduct(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	require.NotNil(t, product.WooCommerceID)
	assert.Equal(t, int64(42), *product.WooCommerceID)
	assert.Equal(t, model.StatusSynced, product.Status)
	assert.Equal(t, "mug", product.Slug)
	assert.Equal(t, "9.99", catalog.lastPayload.RegularPrice)
	assert.Equal(t, "http://x/y.png", catalog.lastPayload.ImageURL)

	stored := repo.products[product.ID]
	require.NotNil(t, stored)
	assert.Equal(t, model.StatusSynced, stored.Status)
	require.NotNil(t, stored.WooCommerceID)
	assert.Equal(t, int64(42), *stored.WooCommerceID)
}

func TestCreateProduct_RemoteFailureKeepsLocalRow(t *testing.T) {
	repo := newMemProductRepo()
	catalog := &fakeCatalog{err: integration.ErrRemoteRequestFailed}
	svc := NewProductService(repo, catalog)

	product, err := svc.CreateProduct(context.Background(), "user-1", validRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrRemoteSync))

	// The failed sync is reported, but the product still exists.
	require.NotNil(t, product)
	assert.Equal(t, model.StatusSyncFailed, product.Status)
	assert.Nil(t, product.WooCommerceID)

	stored := repo.products[product.ID]
	require.NotNil(t, stored)
	assert.Equal(t, model.StatusSyncFailed, stored.Status)
	assert.Nil(t, stored.WooCommerceID)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := NewProductService(newMemProductRepo(), &fakeCatalog{})

	cases := []struct {
		name string
		req  ProductRequest
	}{
		{"missing name", ProductRequest{Price: decimal.NewFromInt(1)}},
		{"negative price", ProductRequest{Name: "Mug", Price: decimal.NewFromInt(-1)}},
		{"bad image url", ProductRequest{Name: "Mug", Price: decimal.NewFromInt(1), ImageURL: "not a url"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), "user-1", tc.req)
			assert.True(t, errors.Is(err, common.ErrValidation))
		})
	}
}

func TestUpdateProduct_SyncedProductRemoteFailure(t *testing.T) {
	repo := newMemProductRepo()
	catalog := &fakeCatalog{createID: 42}
	svc := NewProductService(repo, catalog)

	product, err := svc.CreateProduct(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	catalog.err = integration.ErrRemoteRequestFailed
	req := validRequest()
	req.Name = "Bigger Mug"
	req.Price = decimal.RequireFromString("12.50")

	updated, err := svc.UpdateProduct(context.Background(), "user-1", product.ID, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrRemoteSync))
	assert.Equal(t, int64(42), catalog.lastID)

	// Local fields reflect the new values even though the sync failed.
	require.NotNil(t, updated)
	assert.Equal(t, "Bigger Mug", updated.Name)
	assert.Equal(t, model.StatusSyncFailed, updated.Status)

	stored := repo.products[product.ID]
	assert.Equal(t, "Bigger Mug", stored.Name)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, model.StatusSyncFailed, stored.Status)
}

func TestUpdateProduct_SyncedProductRemoteSuccess(t *testing.T) {
	repo := newMemProductRepo()
	catalog := &fakeCatalog{createID: 42}
	svc := NewProductService(repo, catalog)

	product, err := svc.CreateProduct(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	// A previously failed product that later syncs fine on update.
	repo.products[product.ID].Status = model.StatusSyncFailed

	updated, err := svc.UpdateProduct(context.Background(), "user-1", product.ID, validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.updateCalls)
	assert.Equal(t, model.StatusSynced, updated.Status)
	assert.Equal(t, model.StatusSynced, repo.products[product.ID].Status)
}

func TestUpdateProduct_NeverSyncedSkipsRemote(t *testing.T) {
	repo := newMemProductRepo()
	catalog := &fakeCatalog{err: integration.ErrRemoteRequestFailed}
	svc := NewProductService(repo, catalog)

	product, err := svc.CreateProduct(context.Background(), "user-1", validRequest())
	require.Error(t, err) // first sync failed, woocommerce_id stays null

	catalog.err = nil
	req := validRequest()
	req.Name = "Renamed Mug"

	updated, err := svc.UpdateProduct(context.Background(), "user-1", product.ID, req)
	require.NoError(t, err)

	// No remote retry on update for a never-synced product; status unchanged.
	assert.Equal(t, 0, catalog.updateCalls)
	assert.Equal(t, model.StatusSyncFailed, updated.Status)
	assert.Equal(t, "Renamed Mug", repo.products[product.ID].Name)
}

func TestDeleteProduct_RemoteFailureStillDeletes(t *testing.T) {
	repo := newMemProductRepo()
	catalog := &fakeCatalog{createID: 42}
	svc := NewProductService(repo, catalog)

	product, err := svc.CreateProduct(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	catalog.err = integration.ErrRemoteRequestFailed
	err = svc.DeleteProduct(context.Background(), "user-1", product.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, catalog.deleteCalls)
	assert.NotContains(t, repo.products, product.ID)
}

func TestDeleteProduct_NeverSyncedSkipsRemote(t *testing.T) {
	repo := newMemProductRepo()
	catalog := &fakeCatalog{err: integration.ErrRemoteRequestFailed}
	svc := NewProductService(repo, catalog)

	product, _ := svc.CreateProduct(context.Background(), "user-1", validRequest())
	catalog.deleteCalls = 0

	require.NoError(t, svc.DeleteProduct(context.Background(), "user-1", product.ID))
	assert.Equal(t, 0, catalog.deleteCalls)
}

func TestOwnership_ForeignProductIsNotFound(t *testing.T) {
	repo := newMemProductRepo()
	catalog := &fakeCatalog{createID: 42}
	svc := NewProductService(repo, catalog)

	product, err := svc.CreateProduct(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), "user-2", product.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = svc.UpdateProduct(context.Background(), "user-2", product.ID, validRequest())
	assert.True(t, errors.Is(err, common.ErrNotFound))

	err = svc.DeleteProduct(context.Background(), "user-2", product.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	// The row is untouched.
	assert.Contains(t, repo.products, product.ID)
}
