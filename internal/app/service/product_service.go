package service

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"shopsync/internal/common"
	"shopsync/internal/domain/integration"
	"shopsync/internal/domain/model"
	"shopsync/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// ProductService owns the sync orchestration between the local store and the
// remote catalog. The local write always precedes the remote call on
// create/update, and the remote call precedes the local delete, so the local
// store never silently loses a record because the storefront was down.
// Failed syncs surface as status = sync_failed; nothing retries them
// automatically.
type ProductService struct {
	productRepo repository.ProductRepository
	catalog     integration.Catalog
}

func NewProductService(productRepo repository.ProductRepository, catalog integration.Catalog) *ProductService {
	return &ProductService{productRepo: productRepo, catalog: catalog}
}

type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
}

func (r ProductRequest) validate() error {
	if r.Name == "" {
		return fmt.Errorf("product name is required: %w", common.ErrValidation)
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("product price must not be negative: %w", common.ErrValidation)
	}
	if r.ImageURL != "" {
		if _, err := url.ParseRequestURI(r.ImageURL); err != nil {
			return fmt.Errorf("image_url is not a valid URL: %w", common.ErrValidation)
		}
	}
	return nil
}

func remoteFields(p *model.Product) integration.RemoteProduct {
	return integration.RemoteProduct{
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		RegularPrice: p.Price.StringFixed(2),
		ImageURL:     p.ImageURL,
	}
}

// CreateProduct inserts the local row first, then attempts the remote create.
// On remote failure the row is kept with status sync_failed and both the
// product and an ErrRemoteSync error are returned.
func (s *ProductService) CreateProduct(ctx context.Context, userID string, req ProductRequest) (*model.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Status:      model.StatusCreatedLocally,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	remoteID, err := s.catalog.CreateProduct(ctx, remoteFields(product))
	if err != nil {
		s.markSyncFailed(ctx, product)
		return product, fmt.Errorf("product %s created locally but storefront create failed: %v: %w",
			product.ID, err, common.ErrRemoteSync)
	}

	if err := s.productRepo.MarkSynced(ctx, product.ID, remoteID); err != nil {
		return nil, fmt.Errorf("failed to record sync result for product %s: %w", product.ID, err)
	}
	product.WooCommerceID = &remoteID
	product.Status = model.StatusSynced
	return product, nil
}

// UpdateProduct updates local fields unconditionally, then mirrors the change
// remotely if the product was ever synced. A product that never reached the
// storefront keeps its current status; update does not retry a failed sync.
func (s *ProductService) UpdateProduct(ctx context.Context, userID, productID string, req ProductRequest) (*model.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByIDAndOwner(ctx, productID, userID)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Slug = slug.Make(req.Name)
	product.Description = req.Description
	product.Price = req.Price
	product.ImageURL = req.ImageURL

	if err := s.productRepo.UpdateFields(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", productID, err)
	}

	if product.WooCommerceID == nil {
		return product, nil
	}

	if err := s.catalog.UpdateProduct(ctx, *product.WooCommerceID, remoteFields(product)); err != nil {
		s.markSyncFailed(ctx, product)
		return product, fmt.Errorf("product %s updated locally but storefront update failed: %v: %w",
			productID, err, common.ErrRemoteSync)
	}

	if err := s.productRepo.MarkSynced(ctx, product.ID, *product.WooCommerceID); err != nil {
		return nil, fmt.Errorf("failed to record sync result for product %s: %w", productID, err)
	}
	product.Status = model.StatusSynced
	return product, nil
}

// DeleteProduct attempts the remote delete first (best effort), then removes
// the local row unconditionally.
func (s *ProductService) DeleteProduct(ctx context.Context, userID, productID string) error {
	product, err := s.productRepo.FindByIDAndOwner(ctx, productID, userID)
	if err != nil {
		return err
	}

	if product.WooCommerceID != nil {
		if err := s.catalog.DeleteProduct(ctx, *product.WooCommerceID); err != nil {
			log.Printf("WARN: Failed to delete product %s (remote id %d) from storefront: %v",
				productID, *product.WooCommerceID, err)
		}
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	return nil
}

func (s *ProductService) GetProduct(ctx context.Context, userID, productID string) (*model.Product, error) {
	return s.productRepo.FindByIDAndOwner(ctx, productID, userID)
}

func (s *ProductService) ListProducts(ctx context.Context, userID string) ([]model.Product, error) {
	return s.productRepo.ListByOwner(ctx, userID)
}

func (s *ProductService) markSyncFailed(ctx context.Context, product *model.Product) {
	if err := s.productRepo.MarkSyncFailed(ctx, product.ID); err != nil {
		log.Printf("ERROR: Failed to mark product %s as sync_failed: %v", product.ID, err)
		return
	}
	product.Status = model.StatusSyncFailed
}
