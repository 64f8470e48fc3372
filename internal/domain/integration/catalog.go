package integration

import (
	"context"
	"errors"
)

var (
	ErrRemoteRequestFailed   = errors.New("integration: remote catalog request failed")
	ErrRemoteInvalidResponse = errors.New("integration: invalid remote catalog response")
)

// RemoteProduct carries the fields the storefront understands. Price travels
// as a string, the image as a single source URL.
type RemoteProduct struct {
	Name         string
	Slug         string
	Description  string
	RegularPrice string
	ImageURL     string
}

// Catalog is the capability the sync orchestrator needs from the storefront.
// Implementations must bound each call with a timeout; callers treat any
// returned error as a sync failure, never as fatal to the local operation.
type Catalog interface {
	CreateProduct(ctx context.Context, p RemoteProduct) (int64, error)
	UpdateProduct(ctx context.Context, remoteID int64, p RemoteProduct) error
	DeleteProduct(ctx context.Context, remoteID int64) error
}
