// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/telshop/phone-catalog/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// PhoneFields holds the mutable attributes applied by an upsert.
// Slug is deliberately absent: it is assigned once, at first
// persistence, and never overwritten afterward.
type PhoneFields struct {
	Price       decimal.Decimal
	Image       string
	ReleaseDate time.Time
	LTEExists   bool
}

// PhoneRepository defines operations for catalog phones
type PhoneRepository interface {
	Repository[models.Phone, models.PhoneFilter]
	ByName(ctx context.Context, name string) (*models.Phone, error)
	BySlug(ctx context.Context, slug string) (*models.Phone, error)
	List(ctx context.Context, orderBy string) ([]*models.Phone, error)
	Upsert(ctx context.Context, name string, fields PhoneFields) (*models.Phone, bool, error)
	Update(ctx context.Context, phone *models.Phone) error
	DeleteAll(ctx context.Context) error
}
