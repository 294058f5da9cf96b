package catalog

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/davidreyero/comboforge-backend/pkg/db/models"
	"github.com/davidreyero/comboforge-backend/pkg/enums"
	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
	"github.com/davidreyero/comboforge-backend/pkg/logger"
	"github.com/davidreyero/comboforge-backend/pkg/types"
)

// Service is the catalog's application surface.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*types.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*types.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*types.Product, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]types.Product, error)
	SetProductActive(ctx context.Context, id uuid.UUID, active bool) error
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type service struct {
	repo     *Repository
	validate *validator.Validate
	log      *logger.Logger
}

func NewService(repo *Repository, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}, nil
}

// CreateProductInput is the admin payload for a new catalog item.
type CreateProductInput struct {
	Name          string             `json:"name" validate:"required,max=200"`
	QuantityLabel string             `json:"quantityLabel" validate:"omitempty,max=100"`
	CostPrice     decimal.Decimal    `json:"costPrice"`
	OfflinePrice  decimal.Decimal    `json:"offlinePrice"`
	OnlinePrice   decimal.Decimal    `json:"onlinePrice"`
	Category      enums.MenuCategory `json:"category" validate:"required"`
}

// UpdateProductInput replaces every editable field of a product.
type UpdateProductInput struct {
	Name          string             `json:"name" validate:"required,max=200"`
	QuantityLabel string             `json:"quantityLabel" validate:"omitempty,max=100"`
	CostPrice     decimal.Decimal    `json:"costPrice"`
	OfflinePrice  decimal.Decimal    `json:"offlinePrice"`
	OnlinePrice   decimal.Decimal    `json:"onlinePrice"`
	Category      enums.MenuCategory `json:"category" validate:"required"`
	Active        bool               `json:"active"`
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*types.Product, error) {
	if err := s.validateProduct(input.Category, input.CostPrice, input.OfflinePrice, input.OnlinePrice, s.validate.Struct(input)); err != nil {
		return nil, err
	}

	row := &models.Product{
		ID:            uuid.New(),
		Name:          input.Name,
		QuantityLabel: optional(input.QuantityLabel),
		CostPrice:     input.CostPrice,
		OfflinePrice:  input.OfflinePrice,
		OnlinePrice:   input.OnlinePrice,
		Category:      input.Category,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	s.log.Info(s.log.WithField(ctx, "product_id", row.ID.String()), "product created")
	snapshot := row.Snapshot()
	return &snapshot, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*types.Product, error) {
	if err := s.validateProduct(input.Category, input.CostPrice, input.OfflinePrice, input.OnlinePrice, s.validate.Struct(input)); err != nil {
		return nil, err
	}

	row := &models.Product{
		ID:            id,
		Name:          input.Name,
		QuantityLabel: optional(input.QuantityLabel),
		CostPrice:     input.CostPrice,
		OfflinePrice:  input.OfflinePrice,
		OnlinePrice:   input.OnlinePrice,
		Category:      input.Category,
		IsActive:      input.Active,
	}
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshot := row.Snapshot()
	return &snapshot, nil
}

func (s *service) ListProducts(ctx context.Context, filter ListFilter) ([]types.Product, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]types.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Snapshot())
	}
	return out, nil
}

func (s *service) SetProductActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	ctx = s.log.WithFields(ctx, map[string]any{"product_id": id.String(), "active": active})
	s.log.Info(ctx, "product availability changed")
	return nil
}

// Snapshot captures the active catalog for slot sessions and pricing runs.
func (s *service) Snapshot(ctx context.Context) (*Snapshot, error) {
	rows, err := s.repo.List(ctx, ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	products := make([]types.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.Snapshot())
	}
	return NewSnapshot(products), nil
}

// validateProduct folds struct-tag failures and the money rules into a single
// typed validation error.
func (s *service) validateProduct(category enums.MenuCategory, cost, offline, online decimal.Decimal, structErr error) error {
	errs := structErr
	if !category.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("unknown category %q", category))
	}
	if cost.IsNegative() {
		errs = multierr.Append(errs, fmt.Errorf("cost price must not be negative"))
	}
	if offline.IsNegative() {
		errs = multierr.Append(errs, fmt.Errorf("offline price must not be negative"))
	}
	if online.IsNegative() {
		errs = multierr.Append(errs, fmt.Errorf("online price must not be negative"))
	}
	if errs == nil {
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid product payload")
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
