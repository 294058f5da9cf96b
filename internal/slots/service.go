package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/davidreyero/comboforge-backend/internal/catalog"
	"github.com/davidreyero/comboforge-backend/internal/combos"
	"github.com/davidreyero/comboforge-backend/pkg/enums"
	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
	"github.com/davidreyero/comboforge-backend/pkg/logger"
)

// CatalogSource is the slice of the catalog the slot manager needs.
type CatalogSource interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}

// Service manages combo-design sessions and their slot selections.
type Service interface {
	CreateSession(ctx context.Context) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error

	AddSlot(ctx context.Context, sessionID string, category enums.MenuCategory) (*Session, error)
	RemoveSlot(ctx context.Context, sessionID string, category enums.MenuCategory) (*Session, error)
	ToggleProduct(ctx context.Context, sessionID string, category enums.MenuCategory, productID uuid.UUID) (*Session, error)
	SelectAll(ctx context.Context, sessionID string, category enums.MenuCategory) (*Session, error)
	DeselectAll(ctx context.Context, sessionID string, category enums.MenuCategory) (*Session, error)

	Selections(ctx context.Context, session *Session) ([]combos.SlotSelection, error)
}

type service struct {
	store   Store
	catalog CatalogSource
	log     *logger.Logger
}

func NewService(store Store, source CatalogSource, log *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if source == nil {
		return nil, fmt.Errorf("catalog source is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{store: store, catalog: source, log: log}, nil
}

func (s *service) CreateSession(ctx context.Context) (*Session, error) {
	now := time.Now().UTC()
	session := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.log.Info(s.log.WithSessionID(ctx, session.ID), "design session created")
	return session, nil
}

func (s *service) GetSession(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(ctx, id)
}

func (s *service) DeleteSession(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(s.log.WithSessionID(ctx, id), "design session deleted")
	return nil
}

func (s *service) AddSlot(ctx context.Context, sessionID string, category enums.MenuCategory) (*Session, error) {
	if !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown category %q", category))
	}
	return s.mutate(ctx, sessionID, func(session *Session) error {
		if session.SlotIndex(category) >= 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "slot already exists for category").
				WithDetails(map[string]any{"category": category.String()})
		}
		session.Slots = append(session.Slots, NewCategorySlot(category))
		return nil
	})
}

func (s *service) RemoveSlot(ctx context.Context, sessionID string, category enums.MenuCategory) (*Session, error) {
	return s.mutate(ctx, sessionID, func(session *Session) error {
		idx := session.SlotIndex(category)
		if idx < 0 {
			return slotNotFound(category)
		}
		session.Slots = append(session.Slots[:idx], session.Slots[idx+1:]...)
		return nil
	})
}

func (s *service) ToggleProduct(ctx context.Context, sessionID string, category enums.MenuCategory, productID uuid.UUID) (*Session, error) {
	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	product, ok := snapshot.Product(productID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found in the active catalog").
			WithDetails(map[string]any{"product_id": productID.String()})
	}
	if product.Category != category {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product belongs to a different category").
			WithDetails(map[string]any{
				"product_category": product.Category.String(),
				"slot_category":    category.String(),
			})
	}

	return s.mutate(ctx, sessionID, func(session *Session) error {
		idx := session.SlotIndex(category)
		if idx < 0 {
			return slotNotFound(category)
		}
		session.Slots[idx] = session.Slots[idx].Toggled(productID)
		return nil
	})
}

func (s *service) SelectAll(ctx context.Context, sessionID string, category enums.MenuCategory) (*Session, error) {
	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	products := snapshot.ByCategory(category)
	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	return s.mutate(ctx, sessionID, func(session *Session) error {
		idx := session.SlotIndex(category)
		if idx < 0 {
			return slotNotFound(category)
		}
		session.Slots[idx] = session.Slots[idx].WithAll(ids)
		return nil
	})
}

func (s *service) DeselectAll(ctx context.Context, sessionID string, category enums.MenuCategory) (*Session, error) {
	return s.mutate(ctx, sessionID, func(session *Session) error {
		idx := session.SlotIndex(category)
		if idx < 0 {
			return slotNotFound(category)
		}
		session.Slots[idx] = session.Slots[idx].Cleared()
		return nil
	})
}

// Selections resolves the session's product ids against the current catalog.
// Every product that has vanished or gone inactive since selection is
// reported, not just the first one.
func (s *service) Selections(ctx context.Context, session *Session) ([]combos.SlotSelection, error) {
	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var errs error
	selections := make([]combos.SlotSelection, 0, len(session.Slots))
	for _, slot := range session.Slots {
		selection := combos.SlotSelection{Category: slot.Category}
		for _, id := range slot.ProductIDs {
			product, ok := snapshot.Product(id)
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("product %s is no longer available", id))
				continue
			}
			selection.Products = append(selection.Products, product)
		}
		selections = append(selections, selection)
	}
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, errs, "session references unavailable products").
			WithDetails(map[string]any{"missing": len(multierr.Errors(errs))})
	}
	return selections, nil
}

// mutate loads a session, applies fn, stamps it, and saves it back.
func (s *service) mutate(ctx context.Context, sessionID string, fn func(*Session) error) (*Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	session.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func slotNotFound(category enums.MenuCategory) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "no slot for category").
		WithDetails(map[string]any{"category": category.String()})
}
