package fixedcombos

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/davidreyero/comboforge-backend/internal/catalog"
	"github.com/davidreyero/comboforge-backend/internal/pricing"
	"github.com/davidreyero/comboforge-backend/pkg/db/models"
	"github.com/davidreyero/comboforge-backend/pkg/enums"
	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
	"github.com/davidreyero/comboforge-backend/pkg/logger"
	"github.com/davidreyero/comboforge-backend/pkg/pagination"
)

// CatalogSource is the slice of the catalog the authoring flow needs.
type CatalogSource interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}

// PreviewInput parameterizes the pricing preview of a builder.
type PreviewInput struct {
	Channel    enums.SalesChannel `json:"channel"`
	SalePrice  decimal.Decimal    `json:"salePrice"`
	GuestCount int                `json:"guestCount"`
}

// View is the read model of one builder handed to the API layer.
type View struct {
	ID         string               `json:"id"`
	State      State                `json:"state"`
	Categories []enums.MenuCategory `json:"categories"`
	Items      []map[string]any     `json:"items"`
	Preview    *previewPayload      `json:"preview,omitempty"`
}

type previewPayload struct {
	Channel    enums.SalesChannel `json:"channel"`
	SalePrice  decimal.Decimal    `json:"salePrice"`
	GuestCount int                `json:"guestCount"`
	Result     any                `json:"result"`
}

// Service drives fixed-combo authoring and the saved-combo archive.
type Service interface {
	StartBuilder(ctx context.Context) (*View, error)
	AddSlot(ctx context.Context, builderID string, category enums.MenuCategory) (*View, error)
	SelectProduct(ctx context.Context, builderID string, category enums.MenuCategory, productID uuid.UUID) (*View, error)
	PricePreview(ctx context.Context, builderID string, input PreviewInput) (*View, error)
	Save(ctx context.Context, builderID, name string) (*models.FixedCombo, error)
	ResetBuilder(ctx context.Context, builderID string) (*View, error)

	List(ctx context.Context, params pagination.Params) ([]models.FixedCombo, string, error)
	Get(ctx context.Context, id uuid.UUID) (*models.FixedCombo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// builderIdleTTL bounds how long an untouched builder stays resident. Stale
// entries are pruned whenever a new builder starts.
const builderIdleTTL = time.Hour

// builderEntry serializes access to one builder. The entry mutex guards the
// builder itself; touched is guarded by the service mutex.
type builderEntry struct {
	mu      sync.Mutex
	builder *Builder
	touched time.Time
}

type service struct {
	repo    *Repository
	catalog CatalogSource
	tariffs pricing.Tariffs
	log     *logger.Logger

	mu       sync.Mutex
	builders map[string]*builderEntry
}

func NewService(repo *Repository, source CatalogSource, tariffs pricing.Tariffs, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if source == nil {
		return nil, fmt.Errorf("catalog source is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:     repo,
		catalog:  source,
		tariffs:  tariffs,
		log:      log,
		builders: make(map[string]*builderEntry),
	}, nil
}

func (s *service) StartBuilder(ctx context.Context) (*View, error) {
	id := uuid.NewString()
	entry := &builderEntry{builder: NewBuilder(s.tariffs), touched: time.Now()}
	view := s.view(id, entry.builder, nil)

	s.mu.Lock()
	s.pruneIdleLocked()
	s.builders[id] = entry
	s.mu.Unlock()

	s.log.Info(s.log.WithField(ctx, "builder_id", id), "fixed combo builder started")
	return view, nil
}

func (s *service) AddSlot(_ context.Context, builderID string, category enums.MenuCategory) (*View, error) {
	entry, err := s.entry(builderID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.builder.AddSlot(category); err != nil {
		return nil, err
	}
	return s.view(builderID, entry.builder, nil), nil
}

func (s *service) SelectProduct(ctx context.Context, builderID string, category enums.MenuCategory, productID uuid.UUID) (*View, error) {
	entry, err := s.entry(builderID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	product, ok := snapshot.Product(productID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found in the active catalog").
			WithDetails(map[string]any{"product_id": productID.String()})
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.builder.SelectProduct(category, product); err != nil {
		return nil, err
	}
	return s.view(builderID, entry.builder, nil), nil
}

func (s *service) PricePreview(_ context.Context, builderID string, input PreviewInput) (*View, error) {
	entry, err := s.entry(builderID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.builder.PricePreview(input.Channel, input.SalePrice, input.GuestCount); err != nil {
		return nil, err
	}
	return s.view(builderID, entry.builder, &input), nil
}

func (s *service) Save(ctx context.Context, builderID, name string) (*models.FixedCombo, error) {
	entry, err := s.entry(builderID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	draft, err := entry.builder.Snapshot(name)
	if err != nil {
		return nil, err
	}

	row := &models.FixedCombo{
		ID:         uuid.New(),
		Name:       draft.Name,
		Channel:    draft.Channel,
		SalePrice:  draft.SalePrice,
		GuestCount: draft.GuestCount,
		Categories: pq.StringArray(draft.Items.Categories()),
		Items:      draft.Items,
		CostResult: draft.CostResult,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	// The builder is done once its draft is persisted.
	s.mu.Lock()
	if current, ok := s.builders[builderID]; ok && current == entry {
		delete(s.builders, builderID)
	}
	s.mu.Unlock()

	ctx = s.log.WithFields(ctx, map[string]any{"fixed_combo_id": row.ID.String(), "name": row.Name})
	s.log.Info(ctx, "fixed combo saved")
	return row, nil
}

func (s *service) ResetBuilder(_ context.Context, builderID string) (*View, error) {
	entry, err := s.entry(builderID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.builder.Reset()
	return s.view(builderID, entry.builder, nil), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.FixedCombo, string, error) {
	return s.repo.List(ctx, params)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.FixedCombo, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(s.log.WithField(ctx, "fixed_combo_id", id.String()), "fixed combo deleted")
	return nil
}

func (s *service) entry(id string) (*builderEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.builders[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "builder not found")
	}
	entry.touched = time.Now()
	return entry, nil
}

func (s *service) pruneIdleLocked() {
	cutoff := time.Now().Add(-builderIdleTTL)
	for id, entry := range s.builders {
		if entry.touched.Before(cutoff) {
			delete(s.builders, id)
		}
	}
}

func (s *service) view(id string, builder *Builder, input *PreviewInput) *View {
	view := &View{
		ID:         id,
		State:      builder.State(),
		Categories: builder.Categories(),
	}
	for _, item := range builder.Combination() {
		view.Items = append(view.Items, map[string]any{
			"category":  item.Category.String(),
			"productId": item.Product.ID.String(),
			"name":      item.Product.Name,
		})
	}
	if result := builder.Preview(); result != nil && input != nil {
		view.Preview = &previewPayload{
			Channel:    input.Channel,
			SalePrice:  input.SalePrice,
			GuestCount: input.GuestCount,
			Result:     result,
		}
	}
	return view
}
