package slots

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/davidreyero/comboforge-backend/internal/catalog"
	"github.com/davidreyero/comboforge-backend/pkg/enums"
	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
	"github.com/davidreyero/comboforge-backend/pkg/logger"
	"github.com/davidreyero/comboforge-backend/pkg/types"
)

type stubCatalog struct {
	snapshot *catalog.Snapshot
	err      error
}

func (s *stubCatalog) Snapshot(context.Context) (*catalog.Snapshot, error) {
	return s.snapshot, s.err
}

func stubProduct(category enums.MenuCategory, name string) types.Product {
	return types.Product{
		ID:           uuid.New(),
		Name:         name,
		CostPrice:    decimal.NewFromInt(3),
		OfflinePrice: decimal.NewFromInt(7),
		OnlinePrice:  decimal.NewFromInt(8),
		Category:     category,
		Active:       true,
	}
}

func testSlotService(t *testing.T, products ...types.Product) Service {
	t.Helper()
	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(NewMemoryStore(), &stubCatalog{snapshot: catalog.NewSnapshot(products)}, log)
	require.NoError(t, err)
	return svc
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	svc := testSlotService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)

	loaded, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, session.ID, loaded.ID)

	require.NoError(t, svc.DeleteSession(ctx, session.ID))
	_, err = svc.GetSession(ctx, session.ID)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestAddAndRemoveSlot(t *testing.T) {
	t.Parallel()

	svc := testSlotService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	session, err = svc.AddSlot(ctx, session.ID, enums.MenuCategorySoup)
	require.NoError(t, err)
	require.Len(t, session.Slots, 1)

	_, err = svc.AddSlot(ctx, session.ID, enums.MenuCategorySoup)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict), "duplicate slot must conflict")

	_, err = svc.AddSlot(ctx, session.ID, enums.MenuCategory("sushi"))
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	session, err = svc.RemoveSlot(ctx, session.ID, enums.MenuCategorySoup)
	require.NoError(t, err)
	require.Empty(t, session.Slots)

	_, err = svc.RemoveSlot(ctx, session.ID, enums.MenuCategorySoup)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestToggleProductValidatesAgainstCatalog(t *testing.T) {
	t.Parallel()

	soup := stubProduct(enums.MenuCategorySoup, "gazpacho")
	svc := testSlotService(t, soup)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	session, err = svc.AddSlot(ctx, session.ID, enums.MenuCategorySoup)
	require.NoError(t, err)
	_, err = svc.AddSlot(ctx, session.ID, enums.MenuCategoryMain)
	require.NoError(t, err)

	// unknown product
	_, err = svc.ToggleProduct(ctx, session.ID, enums.MenuCategorySoup, uuid.New())
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	// wrong slot for a known product
	_, err = svc.ToggleProduct(ctx, session.ID, enums.MenuCategoryMain, soup.ID)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	session, err = svc.ToggleProduct(ctx, session.ID, enums.MenuCategorySoup, soup.ID)
	require.NoError(t, err)
	require.True(t, session.Slots[0].Has(soup.ID))

	session, err = svc.ToggleProduct(ctx, session.ID, enums.MenuCategorySoup, soup.ID)
	require.NoError(t, err)
	require.False(t, session.Slots[0].Has(soup.ID))
}

func TestSelectAllAndDeselectAll(t *testing.T) {
	t.Parallel()

	products := []types.Product{
		stubProduct(enums.MenuCategoryMain, "paella"),
		stubProduct(enums.MenuCategoryMain, "fideua"),
		stubProduct(enums.MenuCategorySoup, "gazpacho"),
	}
	svc := testSlotService(t, products...)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	session, err = svc.AddSlot(ctx, session.ID, enums.MenuCategoryMain)
	require.NoError(t, err)

	session, err = svc.SelectAll(ctx, session.ID, enums.MenuCategoryMain)
	require.NoError(t, err)
	require.Equal(t, 2, session.Slots[0].Len())

	session, err = svc.DeselectAll(ctx, session.ID, enums.MenuCategoryMain)
	require.NoError(t, err)
	require.Equal(t, 0, session.Slots[0].Len())

	_, err = svc.SelectAll(ctx, session.ID, enums.MenuCategoryDessert)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound), "select-all needs an existing slot")
}

func TestSelectionsResolveProducts(t *testing.T) {
	t.Parallel()

	soup := stubProduct(enums.MenuCategorySoup, "gazpacho")
	main := stubProduct(enums.MenuCategoryMain, "paella")
	svc := testSlotService(t, soup, main)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	session, err = svc.AddSlot(ctx, session.ID, enums.MenuCategorySoup)
	require.NoError(t, err)
	session, err = svc.AddSlot(ctx, session.ID, enums.MenuCategoryMain)
	require.NoError(t, err)
	session, err = svc.ToggleProduct(ctx, session.ID, enums.MenuCategorySoup, soup.ID)
	require.NoError(t, err)
	session, err = svc.ToggleProduct(ctx, session.ID, enums.MenuCategoryMain, main.ID)
	require.NoError(t, err)

	selections, err := svc.Selections(ctx, session)
	require.NoError(t, err)
	require.Len(t, selections, 2)
	require.Equal(t, "gazpacho", selections[0].Products[0].Name)
	require.Equal(t, "paella", selections[1].Products[0].Name)
}

func TestSelectionsReportVanishedProducts(t *testing.T) {
	t.Parallel()

	soup := stubProduct(enums.MenuCategorySoup, "gazpacho")
	svc := testSlotService(t, soup)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	session, err = svc.AddSlot(ctx, session.ID, enums.MenuCategorySoup)
	require.NoError(t, err)
	session, err = svc.ToggleProduct(ctx, session.ID, enums.MenuCategorySoup, soup.ID)
	require.NoError(t, err)

	// the product disappears from the catalog after selection
	stale := session.clone()
	stale.Slots[0].ProductIDs = append(stale.Slots[0].ProductIDs, uuid.New(), uuid.New())

	_, err = svc.Selections(ctx, stale)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
	typed := pkgerrors.As(err)
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	require.Equal(t, 2, details["missing"], "every vanished product is reported")
}
