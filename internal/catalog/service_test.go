package catalog

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/davidreyero/comboforge-backend/pkg/config"
	"github.com/davidreyero/comboforge-backend/pkg/db"
	"github.com/davidreyero/comboforge-backend/pkg/db/models"
	"github.com/davidreyero/comboforge-backend/pkg/enums"
	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
	"github.com/davidreyero/comboforge-backend/pkg/logger"
)

func testService(t *testing.T) Service {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		UseSQLite: true,
		DSN:       "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.DB().AutoMigrate(&models.Product{}))

	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(NewRepository(client.DB()), log)
	require.NoError(t, err)
	return svc
}

func productInput(name string, category enums.MenuCategory, cost string) CreateProductInput {
	return CreateProductInput{
		Name:         name,
		CostPrice:    decimal.RequireFromString(cost),
		OfflinePrice: decimal.RequireFromString(cost).Mul(decimal.NewFromInt(2)),
		OnlinePrice:  decimal.RequireFromString(cost).Mul(decimal.NewFromInt(2)).Add(decimal.NewFromInt(1)),
		Category:     category,
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, productInput("tomato soup", enums.MenuCategorySoup, "4.50"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.True(t, created.Active)

	loaded, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "tomato soup", loaded.Name)
	require.True(t, loaded.CostPrice.Equal(decimal.RequireFromString("4.50")))
	require.Equal(t, enums.MenuCategorySoup, loaded.Category)
}

func TestCreateProductRejectsBadPayload(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	ctx := context.Background()

	input := productInput("", enums.MenuCategorySoup, "4")
	_, err := svc.CreateProduct(ctx, input)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	input = productInput("soup", enums.MenuCategory("pizza"), "4")
	_, err = svc.CreateProduct(ctx, input)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	input = productInput("soup", enums.MenuCategorySoup, "4")
	input.CostPrice = decimal.RequireFromString("-1")
	_, err = svc.CreateProduct(ctx, input)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestUpdateProduct(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, productInput("flan", enums.MenuCategoryDessert, "2"))
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{
		Name:         "crema catalana",
		CostPrice:    decimal.RequireFromString("2.40"),
		OfflinePrice: decimal.RequireFromString("6"),
		OnlinePrice:  decimal.RequireFromString("6.50"),
		Category:     enums.MenuCategoryDessert,
		Active:       true,
	})
	require.NoError(t, err)
	require.Equal(t, "crema catalana", updated.Name)
	require.True(t, updated.CostPrice.Equal(decimal.RequireFromString("2.40")))

	_, err = svc.UpdateProduct(ctx, uuid.New(), UpdateProductInput{
		Name:         "ghost",
		CostPrice:    decimal.NewFromInt(1),
		OfflinePrice: decimal.NewFromInt(2),
		OnlinePrice:  decimal.NewFromInt(2),
		Category:     enums.MenuCategoryDessert,
	})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestListProductsFilters(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	ctx := context.Background()

	soup, err := svc.CreateProduct(ctx, productInput("gazpacho", enums.MenuCategorySoup, "3"))
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, productInput("paella", enums.MenuCategoryMain, "9"))
	require.NoError(t, err)
	require.NoError(t, svc.SetProductActive(ctx, soup.ID, false))

	category := enums.MenuCategorySoup
	soups, err := svc.ListProducts(ctx, ListFilter{Category: &category})
	require.NoError(t, err)
	require.Len(t, soups, 1)
	require.False(t, soups[0].Active)

	active, err := svc.ListProducts(ctx, ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "paella", active[0].Name)
}

func TestSetProductActiveUnknownID(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	err := svc.SetProductActive(context.Background(), uuid.New(), false)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestSnapshotCapturesOnlyActiveProducts(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	ctx := context.Background()

	soup, err := svc.CreateProduct(ctx, productInput("gazpacho", enums.MenuCategorySoup, "3"))
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, productInput("paella", enums.MenuCategoryMain, "9"))
	require.NoError(t, err)
	retired, err := svc.CreateProduct(ctx, productInput("old stew", enums.MenuCategoryMain, "7"))
	require.NoError(t, err)
	require.NoError(t, svc.SetProductActive(ctx, retired.ID, false))

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, snapshot.Len())

	_, ok := snapshot.Product(retired.ID)
	require.False(t, ok, "inactive products must not be selectable")
	got, ok := snapshot.Product(soup.ID)
	require.True(t, ok)
	require.Equal(t, "gazpacho", got.Name)

	require.Equal(t, []enums.MenuCategory{enums.MenuCategorySoup, enums.MenuCategoryMain}, snapshot.Categories())

	// the snapshot hands out copies; callers cannot poison it
	mains := snapshot.ByCategory(enums.MenuCategoryMain)
	require.Len(t, mains, 1)
	mains[0].Name = "mutated"
	again := snapshot.ByCategory(enums.MenuCategoryMain)
	require.Equal(t, "paella", again[0].Name)
}

func TestSnapshotIsStableAfterCatalogEdits(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	ctx := context.Background()

	soup, err := svc.CreateProduct(ctx, productInput("gazpacho", enums.MenuCategorySoup, "3"))
	require.NoError(t, err)

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.SetProductActive(ctx, soup.ID, false))

	// the old view still sees the product; a fresh one does not
	_, ok := snapshot.Product(soup.ID)
	require.True(t, ok)
	fresh, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	_, ok = fresh.Product(soup.ID)
	require.False(t, ok)
}
