package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/davidreyero/comboforge-backend/internal/catalog"
	"github.com/davidreyero/comboforge-backend/internal/combos"
	"github.com/davidreyero/comboforge-backend/internal/fixedcombos"
	"github.com/davidreyero/comboforge-backend/internal/pricing"
	"github.com/davidreyero/comboforge-backend/internal/slots"
	"github.com/davidreyero/comboforge-backend/pkg/config"
	"github.com/davidreyero/comboforge-backend/pkg/db"
	"github.com/davidreyero/comboforge-backend/pkg/db/models"
	"github.com/davidreyero/comboforge-backend/pkg/logger"
	"github.com/davidreyero/comboforge-backend/pkg/metrics"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Engine.ResultCap = 100

	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	client, err := db.New(context.Background(), config.DBConfig{
		UseSQLite: true,
		DSN:       "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.DB().AutoMigrate(&models.Product{}, &models.FixedCombo{}))

	catalogService, err := catalog.NewService(catalog.NewRepository(client.DB()), log)
	require.NoError(t, err)
	sessionService, err := slots.NewService(slots.NewMemoryStore(), catalogService, log)
	require.NoError(t, err)
	engine, err := combos.NewEngine(cfg.Engine, pricing.DefaultTariffs(), log, metrics.NewQuoteMetrics(nil))
	require.NoError(t, err)
	fixedComboService, err := fixedcombos.NewService(
		fixedcombos.NewRepository(client.DB()), catalogService, pricing.DefaultTariffs(), log)
	require.NoError(t, err)

	handler := NewRouter(cfg, log, client, nil, nil,
		catalogService, sessionService, combos.NewRecalculator(engine), fixedComboService)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func createProduct(t *testing.T, base, name, category, cost, offline, online string) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, base+"/api/v1/catalog", map[string]any{
		"name":         name,
		"category":     category,
		"costPrice":    cost,
		"offlinePrice": offline,
		"onlinePrice":  online,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", body)
	return body["data"].(map[string]any)["id"].(string)
}

func TestHealthEndpoints(t *testing.T) {
	server := testServer(t)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/health/live", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "live", body["data"].(map[string]any)["status"])

	resp, body = doJSON(t, http.MethodGet, server.URL+"/health/ready", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ready", body["data"].(map[string]any)["status"])
}

func TestDesignAndQuoteFlow(t *testing.T) {
	server := testServer(t)
	base := server.URL

	soupID := createProduct(t, base, "gazpacho", "soup", "3", "7", "8")
	createProduct(t, base, "salmorejo", "soup", "3.50", "8", "9")
	mainID := createProduct(t, base, "paella", "main", "9", "19", "21")

	// open a session and build two slots
	resp, body := doJSON(t, http.MethodPost, base+"/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sessionID := body["data"].(map[string]any)["id"].(string)

	resp, _ = doJSON(t, http.MethodPost, base+"/api/v1/sessions/"+sessionID+"/slots", map[string]any{"category": "soup"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, base+"/api/v1/sessions/"+sessionID+"/slots", map[string]any{"category": "main"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, base+"/api/v1/sessions/"+sessionID+"/slots/soup/select-all", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, base+"/api/v1/sessions/"+sessionID+"/slots/main/toggle",
		map[string]any{"productId": mainID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// quote offline: 2 soups x 1 main
	resp, body = doJSON(t, http.MethodPost, base+"/api/v1/sessions/"+sessionID+"/quotes", map[string]any{
		"channel":   "offline",
		"salePrice": "25",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", body)
	data := body["data"].(map[string]any)
	summary := data["summary"].(map[string]any)
	require.Equal(t, float64(2), summary["count"])
	require.Equal(t, float64(2), summary["generated"])

	// a zero sale price is a legal input, every combination just loses money
	resp, body = doJSON(t, http.MethodPost, base+"/api/v1/sessions/"+sessionID+"/quotes", map[string]any{
		"channel":   "offline",
		"salePrice": "0",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", body)

	// a negative one is not
	resp, body = doJSON(t, http.MethodPost, base+"/api/v1/sessions/"+sessionID+"/quotes", map[string]any{
		"channel":   "offline",
		"salePrice": "-1",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "VALIDATION_ERROR", body["error"].(map[string]any)["code"])

	// deselecting a slot leaves too few for a quote
	resp, _ = doJSON(t, http.MethodPost, base+"/api/v1/sessions/"+sessionID+"/slots/soup/deselect-all", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = doJSON(t, http.MethodPost, base+"/api/v1/sessions/"+sessionID+"/quotes", map[string]any{
		"channel":   "offline",
		"salePrice": "25",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, "INSUFFICIENT_SLOTS", body["error"].(map[string]any)["code"])

	// toggling an unknown product 404s
	resp, _ = doJSON(t, http.MethodPost, base+"/api/v1/sessions/"+sessionID+"/slots/soup/toggle",
		map[string]any{"productId": uuid.NewString()})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	_ = soupID
}

func TestFixedComboAuthoringFlow(t *testing.T) {
	server := testServer(t)
	base := server.URL

	soupID := createProduct(t, base, "gazpacho", "soup", "3", "7", "8")
	mainID := createProduct(t, base, "paella", "main", "9", "19", "21")

	resp, body := doJSON(t, http.MethodPost, base+"/api/v1/fixed-combos/builders", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	builderID := body["data"].(map[string]any)["id"].(string)

	for _, category := range []string{"soup", "main"} {
		resp, _ = doJSON(t, http.MethodPost, base+"/api/v1/fixed-combos/builders/"+builderID+"/slots",
			map[string]any{"category": category})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodPost, base+"/api/v1/fixed-combos/builders/"+builderID+"/products",
		map[string]any{"category": "soup", "productId": soupID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, base+"/api/v1/fixed-combos/builders/"+builderID+"/products",
		map[string]any{"category": "main", "productId": mainID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// saving before a preview is a state conflict
	resp, body = doJSON(t, http.MethodPost, base+"/api/v1/fixed-combos/builders/"+builderID+"/save",
		map[string]any{"name": "menu del dia"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, "STATE_CONFLICT", body["error"].(map[string]any)["code"])

	resp, body = doJSON(t, http.MethodPost, base+"/api/v1/fixed-combos/builders/"+builderID+"/preview",
		map[string]any{"channel": "offline", "salePrice": "25"})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", body)

	resp, body = doJSON(t, http.MethodPost, base+"/api/v1/fixed-combos/builders/"+builderID+"/save",
		map[string]any{"name": "menu del dia"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	comboID := body["data"].(map[string]any)["ID"]
	if comboID == nil {
		comboID = body["data"].(map[string]any)["id"]
	}
	require.NotNil(t, comboID)

	resp, body = doJSON(t, http.MethodGet, base+"/api/v1/fixed-combos?limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := body["data"].(map[string]any)["fixedCombos"].([]any)
	require.Len(t, list, 1)
}

func TestUnknownRoutesAnd404s(t *testing.T) {
	server := testServer(t)

	resp, err := http.Get(server.URL + fmt.Sprintf("/api/v1/catalog/%s", uuid.NewString()))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/v1/catalog/not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
