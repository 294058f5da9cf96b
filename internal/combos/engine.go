package combos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/davidreyero/comboforge-backend/internal/pricing"
	"github.com/davidreyero/comboforge-backend/pkg/config"
	"github.com/davidreyero/comboforge-backend/pkg/enums"
	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
	"github.com/davidreyero/comboforge-backend/pkg/logger"
	"github.com/davidreyero/comboforge-backend/pkg/metrics"
)

// Request describes one pricing run over the current slot selections.
type Request struct {
	Slots      []SlotSelection
	Channel    enums.SalesChannel
	SalePrice  decimal.Decimal
	GuestCount int
	SortKey    enums.SortKey
}

// Result is the outcome of one run: the capped ranked set, its summary, and
// the run identifier threaded through logs.
type Result struct {
	RunID   string   `json:"runId"`
	Ranked  []Scored `json:"ranked"`
	Summary Summary  `json:"summary"`
}

// Engine generates, prices, ranks, and summarizes menu combinations. It holds
// no per-run state, so one engine serves all sessions concurrently.
type Engine struct {
	cfg     config.EngineConfig
	tariffs pricing.Tariffs
	log     *logger.Logger
	metrics *metrics.QuoteMetrics
}

func NewEngine(cfg config.EngineConfig, tariffs pricing.Tariffs, log *logger.Logger, m *metrics.QuoteMetrics) (*Engine, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Engine{cfg: cfg, tariffs: tariffs, log: log, metrics: m}, nil
}

// Run executes one full generate-price-rank pass. Combinations whose margin
// or discount is undefined abort the run with the corresponding typed error;
// a canceled context aborts with ctx.Err.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	ctx = e.log.WithQuoteRunID(ctx, runID)
	started := time.Now()

	sortKey := req.SortKey
	if sortKey == "" {
		sortKey = enums.SortKeyMarginDesc
	}
	if !sortKey.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown sort key %q", req.SortKey))
	}
	if err := validateSlots(req.Slots); err != nil {
		e.metrics.IncFailure(string(pkgerrors.CodeValidation))
		return nil, err
	}

	active := NonEmpty(req.Slots)
	if len(active) < 2 {
		e.metrics.IncFailure(string(pkgerrors.CodeInsufficientSlots))
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientSlots, "need at least two slots with selected products").
			WithDetails(map[string]any{"populated_slots": len(active)})
	}

	stream := NewStream(active)
	total := stream.Count()
	if e.cfg.MaxCombinations > 0 && total > int64(e.cfg.MaxCombinations) {
		e.metrics.IncFailure(string(pkgerrors.CodeTooManyCombos))
		return nil, pkgerrors.New(pkgerrors.CodeTooManyCombos, "selection exceeds the combination limit").
			WithDetails(map[string]any{
				"combinations": total,
				"limit":        e.cfg.MaxCombinations,
			})
	}

	params := pricing.Params{
		Channel:    req.Channel,
		SalePrice:  req.SalePrice,
		GuestCount: req.GuestCount,
		Tariffs:    e.tariffs,
	}
	model := pricing.ModelFor(req.Channel)

	ranker := NewRanker(sortKey, e.cfg.ResultCap)
	var ordinal int64
	for {
		if ordinal&0xff == 0 {
			if err := ctx.Err(); err != nil {
				e.metrics.IncCanceled()
				e.log.Info(ctx, "quote run canceled")
				return nil, err
			}
		}
		combo, ok := stream.Next()
		if !ok {
			break
		}
		result, err := pricing.Quote(combo, model, params)
		if err != nil {
			e.metrics.IncFailure(string(pkgerrors.As(err).Code()))
			return nil, err
		}
		ranker.Push(Scored{Ordinal: ordinal, Combination: combo, Result: *result})
		ordinal++
	}

	ranked := ranker.Ranked()
	summary := Summarize(ranked)
	summary.Generated = ranker.Pushed()
	summary.Truncated = ranker.Truncated()

	elapsed := time.Since(started)
	e.metrics.ObserveRun(string(req.Channel), elapsed)
	e.metrics.AddCombinations(string(req.Channel), int(ranker.Pushed()))
	if summary.Truncated {
		e.metrics.IncTruncated()
	}

	ctx = e.log.WithFields(ctx, map[string]any{
		"channel":    string(req.Channel),
		"generated":  summary.Generated,
		"kept":       summary.Count,
		"elapsed_ms": elapsed.Milliseconds(),
	})
	e.log.Info(ctx, "quote run completed")

	return &Result{RunID: runID, Ranked: ranked, Summary: summary}, nil
}

// validateSlots rejects selections that disagree with their slot's category
// or reference inactive products, reporting every offender at once.
func validateSlots(slots []SlotSelection) error {
	var errs error
	for _, slot := range slots {
		for _, product := range slot.Products {
			if product.Category != slot.Category {
				errs = multierr.Append(errs, fmt.Errorf(
					"product %q is %s, slot expects %s", product.Name, product.Category, slot.Category))
			}
			if !product.Active {
				errs = multierr.Append(errs, fmt.Errorf("product %q is inactive", product.Name))
			}
		}
	}
	if errs == nil {
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "slot selections are invalid").
		WithDetails(map[string]any{"problems": len(multierr.Errors(errs))})
}
