package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/davidreyero/comboforge-backend/api/responses"
	"github.com/davidreyero/comboforge-backend/api/validators"
	"github.com/davidreyero/comboforge-backend/internal/combos"
	"github.com/davidreyero/comboforge-backend/internal/slots"
	"github.com/davidreyero/comboforge-backend/pkg/enums"
	"github.com/davidreyero/comboforge-backend/pkg/logger"
)

type quoteBody struct {
	Channel    string          `json:"channel" validate:"required,oneof=offline online catering"`
	SalePrice  decimal.Decimal `json:"salePrice"`
	GuestCount int             `json:"guestCount" validate:"omitempty,min=1"`
	SortKey    string          `json:"sortKey" validate:"omitempty,oneof=margin_percent_desc profit_desc cost_total_asc"`
}

// QuoteRun prices every combination of the session's current selections.
// Re-posting while a run is still in flight supersedes it.
func QuoteRun(sessions slots.Service, recalc *combos.Recalculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body quoteBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := chi.URLParam(r, "sessionId")
		session, err := sessions.GetSession(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		selections, err := sessions.Selections(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithSessionID(r.Context(), sessionID)
		result, err := recalc.Run(ctx, sessionID, combos.Request{
			Slots:      selections,
			Channel:    enums.SalesChannel(body.Channel),
			SalePrice:  body.SalePrice,
			GuestCount: body.GuestCount,
			SortKey:    enums.SortKey(body.SortKey),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
