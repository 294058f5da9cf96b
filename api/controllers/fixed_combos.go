package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/davidreyero/comboforge-backend/api/responses"
	"github.com/davidreyero/comboforge-backend/api/validators"
	"github.com/davidreyero/comboforge-backend/internal/fixedcombos"
	"github.com/davidreyero/comboforge-backend/pkg/enums"
	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
	"github.com/davidreyero/comboforge-backend/pkg/logger"
	"github.com/davidreyero/comboforge-backend/pkg/pagination"
)

func BuilderStart(svc fixedcombos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.StartBuilder(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func BuilderAddSlot(svc fixedcombos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body slotBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.AddSlot(r.Context(), chi.URLParam(r, "builderId"), enums.MenuCategory(body.Category))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type builderSelectBody struct {
	Category  string `json:"category" validate:"required"`
	ProductID string `json:"productId" validate:"required,uuid"`
}

func BuilderSelectProduct(svc fixedcombos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body builderSelectBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := uuid.Parse(body.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "invalid product id"))
			return
		}
		view, err := svc.SelectProduct(r.Context(), chi.URLParam(r, "builderId"), enums.MenuCategory(body.Category), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type builderPreviewBody struct {
	Channel    string          `json:"channel" validate:"required,oneof=offline online catering"`
	SalePrice  decimal.Decimal `json:"salePrice"`
	GuestCount int             `json:"guestCount" validate:"omitempty,min=1"`
}

func BuilderPreview(svc fixedcombos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body builderPreviewBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.PricePreview(r.Context(), chi.URLParam(r, "builderId"), fixedcombos.PreviewInput{
			Channel:    enums.SalesChannel(body.Channel),
			SalePrice:  body.SalePrice,
			GuestCount: body.GuestCount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type builderSaveBody struct {
	Name string `json:"name" validate:"required,max=200"`
}

func BuilderSave(svc fixedcombos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body builderSaveBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		combo, err := svc.Save(r.Context(), chi.URLParam(r, "builderId"), body.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, combo)
	}
}

func BuilderReset(svc fixedcombos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.ResetBuilder(r.Context(), chi.URLParam(r, "builderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func FixedComboList(svc fixedcombos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		combosPage, next, err := svc.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"fixedCombos": combosPage,
			"nextCursor":  next,
		})
	}
}

func FixedComboGet(svc fixedcombos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "comboId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		combo, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, combo)
	}
}

func FixedComboDelete(svc fixedcombos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "comboId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
