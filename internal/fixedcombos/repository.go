package fixedcombos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/davidreyero/comboforge-backend/pkg/db/models"
	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
	"github.com/davidreyero/comboforge-backend/pkg/pagination"
)

// Repository owns fixed-combo persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, combo *models.FixedCombo) error {
	if err := r.db.WithContext(ctx).Create(combo).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving fixed combo")
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.FixedCombo, error) {
	var combo models.FixedCombo
	err := r.db.WithContext(ctx).First(&combo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "fixed combo not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading fixed combo")
	}
	return &combo, nil
}

// List pages through saved combos newest first. The extra row fetched beyond
// the limit signals whether a next page exists.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.FixedCombo, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).
		Model(&models.FixedCombo{}).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var combos []models.FixedCombo
	if err := query.Find(&combos).Error; err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing fixed combos")
	}

	next := ""
	if len(combos) > limit {
		combos = combos[:limit]
		last := combos[len(combos)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return combos, next, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FixedCombo{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "deleting fixed combo")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "fixed combo not found")
	}
	return nil
}
