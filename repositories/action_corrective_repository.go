package repositories

import (
	"context"

	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/queryparams"

	"gorm.io/gorm"
)

// IActionCorrectiveRepository persistance des enregistrements action corrective.
type IActionCorrectiveRepository interface {
	Create(ctx context.Context, item *models.ActionCorrective) error
	FindByID(ctx context.Context, id uint) (*models.ActionCorrective, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.ActionCorrective, int64, error)
	Update(ctx context.Context, item *models.ActionCorrective) error
	Delete(ctx context.Context, id uint) error
}

type ActionCorrectiveRepository struct {
	base IBaseRepository[models.ActionCorrective]
}

func NewActionCorrectiveRepository(db *gorm.DB) IActionCorrectiveRepository {
	base := NewBaseRepository[models.ActionCorrective](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "date_echeance", "priorite", "statut", "avancement"})
	return &ActionCorrectiveRepository{base: base}
}

func NewActionCorrectiveRepositoryTx(tx *gorm.DB) IActionCorrectiveRepository {
	return NewActionCorrectiveRepository(tx)
}

func (r *ActionCorrectiveRepository) Create(ctx context.Context, item *models.ActionCorrective) error {
	return r.base.Create(ctx, item)
}

func (r *ActionCorrectiveRepository) FindByID(ctx context.Context, id uint) (*models.ActionCorrective, error) {
	return r.base.FindByID(ctx, id, "Reclamation")
}

// FindAllPaginated filtre sur statut et q puis pagine.
func (r *ActionCorrectiveRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.ActionCorrective, int64, error) {
	return r.base.FindPaginated(ctx, params, statusScope(params.Status), searchScope(params.Query, "titre", "description", "responsable"))
}

func (r *ActionCorrectiveRepository) Update(ctx context.Context, item *models.ActionCorrective) error {
	return r.base.Save(ctx, item)
}

func (r *ActionCorrectiveRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

var _ IActionCorrectiveRepository = (*ActionCorrectiveRepository)(nil)
