package repositories

import (
	"context"

	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/queryparams"

	"gorm.io/gorm"
)

// IReclamationRepository persistance des enregistrements réclamation.
type IReclamationRepository interface {
	Create(ctx context.Context, item *models.Reclamation) error
	FindByID(ctx context.Context, id uint) (*models.Reclamation, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Reclamation, int64, error)
	Update(ctx context.Context, item *models.Reclamation) error
	Delete(ctx context.Context, id uint) error
}

type ReclamationRepository struct {
	base IBaseRepository[models.Reclamation]
}

func NewReclamationRepository(db *gorm.DB) IReclamationRepository {
	base := NewBaseRepository[models.Reclamation](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "priorite", "statut", "sujet"})
	return &ReclamationRepository{base: base}
}

func NewReclamationRepositoryTx(tx *gorm.DB) IReclamationRepository {
	return NewReclamationRepository(tx)
}

func (r *ReclamationRepository) Create(ctx context.Context, item *models.Reclamation) error {
	return r.base.Create(ctx, item)
}

func (r *ReclamationRepository) FindByID(ctx context.Context, id uint) (*models.Reclamation, error) {
	return r.base.FindByID(ctx, id)
}

// FindAllPaginated filtre sur statut et q puis pagine.
func (r *ReclamationRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Reclamation, int64, error) {
	return r.base.FindPaginated(ctx, params, statusScope(params.Status), searchScope(params.Query, "nom", "email", "sujet", "description"))
}

func (r *ReclamationRepository) Update(ctx context.Context, item *models.Reclamation) error {
	return r.base.Save(ctx, item)
}

func (r *ReclamationRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

var _ IReclamationRepository = (*ReclamationRepository)(nil)
