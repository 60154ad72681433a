package repositories

import (
	"context"

	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/queryparams"

	"gorm.io/gorm"
)

// IRendezvousRepository persistance des enregistrements rendez-vous.
type IRendezvousRepository interface {
	Create(ctx context.Context, item *models.Rendezvous) error
	FindByID(ctx context.Context, id uint) (*models.Rendezvous, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Rendezvous, int64, error)
	Update(ctx context.Context, item *models.Rendezvous) error
	Delete(ctx context.Context, id uint) error
}

type RendezvousRepository struct {
	base IBaseRepository[models.Rendezvous]
}

func NewRendezvousRepository(db *gorm.DB) IRendezvousRepository {
	base := NewBaseRepository[models.Rendezvous](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "date_rdv", "nom", "statut", "type"})
	return &RendezvousRepository{base: base}
}

func NewRendezvousRepositoryTx(tx *gorm.DB) IRendezvousRepository {
	return NewRendezvousRepository(tx)
}

func (r *RendezvousRepository) Create(ctx context.Context, item *models.Rendezvous) error {
	return r.base.Create(ctx, item)
}

func (r *RendezvousRepository) FindByID(ctx context.Context, id uint) (*models.Rendezvous, error) {
	return r.base.FindByID(ctx, id, "Programme")
}

// FindAllPaginated filtre sur statut et q puis pagine.
func (r *RendezvousRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Rendezvous, int64, error) {
	return r.base.FindPaginated(ctx, params, statusScope(params.Status), searchScope(params.Query, "nom", "prenom", "email", "entreprise"))
}

func (r *RendezvousRepository) Update(ctx context.Context, item *models.Rendezvous) error {
	return r.base.Save(ctx, item)
}

func (r *RendezvousRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

var _ IRendezvousRepository = (*RendezvousRepository)(nil)
