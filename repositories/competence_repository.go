package repositories

import (
	"context"

	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/queryparams"

	"gorm.io/gorm"
)

// ICompetenceRepository persistance des enregistrements compétence.
type ICompetenceRepository interface {
	Create(ctx context.Context, item *models.Competence) error
	FindByID(ctx context.Context, id uint) (*models.Competence, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Competence, int64, error)
	Update(ctx context.Context, item *models.Competence) error
	Delete(ctx context.Context, id uint) error
}

type CompetenceRepository struct {
	base IBaseRepository[models.Competence]
}

func NewCompetenceRepository(db *gorm.DB) ICompetenceRepository {
	base := NewBaseRepository[models.Competence](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "nom", "domaine", "date_expiration", "statut"})
	return &CompetenceRepository{base: base}
}

func NewCompetenceRepositoryTx(tx *gorm.DB) ICompetenceRepository {
	return NewCompetenceRepository(tx)
}

func (r *CompetenceRepository) Create(ctx context.Context, item *models.Competence) error {
	return r.base.Create(ctx, item)
}

func (r *CompetenceRepository) FindByID(ctx context.Context, id uint) (*models.Competence, error) {
	return r.base.FindByID(ctx, id)
}

// FindAllPaginated filtre sur statut et q puis pagine.
func (r *CompetenceRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Competence, int64, error) {
	return r.base.FindPaginated(ctx, params, statusScope(params.Status), searchScope(params.Query, "nom", "domaine", "formateur"))
}

func (r *CompetenceRepository) Update(ctx context.Context, item *models.Competence) error {
	return r.base.Save(ctx, item)
}

func (r *CompetenceRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

var _ ICompetenceRepository = (*CompetenceRepository)(nil)
