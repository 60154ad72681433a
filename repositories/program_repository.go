package repositories

import (
	"context"
	"errors"
	"time"

	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/textsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgramFilter décrit les filtres de liste des programmes. Un pointeur nil ne filtre pas.
type ProgramFilter struct {
	CategorieID *uint
	Actif       *bool
	Visible     *bool
	Type        models.ProgramType
	Query       string
}

// IProgramRepository opérations de persistance des programmes de formation.
type IProgramRepository interface {
	Create(ctx context.Context, program *models.Program) error
	FindByID(ctx context.Context, id uint) (*models.Program, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, filter ProgramFilter) ([]models.Program, error)
	ListVariants(ctx context.Context, sourceID uint) ([]models.Program, error)
	Update(ctx context.Context, program *models.Program) error
	UpdateFields(ctx context.Context, id uint, data map[string]interface{}) error
}

// ProgramRepository implémente IProgramRepository.
type ProgramRepository struct {
	db *gorm.DB
}

// NewProgramRepository crée un ProgramRepository sur le pool injecté.
func NewProgramRepository(db *gorm.DB) IProgramRepository {
	return &ProgramRepository{db: db}
}

// NewProgramRepositoryTx crée un repository lié à une transaction en cours.
func NewProgramRepositoryTx(tx *gorm.DB) IProgramRepository {
	return &ProgramRepository{db: tx}
}

func (r *ProgramRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create insère le programme sans créer d'associations (la catégorie doit exister).
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	if program == nil {
		return errors.New("programme nil")
	}
	return translateError(r.getDB(ctx).Omit(clause.Associations).Create(program).Error)
}

// FindByID charge le programme avec le résumé de sa catégorie.
func (r *ProgramRepository) FindByID(ctx context.Context, id uint) (*models.Program, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var program models.Program
	err := r.getDB(ctx).Preload("Categorie").First(&program, id).Error
	if err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrNotFound) {
			configslog.Log.Error("ProgramRepository.FindByID: erreur DB", zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return &program, nil
}

func (r *ProgramRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Program{}).Where("code = ?", code).Count(&count).Error
	if err != nil {
		configslog.Log.Error("ProgramRepository.CodeExists: erreur DB", zap.String("code", code), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// List renvoie les programmes filtrés, triés par titre croissant.
func (r *ProgramRepository) List(ctx context.Context, filter ProgramFilter) ([]models.Program, error) {
	query := r.getDB(ctx).Model(&models.Program{}).Preload("Categorie")

	if filter.CategorieID != nil {
		query = query.Where("categorie_id = ?", *filter.CategorieID)
	}
	if filter.Actif != nil {
		query = query.Where("est_actif = ?", *filter.Actif)
	}
	if filter.Visible != nil {
		query = query.Where("est_visible = ?", *filter.Visible)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Query != "" {
		fragment, args := textsearch.SQLFoldedFilter("recherche", filter.Query)
		query = query.Where(fragment, args...)
	}

	programs := []models.Program{}
	if err := query.Order("titre asc").Order("id asc").Find(&programs).Error; err != nil {
		configslog.Log.Error("ProgramRepository.List: erreur DB", zap.Error(err))
		return nil, err
	}
	return programs, nil
}

// ListVariants renvoie les copies sur-mesure issues d'un programme catalogue.
func (r *ProgramRepository) ListVariants(ctx context.Context, sourceID uint) ([]models.Program, error) {
	variants := []models.Program{}
	err := r.getDB(ctx).Where("programme_sour_id = ?", sourceID).Order("created_at desc").Find(&variants).Error
	return variants, err
}

// Update réécrit toutes les colonnes du programme (hors associations).
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	if program == nil || program.ID == 0 {
		return errors.New("programme à mettre à jour invalide")
	}
	return translateError(r.getDB(ctx).Omit(clause.Associations).Save(program).Error)
}

// UpdateFields met à jour quelques colonnes ; ErrNotFound si l'id n'existe pas.
func (r *ProgramRepository) UpdateFields(ctx context.Context, id uint, data map[string]interface{}) error {
	if id == 0 {
		return ErrNotFound
	}
	if len(data) == 0 {
		return errors.New("aucune donnée à mettre à jour")
	}
	if _, ok := data["updated_at"]; !ok {
		data["updated_at"] = time.Now()
	}
	db := r.getDB(ctx)
	// Sans hooks : BeforeSave recalculerait recherche sur un modèle vide.
	result := db.Session(&gorm.Session{SkipHooks: true}).Model(&models.Program{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := db.Model(&models.Program{}).Where("id = ?", id).Count(&exists).Error; err == nil && exists == 0 {
			return ErrNotFound
		}
		configslog.SLog.Debugf("ProgramRepository.UpdateFields: aucune ligne modifiée (id %d, données identiques)", id)
	}
	return nil
}

var _ IProgramRepository = (*ProgramRepository)(nil)
