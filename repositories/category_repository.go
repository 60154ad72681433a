package repositories

import (
	"context"
	"errors"

	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Sélection avec le nombre de programmes rattachés, lu dans Category.ProgrammesCount.
const categoryWithCountSelect = "categories_programme.*, " +
	"(SELECT COUNT(*) FROM programmes_formation p WHERE p.categorie_id = categories_programme.id) AS programmes_count"

type ICategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uint) (*models.Category, error)
	Exists(ctx context.Context, id uint) (bool, error)
	CodeExists(ctx context.Context, code string, excludeID uint) (bool, error)
	MaxOrdre(ctx context.Context) (int, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
}

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) ICategoryRepository {
	return &CategoryRepository{db: db}
}

func NewCategoryRepositoryTx(tx *gorm.DB) ICategoryRepository {
	return &CategoryRepository{db: tx}
}

func (r *CategoryRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func withCount(c *models.Category) {
	c.Count = &models.CategoryCount{Programmes: c.ProgrammesCount}
}

// List renvoie toutes les catégories, triées par ordre puis titre, avec leur nombre de programmes.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.getDB(ctx).Model(&models.Category{}).
		Select(categoryWithCountSelect).
		Order("ordre asc").Order("titre asc").
		Find(&categories).Error
	if err != nil {
		configslog.Log.Error("CategoryRepository.List: erreur DB", zap.Error(err))
		return nil, err
	}
	for i := range categories {
		withCount(&categories[i])
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var category models.Category
	err := r.getDB(ctx).Model(&models.Category{}).
		Select(categoryWithCountSelect).
		Where("categories_programme.id = ?", id).
		Take(&category).Error
	if err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrNotFound) {
			configslog.Log.Error("CategoryRepository.FindByID: erreur DB", zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	withCount(&category)
	return &category, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CodeExists ignore la catégorie excludeID (0 = aucune), utile en mise à jour.
func (r *CategoryRepository) CodeExists(ctx context.Context, code string, excludeID uint) (bool, error) {
	var count int64
	query := r.getDB(ctx).Model(&models.Category{}).Where("code = ?", code)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		configslog.Log.Error("CategoryRepository.CodeExists: erreur DB", zap.String("code", code), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// MaxOrdre renvoie le plus grand ordre existant, 0 si la table est vide.
func (r *CategoryRepository) MaxOrdre(ctx context.Context) (int, error) {
	var last int
	err := r.getDB(ctx).Model(&models.Category{}).Select("COALESCE(MAX(ordre), 0)").Scan(&last).Error
	return last, err
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category == nil {
		return errors.New("catégorie nil")
	}
	if err := translateError(r.getDB(ctx).Create(category).Error); err != nil {
		return err
	}
	withCount(category)
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	if category == nil || category.ID == 0 {
		return errors.New("catégorie à mettre à jour invalide")
	}
	return translateError(r.getDB(ctx).Save(category).Error)
}

var _ ICategoryRepository = (*CategoryRepository)(nil)
