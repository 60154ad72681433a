package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/textsearch"
	"gestionmax.fr/hub/pkg/validation"
	"gestionmax.fr/hub/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryServiceError string

func (e CategoryServiceError) Error() string { return string(e) }

const (
	ErrCategoryNotFound       CategoryServiceError = "catégorie de programme introuvable"
	ErrCategoryInvalidInput   CategoryServiceError = "données de catégorie invalides"
	ErrCategoryCodeExists     CategoryServiceError = "une catégorie utilise déjà ce code"
	ErrCategoryCreationFailed CategoryServiceError = "la catégorie n'a pas pu être créée"
	ErrCategoryUpdateFailed   CategoryServiceError = "la catégorie n'a pas pu être mise à jour"
)

func init() {
	registerKinds(ErrNotFound, ErrCategoryNotFound)
	registerKinds(ErrValidation, ErrCategoryInvalidInput)
	registerKinds(ErrConflict, ErrCategoryCodeExists)
	registerKinds(ErrStore, ErrCategoryCreationFailed, ErrCategoryUpdateFailed)
}

// Longueur du code déduit du titre ("Anglais" -> "ANG").
const categoryCodeLength = 3

// CategoryInput création / mise à jour partielle d'une catégorie.
type CategoryInput struct {
	Code        *string `json:"code" validate:"omitempty,max=20"`
	Titre       *string `json:"titre" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	Ordre       *int    `json:"ordre" validate:"omitempty,min=0"`
}

type ICategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*models.Category, error)
}

type CategoryService struct {
	db   *gorm.DB
	repo repositories.ICategoryRepository
}

func NewCategoryService(db *gorm.DB) ICategoryService {
	return &CategoryService{db: db, repo: repositories.NewCategoryRepository(db)}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return categories, nil
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return category, nil
}

// CreateCategory déduit le code du titre s'il est absent et place la catégorie en dernier si ordre est absent.
func (s *CategoryService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	extra := validation.Required(nil, "titre", deref(input.Titre))
	if err := newValidationError(ErrCategoryInvalidInput, validation.Merge(validation.Struct(input), extra)); err != nil {
		return nil, err
	}

	titre := strings.TrimSpace(*input.Titre)
	code := strings.ToUpper(strings.TrimSpace(deref(input.Code)))
	if code == "" {
		code = textsearch.Initials(titre, categoryCodeLength)
	}
	if code == "" {
		return nil, fieldError(ErrCategoryInvalidInput, "code", "required")
	}

	category := &models.Category{
		Code:        &code,
		Titre:       titre,
		Description: strings.TrimSpace(deref(input.Description)),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewCategoryRepositoryTx(tx)

		exists, err := repoTx.CodeExists(ctx, code, 0)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCategoryCreationFailed, err)
		}
		if exists {
			return ErrCategoryCodeExists
		}

		if input.Ordre != nil {
			category.Ordre = *input.Ordre
		} else {
			last, err := repoTx.MaxOrdre(ctx)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrCategoryCreationFailed, err)
			}
			category.Ordre = last + 1
		}

		if err := repoTx.Create(ctx, category); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return ErrCategoryCodeExists
			}
			configslog.Log.Error("CategoryService.CreateCategory: insertion en erreur", zap.String("code", code), zap.Error(err))
			return fmt.Errorf("%w: %v", ErrCategoryCreationFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	configslog.SLog.Infof("Catégorie créée: ID %d, code %s", category.ID, code)
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	var extra validation.Errors
	if input.Titre != nil {
		extra = validation.Required(extra, "titre", *input.Titre)
	}
	if input.Code != nil {
		extra = validation.Required(extra, "code", *input.Code)
	}
	if err := newValidationError(ErrCategoryInvalidInput, validation.Merge(validation.Struct(input), extra)); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewCategoryRepositoryTx(tx)

		category, err := repoTx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCategoryNotFound
			}
			return fmt.Errorf("%w: %v", ErrCategoryUpdateFailed, err)
		}

		if input.Code != nil {
			code := strings.ToUpper(strings.TrimSpace(*input.Code))
			exists, err := repoTx.CodeExists(ctx, code, id)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrCategoryUpdateFailed, err)
			}
			if exists {
				return ErrCategoryCodeExists
			}
			category.Code = &code
		}
		if input.Titre != nil {
			category.Titre = strings.TrimSpace(*input.Titre)
		}
		if input.Description != nil {
			category.Description = strings.TrimSpace(*input.Description)
		}
		if input.Ordre != nil {
			category.Ordre = *input.Ordre
		}

		if err := repoTx.Update(ctx, category); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return ErrCategoryCodeExists
			}
			configslog.Log.Error("CategoryService.UpdateCategory: écriture en erreur", zap.Uint("id", id), zap.Error(err))
			return fmt.Errorf("%w: %v", ErrCategoryUpdateFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	configslog.SLog.Infof("Catégorie mise à jour: ID %d", id)
	return s.GetCategoryByID(ctx, id)
}

var _ ICategoryService = (*CategoryService)(nil)
