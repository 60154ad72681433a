package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/queryparams"
	"gestionmax.fr/hub/pkg/validation"
	"gestionmax.fr/hub/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompetenceServiceError string

func (e CompetenceServiceError) Error() string { return string(e) }

const (
	ErrCompetenceNotFound       CompetenceServiceError = "compétence introuvable"
	ErrCompetenceInvalidInput   CompetenceServiceError = "données de compétence invalides"
	ErrCompetenceCreationFailed CompetenceServiceError = "la compétence n'a pas pu être créée"
	ErrCompetenceUpdateFailed   CompetenceServiceError = "la compétence n'a pas pu être mise à jour"
	ErrCompetenceDeletionFailed CompetenceServiceError = "la compétence n'a pas pu être supprimée"
)

func init() {
	registerKinds(ErrNotFound, ErrCompetenceNotFound)
	registerKinds(ErrValidation, ErrCompetenceInvalidInput)
	registerKinds(ErrStore, ErrCompetenceCreationFailed, ErrCompetenceUpdateFailed, ErrCompetenceDeletionFailed)
}

type CompetenceInput struct {
	Nom            string                  `json:"nom" validate:"required,max=200"`
	Domaine        string                  `json:"domaine" validate:"max=150"`
	Description    string                  `json:"description"`
	Niveau         models.CompetenceNiveau `json:"niveau" validate:"required,oneof=debutant intermediaire avance expert"`
	Formateur      string                  `json:"formateur" validate:"max=150"`
	DateObtention  *time.Time              `json:"dateObtention"`
	DateExpiration *time.Time              `json:"dateExpiration"`
	Justificatif   string                  `json:"justificatif" validate:"max=500"`
	Statut         models.CompetenceStatut `json:"statut" validate:"omitempty,oneof=valide a_renouveler expire"`
}

type ICompetenceService interface {
	ListCompetences(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetCompetenceByID(ctx context.Context, id uint) (*models.Competence, error)
	CreateCompetence(ctx context.Context, input CompetenceInput) (*models.Competence, error)
	UpdateCompetence(ctx context.Context, id uint, input CompetenceInput) (*models.Competence, error)
	DeleteCompetence(ctx context.Context, id uint) error
}

type CompetenceService struct {
	repo repositories.ICompetenceRepository
}

func NewCompetenceService(db *gorm.DB) ICompetenceService {
	return &CompetenceService{repo: repositories.NewCompetenceRepository(db)}
}

func (s *CompetenceService) ListCompetences(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	items, total, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return paginated(items, total, params), nil
}

func (s *CompetenceService) GetCompetenceByID(ctx context.Context, id uint) (*models.Competence, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCompetenceNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return item, nil
}

func (s *CompetenceService) CreateCompetence(ctx context.Context, input CompetenceInput) (*models.Competence, error) {
	input.normalize()
	if err := validateCompetence(input); err != nil {
		return nil, err
	}
	item := &models.Competence{}
	applyCompetenceInput(item, input)

	if err := s.repo.Create(ctx, item); err != nil {
		configslog.Log.Error("CompetenceService.CreateCompetence: insertion en erreur", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCompetenceCreationFailed, err)
	}
	configslog.SLog.Infof("Compétence créée: ID %d (%s)", item.ID, item.Nom)
	return item, nil
}

func (s *CompetenceService) UpdateCompetence(ctx context.Context, id uint, input CompetenceInput) (*models.Competence, error) {
	input.normalize()
	if err := validateCompetence(input); err != nil {
		return nil, err
	}
	item, err := s.GetCompetenceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCompetenceInput(item, input)

	if err := s.repo.Update(ctx, item); err != nil {
		configslog.Log.Error("CompetenceService.UpdateCompetence: écriture en erreur", zap.Uint("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCompetenceUpdateFailed, err)
	}
	return item, nil
}

func (s *CompetenceService) DeleteCompetence(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCompetenceNotFound
		}
		configslog.Log.Error("CompetenceService.DeleteCompetence: suppression en erreur", zap.Uint("id", id), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrCompetenceDeletionFailed, err)
	}
	configslog.SLog.Infof("Compétence supprimée: ID %d", id)
	return nil
}

// validateCompetence : l'expiration ne peut précéder l'obtention.
func validateCompetence(input CompetenceInput) error {
	var extra validation.Errors
	if input.DateObtention != nil && input.DateExpiration != nil && input.DateExpiration.Before(*input.DateObtention) {
		extra = append(extra, validation.FieldError{Field: "dateExpiration", Rule: "gtfield"})
	}
	return newValidationError(ErrCompetenceInvalidInput, validation.Merge(validation.Struct(input), extra))
}

func (in *CompetenceInput) normalize() {
	in.Nom = strings.TrimSpace(in.Nom)
	in.Domaine = strings.TrimSpace(in.Domaine)
	in.Description = strings.TrimSpace(in.Description)
	in.Formateur = strings.TrimSpace(in.Formateur)
	in.Justificatif = strings.TrimSpace(in.Justificatif)
}

func applyCompetenceInput(item *models.Competence, in CompetenceInput) {
	item.Nom = in.Nom
	item.Domaine = in.Domaine
	item.Description = in.Description
	item.Niveau = in.Niveau
	item.Formateur = in.Formateur
	item.DateObtention = in.DateObtention
	item.DateExpiration = in.DateExpiration
	item.Justificatif = in.Justificatif
	item.Statut = in.Statut
	if item.Statut == "" {
		item.Statut = models.CompetenceValide
	}
}

var _ ICompetenceService = (*CompetenceService)(nil)
