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

type ReclamationServiceError string

func (e ReclamationServiceError) Error() string { return string(e) }

const (
	ErrReclamationNotFound        ReclamationServiceError = "réclamation introuvable"
	ErrReclamationInvalidInput    ReclamationServiceError = "données de réclamation invalides"
	ErrReclamationProgramNotFound ReclamationServiceError = "programme de la réclamation inexistant"
	ErrReclamationCreationFailed  ReclamationServiceError = "la réclamation n'a pas pu être créée"
	ErrReclamationUpdateFailed    ReclamationServiceError = "la réclamation n'a pas pu être mise à jour"
	ErrReclamationDeletionFailed  ReclamationServiceError = "la réclamation n'a pas pu être supprimée"
)

func init() {
	registerKinds(ErrNotFound, ErrReclamationNotFound)
	registerKinds(ErrValidation, ErrReclamationInvalidInput, ErrReclamationProgramNotFound)
	registerKinds(ErrStore, ErrReclamationCreationFailed, ErrReclamationUpdateFailed, ErrReclamationDeletionFailed)
}

type ReclamationInput struct {
	Nom         string                   `json:"nom" validate:"required,max=150"`
	Email       string                   `json:"email" validate:"required,email,max=150"`
	Sujet       string                   `json:"sujet" validate:"required,max=255"`
	Description string                   `json:"description" validate:"required"`
	Priorite    models.Priorite          `json:"priorite" validate:"omitempty,oneof=basse normale haute urgente"`
	Statut      models.ReclamationStatut `json:"statut" validate:"omitempty,oneof=nouvelle en_cours resolue fermee"`
	Reponse     string                   `json:"reponse"`
	ProgrammeID *uint                    `json:"programmeId"`
}

// normalize nettoie les champs texte avant validation (email en minuscules).
func (in *ReclamationInput) normalize() {
	in.Nom = strings.TrimSpace(in.Nom)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Sujet = strings.TrimSpace(in.Sujet)
	in.Description = strings.TrimSpace(in.Description)
	in.Reponse = strings.TrimSpace(in.Reponse)
}

type IReclamationService interface {
	ListReclamations(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetReclamationByID(ctx context.Context, id uint) (*models.Reclamation, error)
	CreateReclamation(ctx context.Context, input ReclamationInput) (*models.Reclamation, error)
	UpdateReclamation(ctx context.Context, id uint, input ReclamationInput) (*models.Reclamation, error)
	DeleteReclamation(ctx context.Context, id uint) error
}

type ReclamationService struct {
	db   *gorm.DB
	repo repositories.IReclamationRepository
	now  func() time.Time
}

func NewReclamationService(db *gorm.DB) IReclamationService {
	return &ReclamationService{db: db, repo: repositories.NewReclamationRepository(db), now: time.Now}
}

func (s *ReclamationService) ListReclamations(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	items, total, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return paginated(items, total, params), nil
}

func (s *ReclamationService) GetReclamationByID(ctx context.Context, id uint) (*models.Reclamation, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReclamationNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return item, nil
}

func (s *ReclamationService) CreateReclamation(ctx context.Context, input ReclamationInput) (*models.Reclamation, error) {
	input.normalize()
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	item := &models.Reclamation{}
	s.apply(item, input)

	if err := s.repo.Create(ctx, item); err != nil {
		configslog.Log.Error("ReclamationService.CreateReclamation: insertion en erreur", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrReclamationCreationFailed, err)
	}
	configslog.SLog.Infof("Réclamation enregistrée: ID %d, priorité %s", item.ID, item.Priorite)
	return item, nil
}

func (s *ReclamationService) UpdateReclamation(ctx context.Context, id uint, input ReclamationInput) (*models.Reclamation, error) {
	input.normalize()
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	item, err := s.GetReclamationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.apply(item, input)

	if err := s.repo.Update(ctx, item); err != nil {
		configslog.Log.Error("ReclamationService.UpdateReclamation: écriture en erreur", zap.Uint("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrReclamationUpdateFailed, err)
	}
	return item, nil
}

func (s *ReclamationService) DeleteReclamation(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReclamationNotFound
		}
		configslog.Log.Error("ReclamationService.DeleteReclamation: suppression en erreur", zap.Uint("id", id), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrReclamationDeletionFailed, err)
	}
	configslog.SLog.Infof("Réclamation supprimée: ID %d", id)
	return nil
}

func (s *ReclamationService) validate(ctx context.Context, input ReclamationInput) error {
	if err := newValidationError(ErrReclamationInvalidInput, validation.Struct(input)); err != nil {
		return err
	}
	if input.ProgrammeID != nil {
		exists, err := programExists(ctx, s.db, *input.ProgrammeID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		if !exists {
			return fieldError(ErrReclamationProgramNotFound, "programmeId", "exists")
		}
	}
	return nil
}

// apply recopie l'entrée normalisée ; le passage à "resolue" date la résolution, une réouverture l'efface.
func (s *ReclamationService) apply(item *models.Reclamation, in ReclamationInput) {
	item.Nom = in.Nom
	item.Email = in.Email
	item.Sujet = in.Sujet
	item.Description = in.Description
	item.Priorite = in.Priorite
	if item.Priorite == "" {
		item.Priorite = models.PrioriteNormale
	}
	item.Statut = in.Statut
	if item.Statut == "" {
		item.Statut = models.ReclamationNouvelle
	}
	item.Reponse = in.Reponse
	item.ProgrammeID = in.ProgrammeID

	switch item.Statut {
	case models.ReclamationResolue:
		if item.DateResolution == nil {
			now := s.now()
			item.DateResolution = &now
		}
	case models.ReclamationNouvelle, models.ReclamationEnCours:
		item.DateResolution = nil
	}
}

var _ IReclamationService = (*ReclamationService)(nil)
