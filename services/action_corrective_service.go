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

type ActionCorrectiveServiceError string

func (e ActionCorrectiveServiceError) Error() string { return string(e) }

const (
	ErrActionNotFound            ActionCorrectiveServiceError = "action corrective introuvable"
	ErrActionInvalidInput        ActionCorrectiveServiceError = "données d'action corrective invalides"
	ErrActionReclamationNotFound ActionCorrectiveServiceError = "réclamation d'origine inexistante"
	ErrActionCreationFailed      ActionCorrectiveServiceError = "l'action corrective n'a pas pu être créée"
	ErrActionUpdateFailed        ActionCorrectiveServiceError = "l'action corrective n'a pas pu être mise à jour"
	ErrActionDeletionFailed      ActionCorrectiveServiceError = "l'action corrective n'a pas pu être supprimée"
)

func init() {
	registerKinds(ErrNotFound, ErrActionNotFound)
	registerKinds(ErrValidation, ErrActionInvalidInput, ErrActionReclamationNotFound)
	registerKinds(ErrStore, ErrActionCreationFailed, ErrActionUpdateFailed, ErrActionDeletionFailed)
}

// Avancement imposé à une action terminée.
const avancementTermine = 100

type ActionCorrectiveInput struct {
	Titre              string               `json:"titre" validate:"required,max=255"`
	Description        string               `json:"description"`
	Origine            models.ActionOrigine `json:"origine" validate:"required,oneof=reclamation audit incident amelioration"`
	ReclamationID      *uint                `json:"reclamationId"`
	Statut             models.ActionStatut  `json:"statut" validate:"omitempty,oneof=planifiee en_cours terminee annulee"`
	Priorite           models.Priorite      `json:"priorite" validate:"omitempty,oneof=basse normale haute urgente"`
	Responsable        string               `json:"responsable" validate:"max=150"`
	DateEcheance       *time.Time           `json:"dateEcheance"`
	Avancement         int                  `json:"avancement" validate:"min=0,max=100"`
	IndicateurQualiopi string               `json:"indicateurQualiopi" validate:"max=20"`
}

type IActionCorrectiveService interface {
	ListActions(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetActionByID(ctx context.Context, id uint) (*models.ActionCorrective, error)
	CreateAction(ctx context.Context, input ActionCorrectiveInput) (*models.ActionCorrective, error)
	UpdateAction(ctx context.Context, id uint, input ActionCorrectiveInput) (*models.ActionCorrective, error)
	DeleteAction(ctx context.Context, id uint) error
}

type ActionCorrectiveService struct {
	db   *gorm.DB
	repo repositories.IActionCorrectiveRepository
}

func NewActionCorrectiveService(db *gorm.DB) IActionCorrectiveService {
	return &ActionCorrectiveService{db: db, repo: repositories.NewActionCorrectiveRepository(db)}
}

func (s *ActionCorrectiveService) ListActions(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	items, total, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return paginated(items, total, params), nil
}

func (s *ActionCorrectiveService) GetActionByID(ctx context.Context, id uint) (*models.ActionCorrective, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrActionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return item, nil
}

func (s *ActionCorrectiveService) CreateAction(ctx context.Context, input ActionCorrectiveInput) (*models.ActionCorrective, error) {
	input.normalize()
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	item := &models.ActionCorrective{}
	applyActionInput(item, input)

	if err := s.repo.Create(ctx, item); err != nil {
		configslog.Log.Error("ActionCorrectiveService.CreateAction: insertion en erreur", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrActionCreationFailed, err)
	}
	configslog.SLog.Infof("Action corrective créée: ID %d (%s)", item.ID, item.Origine)
	return s.GetActionByID(ctx, item.ID)
}

func (s *ActionCorrectiveService) UpdateAction(ctx context.Context, id uint, input ActionCorrectiveInput) (*models.ActionCorrective, error) {
	input.normalize()
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	item, err := s.GetActionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyActionInput(item, input)
	item.Reclamation = nil

	if err := s.repo.Update(ctx, item); err != nil {
		configslog.Log.Error("ActionCorrectiveService.UpdateAction: écriture en erreur", zap.Uint("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrActionUpdateFailed, err)
	}
	return s.GetActionByID(ctx, id)
}

func (s *ActionCorrectiveService) DeleteAction(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrActionNotFound
		}
		configslog.Log.Error("ActionCorrectiveService.DeleteAction: suppression en erreur", zap.Uint("id", id), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrActionDeletionFailed, err)
	}
	configslog.SLog.Infof("Action corrective supprimée: ID %d", id)
	return nil
}

func (s *ActionCorrectiveService) validate(ctx context.Context, input ActionCorrectiveInput) error {
	if err := newValidationError(ErrActionInvalidInput, validation.Struct(input)); err != nil {
		return err
	}
	if input.ReclamationID != nil {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.Reclamation{}).Where("id = ?", *input.ReclamationID).Count(&count).Error
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		if count == 0 {
			return fieldError(ErrActionReclamationNotFound, "reclamationId", "exists")
		}
	}
	return nil
}

func (in *ActionCorrectiveInput) normalize() {
	in.Titre = strings.TrimSpace(in.Titre)
	in.Description = strings.TrimSpace(in.Description)
	in.Responsable = strings.TrimSpace(in.Responsable)
	in.IndicateurQualiopi = strings.TrimSpace(in.IndicateurQualiopi)
}

func applyActionInput(item *models.ActionCorrective, in ActionCorrectiveInput) {
	item.Titre = in.Titre
	item.Description = in.Description
	item.Origine = in.Origine
	item.ReclamationID = in.ReclamationID
	item.Statut = in.Statut
	if item.Statut == "" {
		item.Statut = models.ActionPlanifiee
	}
	item.Priorite = in.Priorite
	if item.Priorite == "" {
		item.Priorite = models.PrioriteNormale
	}
	item.Responsable = in.Responsable
	item.DateEcheance = in.DateEcheance
	item.Avancement = in.Avancement
	if item.Statut == models.ActionTerminee {
		item.Avancement = avancementTermine
	}
	item.IndicateurQualiopi = in.IndicateurQualiopi
}

var _ IActionCorrectiveService = (*ActionCorrectiveService)(nil)
