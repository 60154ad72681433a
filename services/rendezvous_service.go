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

type RendezvousServiceError string

func (e RendezvousServiceError) Error() string { return string(e) }

const (
	ErrRendezvousNotFound        RendezvousServiceError = "rendez-vous introuvable"
	ErrRendezvousInvalidInput    RendezvousServiceError = "données de rendez-vous invalides"
	ErrRendezvousProgramNotFound RendezvousServiceError = "programme du rendez-vous inexistant"
	ErrRendezvousCreationFailed  RendezvousServiceError = "le rendez-vous n'a pas pu être créé"
	ErrRendezvousUpdateFailed    RendezvousServiceError = "le rendez-vous n'a pas pu être mis à jour"
	ErrRendezvousDeletionFailed  RendezvousServiceError = "le rendez-vous n'a pas pu être supprimé"
)

func init() {
	registerKinds(ErrNotFound, ErrRendezvousNotFound)
	registerKinds(ErrValidation, ErrRendezvousInvalidInput, ErrRendezvousProgramNotFound)
	registerKinds(ErrStore, ErrRendezvousCreationFailed, ErrRendezvousUpdateFailed, ErrRendezvousDeletionFailed)
}

// RendezvousInput corps de création et de mise à jour (remplacement complet).
type RendezvousInput struct {
	Nom          string                  `json:"nom" validate:"required,max=150"`
	Prenom       string                  `json:"prenom" validate:"max=150"`
	Email        string                  `json:"email" validate:"required,email,max=150"`
	Telephone    string                  `json:"telephone" validate:"max=30"`
	Entreprise   string                  `json:"entreprise" validate:"max=200"`
	Type         models.RendezvousType   `json:"type" validate:"required,oneof=positionnement information suivi bilan"`
	Format       models.RendezvousFormat `json:"format" validate:"required,oneof=visio telephone presentiel"`
	DateRdv      *time.Time              `json:"dateRdv" validate:"required"`
	DureeMinutes int                     `json:"dureeMinutes" validate:"omitempty,min=5,max=480"`
	Statut       models.RendezvousStatut `json:"statut" validate:"omitempty,oneof=planifie confirme annule termine"`
	ProgrammeID  *uint                   `json:"programmeId"`
	Notes        string                  `json:"notes"`
}

type IRendezvousService interface {
	ListRendezvous(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetRendezvousByID(ctx context.Context, id uint) (*models.Rendezvous, error)
	CreateRendezvous(ctx context.Context, input RendezvousInput) (*models.Rendezvous, error)
	UpdateRendezvous(ctx context.Context, id uint, input RendezvousInput) (*models.Rendezvous, error)
	DeleteRendezvous(ctx context.Context, id uint) error
}

type RendezvousService struct {
	db   *gorm.DB
	repo repositories.IRendezvousRepository
}

func NewRendezvousService(db *gorm.DB) IRendezvousService {
	return &RendezvousService{db: db, repo: repositories.NewRendezvousRepository(db)}
}

func (s *RendezvousService) ListRendezvous(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	items, total, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return paginated(items, total, params), nil
}

func (s *RendezvousService) GetRendezvousByID(ctx context.Context, id uint) (*models.Rendezvous, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRendezvousNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return item, nil
}

func (s *RendezvousService) CreateRendezvous(ctx context.Context, input RendezvousInput) (*models.Rendezvous, error) {
	input.normalize()
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	item := &models.Rendezvous{}
	applyRendezvousInput(item, input)

	if err := s.repo.Create(ctx, item); err != nil {
		configslog.Log.Error("RendezvousService.CreateRendezvous: insertion en erreur", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRendezvousCreationFailed, err)
	}
	configslog.SLog.Infof("Rendez-vous créé: ID %d (%s, %s)", item.ID, item.Email, item.Type)
	return s.GetRendezvousByID(ctx, item.ID)
}

func (s *RendezvousService) UpdateRendezvous(ctx context.Context, id uint, input RendezvousInput) (*models.Rendezvous, error) {
	input.normalize()
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	item, err := s.GetRendezvousByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyRendezvousInput(item, input)
	item.Programme = nil

	if err := s.repo.Update(ctx, item); err != nil {
		configslog.Log.Error("RendezvousService.UpdateRendezvous: écriture en erreur", zap.Uint("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRendezvousUpdateFailed, err)
	}
	return s.GetRendezvousByID(ctx, id)
}

func (s *RendezvousService) DeleteRendezvous(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRendezvousNotFound
		}
		configslog.Log.Error("RendezvousService.DeleteRendezvous: suppression en erreur", zap.Uint("id", id), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRendezvousDeletionFailed, err)
	}
	configslog.SLog.Infof("Rendez-vous supprimé: ID %d", id)
	return nil
}

func (s *RendezvousService) validate(ctx context.Context, input RendezvousInput) error {
	if err := newValidationError(ErrRendezvousInvalidInput, validation.Struct(input)); err != nil {
		return err
	}
	if input.ProgrammeID != nil {
		exists, err := programExists(ctx, s.db, *input.ProgrammeID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		if !exists {
			return fieldError(ErrRendezvousProgramNotFound, "programmeId", "exists")
		}
	}
	return nil
}

func (in *RendezvousInput) normalize() {
	in.Nom = strings.TrimSpace(in.Nom)
	in.Prenom = strings.TrimSpace(in.Prenom)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Telephone = strings.TrimSpace(in.Telephone)
	in.Entreprise = strings.TrimSpace(in.Entreprise)
	in.Notes = strings.TrimSpace(in.Notes)
}

func applyRendezvousInput(item *models.Rendezvous, in RendezvousInput) {
	item.Nom = in.Nom
	item.Prenom = in.Prenom
	item.Email = in.Email
	item.Telephone = in.Telephone
	item.Entreprise = in.Entreprise
	item.Type = in.Type
	item.Format = in.Format
	item.DateRdv = *in.DateRdv
	item.DureeMinutes = in.DureeMinutes
	if item.DureeMinutes == 0 {
		item.DureeMinutes = models.DefaultRendezvousDuree
	}
	item.Statut = in.Statut
	if item.Statut == "" {
		item.Statut = models.RendezvousPlanifie
	}
	item.ProgrammeID = in.ProgrammeID
	item.Notes = in.Notes
}

// programExists vérifie une référence optionnelle vers un programme.
func programExists(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&models.Program{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

var _ IRendezvousService = (*RendezvousService)(nil)
