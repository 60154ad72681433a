package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/metrics"
	"gestionmax.fr/hub/pkg/validation"
	"gestionmax.fr/hub/repositories"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgramServiceError string

func (e ProgramServiceError) Error() string { return string(e) }

const (
	ErrProgramNotFound          ProgramServiceError = "programme de formation introuvable"
	ErrProgramInvalidInput      ProgramServiceError = "données de programme invalides"
	ErrProgramCodeExists        ProgramServiceError = "un programme utilise déjà ce code"
	ErrProgramCategoryNotFound  ProgramServiceError = "catégorie de programme inexistante"
	ErrProgramSourceInvalid     ProgramServiceError = "le programme source doit être un programme catalogue existant"
	ErrProgramNotCatalogue      ProgramServiceError = "seul un programme catalogue peut être dupliqué"
	ErrProgramCodeUnavailable   ProgramServiceError = "impossible de générer un code de programme unique"
	ErrProgramCreationFailed    ProgramServiceError = "le programme n'a pas pu être créé"
	ErrProgramUpdateFailed      ProgramServiceError = "le programme n'a pas pu être mis à jour"
	ErrProgramDuplicationFailed ProgramServiceError = "le programme n'a pas pu être dupliqué"
	ErrProgramListFailed        ProgramServiceError = "les programmes n'ont pas pu être chargés"
)

func init() {
	registerKinds(ErrNotFound, ErrProgramNotFound)
	registerKinds(ErrValidation, ErrProgramInvalidInput, ErrProgramCategoryNotFound, ErrProgramSourceInvalid, ErrProgramNotCatalogue)
	registerKinds(ErrConflict, ErrProgramCodeExists)
	registerKinds(ErrStore, ErrProgramCodeUnavailable, ErrProgramCreationFailed, ErrProgramUpdateFailed,
		ErrProgramDuplicationFailed, ErrProgramListFailed)
}

// Nombre maximal de suffixes essayés pour rendre un code unique.
const maxCodeAttempts = 50

type IProgramService interface {
	ListPrograms(ctx context.Context, filter repositories.ProgramFilter) ([]models.Program, error)
	GetProgramByID(ctx context.Context, id uint) (*models.Program, error)
	CreateProgram(ctx context.Context, input ProgramInput) (*models.Program, error)
	UpdateProgram(ctx context.Context, id uint, input ProgramInput) (*models.Program, error)
	DeleteProgram(ctx context.Context, id uint) error
	DuplicateProgram(ctx context.Context, sourceID uint, req DuplicateProgramRequest) (*models.Program, error)
	ListVariants(ctx context.Context, sourceID uint) ([]models.Program, error)
	SetProgramHTMLPath(ctx context.Context, id uint, path string) error
}

type ProgramService struct {
	db      *gorm.DB
	repo    repositories.IProgramRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

// ProgramServiceOption personnalise un ProgramService (horloge des tests).
type ProgramServiceOption func(*ProgramService)

func WithClock(now func() time.Time) ProgramServiceOption {
	return func(s *ProgramService) { s.now = now }
}

func NewProgramService(db *gorm.DB, m *metrics.Metrics, opts ...ProgramServiceOption) IProgramService {
	s := &ProgramService{
		db:      db,
		repo:    repositories.NewProgramRepository(db),
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ProgramService) ListPrograms(ctx context.Context, filter repositories.ProgramFilter) ([]models.Program, error) {
	programs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProgramListFailed, err)
	}
	return programs, nil
}

func (s *ProgramService) GetProgramByID(ctx context.Context, id uint) (*models.Program, error) {
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return program, nil
}

// ListVariants renvoie les programmes sur-mesure dupliqués depuis sourceID, du plus récent au plus ancien.
func (s *ProgramService) ListVariants(ctx context.Context, sourceID uint) ([]models.Program, error) {
	if _, err := s.GetProgramByID(ctx, sourceID); err != nil {
		return nil, err
	}
	variants, err := s.repo.ListVariants(ctx, sourceID)
	if err != nil {
		configslog.Log.Error("ProgramService.ListVariants: lecture en erreur", zap.Uint("source", sourceID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProgramListFailed, err)
	}
	return variants, nil
}

// CreateProgram valide, complète les valeurs par défaut et génère le code au besoin.
func (s *ProgramService) CreateProgram(ctx context.Context, input ProgramInput) (*models.Program, error) {
	if err := newValidationError(ErrProgramInvalidInput, validateProgramInput(input, true)); err != nil {
		return nil, err
	}

	program := &models.Program{EstActif: true, EstVisible: true, Version: 1}
	applyProgramInput(program, input)
	applyProgramDefaults(program)

	var created *models.Program
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewProgramRepositoryTx(tx)
		if err := s.checkReferences(ctx, tx, program); err != nil {
			return err
		}

		if program.Code == "" {
			code, err := uniqueCode(ctx, repoTx, s.generatedCode())
			if err != nil {
				return err
			}
			program.Code = code
		} else if exists, err := repoTx.CodeExists(ctx, program.Code); err != nil {
			return fmt.Errorf("%w: %v", ErrProgramCreationFailed, err)
		} else if exists {
			return ErrProgramCodeExists
		}

		if err := repoTx.Create(ctx, program); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return ErrProgramCodeExists
			}
			configslog.Log.Error("ProgramService.CreateProgram: insertion en erreur", zap.String("code", program.Code), zap.Error(err))
			return fmt.Errorf("%w: %v", ErrProgramCreationFailed, err)
		}
		created = program
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordProgramCreated(string(created.Type))
	configslog.SLog.Infof("Programme créé: ID %d, code %s, type %s", created.ID, created.Code, created.Type)
	return s.reload(ctx, created)
}

// UpdateProgram superpose les champs fournis ; la version n'est pas modifiée.
func (s *ProgramService) UpdateProgram(ctx context.Context, id uint, input ProgramInput) (*models.Program, error) {
	if err := newValidationError(ErrProgramInvalidInput, validateProgramInput(input, false)); err != nil {
		return nil, err
	}

	var updated *models.Program
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewProgramRepositoryTx(tx)

		var program models.Program
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&program, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProgramNotFound
			}
			return fmt.Errorf("%w: %v", ErrProgramUpdateFailed, err)
		}

		previousCode, previousType := program.Code, program.Type
		applyProgramInput(&program, input)
		if program.ProgrammeSourID != nil && *program.ProgrammeSourID == program.ID {
			return fieldError(ErrProgramSourceInvalid, "programmeSourId", "ne_self")
		}
		// Un catalogue dont des variantes sont issues doit rester catalogue.
		if previousType == models.ProgramTypeCatalogue && !program.IsCatalogue() {
			variants, err := repoTx.ListVariants(ctx, program.ID)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrProgramUpdateFailed, err)
			}
			if len(variants) > 0 {
				return fieldError(ErrProgramInvalidInput, "type", "has_variants")
			}
		}
		if err := s.checkReferences(ctx, tx, &program); err != nil {
			return err
		}
		if program.Code != previousCode {
			exists, err := repoTx.CodeExists(ctx, program.Code)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrProgramUpdateFailed, err)
			}
			if exists {
				return ErrProgramCodeExists
			}
		}

		if err := repoTx.Update(ctx, &program); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return ErrProgramCodeExists
			}
			configslog.Log.Error("ProgramService.UpdateProgram: écriture en erreur", zap.Uint("id", id), zap.Error(err))
			return fmt.Errorf("%w: %v", ErrProgramUpdateFailed, err)
		}
		updated = &program
		return nil
	})
	if err != nil {
		return nil, err
	}
	configslog.SLog.Infof("Programme mis à jour: ID %d", id)
	return s.reload(ctx, updated)
}

// DeleteProgram désactive et masque le programme, la ligne est conservée.
func (s *ProgramService) DeleteProgram(ctx context.Context, id uint) error {
	err := s.repo.UpdateFields(ctx, id, map[string]interface{}{
		"est_actif":   false,
		"est_visible": false,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProgramNotFound
		}
		configslog.Log.Error("ProgramService.DeleteProgram: désactivation en erreur", zap.Uint("id", id), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrProgramUpdateFailed, err)
	}
	configslog.SLog.Infof("Programme désactivé: ID %d", id)
	return nil
}

// DuplicateProgram crée une variante sur-mesure d'un programme catalogue, sans modifier la source.
func (s *ProgramService) DuplicateProgram(ctx context.Context, sourceID uint, req DuplicateProgramRequest) (*models.Program, error) {
	if err := newValidationError(ErrProgramInvalidInput, validation.Struct(req)); err != nil {
		return nil, err
	}

	var duplicated *models.Program
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewProgramRepositoryTx(tx)

		source, err := repoTx.FindByID(ctx, sourceID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrProgramNotFound
			}
			return fmt.Errorf("%w: %v", ErrProgramDuplicationFailed, err)
		}
		if !source.IsCatalogue() {
			return ErrProgramNotCatalogue
		}

		code, err := uniqueCode(ctx, repoTx, duplicateCode(source.Code, s.now()))
		if err != nil {
			return err
		}

		variant := duplicateFrom(source, code)
		if nom := strings.TrimSpace(req.BeneficiaireNom); nom != "" {
			org := strings.TrimSpace(req.BeneficiaireOrganisation)
			variant.Beneficiaire = nom
			mention := "Programme personnalisé pour " + nom
			if org != "" {
				variant.Beneficiaire = nom + " (" + org + ")"
				mention += " (" + org + ")"
			}
			variant.Description = strings.TrimSpace(variant.Description + "\n\n" + mention + ".")
		}

		if err := repoTx.Create(ctx, variant); err != nil {
			configslog.Log.Error("ProgramService.DuplicateProgram: insertion en erreur",
				zap.Uint("source_id", sourceID), zap.String("code", code), zap.Error(err))
			return fmt.Errorf("%w: %v", ErrProgramDuplicationFailed, err)
		}
		duplicated = variant
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordDuplication()
	s.metrics.RecordProgramCreated(string(models.ProgramTypeSurMesure))
	configslog.SLog.Infof("Programme %d dupliqué en sur-mesure: ID %d, code %s", sourceID, duplicated.ID, duplicated.Code)
	return s.reload(ctx, duplicated)
}

// SetProgramHTMLPath enregistre le chemin de la fiche HTML archivée.
func (s *ProgramService) SetProgramHTMLPath(ctx context.Context, id uint, path string) error {
	if err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"chemin_html": path}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProgramNotFound
		}
		return fmt.Errorf("%w: %v", ErrProgramUpdateFailed, err)
	}
	return nil
}

// checkReferences vérifie la catégorie et le programme source référencés.
func (s *ProgramService) checkReferences(ctx context.Context, tx *gorm.DB, p *models.Program) error {
	if p.CategorieID != nil {
		exists, err := repositories.NewCategoryRepositoryTx(tx).Exists(ctx, *p.CategorieID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		if !exists {
			return fieldError(ErrProgramCategoryNotFound, "categorieId", "exists")
		}
	}
	if p.ProgrammeSourID != nil {
		source, err := repositories.NewProgramRepositoryTx(tx).FindByID(ctx, *p.ProgrammeSourID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		if source == nil || !source.IsCatalogue() {
			return fieldError(ErrProgramSourceInvalid, "programmeSourId", "catalogue")
		}
	}
	return nil
}

func (s *ProgramService) reload(ctx context.Context, p *models.Program) (*models.Program, error) {
	fresh, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		configslog.Log.Warn("Relecture du programme impossible, données en mémoire renvoyées", zap.Uint("id", p.ID), zap.Error(err))
		return p, nil
	}
	return fresh, nil
}

// generatedCode renvoie FORM-<6 derniers chiffres du timestamp en millisecondes>.
func (s *ProgramService) generatedCode() string {
	return fmt.Sprintf("FORM-%06d", s.now().UnixMilli()%1000000)
}

// duplicateCode renvoie <code source>-SM-<timestamp millisecondes en base 36>.
func duplicateCode(sourceCode string, now time.Time) string {
	return sourceCode + "-SM-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}

// uniqueCode suffixe base par -2, -3... jusqu'à trouver un code libre.
func uniqueCode(ctx context.Context, repo repositories.IProgramRepository, base string) (string, error) {
	candidate := base
	for i := 2; i <= maxCodeAttempts+1; i++ {
		exists, err := repo.CodeExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrStore, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
	return "", ErrProgramCodeUnavailable
}

// duplicateFrom copie le contenu de source dans un nouveau programme sur-mesure.
func duplicateFrom(source *models.Program, code string) *models.Program {
	variant := *source
	variant.BaseModel = models.BaseModel{}
	variant.Code = code
	variant.Type = models.ProgramTypeSurMesure
	variant.Version = source.Version + 1
	variant.EstActif = true
	variant.EstVisible = false
	variant.CheminHTML = ""
	variant.Beneficiaire = ""
	variant.Categorie = nil
	variant.Variantes = nil
	sourceID := source.ID
	variant.ProgrammeSourID = &sourceID
	if source.CategorieID != nil {
		catID := *source.CategorieID
		variant.CategorieID = &catID
	}
	variant.Objectifs = datatypes.JSONSlice[string](append([]string{}, source.Objectifs...))
	if source.DateRevisionJuridique != nil {
		d := *source.DateRevisionJuridique
		variant.DateRevisionJuridique = &d
	}
	return &variant
}

var _ IProgramService = (*ProgramService)(nil)
