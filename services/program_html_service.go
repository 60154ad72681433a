package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/htmlsheet"
	"gestionmax.fr/hub/pkg/metrics"
	"gestionmax.fr/hub/pkg/validation"

	"go.uber.org/zap"
)

type ProgramHTMLServiceError string

func (e ProgramHTMLServiceError) Error() string { return string(e) }

const (
	ErrSheetInvalidPath   ProgramHTMLServiceError = "chemin de fiche HTML invalide"
	ErrSheetNotFound      ProgramHTMLServiceError = "fiche HTML introuvable"
	ErrSheetArchiveFailed ProgramHTMLServiceError = "la fiche HTML n'a pas pu être archivée"
	ErrSheetScanFailed    ProgramHTMLServiceError = "les fiches HTML n'ont pas pu être parcourues"
	ErrSheetParseFailed   ProgramHTMLServiceError = "la fiche HTML n'a pas pu être lue"
)

func init() {
	registerKinds(ErrValidation, ErrSheetInvalidPath)
	registerKinds(ErrNotFound, ErrSheetNotFound)
	registerKinds(ErrStore, ErrSheetArchiveFailed, ErrSheetScanFailed, ErrSheetParseFailed)
}

const (
	archiveTimeLayout = "20060102-150405"
	// GeneralGroup reçoit les fiches posées à la racine du dossier.
	GeneralGroup = "general"
)

// SheetEntry une fiche HTML trouvée dans le dossier des modèles.
type SheetEntry struct {
	Nom    string `json:"nom"`
	Chemin string `json:"chemin"`
	Titre  string `json:"titre"`
}

// SheetGroup fiches d'un même sous-dossier (catégorie).
type SheetGroup struct {
	Categorie string       `json:"categorie"`
	Fichiers  []SheetEntry `json:"fichiers"`
}

// SheetGroups résultat du regroupement ; Degraded signale les données de démonstration.
type SheetGroups struct {
	Groupes  []SheetGroup `json:"groupes"`
	Degraded bool         `json:"degraded"`
}

type ArchiveSheetRequest struct {
	Path        string `json:"path" validate:"required,max=500"`
	ProgrammeID *uint  `json:"programmeId"`
}

type ImportSheetRequest struct {
	Path        string  `json:"path" validate:"required,max=500"`
	CategorieID *uint   `json:"categorieId"`
	Code        *string `json:"code" validate:"omitempty,max=80"`
}

// ProgramHTMLConfig emplacement des fiches ; ArchiveDir est déjà résolu (voir configs.Config.ArchivePath).
type ProgramHTMLConfig struct {
	TemplatesDir    string
	ArchiveDir      string
	FallbackEnabled bool
}

type IProgramHTMLService interface {
	ArchiveSheet(ctx context.Context, req ArchiveSheetRequest) (string, error)
	GroupsByCategory(ctx context.Context) (*SheetGroups, error)
	SheetMetadata(ctx context.Context, path string) (*htmlsheet.Metadata, error)
	ImportSheet(ctx context.Context, req ImportSheetRequest) (*models.Program, error)
}

type ProgramHTMLService struct {
	cfg      ProgramHTMLConfig
	programs IProgramService
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewProgramHTMLService(cfg ProgramHTMLConfig, programs IProgramService, m *metrics.Metrics) *ProgramHTMLService {
	return &ProgramHTMLService{cfg: cfg, programs: programs, metrics: m, now: time.Now}
}

// ArchiveSheet copie la fiche vers <archives>/<horodatage>-<nom> et renvoie le chemin relatif obtenu.
func (s *ProgramHTMLService) ArchiveSheet(ctx context.Context, req ArchiveSheetRequest) (string, error) {
	if err := newValidationError(ErrSheetInvalidPath, validation.Struct(req)); err != nil {
		return "", err
	}
	src, err := s.resolve(req.Path)
	if err != nil {
		return "", err
	}
	if err := requireFile(src); err != nil {
		return "", err
	}
	if req.ProgrammeID != nil {
		if _, err := s.programs.GetProgramByID(ctx, *req.ProgrammeID); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(s.cfg.ArchiveDir, 0o755); err != nil {
		configslog.Log.Error("Création du dossier d'archives impossible", zap.String("dir", s.cfg.ArchiveDir), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrSheetArchiveFailed, err)
	}
	dest, err := copyToArchive(src, s.cfg.ArchiveDir, s.now().Format(archiveTimeLayout)+"-"+filepath.Base(src))
	if err != nil {
		configslog.Log.Error("Copie de la fiche HTML en erreur", zap.String("source", src), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrSheetArchiveFailed, err)
	}

	rel := s.relative(dest)
	if req.ProgrammeID != nil {
		if err := s.programs.SetProgramHTMLPath(ctx, *req.ProgrammeID, rel); err != nil {
			// Pas d'archive orpheline : la copie n'est référencée par aucun programme.
			if rmErr := os.Remove(dest); rmErr != nil {
				configslog.Log.Warn("Suppression de l'archive non rattachée impossible", zap.String("dest", dest), zap.Error(rmErr))
			}
			return "", err
		}
	}

	s.metrics.RecordHTMLArchive()
	configslog.SLog.Infof("Fiche HTML archivée: %s -> %s", req.Path, rel)
	return rel, nil
}

// GroupsByCategory regroupe les fiches par sous-dossier de premier niveau.
// En cas d'échec du parcours, renvoie le jeu de démonstration si le repli est activé.
func (s *ProgramHTMLService) GroupsByCategory(ctx context.Context) (*SheetGroups, error) {
	groups, err := s.scan(ctx)
	if err == nil {
		return &SheetGroups{Groupes: groups}, nil
	}
	if !s.cfg.FallbackEnabled {
		configslog.Log.Error("Parcours des fiches HTML en erreur", zap.String("root", s.cfg.TemplatesDir), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSheetScanFailed, err)
	}
	configslog.Log.Warn("Parcours des fiches HTML en erreur, données de démonstration renvoyées (degraded)",
		zap.String("root", s.cfg.TemplatesDir), zap.Error(err))
	return SampleSheetGroups(), nil
}

func (s *ProgramHTMLService) SheetMetadata(ctx context.Context, path string) (*htmlsheet.Metadata, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	if err := requireFile(full); err != nil {
		return nil, err
	}
	meta, err := htmlsheet.ParseFile(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSheetParseFailed, err)
	}
	return meta, nil
}

// ImportSheet crée un programme catalogue à partir d'une fiche existante.
func (s *ProgramHTMLService) ImportSheet(ctx context.Context, req ImportSheetRequest) (*models.Program, error) {
	if err := newValidationError(ErrSheetInvalidPath, validation.Struct(req)); err != nil {
		return nil, err
	}
	meta, err := s.SheetMetadata(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	full, _ := s.resolve(req.Path)
	chemin := s.relative(full)
	catalogue := models.ProgramTypeCatalogue
	input := ProgramInput{
		Code:        req.Code,
		Type:        &catalogue,
		Titre:       &meta.Titre,
		Description: &meta.Description,
		Objectifs:   &meta.Objectifs,
		CheminHTML:  &chemin,
		CategorieID: req.CategorieID,
	}
	for _, f := range []struct {
		dst **string
		val string
	}{
		{&input.Duree, meta.Duree},
		{&input.Prix, meta.Prix},
		{&input.Niveau, meta.Niveau},
		{&input.PublicConcerne, meta.PublicConcerne},
		{&input.Prerequis, meta.Prerequis},
		{&input.Modalites, meta.Modalites},
	} {
		if f.val != "" {
			v := f.val
			*f.dst = &v
		}
	}
	return s.programs.CreateProgram(ctx, input)
}

func (s *ProgramHTMLService) scan(ctx context.Context) ([]SheetGroup, error) {
	root := filepath.Clean(s.cfg.TemplatesDir)
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s n'est pas un dossier", root)
	}
	archiveDir := filepath.Clean(s.cfg.ArchiveDir)

	byCategory := map[string][]SheetEntry{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (filepath.Clean(path) == archiveDir || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isHTML(path) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		group := GeneralGroup
		if i := strings.Index(rel, "/"); i > 0 {
			group = rel[:i]
		}

		entry := SheetEntry{
			Nom:    strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			Chemin: rel,
		}
		if f, err := os.Open(path); err == nil {
			entry.Titre, _ = htmlsheet.Title(f)
			f.Close()
		}
		if entry.Titre == "" {
			entry.Titre = entry.Nom
		}
		byCategory[group] = append(byCategory[group], entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	groups := make([]SheetGroup, 0, len(byCategory))
	for name, entries := range byCategory {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Nom < entries[j].Nom })
		groups = append(groups, SheetGroup{Categorie: name, Fichiers: entries})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Categorie < groups[j].Categorie })
	return groups, nil
}

// resolve refuse les chemins absolus et toute remontée "..", puis rattache au dossier des modèles.
func (s *ProgramHTMLService) resolve(rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return "", fieldError(ErrSheetInvalidPath, "path", "required")
	}
	slashed := strings.ReplaceAll(rel, "\\", "/")
	if filepath.IsAbs(rel) || strings.HasPrefix(slashed, "/") || filepath.VolumeName(rel) != "" {
		return "", fieldError(ErrSheetInvalidPath, "path", "relative")
	}
	for _, part := range strings.Split(slashed, "/") {
		if part == ".." {
			return "", fieldError(ErrSheetInvalidPath, "path", "no_traversal")
		}
	}
	if !isHTML(slashed) {
		return "", fieldError(ErrSheetInvalidPath, "path", "html")
	}
	return filepath.Join(s.cfg.TemplatesDir, filepath.FromSlash(slashed)), nil
}

// relative exprime path par rapport au dossier des modèles, en séparateurs "/".
func (s *ProgramHTMLService) relative(path string) string {
	rel, err := filepath.Rel(s.cfg.TemplatesDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrSheetNotFound
		}
		return fmt.Errorf("%w: %v", ErrSheetParseFailed, err)
	}
	if info.IsDir() {
		return fieldError(ErrSheetInvalidPath, "path", "file")
	}
	return nil
}

// copyToArchive crée dir/name sans écraser un fichier existant (suffixe -2, -3...).
func copyToArchive(src, dir, name string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	var out *os.File
	var dest string
	for i := 1; out == nil; i++ {
		dest = filepath.Join(dir, name)
		if i > 1 {
			dest = filepath.Join(dir, stem+"-"+strconv.Itoa(i)+ext)
		}
		out, err = os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if errors.Is(err, fs.ErrExist) && i < maxCodeAttempts {
				continue
			}
			return "", err
		}
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return "", err
	}
	return dest, out.Close()
}

func isHTML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".html" || ext == ".htm"
}

var _ IProgramHTMLService = (*ProgramHTMLService)(nil)
