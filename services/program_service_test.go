package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/metrics"
	"gestionmax.fr/hub/pkg/testdb"
	"gestionmax.fr/hub/pkg/validation"
	"gestionmax.fr/hub/repositories"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 10, 19, 10, 0, 0, 123_000_000, time.UTC)

func ptr[T any](v T) *T { return &v }

func newTestProgramService(t *testing.T) (IProgramService, *gorm.DB, *metrics.Metrics) {
	t.Helper()
	db := testdb.Open(t)
	m := metrics.NewMetrics(prometheus.NewRegistry())
	return NewProgramService(db, m, WithClock(func() time.Time { return fixedNow })), db, m
}

func catalogueInput(titre string) ProgramInput {
	return ProgramInput{
		Type:        ptr(models.ProgramTypeCatalogue),
		Titre:       ptr(titre),
		Description: ptr("Programme " + titre),
	}
}

func assertValidationField(t *testing.T, err error, field, rule string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, ErrValidation, Kind(err))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Details, validation.FieldError{Field: field, Rule: rule})
}

func TestCreateProgramDefaults(t *testing.T) {
	svc, _, m := newTestProgramService(t)

	p, err := svc.CreateProgram(context.Background(), catalogueInput("Excel"))
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.Equal(t, fmt.Sprintf("FORM-%06d", fixedNow.UnixMilli()%1000000), p.Code)
	assert.Equal(t, models.ProgramTypeCatalogue, p.Type)
	assert.Equal(t, 1, p.Version)
	assert.Equal(t, models.DefaultDuree, p.Duree)
	assert.Equal(t, models.DefaultPrix, p.Prix)
	assert.Equal(t, models.DefaultNiveau, p.Niveau)
	assert.Equal(t, models.DefaultPublicConcerne, p.PublicConcerne)
	assert.Equal(t, models.DefaultModalites, p.Modalites)
	assert.True(t, p.EstActif)
	assert.True(t, p.EstVisible)
	assert.Empty(t, p.Objectifs)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProgramsCreated.WithLabelValues("catalogue")))
}

func TestCreateProgramGeneratesUniqueCodes(t *testing.T) {
	svc, _, _ := newTestProgramService(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		p, err := svc.CreateProgram(ctx, catalogueInput(fmt.Sprintf("Programme %d", i)))
		require.NoError(t, err)
		assert.False(t, seen[p.Code], "code %s déjà attribué", p.Code)
		seen[p.Code] = true
	}

	base := fmt.Sprintf("FORM-%06d", fixedNow.UnixMilli()%1000000)
	assert.True(t, seen[base])
	assert.True(t, seen[base+"-2"])
	assert.True(t, seen[base+"-4"])
}

func TestCreateProgramExplicitCodeConflict(t *testing.T) {
	svc, db, _ := newTestProgramService(t)
	ctx := context.Background()

	in := catalogueInput("WordPress")
	in.Code = ptr("FORM-WP")
	_, err := svc.CreateProgram(ctx, in)
	require.NoError(t, err)

	_, err = svc.CreateProgram(ctx, in)
	assert.ErrorIs(t, err, ErrProgramCodeExists)
	assert.Equal(t, ErrConflict, Kind(err))

	var count int64
	require.NoError(t, db.Model(&models.Program{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateProgramValidation(t *testing.T) {
	svc, _, _ := newTestProgramService(t)
	ctx := context.Background()

	_, err := svc.CreateProgram(ctx, ProgramInput{Titre: ptr("  ")})
	assertValidationField(t, err, "titre", "required")
	assertValidationField(t, err, "description", "required")
	assertValidationField(t, err, "type", "required")

	in := catalogueInput("Excel")
	in.Type = ptr(models.ProgramType("intra"))
	_, err = svc.CreateProgram(ctx, in)
	assertValidationField(t, err, "type", "oneof")

	in = catalogueInput("Excel")
	in.CategorieID = ptr(uint(999))
	_, err = svc.CreateProgram(ctx, in)
	assertValidationField(t, err, "categorieId", "exists")
}

func TestListProgramsSearch(t *testing.T) {
	svc, _, _ := newTestProgramService(t)
	ctx := context.Background()

	for _, titre := range []string{"Créer son site WordPress", "Excel fondamentaux", "Anglais professionnel"} {
		_, err := svc.CreateProgram(ctx, catalogueInput(titre))
		require.NoError(t, err)
	}

	programs, err := svc.ListPrograms(ctx, repositories.ProgramFilter{Query: "wordpress"})
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, "Créer son site WordPress", programs[0].Titre)

	for _, p := range programs {
		haystack := strings.ToLower(p.Titre + " " + p.Description + " " + p.Code)
		assert.Contains(t, haystack, "wordpress")
	}

	_, err = svc.CreateProgram(ctx, catalogueInput("Éthique professionnelle"))
	require.NoError(t, err)
	for _, q := range []string{"éthique", "ethique", "ÉTHIQUE"} {
		programs, err = svc.ListPrograms(ctx, repositories.ProgramFilter{Query: q})
		require.NoError(t, err)
		require.Len(t, programs, 1, q)
		assert.Equal(t, "Éthique professionnelle", programs[0].Titre)
	}
}

func TestDeleteProgramIsSoft(t *testing.T) {
	svc, db, _ := newTestProgramService(t)
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, catalogueInput("Excel"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProgram(ctx, p.ID))

	got, err := svc.GetProgramByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.EstActif)
	assert.False(t, got.EstVisible)

	var count int64
	require.NoError(t, db.Model(&models.Program{}).Where("id = ?", p.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	err = svc.DeleteProgram(ctx, 4242)
	assert.ErrorIs(t, err, ErrProgramNotFound)
	assert.Equal(t, ErrNotFound, Kind(err))
}

func TestUpdateProgram(t *testing.T) {
	svc, _, _ := newTestProgramService(t)
	ctx := context.Background()

	in := catalogueInput("Excel")
	in.Code = ptr("FORM-XL")
	p, err := svc.CreateProgram(ctx, in)
	require.NoError(t, err)

	other := catalogueInput("Word")
	other.Code = ptr("FORM-WD")
	_, err = svc.CreateProgram(ctx, other)
	require.NoError(t, err)

	updated, err := svc.UpdateProgram(ctx, p.ID, ProgramInput{
		Titre:     ptr("Excel avancé"),
		Objectifs: &[]string{"Macros", " ", "TCD"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Excel avancé", updated.Titre)
	assert.Equal(t, "Programme Excel", updated.Description)
	assert.Equal(t, []string{"Macros", "TCD"}, []string(updated.Objectifs))
	assert.Equal(t, 1, updated.Version)

	_, err = svc.UpdateProgram(ctx, p.ID, ProgramInput{Code: ptr("FORM-WD")})
	assert.ErrorIs(t, err, ErrProgramCodeExists)

	_, err = svc.UpdateProgram(ctx, p.ID, ProgramInput{Titre: ptr("")})
	assertValidationField(t, err, "titre", "required")

	_, err = svc.UpdateProgram(ctx, p.ID, ProgramInput{ProgrammeSourID: ptr(p.ID)})
	assertValidationField(t, err, "programmeSourId", "ne_self")

	_, err = svc.UpdateProgram(ctx, 9999, ProgramInput{Titre: ptr("x")})
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestDuplicateProgram(t *testing.T) {
	svc, db, m := newTestProgramService(t)
	ctx := context.Background()

	code := "WEB"
	cat := &models.Category{Code: &code, Titre: "Web"}
	require.NoError(t, db.Create(cat).Error)

	in := catalogueInput("WordPress")
	in.Code = ptr("FORM-WP")
	in.CategorieID = &cat.ID
	in.Objectifs = &[]string{"Installer", "Publier"}
	in.CheminHTML = ptr("web/wordpress.html")
	src, err := svc.CreateProgram(ctx, in)
	require.NoError(t, err)

	dup, err := svc.DuplicateProgram(ctx, src.ID, DuplicateProgramRequest{})
	require.NoError(t, err)

	assert.NotEqual(t, src.ID, dup.ID)
	require.NotNil(t, dup.ProgrammeSourID)
	assert.Equal(t, src.ID, *dup.ProgrammeSourID)
	assert.Equal(t, models.ProgramTypeSurMesure, dup.Type)
	assert.Equal(t, src.Version+1, dup.Version)
	assert.Equal(t, "FORM-WP-SM-"+strings.ToUpper(strconv.FormatInt(fixedNow.UnixMilli(), 36)), dup.Code)
	assert.True(t, dup.EstActif)
	assert.False(t, dup.EstVisible)
	assert.Empty(t, dup.CheminHTML)
	assert.Equal(t, []string(src.Objectifs), []string(dup.Objectifs))
	require.NotNil(t, dup.CategorieID)
	assert.Equal(t, cat.ID, *dup.CategorieID)
	assert.Equal(t, src.Description, dup.Description)

	after, err := svc.GetProgramByID(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, src.Code, after.Code)
	assert.Equal(t, src.Type, after.Type)
	assert.Equal(t, src.Version, after.Version)
	assert.Equal(t, src.Titre, after.Titre)
	assert.Equal(t, src.CheminHTML, after.CheminHTML)
	assert.True(t, after.EstVisible)

	second, err := svc.DuplicateProgram(ctx, src.ID, DuplicateProgramRequest{
		BeneficiaireNom:          "Jeanne Martin",
		BeneficiaireOrganisation: "ACME",
	})
	require.NoError(t, err)
	assert.Equal(t, dup.Code+"-2", second.Code)
	assert.Equal(t, "Jeanne Martin (ACME)", second.Beneficiaire)
	assert.True(t, strings.HasSuffix(second.Description, "Programme personnalisé pour Jeanne Martin (ACME)."))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProgramDuplications))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProgramsCreated.WithLabelValues("sur-mesure")))
}

func TestUpdateProgramKeepsCatalogueWithVariants(t *testing.T) {
	svc, _, _ := newTestProgramService(t)
	ctx := context.Background()

	src, err := svc.CreateProgram(ctx, catalogueInput("Excel"))
	require.NoError(t, err)
	lone, err := svc.CreateProgram(ctx, catalogueInput("Word"))
	require.NoError(t, err)
	variant, err := svc.DuplicateProgram(ctx, src.ID, DuplicateProgramRequest{})
	require.NoError(t, err)

	_, err = svc.UpdateProgram(ctx, src.ID, ProgramInput{Type: ptr(models.ProgramTypeSurMesure)})
	assertValidationField(t, err, "type", "has_variants")

	after, err := svc.GetProgramByID(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProgramTypeCatalogue, after.Type)

	variants, err := svc.ListVariants(ctx, src.ID)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, variant.ID, variants[0].ID)

	// Sans variante, le changement de type reste possible.
	updated, err := svc.UpdateProgram(ctx, lone.ID, ProgramInput{Type: ptr(models.ProgramTypeSurMesure)})
	require.NoError(t, err)
	assert.Equal(t, models.ProgramTypeSurMesure, updated.Type)

	variants, err = svc.ListVariants(ctx, lone.ID)
	require.NoError(t, err)
	assert.Empty(t, variants)

	_, err = svc.ListVariants(ctx, 4040)
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestDuplicateProgramErrors(t *testing.T) {
	svc, _, _ := newTestProgramService(t)
	ctx := context.Background()

	_, err := svc.DuplicateProgram(ctx, 777, DuplicateProgramRequest{})
	assert.ErrorIs(t, err, ErrProgramNotFound)

	src, err := svc.CreateProgram(ctx, catalogueInput("Excel"))
	require.NoError(t, err)
	variant, err := svc.DuplicateProgram(ctx, src.ID, DuplicateProgramRequest{})
	require.NoError(t, err)

	_, err = svc.DuplicateProgram(ctx, variant.ID, DuplicateProgramRequest{})
	assert.ErrorIs(t, err, ErrProgramNotCatalogue)
	assert.Equal(t, ErrValidation, Kind(err))
}

func TestSetProgramHTMLPath(t *testing.T) {
	svc, _, _ := newTestProgramService(t)
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, catalogueInput("Excel"))
	require.NoError(t, err)

	require.NoError(t, svc.SetProgramHTMLPath(ctx, p.ID, "archives/x.html"))
	got, err := svc.GetProgramByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "archives/x.html", got.CheminHTML)

	assert.ErrorIs(t, svc.SetProgramHTMLPath(ctx, 999, "x.html"), ErrProgramNotFound)
}
