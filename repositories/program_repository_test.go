package repositories_test

import (
	"context"
	"testing"

	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/testdb"
	"gestionmax.fr/hub/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProgram(t *testing.T, db *gorm.DB, p models.Program) *models.Program {
	t.Helper()
	if p.Type == "" {
		p.Type = models.ProgramTypeCatalogue
	}
	if p.Description == "" {
		p.Description = "Description de " + p.Titre
	}
	p.Version = 1
	require.NoError(t, repositories.NewProgramRepository(db).Create(context.Background(), &p))
	return &p
}

func seedCategory(t *testing.T, db *gorm.DB, code, titre string, ordre int) *models.Category {
	t.Helper()
	c := &models.Category{Code: &code, Titre: titre, Ordre: ordre}
	require.NoError(t, repositories.NewCategoryRepository(db).Create(context.Background(), c))
	return c
}

func TestProgramRepositoryListFilters(t *testing.T) {
	db := testdb.Open(t)
	repo := repositories.NewProgramRepository(db)
	ctx := context.Background()

	web := seedCategory(t, db, "WEB", "Web & WordPress", 1)
	seedProgram(t, db, models.Program{Code: "FORM-WP", Titre: "Créer son site WordPress", EstActif: true, EstVisible: true, CategorieID: &web.ID})
	seedProgram(t, db, models.Program{Code: "FORM-XL", Titre: "Excel", Description: "Tableurs, pas de wordpress ici ? si : WordPress", EstActif: true, EstVisible: true})
	seedProgram(t, db, models.Program{Code: "WORDPRESS-SM", Titre: "Accompagnement", Type: models.ProgramTypeSurMesure, EstActif: true})
	seedProgram(t, db, models.Program{Code: "FORM-ANG", Titre: "Anglais", EstActif: false, EstVisible: true})

	all, err := repo.List(ctx, repositories.ProgramFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "Accompagnement", all[0].Titre, "tri par titre")

	found, err := repo.List(ctx, repositories.ProgramFilter{Query: "wordpress"})
	require.NoError(t, err)
	codes := make([]string, 0, len(found))
	for _, p := range found {
		codes = append(codes, p.Code)
	}
	assert.ElementsMatch(t, []string{"FORM-WP", "FORM-XL", "WORDPRESS-SM"}, codes)

	visible := true
	found, err = repo.List(ctx, repositories.ProgramFilter{Visible: &visible})
	require.NoError(t, err)
	assert.Len(t, found, 3)

	actif := false
	found, err = repo.List(ctx, repositories.ProgramFilter{Actif: &actif})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "FORM-ANG", found[0].Code)

	found, err = repo.List(ctx, repositories.ProgramFilter{CategorieID: &web.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.NotNil(t, found[0].Categorie)
	assert.Equal(t, "WEB", found[0].Categorie.CodeValue())

	found, err = repo.List(ctx, repositories.ProgramFilter{Type: models.ProgramTypeSurMesure})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "WORDPRESS-SM", found[0].Code)
}

func TestProgramRepositorySearchEscapesWildcards(t *testing.T) {
	db := testdb.Open(t)
	seedProgram(t, db, models.Program{Code: "FORM-A", Titre: "Remise 100% financée"})
	seedProgram(t, db, models.Program{Code: "FORM-B", Titre: "Remise 1000 euros"})

	found, err := repositories.NewProgramRepository(db).List(context.Background(), repositories.ProgramFilter{Query: "100%"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "FORM-A", found[0].Code)
}

func TestProgramRepositorySearchIgnoresCaseAndAccents(t *testing.T) {
	db := testdb.Open(t)
	repo := repositories.NewProgramRepository(db)
	ctx := context.Background()

	seedProgram(t, db, models.Program{Code: "FORM-ETH", Titre: "Éthique professionnelle"})
	seedProgram(t, db, models.Program{Code: "FORM-RGPD", Titre: "RGPD", Description: "Données personnelles et ÉTHIQUE du numérique"})
	seedProgram(t, db, models.Program{Code: "FORM-XL", Titre: "Excel"})

	for _, q := range []string{"éthique", "ethique", "ÉTHIQUE", "Ethique"} {
		t.Run(q, func(t *testing.T) {
			found, err := repo.List(ctx, repositories.ProgramFilter{Query: q})
			require.NoError(t, err)
			codes := make([]string, 0, len(found))
			for _, p := range found {
				codes = append(codes, p.Code)
			}
			assert.ElementsMatch(t, []string{"FORM-ETH", "FORM-RGPD"}, codes)
		})
	}

	found, err := repo.List(ctx, repositories.ProgramFilter{Query: "données"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "FORM-RGPD", found[0].Code)
}

func TestProgramRepositorySearchFollowsUpdates(t *testing.T) {
	db := testdb.Open(t)
	repo := repositories.NewProgramRepository(db)
	ctx := context.Background()

	p := seedProgram(t, db, models.Program{Code: "FORM-1", Titre: "Excel", Description: "Bases", EstActif: true})

	p.Titre = "Tableur avancé"
	require.NoError(t, repo.Update(ctx, p))
	require.NoError(t, repo.UpdateFields(ctx, p.ID, map[string]interface{}{"est_actif": false}))

	found, err := repo.List(ctx, repositories.ProgramFilter{Query: "avance"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "tableur avance bases form-1", found[0].Recherche)
	assert.False(t, found[0].EstActif)

	found, err = repo.List(ctx, repositories.ProgramFilter{Query: "excel"})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestProgramRepositoryCodeAndLookup(t *testing.T) {
	db := testdb.Open(t)
	repo := repositories.NewProgramRepository(db)
	ctx := context.Background()

	p := seedProgram(t, db, models.Program{Code: "FORM-123456", Titre: "Excel", Objectifs: []string{"Saisir", "Calculer"}})

	exists, err := repo.CodeExists(ctx, "FORM-123456")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.CodeExists(ctx, "FORM-000000")
	require.NoError(t, err)
	assert.False(t, exists)

	byID, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Saisir", "Calculer"}, []string(byID.Objectifs))

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	dup := models.Program{Code: "FORM-123456", Type: models.ProgramTypeCatalogue, Titre: "Doublon", Description: "x", Version: 1}
	assert.ErrorIs(t, repo.Create(ctx, &dup), repositories.ErrDuplicateKey)
}

func TestProgramRepositoryUpdateFields(t *testing.T) {
	db := testdb.Open(t)
	repo := repositories.NewProgramRepository(db)
	ctx := context.Background()

	p := seedProgram(t, db, models.Program{Code: "FORM-1", Titre: "Excel", EstActif: true, EstVisible: true})

	require.NoError(t, repo.UpdateFields(ctx, p.ID, map[string]interface{}{"est_actif": false}))
	reloaded, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.EstActif)
	assert.True(t, reloaded.EstVisible)

	assert.ErrorIs(t, repo.UpdateFields(ctx, 4242, map[string]interface{}{"est_actif": false}), repositories.ErrNotFound)
}

func TestProgramRepositoryListVariants(t *testing.T) {
	db := testdb.Open(t)
	repo := repositories.NewProgramRepository(db)

	src := seedProgram(t, db, models.Program{Code: "FORM-SRC", Titre: "Source"})
	seedProgram(t, db, models.Program{Code: "FORM-SRC-SM-1", Titre: "Source", Type: models.ProgramTypeSurMesure, ProgrammeSourID: &src.ID})
	seedProgram(t, db, models.Program{Code: "FORM-AUTRE", Titre: "Autre"})

	variants, err := repo.ListVariants(context.Background(), src.ID)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "FORM-SRC-SM-1", variants[0].Code)
}
