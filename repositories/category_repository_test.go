package repositories_test

import (
	"context"
	"testing"

	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/testdb"
	"gestionmax.fr/hub/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepositoryListWithCount(t *testing.T) {
	db := testdb.Open(t)
	repo := repositories.NewCategoryRepository(db)
	ctx := context.Background()

	web := seedCategory(t, db, "WEB", "Web", 2)
	seedCategory(t, db, "BUR", "Bureautique", 1)
	seedCategory(t, db, "ANG", "Anglais", 2)
	seedProgram(t, db, models.Program{Code: "P1", Titre: "WordPress", CategorieID: &web.ID})
	seedProgram(t, db, models.Program{Code: "P2", Titre: "WooCommerce", CategorieID: &web.ID})

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "BUR", categories[0].CodeValue())
	assert.Equal(t, "ANG", categories[1].CodeValue(), "même ordre : tri par titre")
	assert.Equal(t, "WEB", categories[2].CodeValue())
	require.NotNil(t, categories[2].Count)
	assert.Equal(t, int64(2), categories[2].Count.Programmes)
	assert.Equal(t, int64(0), categories[0].Count.Programmes)

	found, err := repo.FindByID(ctx, web.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.Count.Programmes)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCategoryRepositoryCodeExistsAndMaxOrdre(t *testing.T) {
	db := testdb.Open(t)
	repo := repositories.NewCategoryRepository(db)
	ctx := context.Background()

	last, err := repo.MaxOrdre(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, last)

	ang := seedCategory(t, db, "ANG", "Anglais", 4)
	seedCategory(t, db, "IA", "Intelligence artificielle", 7)

	last, err = repo.MaxOrdre(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, last)

	exists, err := repo.CodeExists(ctx, "ANG", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.CodeExists(ctx, "ANG", ang.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	ok, err := repo.Exists(ctx, ang.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	dup := "ANG"
	err = repo.Create(ctx, &models.Category{Code: &dup, Titre: "Doublon"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateKey)
}
