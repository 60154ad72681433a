package repositories_test

import (
	"context"
	"testing"
	"time"

	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/queryparams"
	"gestionmax.fr/hub/pkg/testdb"
	"gestionmax.fr/hub/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendezvousRepositoryPagination(t *testing.T) {
	db := testdb.Open(t)
	repo := repositories.NewRendezvousRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	names := []string{"Martin", "Bernard", "Durand", "Petit", "Moreau"}
	for i, nom := range names {
		statut := models.RendezvousPlanifie
		if i%2 == 1 {
			statut = models.RendezvousConfirme
		}
		require.NoError(t, repo.Create(ctx, &models.Rendezvous{
			Nom:          nom,
			Email:        "contact" + nom + "@exemple.fr",
			Type:         models.RendezvousPositionnement,
			Format:       models.RendezvousVisio,
			DateRdv:      base.Add(time.Duration(i) * 24 * time.Hour),
			DureeMinutes: 30,
			Statut:       statut,
		}))
	}

	params := queryparams.ListParams{Page: 1, PerPage: 2, SortBy: "date_rdv", OrderBy: "asc"}
	items, total, err := repo.FindAllPaginated(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 2)
	assert.Equal(t, "Martin", items[0].Nom)
	assert.Equal(t, "Bernard", items[1].Nom)

	params.Page = 3
	items, _, err = repo.FindAllPaginated(ctx, params)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Moreau", items[0].Nom)

	items, total, err = repo.FindAllPaginated(ctx, queryparams.ListParams{Page: 1, PerPage: 10, SortBy: "nom", OrderBy: "asc", Status: "confirme"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Bernard", items[0].Nom)
	assert.Equal(t, "Petit", items[1].Nom)

	items, total, err = repo.FindAllPaginated(ctx, queryparams.ListParams{Page: 1, PerPage: 10, SortBy: "nom; DROP TABLE rendezvous", OrderBy: "asc", Query: "DUR"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Durand", items[0].Nom)
}

func TestRendezvousRepositoryDelete(t *testing.T) {
	db := testdb.Open(t)
	repo := repositories.NewRendezvousRepository(db)
	ctx := context.Background()

	rdv := &models.Rendezvous{Nom: "Martin", Email: "m@exemple.fr", Type: models.RendezvousSuivi,
		Format: models.RendezvousTelephone, DateRdv: time.Now(), DureeMinutes: 30, Statut: models.RendezvousPlanifie}
	require.NoError(t, repo.Create(ctx, rdv))

	require.NoError(t, repo.Delete(ctx, rdv.ID))
	assert.ErrorIs(t, repo.Delete(ctx, rdv.ID), repositories.ErrNotFound)

	_, err := repo.FindByID(ctx, rdv.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
