package services

import (
	"context"
	"testing"
	"time"

	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/queryparams"
	"gestionmax.fr/hub/pkg/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reclamationInput(statut models.ReclamationStatut) ReclamationInput {
	return ReclamationInput{
		Nom:         "Claire Martin",
		Email:       " Claire.Martin@Example.fr ",
		Sujet:       "Support de cours incomplet",
		Description: "Il manque le module 3.",
		Statut:      statut,
	}
}

func TestReclamationResolutionDate(t *testing.T) {
	db := testdb.Open(t)
	svc := NewReclamationService(db).(*ReclamationService)
	svc.now = func() time.Time { return fixedNow }
	ctx := context.Background()

	r, err := svc.CreateReclamation(ctx, reclamationInput(""))
	require.NoError(t, err)
	assert.Equal(t, models.ReclamationNouvelle, r.Statut)
	assert.Equal(t, models.PrioriteNormale, r.Priorite)
	assert.Equal(t, "claire.martin@example.fr", r.Email)
	assert.Nil(t, r.DateResolution)

	r, err = svc.UpdateReclamation(ctx, r.ID, reclamationInput(models.ReclamationResolue))
	require.NoError(t, err)
	require.NotNil(t, r.DateResolution)
	assert.True(t, fixedNow.Equal(*r.DateResolution))

	svc.now = func() time.Time { return fixedNow.Add(time.Hour) }
	in := reclamationInput(models.ReclamationResolue)
	in.Reponse = "Support renvoyé."
	r, err = svc.UpdateReclamation(ctx, r.ID, in)
	require.NoError(t, err)
	require.NotNil(t, r.DateResolution)
	assert.True(t, fixedNow.Equal(*r.DateResolution), "la date de résolution initiale est conservée")

	r, err = svc.UpdateReclamation(ctx, r.ID, reclamationInput(models.ReclamationEnCours))
	require.NoError(t, err)
	assert.Nil(t, r.DateResolution)

	stored, err := svc.GetReclamationByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DateResolution)
}

func TestReclamationValidation(t *testing.T) {
	svc := NewReclamationService(testdb.Open(t))
	ctx := context.Background()

	in := reclamationInput("")
	in.ProgrammeID = ptr(uint(42))
	_, err := svc.CreateReclamation(ctx, in)
	assertValidationField(t, err, "programmeId", "exists")

	in = reclamationInput("archivee")
	in.Email = "pas-un-email"
	_, err = svc.CreateReclamation(ctx, in)
	assertValidationField(t, err, "statut", "oneof")
	assertValidationField(t, err, "email", "email")

	_, err = svc.UpdateReclamation(ctx, 7, reclamationInput(""))
	assert.ErrorIs(t, err, ErrReclamationNotFound)
	assert.ErrorIs(t, svc.DeleteReclamation(ctx, 7), ErrReclamationNotFound)
}

func TestActionCorrectiveLifecycle(t *testing.T) {
	db := testdb.Open(t)
	reclamations := NewReclamationService(db)
	svc := NewActionCorrectiveService(db)
	ctx := context.Background()

	rec, err := reclamations.CreateReclamation(ctx, reclamationInput(""))
	require.NoError(t, err)

	a, err := svc.CreateAction(ctx, ActionCorrectiveInput{
		Titre:         "Compléter le support",
		Origine:       models.OrigineReclamation,
		ReclamationID: &rec.ID,
		Avancement:    40,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionPlanifiee, a.Statut)
	assert.Equal(t, models.PrioriteNormale, a.Priorite)
	assert.Equal(t, 40, a.Avancement)
	require.NotNil(t, a.Reclamation)
	assert.Equal(t, rec.ID, a.Reclamation.ID)

	a, err = svc.UpdateAction(ctx, a.ID, ActionCorrectiveInput{
		Titre:         "Compléter le support",
		Origine:       models.OrigineReclamation,
		ReclamationID: &rec.ID,
		Statut:        models.ActionTerminee,
		Avancement:    80,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionTerminee, a.Statut)
	assert.Equal(t, 100, a.Avancement)

	require.NoError(t, svc.DeleteAction(ctx, a.ID))
	_, err = svc.GetActionByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrActionNotFound)
}

func TestActionCorrectiveValidation(t *testing.T) {
	svc := NewActionCorrectiveService(testdb.Open(t))
	ctx := context.Background()

	_, err := svc.CreateAction(ctx, ActionCorrectiveInput{Titre: "Audit", Origine: models.OrigineAudit, Avancement: 150})
	assertValidationField(t, err, "avancement", "max")

	_, err = svc.CreateAction(ctx, ActionCorrectiveInput{Titre: "Audit"})
	assertValidationField(t, err, "origine", "required")

	_, err = svc.CreateAction(ctx, ActionCorrectiveInput{Titre: "Suite", Origine: models.OrigineReclamation, ReclamationID: ptr(uint(9))})
	assertValidationField(t, err, "reclamationId", "exists")
}

func TestCompetenceService(t *testing.T) {
	svc := NewCompetenceService(testdb.Open(t))
	ctx := context.Background()

	obtention := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	c, err := svc.CreateCompetence(ctx, CompetenceInput{
		Nom:           "WordPress avancé",
		Domaine:       "Web",
		Niveau:        models.NiveauExpert,
		Formateur:     "Aurélien",
		DateObtention: &obtention,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CompetenceValide, c.Statut)

	expiration := obtention.AddDate(0, -1, 0)
	_, err = svc.UpdateCompetence(ctx, c.ID, CompetenceInput{
		Nom:            "WordPress avancé",
		Niveau:         models.NiveauExpert,
		DateObtention:  &obtention,
		DateExpiration: &expiration,
	})
	assertValidationField(t, err, "dateExpiration", "gtfield")

	_, err = svc.CreateCompetence(ctx, CompetenceInput{Nom: "Excel", Niveau: "maitre"})
	assertValidationField(t, err, "niveau", "oneof")

	require.NoError(t, svc.DeleteCompetence(ctx, c.ID))
	assert.ErrorIs(t, svc.DeleteCompetence(ctx, c.ID), ErrCompetenceNotFound)
	assert.Equal(t, ErrNotFound, Kind(svc.DeleteCompetence(ctx, c.ID)))
}

func TestRendezvousService(t *testing.T) {
	db := testdb.Open(t)
	svc := NewRendezvousService(db)
	programs := NewProgramService(db, nil)
	ctx := context.Background()

	p, err := programs.CreateProgram(ctx, catalogueInput("Excel"))
	require.NoError(t, err)

	base := time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		date := base.AddDate(0, 0, i)
		in := RendezvousInput{
			Nom:     "Dupont",
			Email:   "Jean.Dupont@Example.fr",
			Type:    models.RendezvousPositionnement,
			Format:  models.RendezvousVisio,
			DateRdv: &date,
		}
		if i == 0 {
			in.ProgrammeID = &p.ID
		}
		rdv, err := svc.CreateRendezvous(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultRendezvousDuree, rdv.DureeMinutes)
		assert.Equal(t, models.RendezvousPlanifie, rdv.Statut)
		assert.Equal(t, "jean.dupont@example.fr", rdv.Email)
		if i == 0 {
			require.NotNil(t, rdv.Programme)
			assert.Equal(t, "Excel", rdv.Programme.Titre)
		}
	}

	params := queryparams.DefaultListParams("date_rdv")
	params.PerPage = 2
	page, err := svc.ListRendezvous(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Meta.TotalItems)
	assert.Equal(t, 2, page.Meta.TotalPages)
	items, ok := page.Data.([]models.Rendezvous)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.True(t, items[0].DateRdv.After(items[1].DateRdv))

	_, err = svc.CreateRendezvous(ctx, RendezvousInput{
		Nom:    "Dupont",
		Email:  "jean@example.fr",
		Type:   models.RendezvousBilan,
		Format: "courrier",
	})
	assertValidationField(t, err, "dateRdv", "required")
	assertValidationField(t, err, "format", "oneof")
}

func TestQualiteInputsTrimmedBeforeValidation(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	reclamations := NewReclamationService(db)
	in := reclamationInput("")
	in.Email = "\tClaire.Martin@Example.fr  "
	r, err := reclamations.CreateReclamation(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "claire.martin@example.fr", r.Email)

	in.Nom = "   "
	_, err = reclamations.UpdateReclamation(ctx, r.ID, in)
	assertValidationField(t, err, "nom", "required")

	date := time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)
	rendezvous := NewRendezvousService(db)
	rdv, err := rendezvous.CreateRendezvous(ctx, RendezvousInput{
		Nom:     " Dupont ",
		Email:   " Jean.Dupont@Example.fr ",
		Type:    models.RendezvousBilan,
		Format:  models.RendezvousTelephone,
		DateRdv: &date,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dupont", rdv.Nom)
	assert.Equal(t, "jean.dupont@example.fr", rdv.Email)

	_, err = rendezvous.UpdateRendezvous(ctx, rdv.ID, RendezvousInput{
		Nom:     "Dupont",
		Email:   "  ",
		Type:    models.RendezvousBilan,
		Format:  models.RendezvousTelephone,
		DateRdv: &date,
	})
	assertValidationField(t, err, "email", "required")

	_, err = NewActionCorrectiveService(db).CreateAction(ctx, ActionCorrectiveInput{Titre: " \n ", Origine: models.OrigineAudit})
	assertValidationField(t, err, "titre", "required")

	_, err = NewCompetenceService(db).CreateCompetence(ctx, CompetenceInput{Nom: "  ", Niveau: models.NiveauExpert})
	assertValidationField(t, err, "nom", "required")
}
