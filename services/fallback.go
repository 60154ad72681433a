package services

import (
	"gestionmax.fr/hub/models"

	"gorm.io/datatypes"
)

// SamplePrograms jeu de démonstration servi quand la base est indisponible et que le repli est activé.
func SamplePrograms() []models.Program {
	catID := uint(1)
	category := &models.Category{BaseModel: models.BaseModel{ID: catID}, Titre: "Web & WordPress"}
	code := "WEB"
	category.Code = &code

	return []models.Program{
		{
			BaseModel:      models.BaseModel{ID: 1},
			Code:           "FORM-WP-01",
			Type:           models.ProgramTypeCatalogue,
			Version:        1,
			Titre:          "Créer son site avec WordPress",
			Description:    "Concevoir, publier et administrer un site WordPress professionnel.",
			Duree:          "14h",
			Prix:           models.DefaultPrix,
			Niveau:         "Débutant",
			PublicConcerne: models.DefaultPublicConcerne,
			Objectifs: datatypes.JSONSlice[string]{
				"Installer et configurer WordPress",
				"Créer des pages et des articles",
				"Choisir et personnaliser un thème",
			},
			Prerequis:   "Savoir utiliser un navigateur web",
			Modalites:   models.DefaultModalites,
			EstActif:    true,
			EstVisible:  true,
			CategorieID: &catID,
			Categorie:   category,
		},
		{
			BaseModel:      models.BaseModel{ID: 2},
			Code:           "FORM-BUR-01",
			Type:           models.ProgramTypeCatalogue,
			Version:        1,
			Titre:          "Excel : les fondamentaux",
			Description:    "Maîtriser les formules, la mise en forme et les tableaux croisés dynamiques.",
			Duree:          models.DefaultDuree,
			Prix:           models.DefaultPrix,
			Niveau:         models.DefaultNiveau,
			PublicConcerne: models.DefaultPublicConcerne,
			Objectifs: datatypes.JSONSlice[string]{
				"Saisir et mettre en forme des données",
				"Utiliser les fonctions courantes",
			},
			Modalites:  models.DefaultModalites,
			EstActif:   true,
			EstVisible: true,
		},
	}
}

// SampleSheetGroups regroupement de démonstration des fiches HTML.
func SampleSheetGroups() *SheetGroups {
	return &SheetGroups{
		Degraded: true,
		Groupes: []SheetGroup{
			{
				Categorie: "bureautique",
				Fichiers: []SheetEntry{
					{Nom: "excel-fondamentaux", Chemin: "bureautique/excel-fondamentaux.html", Titre: "Excel : les fondamentaux"},
				},
			},
			{
				Categorie: "web",
				Fichiers: []SheetEntry{
					{Nom: "wordpress-initiation", Chemin: "web/wordpress-initiation.html", Titre: "Créer son site avec WordPress"},
				},
			},
		},
	}
}
