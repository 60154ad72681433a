package models

import (
	"time"

	"gestionmax.fr/hub/pkg/textsearch"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgramType distingue les programmes du catalogue et les variantes sur-mesure.
type ProgramType string

const (
	ProgramTypeCatalogue ProgramType = "catalogue"
	ProgramTypeSurMesure ProgramType = "sur-mesure"
)

func (t ProgramType) Valid() bool {
	return t == ProgramTypeCatalogue || t == ProgramTypeSurMesure
}

// Valeurs par défaut appliquées à la création.
const (
	DefaultDuree          = "7h"
	DefaultPrix           = "Sur devis"
	DefaultNiveau         = "Tous niveaux"
	DefaultPublicConcerne = "Tout public"
	DefaultModalites      = "Présentiel individuel"
)

// Program est un programme de formation (fiche Qualiopi).
// La suppression passe par EstActif=false, la ligne n'est jamais supprimée.
type Program struct {
	BaseModel
	Code    string      `gorm:"type:varchar(80);uniqueIndex;not null" json:"code"`
	Type    ProgramType `gorm:"type:varchar(20);not null;index" json:"type"`
	Version int         `gorm:"not null;default:1" json:"version"`

	Titre          string                      `gorm:"type:varchar(255);not null;index" json:"titre"`
	Description    string                      `gorm:"type:text;not null" json:"description"`
	Duree          string                      `gorm:"type:varchar(100)" json:"duree"`
	Prix           string                      `gorm:"type:varchar(100)" json:"prix"`
	Niveau         string                      `gorm:"type:varchar(100)" json:"niveau"`
	PublicConcerne string                      `gorm:"type:text" json:"publicConcerne"`
	Objectifs      datatypes.JSONSlice[string] `json:"objectifs"`
	Prerequis      string                      `gorm:"type:text" json:"prerequis"`
	Modalites      string                      `gorm:"type:varchar(255)" json:"modalites"`

	// Mentions Qualiopi
	ObjectifsPedagogiques string `gorm:"type:text" json:"objectifsPedagogiques"`
	ContenuDetaille       string `gorm:"type:text" json:"contenuDetaille"`
	ModalitesAcces        string `gorm:"type:text" json:"modalitesAcces"`
	DelaiAcces            string `gorm:"type:varchar(255)" json:"delaiAcces"`
	ModalitesTechniques   string `gorm:"type:text" json:"modalitesTechniques"`
	ModalitesEvaluation   string `gorm:"type:text" json:"modalitesEvaluation"`
	MoyensPedagogiques    string `gorm:"type:text" json:"moyensPedagogiques"`
	Formateur             string `gorm:"type:text" json:"formateur"`
	AccessibiliteHandicap string `gorm:"type:text" json:"accessibiliteHandicap"`
	SanctionFormation     string `gorm:"type:text" json:"sanctionFormation"`
	NiveauCertification   string `gorm:"type:varchar(255)" json:"niveauCertification"`
	CertificationInfo     string `gorm:"type:text" json:"certificationInfo"`
	CessationAbandon      string `gorm:"type:text" json:"cessationAbandon"`
	ModalitesReglement    string `gorm:"type:text" json:"modalitesReglement"`

	// Revue juridique
	RevisionJuridiqueValidee bool       `gorm:"not null" json:"revisionJuridiqueValidee"`
	DateRevisionJuridique    *time.Time `json:"dateRevisionJuridique"`
	CommentaireJuridique     string     `gorm:"type:text" json:"commentaireJuridique"`

	EstActif   bool `gorm:"not null;index" json:"estActif"`
	EstVisible bool `gorm:"not null;index" json:"estVisible"`

	Beneficiaire string `gorm:"type:varchar(255)" json:"beneficiaire,omitempty"`
	CheminHTML   string `gorm:"column:chemin_html;type:varchar(500)" json:"cheminHtml,omitempty"`

	CategorieID *uint     `gorm:"index" json:"categorieId"`
	Categorie   *Category `gorm:"foreignKey:CategorieID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"categorie,omitempty"`

	ProgrammeSourID *uint     `gorm:"index" json:"programmeSourId"`
	Variantes       []Program `gorm:"foreignKey:ProgrammeSourID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"variantes,omitempty"`

	// Titre, description et code repliés (minuscules, sans accents) pour la recherche q.
	Recherche string `gorm:"type:text" json:"-"`
}

func (Program) TableName() string { return "programmes_formation" }

// SearchText valeur attendue de la colonne recherche.
func (p *Program) SearchText() string {
	return textsearch.Fold(p.Titre + " " + p.Description + " " + p.Code)
}

// BeforeSave recalcule la colonne recherche à chaque Create / Save.
func (p *Program) BeforeSave(tx *gorm.DB) error {
	p.Recherche = p.SearchText()
	return nil
}

// IsCatalogue indique un programme du catalogue public.
func (p Program) IsCatalogue() bool { return p.Type == ProgramTypeCatalogue }
