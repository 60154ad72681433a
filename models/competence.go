package models

import "time"

type CompetenceNiveau string

const (
	NiveauDebutant      CompetenceNiveau = "debutant"
	NiveauIntermediaire CompetenceNiveau = "intermediaire"
	NiveauAvance        CompetenceNiveau = "avance"
	NiveauExpert        CompetenceNiveau = "expert"
)

type CompetenceStatut string

const (
	CompetenceValide      CompetenceStatut = "valide"
	CompetenceARenouveler CompetenceStatut = "a_renouveler"
	CompetenceExpire      CompetenceStatut = "expire"
)

// Competence trace une compétence de formateur et son justificatif (indicateur Qualiopi 21).
type Competence struct {
	BaseModel
	Nom            string           `gorm:"type:varchar(200);not null" json:"nom"`
	Domaine        string           `gorm:"type:varchar(150);index" json:"domaine"`
	Description    string           `gorm:"type:text" json:"description"`
	Niveau         CompetenceNiveau `gorm:"type:varchar(20);not null" json:"niveau"`
	Formateur      string           `gorm:"type:varchar(150);index" json:"formateur"`
	DateObtention  *time.Time       `json:"dateObtention"`
	DateExpiration *time.Time       `gorm:"index" json:"dateExpiration"`
	Justificatif   string           `gorm:"type:varchar(500)" json:"justificatif"`
	Statut         CompetenceStatut `gorm:"type:varchar(20);not null;index" json:"statut"`
}

func (Competence) TableName() string { return "competences" }
