package models

import "time"

type ReclamationStatut string

const (
	ReclamationNouvelle ReclamationStatut = "nouvelle"
	ReclamationEnCours  ReclamationStatut = "en_cours"
	ReclamationResolue  ReclamationStatut = "resolue"
	ReclamationFermee   ReclamationStatut = "fermee"
)

// Priorite est partagée par les réclamations et les actions correctives.
type Priorite string

const (
	PrioriteBasse   Priorite = "basse"
	PrioriteNormale Priorite = "normale"
	PrioriteHaute   Priorite = "haute"
	PrioriteUrgente Priorite = "urgente"
)

// Reclamation est une réclamation client (indicateur Qualiopi 31).
type Reclamation struct {
	BaseModel
	Nom            string            `gorm:"type:varchar(150);not null" json:"nom"`
	Email          string            `gorm:"type:varchar(150);not null;index" json:"email"`
	Sujet          string            `gorm:"type:varchar(255);not null" json:"sujet"`
	Description    string            `gorm:"type:text;not null" json:"description"`
	Priorite       Priorite          `gorm:"type:varchar(20);not null" json:"priorite"`
	Statut         ReclamationStatut `gorm:"type:varchar(20);not null;index" json:"statut"`
	Reponse        string            `gorm:"type:text" json:"reponse"`
	DateResolution *time.Time        `json:"dateResolution"`
	ProgrammeID    *uint             `gorm:"index" json:"programmeId"`
}

func (Reclamation) TableName() string { return "reclamations" }
