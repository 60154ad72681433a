package models

import "time"

type ActionStatut string

const (
	ActionPlanifiee ActionStatut = "planifiee"
	ActionEnCours   ActionStatut = "en_cours"
	ActionTerminee  ActionStatut = "terminee"
	ActionAnnulee   ActionStatut = "annulee"
)

type ActionOrigine string

const (
	OrigineReclamation  ActionOrigine = "reclamation"
	OrigineAudit        ActionOrigine = "audit"
	OrigineIncident     ActionOrigine = "incident"
	OrigineAmelioration ActionOrigine = "amelioration"
)

// ActionCorrective suit une action d'amélioration (indicateur Qualiopi 32).
type ActionCorrective struct {
	BaseModel
	Titre              string        `gorm:"type:varchar(255);not null" json:"titre"`
	Description        string        `gorm:"type:text" json:"description"`
	Origine            ActionOrigine `gorm:"type:varchar(30);not null" json:"origine"`
	ReclamationID      *uint         `gorm:"index" json:"reclamationId"`
	Reclamation        *Reclamation  `gorm:"foreignKey:ReclamationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"reclamation,omitempty"`
	Statut             ActionStatut  `gorm:"type:varchar(20);not null;index" json:"statut"`
	Priorite           Priorite      `gorm:"type:varchar(20);not null" json:"priorite"`
	Responsable        string        `gorm:"type:varchar(150)" json:"responsable"`
	DateEcheance       *time.Time    `gorm:"index" json:"dateEcheance"`
	Avancement         int           `gorm:"not null;default:0" json:"avancement"`
	IndicateurQualiopi string        `gorm:"type:varchar(20)" json:"indicateurQualiopi"`
}

func (ActionCorrective) TableName() string { return "actions_correctives" }
