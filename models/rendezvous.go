package models

import "time"

type RendezvousStatut string

const (
	RendezvousPlanifie RendezvousStatut = "planifie"
	RendezvousConfirme RendezvousStatut = "confirme"
	RendezvousAnnule   RendezvousStatut = "annule"
	RendezvousTermine  RendezvousStatut = "termine"
)

type RendezvousType string

const (
	RendezvousPositionnement RendezvousType = "positionnement"
	RendezvousInformation    RendezvousType = "information"
	RendezvousSuivi          RendezvousType = "suivi"
	RendezvousBilan          RendezvousType = "bilan"
)

type RendezvousFormat string

const (
	RendezvousVisio      RendezvousFormat = "visio"
	RendezvousTelephone  RendezvousFormat = "telephone"
	RendezvousPresentiel RendezvousFormat = "presentiel"
)

const DefaultRendezvousDuree = 30

// Rendezvous est un rendez-vous avec un bénéficiaire (positionnement, suivi...).
type Rendezvous struct {
	BaseModel
	Nom          string           `gorm:"type:varchar(150);not null" json:"nom"`
	Prenom       string           `gorm:"type:varchar(150)" json:"prenom"`
	Email        string           `gorm:"type:varchar(150);not null;index" json:"email"`
	Telephone    string           `gorm:"type:varchar(30)" json:"telephone"`
	Entreprise   string           `gorm:"type:varchar(200)" json:"entreprise"`
	Type         RendezvousType   `gorm:"type:varchar(30);not null" json:"type"`
	Format       RendezvousFormat `gorm:"type:varchar(30);not null" json:"format"`
	DateRdv      time.Time        `gorm:"not null;index" json:"dateRdv"`
	DureeMinutes int              `gorm:"not null" json:"dureeMinutes"`
	Statut       RendezvousStatut `gorm:"type:varchar(20);not null;index" json:"statut"`
	ProgrammeID  *uint            `gorm:"index" json:"programmeId"`
	Programme    *Program         `gorm:"foreignKey:ProgrammeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"programme,omitempty"`
	Notes        string           `gorm:"type:text" json:"notes"`
}

func (Rendezvous) TableName() string { return "rendezvous" }
