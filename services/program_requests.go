package services

import (
	"strings"
	"time"

	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/validation"

	"gorm.io/datatypes"
)

// ProgramInput champs modifiables d'un programme. Un champ nil n'est pas touché,
// ce qui sert à la fois à la création (valeurs par défaut) et à la mise à jour partielle.
type ProgramInput struct {
	Code        *string             `json:"code" validate:"omitempty,max=80"`
	Type        *models.ProgramType `json:"type" validate:"omitempty,oneof=catalogue sur-mesure"`
	Titre       *string             `json:"titre" validate:"omitempty,max=255"`
	Description *string             `json:"description"`

	Duree          *string   `json:"duree" validate:"omitempty,max=100"`
	Prix           *string   `json:"prix" validate:"omitempty,max=100"`
	Niveau         *string   `json:"niveau" validate:"omitempty,max=100"`
	PublicConcerne *string   `json:"publicConcerne"`
	Objectifs      *[]string `json:"objectifs" validate:"omitempty,dive,max=500"`
	Prerequis      *string   `json:"prerequis"`
	Modalites      *string   `json:"modalites" validate:"omitempty,max=255"`

	ObjectifsPedagogiques *string `json:"objectifsPedagogiques"`
	ContenuDetaille       *string `json:"contenuDetaille"`
	ModalitesAcces        *string `json:"modalitesAcces"`
	DelaiAcces            *string `json:"delaiAcces" validate:"omitempty,max=255"`
	ModalitesTechniques   *string `json:"modalitesTechniques"`
	ModalitesEvaluation   *string `json:"modalitesEvaluation"`
	MoyensPedagogiques    *string `json:"moyensPedagogiques"`
	Formateur             *string `json:"formateur"`
	AccessibiliteHandicap *string `json:"accessibiliteHandicap"`
	SanctionFormation     *string `json:"sanctionFormation"`
	NiveauCertification   *string `json:"niveauCertification" validate:"omitempty,max=255"`
	CertificationInfo     *string `json:"certificationInfo"`
	CessationAbandon      *string `json:"cessationAbandon"`
	ModalitesReglement    *string `json:"modalitesReglement"`

	RevisionJuridiqueValidee *bool      `json:"revisionJuridiqueValidee"`
	DateRevisionJuridique    *time.Time `json:"dateRevisionJuridique"`
	CommentaireJuridique     *string    `json:"commentaireJuridique"`

	EstActif   *bool `json:"estActif"`
	EstVisible *bool `json:"estVisible"`

	Beneficiaire    *string `json:"beneficiaire" validate:"omitempty,max=255"`
	CheminHTML      *string `json:"cheminHtml" validate:"omitempty,max=500"`
	CategorieID     *uint   `json:"categorieId"`
	ProgrammeSourID *uint   `json:"programmeSourId"`
}

// UpdateProgramRequest corps de PUT /api/programmes-formation (id dans le corps).
type UpdateProgramRequest struct {
	ID uint `json:"id"`
	ProgramInput
}

// DuplicateProgramRequest contexte bénéficiaire optionnel d'une duplication.
type DuplicateProgramRequest struct {
	BeneficiaireNom          string `json:"beneficiaireNom" validate:"omitempty,max=150"`
	BeneficiaireOrganisation string `json:"beneficiaireOrganisation" validate:"omitempty,max=150"`
}

// validateProgramInput applique les tags puis, en création, les champs obligatoires.
// En mise à jour, un champ obligatoire fourni ne peut pas être vidé.
func validateProgramInput(in ProgramInput, creating bool) error {
	var extra validation.Errors
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"titre", in.Titre},
		{"description", in.Description},
	} {
		if f.value != nil || creating {
			extra = validation.Required(extra, f.name, deref(f.value))
		}
	}
	if creating && in.Type == nil {
		extra = append(extra, validation.FieldError{Field: "type", Rule: "required"})
	}
	if in.Code != nil && strings.TrimSpace(*in.Code) == "" && !creating {
		extra = append(extra, validation.FieldError{Field: "code", Rule: "required"})
	}
	return validation.Merge(validation.Struct(in), extra)
}

// applyProgramInput recopie sur p les champs fournis.
func applyProgramInput(p *models.Program, in ProgramInput) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	if in.Code != nil {
		p.Code = strings.TrimSpace(*in.Code)
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	setString(&p.Titre, in.Titre)
	setString(&p.Description, in.Description)
	setString(&p.Duree, in.Duree)
	setString(&p.Prix, in.Prix)
	setString(&p.Niveau, in.Niveau)
	setString(&p.PublicConcerne, in.PublicConcerne)
	if in.Objectifs != nil {
		p.Objectifs = datatypes.JSONSlice[string](cleanList(*in.Objectifs))
	}
	setString(&p.Prerequis, in.Prerequis)
	setString(&p.Modalites, in.Modalites)

	setString(&p.ObjectifsPedagogiques, in.ObjectifsPedagogiques)
	setString(&p.ContenuDetaille, in.ContenuDetaille)
	setString(&p.ModalitesAcces, in.ModalitesAcces)
	setString(&p.DelaiAcces, in.DelaiAcces)
	setString(&p.ModalitesTechniques, in.ModalitesTechniques)
	setString(&p.ModalitesEvaluation, in.ModalitesEvaluation)
	setString(&p.MoyensPedagogiques, in.MoyensPedagogiques)
	setString(&p.Formateur, in.Formateur)
	setString(&p.AccessibiliteHandicap, in.AccessibiliteHandicap)
	setString(&p.SanctionFormation, in.SanctionFormation)
	setString(&p.NiveauCertification, in.NiveauCertification)
	setString(&p.CertificationInfo, in.CertificationInfo)
	setString(&p.CessationAbandon, in.CessationAbandon)
	setString(&p.ModalitesReglement, in.ModalitesReglement)

	if in.RevisionJuridiqueValidee != nil {
		p.RevisionJuridiqueValidee = *in.RevisionJuridiqueValidee
	}
	if in.DateRevisionJuridique != nil {
		d := *in.DateRevisionJuridique
		p.DateRevisionJuridique = &d
	}
	setString(&p.CommentaireJuridique, in.CommentaireJuridique)

	if in.EstActif != nil {
		p.EstActif = *in.EstActif
	}
	if in.EstVisible != nil {
		p.EstVisible = *in.EstVisible
	}
	setString(&p.Beneficiaire, in.Beneficiaire)
	setString(&p.CheminHTML, in.CheminHTML)
	if in.CategorieID != nil {
		if *in.CategorieID == 0 {
			p.CategorieID = nil
		} else {
			id := *in.CategorieID
			p.CategorieID = &id
		}
		p.Categorie = nil
	}
	if in.ProgrammeSourID != nil {
		if *in.ProgrammeSourID == 0 {
			p.ProgrammeSourID = nil
		} else {
			id := *in.ProgrammeSourID
			p.ProgrammeSourID = &id
		}
	}
}

// applyProgramDefaults complète un programme neuf.
func applyProgramDefaults(p *models.Program) {
	if p.Duree == "" {
		p.Duree = models.DefaultDuree
	}
	if p.Prix == "" {
		p.Prix = models.DefaultPrix
	}
	if p.Niveau == "" {
		p.Niveau = models.DefaultNiveau
	}
	if p.PublicConcerne == "" {
		p.PublicConcerne = models.DefaultPublicConcerne
	}
	if p.Modalites == "" {
		p.Modalites = models.DefaultModalites
	}
	if p.Objectifs == nil {
		p.Objectifs = datatypes.JSONSlice[string]{}
	}
	if p.Version < 1 {
		p.Version = 1
	}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
