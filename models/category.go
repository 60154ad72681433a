package models

// Category regroupe les programmes de formation du catalogue.
// Aucune suppression physique : il n'existe pas d'endpoint de suppression.
type Category struct {
	BaseModel
	Code        *string `gorm:"type:varchar(20);uniqueIndex" json:"code"`
	Titre       string  `gorm:"type:varchar(200);not null" json:"titre"`
	Description string  `gorm:"type:text" json:"description"`
	Ordre       int     `gorm:"not null;default:0;index" json:"ordre"`

	// Rempli par la sous-requête de comptage, jamais migré ni écrit.
	ProgrammesCount int64          `gorm:"column:programmes_count;->;-:migration" json:"-"`
	Count           *CategoryCount `gorm:"-" json:"_count,omitempty"`
}

// CategoryCount reprend la forme {"programmes": n} attendue par le front.
type CategoryCount struct {
	Programmes int64 `json:"programmes"`
}

func (Category) TableName() string { return "categories_programme" }

// CodeValue renvoie le code ou une chaîne vide.
func (c Category) CodeValue() string {
	if c.Code == nil {
		return ""
	}
	return *c.Code
}
