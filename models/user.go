package models

// UserRole rôle applicatif d'un utilisateur.
type UserRole string

const UserRoleAdmin UserRole = "admin"

// User est un compte d'administration. Seul le seeder en crée ;
// l'authentification est déléguée à un service externe.
type User struct {
	BaseModel
	Email        string   `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	Nom          string   `gorm:"type:varchar(150)" json:"nom"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'admin'" json:"role"`
}
