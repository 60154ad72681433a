package seeders

import (
	"errors"
	"strings"

	"gestionmax.fr/hub/configs"
	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser crée le compte administrateur, ou met à jour son mot de passe s'il a changé.
// Sans ADMIN_PASSWORD, l'étape est ignorée.
func SeedSystemUser(db *gorm.DB, admin configs.AdminConfig) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || admin.Password == "" {
		configslog.SLog.Warn("ADMIN_EMAIL ou ADMIN_PASSWORD absent, compte administrateur non créé.")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Lecture du compte administrateur en erreur", zap.String("email", email), zap.Error(err))
		return err
	}

	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(admin.Password)) == nil {
			configslog.SLog.Debugf("Compte administrateur '%s' déjà à jour.", email)
			return nil
		}
		hash, hErr := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
		if hErr != nil {
			return hErr
		}
		configslog.SLog.Infof("Mot de passe du compte administrateur '%s' mis à jour.", email)
		return db.Model(&existing).Update("password_hash", string(hash)).Error
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{
		Email:        email,
		Nom:          admin.Name,
		PasswordHash: string(hash),
		Role:         models.UserRoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Création du compte administrateur impossible", zap.String("email", email), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Compte administrateur '%s' créé (ID: %d).", email, user.ID)
	return nil
}
