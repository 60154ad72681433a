package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound est renvoyée quand aucun enregistrement ne correspond.
	ErrNotFound = errors.New("enregistrement introuvable")
	// ErrDuplicateKey signale la violation d'une contrainte d'unicité.
	ErrDuplicateKey = errors.New("clé unique déjà utilisée")
)

// translateError ramène les erreurs gorm/driver aux sentinelles du package.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateMessage(err.Error()) {
		return ErrDuplicateKey
	}
	return err
}

// Tous les drivers ne traduisent pas les violations d'unicité, on se rabat sur le message.
func isDuplicateMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "duplicate entry")
}
