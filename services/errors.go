package services

import (
	"errors"

	"gestionmax.fr/hub/pkg/validation"
)

// Catégories d'erreurs exposées aux handlers (400, 404, 409, 500).
var (
	ErrValidation = errors.New("données invalides")
	ErrNotFound   = errors.New("ressource introuvable")
	ErrConflict   = errors.New("conflit avec une ressource existante")
	ErrStore      = errors.New("erreur de stockage")
)

// serviceErrorKinds rattache chaque erreur de service à sa catégorie.
var serviceErrorKinds = map[error]error{}

func registerKinds(kind error, errs ...error) {
	for _, e := range errs {
		serviceErrorKinds[e] = kind
	}
}

// Kind renvoie la catégorie de err ; ErrStore pour toute erreur non classée.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrStore} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	for e, kind := range serviceErrorKinds {
		if errors.Is(err, e) {
			return kind
		}
	}
	return ErrStore
}

// ValidationError porte le détail des champs refusés.
type ValidationError struct {
	Err     error
	Details validation.Errors
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// newValidationError convertit le résultat de validation.Struct ; nil si aucune erreur.
func newValidationError(base error, err error) error {
	if err == nil {
		return nil
	}
	var details validation.Errors
	if errors.As(err, &details) {
		return &ValidationError{Err: base, Details: details}
	}
	return &ValidationError{Err: base}
}

// fieldError construit une ValidationError sur un seul champ.
func fieldError(base error, field, rule string) error {
	return &ValidationError{Err: base, Details: validation.Errors{{Field: field, Rule: rule}}}
}
