// Package validation enveloppe go-playground/validator et renvoie des erreurs
// au format {field, rule} exposé par l'API.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError une règle non respectée sur un champ (nom JSON).
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Errors liste des champs invalides ; implémente error.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Rule)
	}
	return "validation: " + strings.Join(parts, ", ")
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct valide s selon ses tags `validate`. Renvoie nil ou Errors.
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}

// Required ajoute une erreur "required" si value est vide.
func Required(errs Errors, field, value string) Errors {
	if strings.TrimSpace(value) == "" {
		return append(errs, FieldError{Field: field, Rule: "required"})
	}
	return errs
}

// Merge combine le résultat de Struct avec des erreurs supplémentaires.
func Merge(err error, extra Errors) error {
	if err == nil {
		if len(extra) == 0 {
			return nil
		}
		return extra
	}
	var base Errors
	if errors.As(err, &base) {
		return append(base, extra...)
	}
	return err
}
