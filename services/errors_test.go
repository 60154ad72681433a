package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"introuvable", ErrProgramNotFound, ErrNotFound},
		{"conflit", ErrCategoryCodeExists, ErrConflict},
		{"validation", fieldError(ErrProgramInvalidInput, "titre", "required"), ErrValidation},
		{"enveloppée", fmt.Errorf("lecture: %w", ErrSheetNotFound), ErrNotFound},
		{"stockage", fmt.Errorf("%w: disque plein", ErrSheetArchiveFailed), ErrStore},
		{"inconnue", errors.New("boom"), ErrStore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestNewValidationErrorNil(t *testing.T) {
	assert.NoError(t, newValidationError(ErrProgramInvalidInput, nil))
}
