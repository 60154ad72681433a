package textsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "ethique", Fold("Éthique"))
	assert.Equal(t, "francais", Fold("FRANÇAIS"))
	assert.Equal(t, "wordpress", Fold("WordPress"))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%wordpress%", LikePattern("  WordPress "))
	assert.Equal(t, "%100!%%", LikePattern("100%"))
	assert.Equal(t, "%a!_b%", LikePattern("a_b"))
	assert.Equal(t, "%!!%", LikePattern("!"))
}

func TestSQLFilterAny(t *testing.T) {
	frag, args := SQLFilterAny([]string{"titre", "code"}, "Excel")

	assert.Equal(t, "(LOWER(titre) LIKE ? ESCAPE '!' OR LOWER(code) LIKE ? ESCAPE '!')", frag)
	assert.Equal(t, []interface{}{"%excel%", "%excel%"}, args)
}

func TestSQLFoldedFilter(t *testing.T) {
	frag, args := SQLFoldedFilter("recherche", " Éthique 100% ")

	assert.Equal(t, "recherche LIKE ? ESCAPE '!'", frag)
	assert.Equal(t, []interface{}{"%ethique 100!%%"}, args)
}

func TestInitials(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Anglais", 3, "ANG"},
		{"Intelligence artificielle", 3, "INT"},
		{"Éco-conception", 3, "ECO"},
		{"3D & vidéo", 3, "DVI"},
		{"Go", 3, "GO"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.in, tt.n))
		})
	}
}
