package htmlsheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const markedSheet = `<!DOCTYPE html>
<html><head>
<title>Titre de l'onglet</title>
<meta name="description" content="Description   meta">
</head><body>
<h1 data-field="titre">  Excel   avancé </h1>
<p data-field="description">Tableaux croisés <b>dynamiques</b> et macros.</p>
<span data-field="duree">21h</span>
<span data-field="prix">1 200 €</span>
<span data-field="niveau">Intermédiaire</span>
<span data-field="public-concerne">Salariés</span>
<ul data-field="objectifs"><li>Automatiser</li><li> </li><li>Analyser</li></ul>
<div data-field="prerequis">Excel fondamentaux</div>
<div data-field="modalites">Distanciel</div>
</body></html>`

func TestParseDataFields(t *testing.T) {
	meta, err := Parse(strings.NewReader(markedSheet))
	require.NoError(t, err)

	assert.Equal(t, "Excel avancé", meta.Titre)
	assert.Equal(t, "Tableaux croisés dynamiques et macros.", meta.Description)
	assert.Equal(t, "21h", meta.Duree)
	assert.Equal(t, "1 200 €", meta.Prix)
	assert.Equal(t, "Intermédiaire", meta.Niveau)
	assert.Equal(t, "Salariés", meta.PublicConcerne)
	assert.Equal(t, []string{"Automatiser", "Analyser"}, meta.Objectifs)
	assert.Equal(t, "Excel fondamentaux", meta.Prerequis)
	assert.Equal(t, "Distanciel", meta.Modalites)
}

func TestParseFallbacks(t *testing.T) {
	doc := `<html><head><meta name="Description" content="  Résumé court "></head>
<body><h1>Anglais professionnel</h1>
<p data-field="objectifs">Se présenter<br>Téléphoner<br><br>Rédiger un e-mail</p></body></html>`

	meta, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "Anglais professionnel", meta.Titre)
	assert.Equal(t, "Résumé court", meta.Description)
	assert.Equal(t, []string{"Se présenter", "Téléphoner", "Rédiger un e-mail"}, meta.Objectifs)
	assert.Empty(t, meta.Duree)
}

func TestParseTitleTagBeforeH1(t *testing.T) {
	meta, err := Parse(strings.NewReader(`<title>Depuis title</title><h1>Depuis h1</h1>`))
	require.NoError(t, err)
	assert.Equal(t, "Depuis title", meta.Titre)
	assert.Equal(t, []string{}, meta.Objectifs)
}

func TestTitle(t *testing.T) {
	title, err := Title(strings.NewReader(`<html><body><h1>Seulement h1</h1></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Seulement h1", title)

	title, err = Title(strings.NewReader(`<p>rien</p>`))
	require.NoError(t, err)
	assert.Empty(t, title)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fiche.html")
	require.NoError(t, os.WriteFile(path, []byte(markedSheet), 0o644))

	meta, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Excel avancé", meta.Titre)

	_, err = ParseFile(filepath.Join(t.TempDir(), "absent.html"))
	assert.Error(t, err)
}
