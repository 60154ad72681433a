// Package htmlsheet lit les fiches programmes HTML statiques.
//
// Une fiche peut baliser ses rubriques avec data-field :
//
//	<p data-field="duree">14 heures</p>
//	<ul data-field="objectifs"><li>...</li></ul>
//
// Le titre vient de data-field="titre", sinon de <title>, sinon du premier <h1>.
package htmlsheet

import (
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Metadata contenu extrait d'une fiche.
type Metadata struct {
	Titre          string   `json:"titre"`
	Description    string   `json:"description"`
	Duree          string   `json:"duree,omitempty"`
	Prix           string   `json:"prix,omitempty"`
	Niveau         string   `json:"niveau,omitempty"`
	PublicConcerne string   `json:"publicConcerne,omitempty"`
	Objectifs      []string `json:"objectifs"`
	Prerequis      string   `json:"prerequis,omitempty"`
	Modalites      string   `json:"modalites,omitempty"`
}

// Parse lit une fiche complète.
func Parse(r io.Reader) (*Metadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	meta := &Metadata{Objectifs: []string{}}
	var title, h1 string

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "title" && title == "":
				title = textContent(n)
			case n.Data == "h1" && h1 == "":
				h1 = textContent(n)
			case n.Data == "meta" && strings.EqualFold(attr(n, "name"), "description") && meta.Description == "":
				meta.Description = collapse(attr(n, "content"))
			}
			if field := attr(n, "data-field"); field != "" {
				meta.set(field, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	if meta.Titre == "" {
		meta.Titre = firstNonEmpty(title, h1)
	}
	return meta, nil
}

// ParseFile ouvre path puis appelle Parse.
func ParseFile(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Title renvoie <title>, ou à défaut le premier <h1>.
func Title(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	var title, h1 string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode {
			if n.Data == "title" {
				title = textContent(n)
			} else if n.Data == "h1" && h1 == "" {
				h1 = textContent(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return firstNonEmpty(title, h1), nil
}

func (m *Metadata) set(field string, n *html.Node) {
	switch strings.ToLower(field) {
	case "titre":
		m.Titre = textContent(n)
	case "description":
		m.Description = textContent(n)
	case "duree":
		m.Duree = textContent(n)
	case "prix":
		m.Prix = textContent(n)
	case "niveau":
		m.Niveau = textContent(n)
	case "publicconcerne", "public-concerne", "public":
		m.PublicConcerne = textContent(n)
	case "objectifs":
		m.Objectifs = listItems(n)
	case "prerequis":
		m.Prerequis = textContent(n)
	case "modalites":
		m.Modalites = textContent(n)
	}
}

// listItems renvoie le texte des <li> descendants, sinon une entrée par ligne non vide.
func listItems(n *html.Node) []string {
	items := []string{}
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "li" {
			if t := textContent(node); t != "" {
				items = append(items, t)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	if len(items) > 0 {
		return items
	}
	for _, line := range strings.Split(rawText(n), "\n") {
		if line = collapse(line); line != "" {
			items = append(items, line)
		}
	}
	return items
}

func textContent(n *html.Node) string {
	return collapse(rawText(n))
}

func rawText(n *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		if node.Type == html.ElementNode && node.Data == "br" {
			sb.WriteString("\n")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
