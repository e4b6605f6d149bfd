package productControllers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cas := map[string]string{
		"Crème hydratante":    "creme-hydratante",
		"Béquilles réglables": "bequilles-reglables",
		"Thé vert BIO 100g":   "the-vert-bio-100g",
		"Gel d'aloès":         "gel-d-aloes",
		"Fauteuil - roulant":  "fauteuil-roulant",
		"  Sérum  ":           "serum",
	}
	for nom, prefixe := range cas {
		slug := slugify(nom)
		assert.True(t, strings.HasPrefix(slug, prefixe+"-"), "%q → %q", nom, slug)
		// prefix + dash + 8-char suffix
		assert.Len(t, slug, len(prefixe)+9, "%q → %q", nom, slug)
	}

	// Two products with the same name never share a slug.
	assert.NotEqual(t, slugify("Crème hydratante"), slugify("Crème hydratante"))
}
