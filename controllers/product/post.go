package productControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Para-Plus/para-plus/models"
)

type ProduitInput struct {
	Nom                string   `json:"nom" binding:"required"`
	Description        string   `json:"description" binding:"required"`
	TypeProduit        string   `json:"type_produit" binding:"required,oneof=parapharmacie pharmacie medical"`
	Prix               float64  `json:"prix" binding:"required,gt=0"`
	PrixPromo          *float64 `json:"prix_promo"`
	Stock              int      `json:"stock" binding:"min=0"`
	CategorieID        uint     `json:"categorie_id" binding:"required"`
	Marque             string   `json:"marque"`
	Images             []string `json:"images"`
	DisponibleLocation bool     `json:"disponible_location"`
	PrixLocationJour   *float64 `json:"prix_location_jour"`
}

func (in *ProduitInput) valider() string {
	if in.PrixPromo != nil && *in.PrixPromo >= in.Prix {
		return "Le prix promotionnel doit être strictement inférieur au prix"
	}
	if in.DisponibleLocation && (in.PrixLocationJour == nil || *in.PrixLocationJour <= 0) {
		return "prix_location_jour est requis pour un produit disponible à la location"
	}
	return ""
}

// Accented letters common in French product names map to their ASCII base
// so slugs stay readable instead of losing the letter.
var translitterations = map[rune]string{
	'à': "a", 'â': "a", 'ä': "a", 'ç': "c", 'é': "e", 'è': "e", 'ê': "e",
	'ë': "e", 'î': "i", 'ï': "i", 'ô': "o", 'ö': "o", 'ù': "u", 'û': "u",
	'ü': "u", 'ÿ': "y", 'œ': "oe", 'æ': "ae",
}

// slugify keeps the slug URL-safe; a short random suffix avoids collisions
// between same-named products of different vendors.
func slugify(nom string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(nom)) {
		if t, ok := translitterations[r]; ok {
			b.WriteString(t)
			continue
		}
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '\'':
			if s := b.String(); s != "" && !strings.HasSuffix(s, "-") {
				b.WriteByte('-')
			}
		}
	}
	return strings.Trim(b.String(), "-") + "-" + uuid.NewString()[:8]
}

// POST /produits/
func CreateProduit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProduitInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données produit invalides: " + err.Error()})
			return
		}
		if msg := input.valider(); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		var categorie models.Categorie
		if err := db.First(&categorie, "id = ?", input.CategorieID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie inconnue"})
			return
		}

		produit := models.Produit{
			Nom:                input.Nom,
			Slug:               slugify(input.Nom),
			Description:        input.Description,
			TypeProduit:        models.TypeProduit(input.TypeProduit),
			Prix:               input.Prix,
			PrixPromo:          input.PrixPromo,
			Stock:              input.Stock,
			CategorieID:        input.CategorieID,
			VendeurID:          c.GetString("user_id"),
			Marque:             input.Marque,
			Images:             input.Images,
			DisponibleLocation: input.DisponibleLocation,
			PrixLocationJour:   input.PrixLocationJour,
			EstActif:           true,
		}
		if err := db.Create(&produit).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de créer le produit"})
			return
		}
		c.JSON(http.StatusCreated, produit)
	}
}
