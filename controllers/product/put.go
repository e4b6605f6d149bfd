package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Para-Plus/para-plus/models"
)

// proprietaire loads the product and checks it belongs to the caller.
func proprietaire(db *gorm.DB, c *gin.Context) (*models.Produit, bool) {
	var produit models.Produit
	if err := db.First(&produit, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger le produit"})
		}
		return nil, false
	}
	if produit.VendeurID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit appartient à un autre vendeur"})
		return nil, false
	}
	return &produit, true
}

// PUT /produits/:id/
func UpdateProduit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		produit, ok := proprietaire(db, c)
		if !ok {
			return
		}

		var input ProduitInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données produit invalides: " + err.Error()})
			return
		}
		if msg := input.valider(); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		if input.CategorieID != produit.CategorieID {
			var categorie models.Categorie
			if err := db.First(&categorie, "id = ?", input.CategorieID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie inconnue"})
				return
			}
		}

		produit.Nom = input.Nom
		produit.Description = input.Description
		produit.TypeProduit = models.TypeProduit(input.TypeProduit)
		produit.Prix = input.Prix
		produit.PrixPromo = input.PrixPromo
		produit.Stock = input.Stock
		produit.CategorieID = input.CategorieID
		produit.Marque = input.Marque
		produit.Images = input.Images
		produit.DisponibleLocation = input.DisponibleLocation
		produit.PrixLocationJour = input.PrixLocationJour

		if err := db.Save(produit).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de modifier le produit"})
			return
		}
		c.JSON(http.StatusOK, produit)
	}
}
