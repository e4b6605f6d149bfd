package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Para-Plus/para-plus/models"
)

// GET /produits/:slug/
func GetProduitParSlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var produit models.Produit
		err := db.Preload("Categorie").
			Where("slug = ? AND est_actif = ?", c.Param("slug"), true).
			First(&produit).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger le produit"})
			return
		}
		c.JSON(http.StatusOK, produit)
	}
}

// GET /produits/:slug/similaires/
// Same category, excluding the product itself. The segment carries the
// numeric product id per the API contract.
func GetProduitsSimilaires(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var produit models.Produit
		if err := db.First(&produit, "id = ?", c.Param("slug")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}

		var similaires []models.Produit
		if err := db.Where("categorie_id = ? AND id != ? AND est_actif = ?", produit.CategorieID, produit.ID, true).
			Order("date_creation DESC").
			Limit(8).
			Find(&similaires).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger les produits similaires"})
			return
		}
		c.JSON(http.StatusOK, similaires)
	}
}

// GET /produits/vendeur/:id/
// Public listing of a vendor's active products.
func GetProduitsVendeur(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var produits []models.Produit
		if err := db.Where("vendeur_id = ? AND est_actif = ?", c.Param("id"), true).
			Order("date_creation DESC").
			Find(&produits).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger les produits du vendeur"})
			return
		}
		c.JSON(http.StatusOK, produits)
	}
}

// GET /produits/vendeur/
// The authenticated vendor's own catalog, soft-deleted rows excluded but
// inactive listings included so they stay editable.
func GetMesProduits(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var produits []models.Produit
		if err := db.Where("vendeur_id = ?", c.GetString("user_id")).
			Order("date_creation DESC").
			Find(&produits).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger vos produits"})
			return
		}
		c.JSON(http.StatusOK, produits)
	}
}
