package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Para-Plus/para-plus/models"
)

// GET /categories/
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Categorie
		if err := db.Where("est_active = ?", true).Order("nom ASC").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger les catégories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GET /categories/:slug/
func GetCategorieParSlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categorie models.Categorie
		err := db.Where("slug = ? AND est_active = ?", c.Param("slug"), true).First(&categorie).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger la catégorie"})
			return
		}
		c.JSON(http.StatusOK, categorie)
	}
}

// GET /categories/:slug/sous-categories/
// The parent segment accepts a numeric id or a slug.
func GetSousCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("slug")
		lookup := db.Where("slug = ?", ref)
		if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
			lookup = db.Where("id = ?", uint(id))
		}
		var parent models.Categorie
		if err := lookup.First(&parent).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
			return
		}
		var sousCategories []models.Categorie
		if err := db.Where("parent_id = ? AND est_active = ?", parent.ID, true).
			Order("nom ASC").
			Find(&sousCategories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger les sous-catégories"})
			return
		}
		c.JSON(http.StatusOK, sousCategories)
	}
}
