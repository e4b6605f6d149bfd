package productControllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Para-Plus/para-plus/models"
)

const (
	limiteParDefaut = 20
	limiteMax       = 100
)

// GET /produits/
// Filters: type_produit, categorie_id, prix_min, prix_max,
// disponible_location, recherche; sorting via tri (prix_asc, prix_desc,
// recent); page/limite pagination.
func GetProduits(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Produit{}).Preload("Categorie").Where("est_actif = ?", true)

		if tp := c.Query("type_produit"); tp != "" {
			query = query.Where("type_produit = ?", tp)
		}
		if cid := c.Query("categorie_id"); cid != "" {
			id, err := strconv.ParseUint(cid, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "categorie_id invalide"})
				return
			}
			query = query.Where("categorie_id = ?", uint(id))
		}
		if pm := c.Query("prix_min"); pm != "" {
			v, err := strconv.ParseFloat(pm, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "prix_min invalide"})
				return
			}
			query = query.Where("prix >= ?", v)
		}
		if pm := c.Query("prix_max"); pm != "" {
			v, err := strconv.ParseFloat(pm, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "prix_max invalide"})
				return
			}
			query = query.Where("prix <= ?", v)
		}
		if c.Query("disponible_location") == "true" {
			query = query.Where("disponible_location = ?", true)
		}
		if recherche := c.Query("recherche"); recherche != "" {
			like := "%" + recherche + "%"
			query = query.Where("nom LIKE ? OR description LIKE ? OR marque LIKE ?", like, like, like)
		}

		switch c.Query("tri") {
		case "prix_asc":
			query = query.Order("prix ASC")
		case "prix_desc":
			query = query.Order("prix DESC")
		default: // recent
			query = query.Order("date_creation DESC")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger les produits"})
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limite, _ := strconv.Atoi(c.DefaultQuery("limite", strconv.Itoa(limiteParDefaut)))
		if limite < 1 || limite > limiteMax {
			limite = limiteParDefaut
		}

		var produits []models.Produit
		if err := query.Offset((page - 1) * limite).Limit(limite).Find(&produits).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger les produits"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"produits":    produits,
			"total":       total,
			"page":        page,
			"pages_total": int(math.Ceil(float64(total) / float64(limite))),
		})
	}
}
