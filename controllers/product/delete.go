package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Para-Plus/para-plus/models"
)

// DELETE /produits/:id/
// Soft delete: the row survives for historical order references.
func DeleteProduit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		produit, ok := proprietaire(db, c)
		if !ok {
			return
		}
		if err := db.Delete(&models.Produit{}, produit.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de supprimer le produit"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
	}
}
