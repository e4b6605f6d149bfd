package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/Para-Plus/para-plus/controllers/product"
	"github.com/Para-Plus/para-plus/middleware"
	"github.com/Para-Plus/para-plus/models"
)

// SetupProduitRoutes registers all /produits/* endpoints. Browsing is
// public; catalog mutation and export require the vendeur role.
func SetupProduitRoutes(r *gin.Engine, db *gorm.DB) {
	produits := r.Group("/produits")
	{
		produits.GET("/", productControllers.GetProduits(db))
		produits.GET("/vendeur/:id/", productControllers.GetProduitsVendeur(db))
		produits.GET("/:slug/", productControllers.GetProduitParSlug(db))
		produits.GET("/:slug/similaires/", productControllers.GetProduitsSimilaires(db))

		vendeur := produits.Group("")
		vendeur.Use(middleware.ValidateToken, middleware.RequireRole(models.RoleVendeur))
		{
			vendeur.GET("/vendeur/", productControllers.GetMesProduits(db))
			vendeur.GET("/vendeur/export/", productControllers.ExportProduitsExcel(db))
			vendeur.POST("/", productControllers.CreateProduit(db))
			vendeur.PUT("/:id/", productControllers.UpdateProduit(db))
			vendeur.DELETE("/:id/", productControllers.DeleteProduit(db))
		}
	}
}
