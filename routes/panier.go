package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Para-Plus/para-plus/controllers/cart"
	"github.com/Para-Plus/para-plus/middleware"
)

// SetupPanierRoutes registers all /panier/* endpoints (JWT-protected).
func SetupPanierRoutes(r *gin.Engine, db *gorm.DB) {
	panier := r.Group("/panier")
	panier.Use(middleware.ValidateToken)
	{
		panier.GET("/", cartControllers.GetPanier(db))
		panier.POST("/ajouter/", cartControllers.AjouterArticle(db))
		panier.PUT("/modifier/", cartControllers.ModifierQuantite(db))
		panier.DELETE("/article/:id/", cartControllers.SupprimerArticle(db))
		panier.DELETE("/vider/", cartControllers.ViderPanier(db))
	}
}
