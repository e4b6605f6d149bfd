package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Para-Plus/para-plus/controllers/order"
	"github.com/Para-Plus/para-plus/middleware"
	"github.com/Para-Plus/para-plus/models"
)

// SetupCommandeRoutes registers all /commandes/* endpoints.
func SetupCommandeRoutes(r *gin.Engine, db *gorm.DB) {
	commandes := r.Group("/commandes")

	// Live feed for vendor dashboards; the websocket handshake carries no
	// Authorization header from browsers, so it sits outside the JWT group.
	commandes.GET("/ws/", orderControllers.CommandesWebSocketHandler)

	commandes.Use(middleware.ValidateToken)
	{
		commandes.GET("/", orderControllers.GetMesCommandes(db))
		commandes.POST("/creer/", orderControllers.CreerCommande(db))
		commandes.GET("/:id/", orderControllers.GetCommande(db))
		commandes.POST("/:id/annuler/", orderControllers.AnnulerCommande(db))

		vendeur := commandes.Group("")
		vendeur.Use(middleware.RequireRole(models.RoleVendeur))
		{
			vendeur.GET("/vendeur/", orderControllers.GetCommandesVendeur(db))
			vendeur.PATCH("/:id/statut/", orderControllers.ModifierStatutCommande(db))
		}
	}
}
