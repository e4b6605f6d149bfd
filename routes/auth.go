package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Para-Plus/para-plus/auth"
	userControllers "github.com/Para-Plus/para-plus/controllers/user"
	"github.com/Para-Plus/para-plus/middleware"
)

// SetupAuthRoutes registers all /auth/* endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		// Public
		authGroup.POST("/inscription/", userControllers.Inscription(db))
		authGroup.POST("/connexion/", userControllers.Connexion(db))
		authGroup.POST("/deconnexion/", userControllers.Deconnexion())
		authGroup.POST("/google/", auth.GoogleLoginHandler(db))
		authGroup.POST("/token/refresh/", userControllers.RefreshToken(db))

		// JWT-protected
		protected := authGroup.Group("")
		protected.Use(middleware.ValidateToken)
		{
			protected.GET("/profil/", userControllers.GetProfil(db))
			protected.PATCH("/profil/modifier/", userControllers.ModifierProfil(db))
			protected.POST("/changer-mot-de-passe/", userControllers.ChangerMotDePasse(db))
			protected.PATCH("/choisir-role/", userControllers.ChoisirRole(db))
		}
	}
}
