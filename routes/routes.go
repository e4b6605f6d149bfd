package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	SetupAuthRoutes(r, db)
	SetupProduitRoutes(r, db)
	SetupCategorieRoutes(r, db)
	SetupPanierRoutes(r, db)
	SetupCommandeRoutes(r, db)
}
