package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/Para-Plus/para-plus/controllers/product"
)

// SetupCategorieRoutes registers all /categories/* endpoints (public).
func SetupCategorieRoutes(r *gin.Engine, db *gorm.DB) {
	categories := r.Group("/categories")
	{
		categories.GET("/", productControllers.GetCategories(db))
		categories.GET("/:slug/", productControllers.GetCategorieParSlug(db))
		categories.GET("/:slug/sous-categories/", productControllers.GetSousCategories(db))
	}
}
