package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/Para-Plus/para-plus/models"
)

// GET /produits/vendeur/export/
// Exports the authenticated vendor's catalog as an Excel workbook.
func ExportProduitsExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var produits []models.Produit
		if err := db.Preload("Categorie").
			Where("vendeur_id = ?", c.GetString("user_id")).
			Order("date_creation DESC").
			Find(&produits).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger vos produits"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Produits")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de créer le classeur"})
			return
		}

		headers := []string{
			"ID", "Nom", "Slug", "Type", "Catégorie", "Prix", "Prix promo",
			"Stock", "Location", "Prix location/jour", "Actif", "Créé le",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range produits {
			row := sheet.AddRow()
			row.AddCell().SetValue(int(p.ID))
			row.AddCell().SetValue(p.Nom)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(string(p.TypeProduit))
			if p.Categorie != nil {
				row.AddCell().SetValue(p.Categorie.Nom)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.Prix)
			if p.PrixPromo != nil {
				row.AddCell().SetValue(*p.PrixPromo)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(boolFR(p.DisponibleLocation))
			if p.PrixLocationJour != nil {
				row.AddCell().SetValue(*p.PrixLocationJour)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(boolFR(p.EstActif))
			row.AddCell().SetValue(p.DateCreation.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=produits.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible d'écrire le classeur"})
			return
		}
	}
}

func boolFR(b bool) string {
	if b {
		return "oui"
	}
	return "non"
}
