package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Para-Plus/para-plus/models"
)

type AjouterArticleInput struct {
	ProduitID         uint       `json:"produit_id" binding:"required"`
	Quantite          int        `json:"quantite" binding:"required,min=1"`
	TypeArticle       string     `json:"type_article" binding:"required,oneof=achat location"`
	DateDebutLocation *time.Time `json:"date_debut_location"`
	DateFinLocation   *time.Time `json:"date_fin_location"`
}

type ModifierQuantiteInput struct {
	ArticleID uint `json:"article_id" binding:"required"`
	Quantite  int  `json:"quantite" binding:"required,min=1"`
}

// ChargerOuCreerPanier returns the user's cart, creating it lazily on first
// fetch. Lines come back ordered by insertion.
func ChargerOuCreerPanier(db *gorm.DB, userID string) (*models.Panier, error) {
	var panier models.Panier
	err := db.Preload("Articles", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	}).Where("utilisateur_id = ?", userID).First(&panier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		panier = models.Panier{UtilisateurID: userID}
		if err := db.Create(&panier).Error; err != nil {
			return nil, err
		}
		return &panier, nil
	}
	if err != nil {
		return nil, err
	}
	return &panier, nil
}

// rafraichirTotal recomputes and persists the cart total after a mutation,
// then returns the reloaded cart.
func rafraichirTotal(db *gorm.DB, userID string) (*models.Panier, error) {
	panier, err := ChargerOuCreerPanier(db, userID)
	if err != nil {
		return nil, err
	}
	panier.CalculerTotal()
	if err := db.Model(&models.Panier{}).Where("id = ?", panier.ID).Update("total", panier.Total).Error; err != nil {
		return nil, err
	}
	return panier, nil
}

// GET /panier/
func GetPanier(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		panier, err := ChargerOuCreerPanier(db, c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger le panier"})
			return
		}
		panier.CalculerTotal()
		c.JSON(http.StatusOK, panier)
	}
}

// POST /panier/ajouter/
// Adding the same product in the same mode merges quantities; rental lines
// with a different date range stay distinct.
func AjouterArticle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AjouterArticleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
			return
		}

		var produit models.Produit
		if err := db.First(&produit, "id = ?", input.ProduitID).Error; err != nil {
			status := http.StatusInternalServerError
			msg := "Impossible de vérifier le produit"
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusBadRequest
				msg = "Produit introuvable"
			}
			c.JSON(status, gin.H{"error": msg})
			return
		}
		if !produit.EstActif {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ce produit n'est plus disponible"})
			return
		}

		mode := models.TypeArticle(input.TypeArticle)
		article := models.ArticlePanier{
			ProduitID:    produit.ID,
			NomProduit:   produit.Nom,
			SlugProduit:  produit.Slug,
			StockProduit: produit.Stock,
			TypeArticle:  mode,
			Quantite:     input.Quantite,
			PrixUnitaire: produit.PrixUnitaireEffectif(),
			AddedAt:      time.Now(),
		}
		if len(produit.Images) > 0 {
			article.ImageProduit = produit.Images[0]
		}

		switch mode {
		case models.ArticleLocation:
			if !produit.DisponibleLocation || produit.PrixLocationJour == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Ce produit n'est pas disponible à la location"})
				return
			}
			article.PrixLocationJour = *produit.PrixLocationJour
			article.DateDebutLocation = input.DateDebutLocation
			article.DateFinLocation = input.DateFinLocation
		default:
			if produit.Stock < input.Quantite {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock insuffisant pour " + produit.Nom})
				return
			}
		}

		if err := article.CalculerPrixTotal(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		panier, err := ChargerOuCreerPanier(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger le panier"})
			return
		}

		// Merge into an existing line for the same product and mode; rental
		// lines only merge when the date range matches.
		lookup := db.Where("panier_id = ? AND produit_id = ? AND type_article = ?",
			panier.ID, produit.ID, mode)
		if mode == models.ArticleLocation {
			lookup = lookup.Where("date_debut_location = ? AND date_fin_location = ?",
				input.DateDebutLocation, input.DateFinLocation)
		}
		var existant models.ArticlePanier
		if lookupErr := lookup.First(&existant).Error; lookupErr == nil {
			existant.Quantite += input.Quantite
			if mode == models.ArticleAchat && produit.Stock < existant.Quantite {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock insuffisant pour " + produit.Nom})
				return
			}
			existant.AddedAt = time.Now()
			if err := existant.CalculerPrixTotal(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := db.Save(&existant).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de modifier le panier"})
				return
			}
		} else {
			article.PanierID = panier.ID
			if err := db.Create(&article).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible d'ajouter l'article"})
				return
			}
		}

		panier, err = rafraichirTotal(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de recalculer le panier"})
			return
		}
		c.JSON(http.StatusCreated, panier)
	}
}

// PUT /panier/modifier/
func ModifierQuantite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input ModifierQuantiteInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
			return
		}

		panier, err := ChargerOuCreerPanier(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger le panier"})
			return
		}

		var article models.ArticlePanier
		if err := db.Where("id = ? AND panier_id = ?", input.ArticleID, panier.ID).First(&article).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans votre panier"})
			return
		}

		if article.TypeArticle == models.ArticleAchat {
			var produit models.Produit
			if err := db.First(&produit, "id = ?", article.ProduitID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Ce produit n'est plus disponible"})
				} else {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de vérifier le produit"})
				}
				return
			}
			if produit.Stock < input.Quantite {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock insuffisant pour " + article.NomProduit})
				return
			}
		}

		article.Quantite = input.Quantite
		if err := article.CalculerPrixTotal(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := db.Save(&article).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de modifier l'article"})
			return
		}

		panier, err = rafraichirTotal(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de recalculer le panier"})
			return
		}
		c.JSON(http.StatusOK, panier)
	}
}

// DELETE /panier/article/:id/
func SupprimerArticle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		panier, err := ChargerOuCreerPanier(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger le panier"})
			return
		}

		result := db.Where("id = ? AND panier_id = ?", c.Param("id"), panier.ID).Delete(&models.ArticlePanier{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de supprimer l'article"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans votre panier"})
			return
		}

		panier, err = rafraichirTotal(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de recalculer le panier"})
			return
		}
		c.JSON(http.StatusOK, panier)
	}
}

// DELETE /panier/vider/
// Empties the cart without destroying it.
func ViderPanier(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		panier, err := ChargerOuCreerPanier(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger le panier"})
			return
		}

		if err := db.Where("panier_id = ?", panier.ID).Delete(&models.ArticlePanier{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de vider le panier"})
			return
		}
		if err := db.Model(&models.Panier{}).Where("id = ?", panier.ID).Update("total", 0).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de recalculer le panier"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Panier vidé"})
	}
}
