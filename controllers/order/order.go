package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	cartControllers "github.com/Para-Plus/para-plus/controllers/cart"
	"github.com/Para-Plus/para-plus/models"
)

// -------- Request structs --------

type CreerCommandeRequest struct {
	AdresseLivraison models.AdresseLivraison `json:"adresse_livraison" binding:"required"`
	MethodePaiement  string                  `json:"methode_paiement" binding:"required"`
	Notes            string                  `json:"notes"`
}

type ModifierStatutRequest struct {
	Statut string `json:"statut" binding:"required"`
}

// numeroCommande builds a unique human-scannable order number.
func numeroCommande() string {
	return "CMD-" + time.Now().Format("20060102") + "-" + uuid.NewString()[:8]
}

// erreurValidation marks checkout rejections the client can correct,
// as opposed to internal failures.
type erreurValidation string

func (e erreurValidation) Error() string { return string(e) }

// -------- Checkout --------

// POST /commandes/creer/
// Validates the address and payment method before touching storage, then
// atomically snapshots the cart into an order: conditional stock decrement
// per purchase line, subtotal from snapshotted line totals, flat delivery
// fee, cart cleared. Any failure rolls the whole thing back.
func CreerCommande(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req CreerCommandeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données de commande invalides: " + err.Error()})
			return
		}

		if erreurs := req.AdresseLivraison.Valider(); len(erreurs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse de livraison incomplète", "erreurs": erreurs})
			return
		}

		switch req.MethodePaiement {
		case models.PaiementALivraison:
			// the only live method
		case models.PaiementCarte, models.PaiementVirement:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cette méthode de paiement n'est pas encore disponible"})
			return
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Méthode de paiement inconnue"})
			return
		}

		panier, err := cartControllers.ChargerOuCreerPanier(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger le panier"})
			return
		}
		if len(panier.Articles) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Votre panier est vide"})
			return
		}

		var commande models.Commande
		err = db.Transaction(func(tx *gorm.DB) error {
			var articles []models.ArticleCommande
			sousTotal := 0.0

			for _, ligne := range panier.Articles {
				var produit models.Produit
				if err := tx.First(&produit, "id = ?", ligne.ProduitID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return erreurValidation("le produit " + ligne.NomProduit + " n'existe plus")
					}
					return err
				}

				if ligne.TypeArticle == models.ArticleAchat {
					// Conditional decrement: rejects concurrent exhaustion
					// without a row lock.
					res := tx.Model(&models.Produit{}).
						Where("id = ? AND stock >= ?", ligne.ProduitID, ligne.Quantite).
						UpdateColumn("stock", gorm.Expr("stock - ?", ligne.Quantite))
					if res.Error != nil {
						return res.Error
					}
					if res.RowsAffected == 0 {
						return erreurValidation("stock insuffisant pour " + ligne.NomProduit)
					}
				}

				if err := ligne.CalculerPrixTotal(); err != nil {
					return erreurValidation(err.Error())
				}
				sousTotal += ligne.PrixTotal

				article := models.ArticleCommande{
					ProduitID:         ligne.ProduitID,
					VendeurID:         produit.VendeurID,
					NomProduit:        ligne.NomProduit,
					Quantite:          ligne.Quantite,
					PrixUnitaire:      ligne.PrixUnitaire,
					PrixTotal:         ligne.PrixTotal,
					TypeArticle:       ligne.TypeArticle,
					DateDebutLocation: ligne.DateDebutLocation,
					DateFinLocation:   ligne.DateFinLocation,
				}
				if ligne.TypeArticle == models.ArticleLocation {
					// The meaningful unit price of a rental is its day rate.
					article.PrixUnitaire = ligne.PrixLocationJour
					article.PrixLocationJour = ligne.PrixLocationJour
					article.JoursLocation = ligne.JoursLocation
				}
				articles = append(articles, article)
			}

			commande = models.Commande{
				NumeroCommande:   numeroCommande(),
				UtilisateurID:    userID,
				Articles:         articles,
				TotalArticles:    sousTotal,
				FraisLivraison:   models.FraisLivraisonStandard,
				TotalCommande:    sousTotal + models.FraisLivraisonStandard,
				AdresseLivraison: req.AdresseLivraison,
				Statut:           models.StatutEnAttente,
				StatutPaiement:   models.PaiementEnAttente,
				MethodePaiement:  req.MethodePaiement,
			}
			if err := tx.Create(&commande).Error; err != nil {
				return err
			}

			if err := tx.Where("panier_id = ?", panier.ID).Delete(&models.ArticlePanier{}).Error; err != nil {
				return err
			}
			return tx.Model(&models.Panier{}).Where("id = ?", panier.ID).Update("total", 0).Error
		})
		if err != nil {
			var rejet erreurValidation
			if errors.As(err, &rejet) {
				c.JSON(http.StatusBadRequest, gin.H{"error": rejet.Error()})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de créer la commande"})
			}
			return
		}

		diffuserNouvelleCommande(commande)
		c.JSON(http.StatusCreated, commande)
	}
}

// -------- Client views --------

// GET /commandes/
func GetMesCommandes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var commandes []models.Commande
		if err := db.Preload("Articles").
			Where("utilisateur_id = ?", c.GetString("user_id")).
			Order("date_commande DESC").
			Find(&commandes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger vos commandes"})
			return
		}
		c.JSON(http.StatusOK, commandes)
	}
}

// GET /commandes/:id/
// Visible to the owning client, and to vendors with at least one line in it.
func GetCommande(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var commande models.Commande
		if err := db.Preload("Articles").First(&commande, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger la commande"})
			return
		}

		userID := c.GetString("user_id")
		if commande.UtilisateurID != userID {
			articles := articlesDuVendeur(&commande, userID)
			if len(articles) == 0 {
				c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous concerne pas"})
				return
			}
			// A vendor sees their projection of the order, never the other
			// vendors' lines.
			commande.Articles = articles
		}
		c.JSON(http.StatusOK, commande)
	}
}

func articlesDuVendeur(commande *models.Commande, vendeurID string) []models.ArticleCommande {
	var articles []models.ArticleCommande
	for _, a := range commande.Articles {
		if a.VendeurID == vendeurID {
			articles = append(articles, a)
		}
	}
	return articles
}

func vendeurImplique(commande *models.Commande, vendeurID string) bool {
	return len(articlesDuVendeur(commande, vendeurID)) > 0
}

// POST /commandes/:id/annuler/
// Client cancel, valid only while the order is still pending. The update is
// conditional on the current status so a concurrent vendor transition
// surfaces as a rejection instead of being overwritten.
func AnnulerCommande(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var commande models.Commande
		if err := db.First(&commande, "id = ? AND utilisateur_id = ?", c.Param("id"), userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
			return
		}

		if err := commande.Annuler(); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Seule une commande en attente peut être annulée"})
			return
		}

		res := db.Model(&models.Commande{}).
			Where("id = ? AND statut = ?", commande.ID, models.StatutEnAttente).
			Update("statut", models.StatutAnnulee)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible d'annuler la commande"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Le statut de la commande a changé, annulation impossible"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Commande annulée", "statut_commande": models.StatutAnnulee})
	}
}

// -------- Vendor views --------

// GET /commandes/vendeur/
// Projection: only orders containing the vendor's products, with the line
// list filtered down to their own products.
func GetCommandesVendeur(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendeurID := c.GetString("user_id")

		var commandes []models.Commande
		err := db.Preload("Articles", "vendeur_id = ?", vendeurID).
			Joins("JOIN article_commandes ac ON ac.commande_id = commandes.id").
			Where("ac.vendeur_id = ?", vendeurID).
			Group("commandes.id").
			Order("date_commande DESC").
			Find(&commandes).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger les commandes"})
			return
		}
		c.JSON(http.StatusOK, commandes)
	}
}

// PATCH /commandes/:id/statut/
// Vendor forward transition per the lifecycle table; never to annulee and
// never from a terminal status. Conditional update on the current status
// tolerates concurrent actors.
func ModifierStatutCommande(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendeurID := c.GetString("user_id")

		var req ModifierStatutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "statut est requis"})
			return
		}
		cible := models.StatutCommande(req.Statut)
		if !models.StatutCommandeValide(cible) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + req.Statut})
			return
		}

		var commande models.Commande
		if err := db.Preload("Articles").First(&commande, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
			return
		}
		if !vendeurImplique(&commande, vendeurID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous concerne pas"})
			return
		}

		statutActuel := commande.Statut
		if err := commande.Avancer(cible); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Transition de statut invalide: " + string(statutActuel) + " → " + req.Statut})
			return
		}

		res := db.Model(&models.Commande{}).
			Where("id = ? AND statut = ?", commande.ID, statutActuel).
			Update("statut", cible)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de modifier le statut"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Le statut de la commande a changé entre-temps"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Statut modifié", "statut_commande": cible})
	}
}
