package userControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Para-Plus/para-plus/auth"
	"github.com/Para-Plus/para-plus/models"
)

// -------- Request structs --------

type InscriptionRequest struct {
	Email      string `json:"email" binding:"required,email"`
	MotDePasse string `json:"mot_de_passe" binding:"required,min=8"`
	Nom        string `json:"nom" binding:"required"`
	Prenom     string `json:"prenom" binding:"required"`
	Telephone  string `json:"telephone"`
	Role       string `json:"role" binding:"required,oneof=client vendeur"`
}

type ConnexionRequest struct {
	Email      string `json:"email" binding:"required,email"`
	MotDePasse string `json:"mot_de_passe" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type ModifierProfilRequest struct {
	Nom        *string `json:"nom"`
	Prenom     *string `json:"prenom"`
	Telephone  *string `json:"telephone"`
	Adresse    *string `json:"adresse"`
	Ville      *string `json:"ville"`
	CodePostal *string `json:"code_postal"`
}

type ChangerMotDePasseRequest struct {
	AncienMotDePasse  string `json:"ancien_mot_de_passe" binding:"required"`
	NouveauMotDePasse string `json:"nouveau_mot_de_passe" binding:"required,min=8"`
}

type ChoisirRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=client vendeur"`
}

func authResponse(user *models.User) (gin.H, error) {
	access, refresh, err := auth.IssueTokenPair(user)
	if err != nil {
		return nil, err
	}
	return gin.H{"access": access, "refresh": refresh, "user": user}, nil
}

// -------- Handlers --------

// POST /auth/inscription/
func Inscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req InscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données d'inscription invalides: " + err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Un compte existe déjà avec cet email"})
			return
		}

		user := models.User{
			ID:        uuid.NewString(),
			Email:     req.Email,
			Nom:       req.Nom,
			Prenom:    req.Prenom,
			Telephone: req.Telephone,
			Role:      models.UserRole(req.Role),
			EstActif:  true,
		}
		if err := user.SetPassword(req.MotDePasse); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de sécuriser le mot de passe"})
			return
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de créer le compte"})
			return
		}

		resp, err := authResponse(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de générer les jetons"})
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// POST /auth/connexion/
func Connexion(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConnexionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
			return
		}
		if !user.EstActif || !user.CheckPassword(req.MotDePasse) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
			return
		}

		now := time.Now()
		db.Model(&user).Update("derniere_connexion", &now)

		resp, err := authResponse(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de générer les jetons"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// POST /auth/deconnexion/
// Tokens are stateless; the client discards its pair. The endpoint exists so
// the logout round trip of the contract always succeeds.
func Deconnexion() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Déconnexion réussie"})
	}
}

// POST /auth/token/refresh/
func RefreshToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refresh est requis"})
			return
		}

		claims, err := auth.ParseRefreshToken(req.Refresh)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Jeton de rafraîchissement invalide"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil || !user.EstActif {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Compte introuvable ou désactivé"})
			return
		}

		access, refresh, err := auth.IssueTokenPair(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de générer les jetons"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
	}
}

// GET /auth/profil/
func GetProfil(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.GetString("user_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PATCH /auth/profil/modifier/
func ModifierProfil(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ModifierProfilRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données de profil invalides"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", c.GetString("user_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
			return
		}

		updates := map[string]interface{}{}
		if req.Nom != nil {
			updates["nom"] = *req.Nom
		}
		if req.Prenom != nil {
			updates["prenom"] = *req.Prenom
		}
		if req.Telephone != nil {
			updates["telephone"] = *req.Telephone
		}
		if req.Adresse != nil {
			updates["adresse"] = *req.Adresse
		}
		if req.Ville != nil {
			updates["ville"] = *req.Ville
		}
		if req.CodePostal != nil {
			updates["code_postal"] = *req.CodePostal
		}
		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de modifier le profil"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// POST /auth/changer-mot-de-passe/
func ChangerMotDePasse(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangerMotDePasseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ancien et nouveau mot de passe requis (8 caractères minimum)"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", c.GetString("user_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
			return
		}
		if !user.CheckPassword(req.AncienMotDePasse) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ancien mot de passe incorrect"})
			return
		}
		if err := user.SetPassword(req.NouveauMotDePasse); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de sécuriser le mot de passe"})
			return
		}
		if err := db.Model(&user).Update("password_hash", user.PasswordHash).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de changer le mot de passe"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Mot de passe modifié"})
	}
}

// PATCH /auth/choisir-role/
// Finalizes accounts created through Google sign-in. The role is set once;
// existing roles are never overwritten here.
func ChoisirRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChoisirRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role doit être client ou vendeur"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", c.GetString("user_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
			return
		}
		if user.Role != "" {
			c.JSON(http.StatusConflict, gin.H{"error": "Le rôle de ce compte est déjà défini"})
			return
		}
		if err := db.Model(&user).Update("role", req.Role).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de définir le rôle"})
			return
		}
		user.Role = models.UserRole(req.Role)

		// The old token pair carries the empty role; reissue.
		resp, err := authResponse(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de générer les jetons"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
