package auth

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"github.com/Para-Plus/para-plus/models"
)

// googleValidator is swappable in tests.
var googleValidator = func(ctx context.Context, rawToken, audience string) (*idtoken.Payload, error) {
	return idtoken.Validate(ctx, rawToken, audience)
}

type googleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// GoogleLoginHandler verifies a Google ID token, creates the account on
// first sight and returns a token pair. New Google accounts carry an empty
// role until /auth/choisir-role/ completes; the response flags that case so
// the client can route to role selection.
func GoogleLoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req googleLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id_token est requis"})
			return
		}

		payload, err := googleValidator(c.Request.Context(), req.IDToken, os.Getenv("GOOGLE_CLIENT_ID"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Jeton Google invalide"})
			return
		}

		email, _ := payload.Claims["email"].(string)
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Jeton Google sans adresse email"})
			return
		}
		nom, _ := payload.Claims["family_name"].(string)
		prenom, _ := payload.Claims["given_name"].(string)
		photo, _ := payload.Claims["picture"].(string)

		var user models.User
		err = db.Where("google_id = ? OR email = ?", payload.Subject, email).First(&user).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			user = models.User{
				ID:           uuid.NewString(),
				Email:        email,
				Nom:          nom,
				Prenom:       prenom,
				GoogleID:     payload.Subject,
				PhotoURL:     photo,
				AuthProvider: "google",
				EstActif:     true,
				EstVerifie:   true, // Google vouches for the email
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de créer le compte"})
				return
			}
		case err == nil:
			now := time.Now()
			db.Model(&user).Updates(map[string]interface{}{
				"google_id":          payload.Subject,
				"photo_url":          photo,
				"derniere_connexion": &now,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
			return
		}

		access, refresh, err := IssueTokenPair(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de générer les jetons"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access":      access,
			"refresh":     refresh,
			"user":        user,
			"role_requis": user.Role == "",
		})
	}
}
