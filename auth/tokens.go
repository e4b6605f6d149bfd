package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/Para-Plus/para-plus/models"
)

const (
	AccessTokenTTL  = 1 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidToken  = errors.New("jeton invalide ou expiré")
	ErrWrongTokenUse = errors.New("type de jeton inattendu")
)

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Use    string `json:"use"` // "access" or "refresh"
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func issue(user *models.User, use string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		Use:    use,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// IssueTokenPair returns a fresh access/refresh token pair for the user.
func IssueTokenPair(user *models.User) (access string, refresh string, err error) {
	if access, err = issue(user, "access", AccessTokenTTL); err != nil {
		return "", "", err
	}
	if refresh, err = issue(user, "refresh", RefreshTokenTTL); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func parse(tokenString, use string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims.Use != use {
		return nil, ErrWrongTokenUse
	}
	return claims, nil
}

func ParseAccessToken(tokenString string) (*Claims, error) {
	return parse(tokenString, "access")
}

func ParseRefreshToken(tokenString string) (*Claims, error) {
	return parse(tokenString, "refresh")
}
