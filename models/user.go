package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type UserRole string

const (
	RoleClient  UserRole = "client"
	RoleVendeur UserRole = "vendeur"
)

// User represents a marketplace account, either a client or a vendor.
// Accounts created through Google sign-in start with an empty role until
// the role-selection step completes.
type User struct {
	ID           string   `gorm:"primaryKey" json:"id"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `json:"-"`
	Nom          string   `gorm:"not null" json:"nom"`
	Prenom       string   `json:"prenom"`
	Telephone    string   `json:"telephone"`
	Role         UserRole `gorm:"type:VARCHAR(10);index" json:"role"`

	// Google OAuth
	GoogleID     string `gorm:"index" json:"-"`
	PhotoURL     string `json:"photo_url,omitempty"`
	AuthProvider string `gorm:"default:email" json:"auth_provider"`

	// Default address, editable from the profile page
	Adresse    string `json:"adresse"`
	Ville      string `json:"ville"`
	CodePostal string `json:"code_postal"`

	EstActif   bool `json:"est_actif"`
	EstVerifie bool `json:"est_verifie"`

	DateInscription   time.Time  `gorm:"autoCreateTime" json:"date_inscription"`
	DerniereConnexion *time.Time `json:"derniere_connexion,omitempty"`
}

func (u *User) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(raw string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(raw)) == nil
}

func (u *User) EstVendeur() bool {
	return u.Role == RoleVendeur
}
