package models

import (
	"time"

	"gorm.io/gorm"
)

type TypeProduit string

const (
	TypeParapharmacie TypeProduit = "parapharmacie"
	TypePharmacie     TypeProduit = "pharmacie"
	TypeMedical       TypeProduit = "medical"
)

// Produit is a parapharmacy, pharmacy or medical-equipment listing.
// PrixPromo only applies while strictly below Prix; PrixLocationJour is the
// per-day rate for listings available for rental.
type Produit struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom         string      `gorm:"not null" json:"nom"`
	Slug        string      `gorm:"uniqueIndex;not null" json:"slug"`
	Description string      `json:"description"`
	TypeProduit TypeProduit `gorm:"type:VARCHAR(20);index;not null" json:"type_produit"`

	Prix      float64  `gorm:"not null" json:"prix"`
	PrixPromo *float64 `json:"prix_promo,omitempty"`
	Stock     int      `gorm:"default:0" json:"stock"`

	CategorieID uint       `gorm:"index;not null" json:"categorie_id"`
	Categorie   *Categorie `gorm:"foreignKey:CategorieID" json:"categorie,omitempty"`
	VendeurID   string     `gorm:"index;not null" json:"vendeur_id"`
	Vendeur     *User      `gorm:"foreignKey:VendeurID" json:"vendeur,omitempty"`

	Marque string   `json:"marque,omitempty"`
	Images []string `gorm:"serializer:json" json:"images"`

	// Location de matériel
	DisponibleLocation bool     `gorm:"index" json:"disponible_location"`
	PrixLocationJour   *float64 `json:"prix_location_jour,omitempty"`

	// No column default: GORM skips zero-valued fields that carry one, which
	// would silently store inactive rows as active.
	EstActif bool `gorm:"index" json:"est_actif"`

	DateCreation     time.Time      `gorm:"autoCreateTime" json:"date_creation"`
	DateModification time.Time      `gorm:"autoUpdateTime" json:"date_modification"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// Disponible reports whether the listing can currently be purchased.
func (p *Produit) Disponible() bool {
	return p.EstActif && p.Stock > 0
}
