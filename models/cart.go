package models

import "time"

type TypeArticle string

const (
	ArticleAchat    TypeArticle = "achat"
	ArticleLocation TypeArticle = "location"
)

// Panier is the single server-held cart of a user, created lazily on first
// fetch and never destroyed; clearing it only removes its lines.
type Panier struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UtilisateurID    string          `gorm:"uniqueIndex;not null" json:"utilisateur_id"`
	Articles         []ArticlePanier `gorm:"foreignKey:PanierID;constraint:OnDelete:CASCADE" json:"articles"`
	Total            float64         `json:"total"`
	DateCreation     time.Time       `gorm:"autoCreateTime" json:"date_creation"`
	DateModification time.Time       `gorm:"autoUpdateTime" json:"date_modification"`
}

// ArticlePanier snapshots the product at add time so cart rendering does not
// depend on later catalog edits. Rental lines carry their date range.
type ArticlePanier struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PanierID  uint `gorm:"index" json:"-"`
	ProduitID uint `gorm:"index" json:"produit_id"`

	NomProduit   string `json:"nom_produit"`
	SlugProduit  string `json:"slug_produit"`
	ImageProduit string `json:"image_produit,omitempty"`
	StockProduit int    `json:"stock_produit"`

	TypeArticle      TypeArticle `gorm:"type:VARCHAR(10);not null" json:"type_article"`
	Quantite         int         `gorm:"not null" json:"quantite"`
	PrixUnitaire     float64     `json:"prix_unitaire"`
	PrixLocationJour float64     `json:"prix_location_jour,omitempty"`

	DateDebutLocation *time.Time `json:"date_debut_location,omitempty"`
	DateFinLocation   *time.Time `json:"date_fin_location,omitempty"`
	JoursLocation     int        `json:"jours_location,omitempty"`

	PrixTotal float64   `json:"prix_total"`
	AddedAt   time.Time `json:"added_at"`
}

// CalculerPrixTotal recomputes JoursLocation and PrixTotal from the snapshot
// fields. Called after every mutation of the line.
func (a *ArticlePanier) CalculerPrixTotal() error {
	switch a.TypeArticle {
	case ArticleLocation:
		if a.DateDebutLocation == nil || a.DateFinLocation == nil {
			return ErrDatesLocationRequises
		}
		jours, err := JoursLocation(*a.DateDebutLocation, *a.DateFinLocation)
		if err != nil {
			return err
		}
		total, err := TotalLigneLocation(a.PrixLocationJour, a.Quantite, *a.DateDebutLocation, *a.DateFinLocation)
		if err != nil {
			return err
		}
		a.JoursLocation = jours
		a.PrixTotal = total
	default:
		total, err := TotalLigneAchat(a.PrixUnitaire, a.Quantite)
		if err != nil {
			return err
		}
		a.PrixTotal = total
	}
	return nil
}

// CalculerTotal recomputes the cart total as the sum of its line totals.
func (p *Panier) CalculerTotal() float64 {
	total := 0.0
	for _, a := range p.Articles {
		total += a.PrixTotal
	}
	p.Total = total
	return total
}
