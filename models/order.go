package models

import (
	"errors"
	"time"
)

type StatutCommande string
type StatutPaiement string

const (
	StatutEnAttente     StatutCommande = "en_attente"
	StatutConfirmee     StatutCommande = "confirmee"
	StatutEnPreparation StatutCommande = "en_preparation"
	StatutExpediee      StatutCommande = "expediee"
	StatutLivree        StatutCommande = "livree"
	StatutAnnulee       StatutCommande = "annulee"

	PaiementEnAttente StatutPaiement = "en_attente"
	PaiementPaye      StatutPaiement = "paye"
	PaiementEchoue    StatutPaiement = "echoue"
	PaiementRembourse StatutPaiement = "rembourse"
)

// Payment methods offered at checkout. Only cash on delivery is live;
// card and bank transfer are advertised but not yet accepted.
const (
	PaiementALivraison = "cod"
	PaiementCarte      = "carte"
	PaiementVirement   = "virement"
)

var ErrInvalidTransition = errors.New("transition de statut invalide")

// transitionsAutorisees is the canonical transition table of the order
// lifecycle: a single forward track en_attente → confirmee → en_preparation
// → expediee → livree, with annulee reachable only from en_attente.
// livree and annulee are terminal.
var transitionsAutorisees = map[StatutCommande][]StatutCommande{
	StatutEnAttente:     {StatutConfirmee, StatutEnPreparation, StatutExpediee, StatutLivree, StatutAnnulee},
	StatutConfirmee:     {StatutEnPreparation, StatutExpediee, StatutLivree},
	StatutEnPreparation: {StatutExpediee, StatutLivree},
	StatutExpediee:      {StatutLivree},
	StatutLivree:        {},
	StatutAnnulee:       {},
}

// StatutsVendeur are the targets a vendor may move an order to, in track
// order. annulee is deliberately absent: vendors never cancel.
var StatutsVendeur = []StatutCommande{StatutConfirmee, StatutEnPreparation, StatutExpediee, StatutLivree}

func StatutCommandeValide(s StatutCommande) bool {
	_, ok := transitionsAutorisees[s]
	return ok
}

func (s StatutCommande) EstTerminal() bool {
	return s == StatutLivree || s == StatutAnnulee
}

// PeutPasserA reports whether the lifecycle permits moving from s to vers.
func (s StatutCommande) PeutPasserA(vers StatutCommande) bool {
	for _, t := range transitionsAutorisees[s] {
		if t == vers {
			return true
		}
	}
	return false
}

// Commande is created atomically from a non-empty cart at checkout and
// snapshots every line so later catalog edits never alter it.
type Commande struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	NumeroCommande string `gorm:"uniqueIndex;not null" json:"numero_commande"`
	UtilisateurID  string `gorm:"index;not null" json:"utilisateur_id"`
	Utilisateur    *User  `gorm:"foreignKey:UtilisateurID" json:"utilisateur,omitempty"`

	Articles []ArticleCommande `gorm:"foreignKey:CommandeID;constraint:OnDelete:CASCADE" json:"articles"`

	TotalArticles  float64 `json:"total_articles"`
	FraisLivraison float64 `json:"frais_livraison"`
	TotalCommande  float64 `json:"total_commande"`

	AdresseLivraison AdresseLivraison `gorm:"embedded;embeddedPrefix:livraison_" json:"adresse_livraison"`

	Statut          StatutCommande `gorm:"type:VARCHAR(20);default:'en_attente';index" json:"statut_commande"`
	StatutPaiement  StatutPaiement `gorm:"type:VARCHAR(20);default:'en_attente'" json:"statut_paiement"`
	MethodePaiement string         `json:"methode_paiement"`

	DateCommande time.Time `gorm:"autoCreateTime" json:"date_commande"`
}

// ArticleCommande is an immutable snapshot of a cart line at checkout time.
// PrixUnitaire is the effective purchase price for achat lines and the
// per-day rate for location lines, so the line can always reproduce its own
// arithmetic. VendeurID is denormalized so vendor order projections stay a
// single query.
type ArticleCommande struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	CommandeID uint   `gorm:"index" json:"-"`
	ProduitID  uint   `gorm:"index" json:"produit_id"`
	VendeurID  string `gorm:"index" json:"vendeur_id"`

	NomProduit   string  `json:"nom_produit"`
	Quantite     int     `json:"quantite"`
	PrixUnitaire float64 `json:"prix_unitaire"`
	PrixTotal    float64 `json:"prix_total"`

	TypeArticle       TypeArticle `gorm:"type:VARCHAR(10)" json:"type_article"`
	PrixLocationJour  float64     `json:"prix_location_jour,omitempty"`
	JoursLocation     int         `json:"jours_location,omitempty"`
	DateDebutLocation *time.Time  `json:"date_debut_location,omitempty"`
	DateFinLocation   *time.Time  `json:"date_fin_location,omitempty"`
}

// Annuler applies the client-side cancel rule: only a pending order can be
// cancelled.
func (c *Commande) Annuler() error {
	if c.Statut != StatutEnAttente {
		return ErrInvalidTransition
	}
	c.Statut = StatutAnnulee
	return nil
}

// Avancer applies a vendor forward transition. The target may skip
// intermediate states but must be strictly ahead on the track, never
// annulee, and the order must not already be terminal.
func (c *Commande) Avancer(vers StatutCommande) error {
	if vers == StatutAnnulee || c.Statut.EstTerminal() || !c.Statut.PeutPasserA(vers) {
		return ErrInvalidTransition
	}
	c.Statut = vers
	return nil
}
