package models

import (
	"errors"
	"math"
	"time"
)

// FraisLivraisonStandard is the flat delivery fee in TND, applied uniformly
// to every order regardless of region or weight.
const FraisLivraisonStandard = 7.0

var (
	ErrQuantiteInvalide        = errors.New("la quantité doit être supérieure ou égale à 1")
	ErrDatesLocationRequises   = errors.New("les dates de début et de fin de location sont requises")
	ErrPeriodeLocationInvalide = errors.New("la date de fin de location doit être postérieure à la date de début")
)

// PrixUnitaireEffectif returns the unit price used for purchase lines:
// the promotional price when present and strictly below the list price,
// the list price otherwise.
func (p *Produit) PrixUnitaireEffectif() float64 {
	if p.PrixPromo != nil && *p.PrixPromo > 0 && *p.PrixPromo < p.Prix {
		return *p.PrixPromo
	}
	return p.Prix
}

// JoursLocation computes the billed day count for a rental period.
// Partial days round up: a rental from day N to day N+1 is exactly 1 day.
func JoursLocation(debut, fin time.Time) (int, error) {
	if debut.IsZero() || fin.IsZero() {
		return 0, ErrDatesLocationRequises
	}
	if !fin.After(debut) {
		return 0, ErrPeriodeLocationInvalide
	}
	return int(math.Ceil(fin.Sub(debut).Hours() / 24)), nil
}

// TotalLigneAchat is the line total for a purchase line.
func TotalLigneAchat(prixUnitaire float64, quantite int) (float64, error) {
	if quantite < 1 {
		return 0, ErrQuantiteInvalide
	}
	return prixUnitaire * float64(quantite), nil
}

// TotalLigneLocation is the line total for a rental line:
// per-day rate × billed days × quantity.
func TotalLigneLocation(prixJour float64, quantite int, debut, fin time.Time) (float64, error) {
	if quantite < 1 {
		return 0, ErrQuantiteInvalide
	}
	jours, err := JoursLocation(debut, fin)
	if err != nil {
		return 0, err
	}
	return prixJour * float64(jours) * float64(quantite), nil
}
