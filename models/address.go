package models

import "strings"

// GouvernoratsTunisie is the fixed list of Tunisia's 24 governorates used as
// the mandatory delivery-address region field.
var GouvernoratsTunisie = []string{
	"Ariana", "Béja", "Ben Arous", "Bizerte", "Gabès", "Gafsa", "Jendouba",
	"Kairouan", "Kasserine", "Kébili", "Le Kef", "Mahdia", "La Manouba",
	"Médenine", "Monastir", "Nabeul", "Sfax", "Sidi Bouzid", "Siliana",
	"Sousse", "Tataouine", "Tozeur", "Tunis", "Zaghouan",
}

// AdresseLivraison is the delivery address captured at checkout. Every field
// except Instructions is mandatory.
type AdresseLivraison struct {
	NomComplet   string `json:"nom_complet"`
	Telephone    string `json:"telephone"`
	Adresse      string `json:"adresse"`
	Ville        string `json:"ville"`
	CodePostal   string `json:"code_postal"`
	Gouvernorat  string `json:"gouvernorat"`
	Instructions string `json:"instructions,omitempty"`
}

func GouvernoratValide(g string) bool {
	for _, gov := range GouvernoratsTunisie {
		if gov == g {
			return true
		}
	}
	return false
}

// Valider checks the mandatory-field invariant and returns one actionable
// message per missing or invalid field, keyed by field name. An empty map
// means the address is complete.
func (a *AdresseLivraison) Valider() map[string]string {
	erreurs := make(map[string]string)

	if strings.TrimSpace(a.NomComplet) == "" {
		erreurs["nom_complet"] = "Veuillez entrer votre nom complet"
	}
	if tel := strings.TrimSpace(a.Telephone); len(tel) < 8 {
		erreurs["telephone"] = "Veuillez entrer un numéro de téléphone valide (8 chiffres minimum)"
	}
	if strings.TrimSpace(a.Adresse) == "" {
		erreurs["adresse"] = "Veuillez entrer votre adresse"
	}
	if strings.TrimSpace(a.Ville) == "" {
		erreurs["ville"] = "Veuillez entrer votre ville"
	}
	if strings.TrimSpace(a.CodePostal) == "" {
		erreurs["code_postal"] = "Veuillez entrer votre code postal"
	}
	if a.Gouvernorat == "" {
		erreurs["gouvernorat"] = "Veuillez sélectionner votre gouvernorat"
	} else if !GouvernoratValide(a.Gouvernorat) {
		erreurs["gouvernorat"] = "Gouvernorat inconnu"
	}

	return erreurs
}
