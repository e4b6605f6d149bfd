package productControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Para-Plus/para-plus/auth"
	"github.com/Para-Plus/para-plus/models"
	"github.com/Para-Plus/para-plus/routes"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret-de-test")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Categorie{},
		&models.Produit{},
		&models.Panier{},
		&models.ArticlePanier{},
		&models.Commande{},
		&models.ArticleCommande{},
	))

	r := gin.New()
	routes.SetupRoutes(r, db)
	return r, db
}

func creerVendeur(t *testing.T, db *gorm.DB) (*models.User, string) {
	t.Helper()
	user := models.User{
		ID: uuid.NewString(), Email: uuid.NewString() + "@exemple.tn",
		Nom: "Vendeur", Role: models.RoleVendeur, EstActif: true,
	}
	require.NoError(t, db.Create(&user).Error)
	access, _, err := auth.IssueTokenPair(&user)
	require.NoError(t, err)
	return &user, access
}

func creerCategorie(t *testing.T, db *gorm.DB) *models.Categorie {
	t.Helper()
	categorie := models.Categorie{Nom: "Parapharmacie", Slug: "parapharmacie-" + uuid.NewString()[:8], EstActive: true}
	require.NoError(t, db.Create(&categorie).Error)
	return &categorie
}

func requete(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func produitValide(categorieID uint) gin.H {
	return gin.H{
		"nom":          "Crème hydratante",
		"description":  "Crème hydratante visage 50ml",
		"type_produit": "parapharmacie",
		"prix":         15.0,
		"stock":        10,
		"categorie_id": categorieID,
		"marque":       "Bioderma",
	}
}

type listeProduits struct {
	Produits   []models.Produit `json:"produits"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PagesTotal int              `json:"pages_total"`
}

func TestCreateProduit(t *testing.T) {
	r, db := newTestRouter(t)
	vendeur, token := creerVendeur(t, db)
	categorie := creerCategorie(t, db)

	w := requete(r, http.MethodPost, "/produits/", token, produitValide(categorie.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var produit models.Produit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &produit))
	assert.Equal(t, vendeur.ID, produit.VendeurID)
	assert.True(t, produit.EstActif)
	assert.NotEmpty(t, produit.Slug)
	assert.Contains(t, produit.Slug, "creme-hydratante")

	// Same name twice still yields distinct slugs.
	w = requete(r, http.MethodPost, "/produits/", token, produitValide(categorie.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	var second models.Produit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.NotEqual(t, produit.Slug, second.Slug)
}

func TestCreateProduitValidation(t *testing.T) {
	r, db := newTestRouter(t)
	_, token := creerVendeur(t, db)
	categorie := creerCategorie(t, db)

	t.Run("promo supérieure au prix", func(t *testing.T) {
		body := produitValide(categorie.ID)
		body["prix_promo"] = 20.0
		w := requete(r, http.MethodPost, "/produits/", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("location sans prix journalier", func(t *testing.T) {
		body := produitValide(categorie.ID)
		body["disponible_location"] = true
		w := requete(r, http.MethodPost, "/produits/", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("catégorie inconnue", func(t *testing.T) {
		w := requete(r, http.MethodPost, "/produits/", token, produitValide(9999))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("type produit inconnu", func(t *testing.T) {
		body := produitValide(categorie.ID)
		body["type_produit"] = "cosmetique"
		w := requete(r, http.MethodPost, "/produits/", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateProduitReserveAuxVendeurs(t *testing.T) {
	r, db := newTestRouter(t)
	categorie := creerCategorie(t, db)

	client := models.User{ID: uuid.NewString(), Email: "client@exemple.tn", Role: models.RoleClient, EstActif: true}
	require.NoError(t, db.Create(&client).Error)
	access, _, err := auth.IssueTokenPair(&client)
	require.NoError(t, err)

	w := requete(r, http.MethodPost, "/produits/", access, produitValide(categorie.ID))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = requete(r, http.MethodPost, "/produits/", "", produitValide(categorie.ID))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProduitsFiltres(t *testing.T) {
	r, db := newTestRouter(t)
	vendeur, _ := creerVendeur(t, db)
	categorie := creerCategorie(t, db)
	autreCategorie := creerCategorie(t, db)

	prixJour := 5.0
	seed := []models.Produit{
		{Nom: "Crème solaire", Slug: "creme-solaire", Description: "SPF50", TypeProduit: models.TypeParapharmacie,
			Prix: 15.0, Stock: 5, CategorieID: categorie.ID, VendeurID: vendeur.ID, EstActif: true, Marque: "Avène"},
		{Nom: "Doliprane", Slug: "doliprane", Description: "Paracétamol", TypeProduit: models.TypePharmacie,
			Prix: 3.5, Stock: 50, CategorieID: autreCategorie.ID, VendeurID: vendeur.ID, EstActif: true},
		{Nom: "Béquilles", Slug: "bequilles", Description: "Paire de béquilles", TypeProduit: models.TypeMedical,
			Prix: 40.0, Stock: 2, CategorieID: autreCategorie.ID, VendeurID: vendeur.ID, EstActif: true,
			DisponibleLocation: true, PrixLocationJour: &prixJour},
		{Nom: "Produit retiré", Slug: "retire", Description: "Inactif", TypeProduit: models.TypeParapharmacie,
			Prix: 9.0, CategorieID: categorie.ID, VendeurID: vendeur.ID, EstActif: false},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	lister := func(query string) listeProduits {
		w := requete(r, http.MethodGet, "/produits/"+query, "", nil)
		require.Equal(t, http.StatusOK, w.Code, query)
		var liste listeProduits
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &liste))
		return liste
	}

	// Inactive listings never appear.
	assert.EqualValues(t, 3, lister("").Total)

	liste := lister("?type_produit=medical")
	require.Len(t, liste.Produits, 1)
	assert.Equal(t, "Béquilles", liste.Produits[0].Nom)

	assert.EqualValues(t, 1, lister(fmt.Sprintf("?categorie_id=%d", categorie.ID)).Total)
	assert.EqualValues(t, 2, lister("?prix_min=10").Total)
	assert.EqualValues(t, 2, lister("?prix_max=20").Total)
	assert.EqualValues(t, 1, lister("?disponible_location=true").Total)
	assert.EqualValues(t, 1, lister("?recherche=Doliprane").Total)
	assert.EqualValues(t, 1, lister("?recherche=Avène").Total)

	liste = lister("?tri=prix_asc")
	require.Len(t, liste.Produits, 3)
	assert.Equal(t, "Doliprane", liste.Produits[0].Nom)
	liste = lister("?tri=prix_desc")
	assert.Equal(t, "Béquilles", liste.Produits[0].Nom)

	// Pagination.
	liste = lister("?limite=2&page=2&tri=prix_asc")
	assert.EqualValues(t, 3, liste.Total)
	assert.Equal(t, 2, liste.PagesTotal)
	require.Len(t, liste.Produits, 1)
}

func TestGetProduitParSlug(t *testing.T) {
	r, db := newTestRouter(t)
	vendeur, _ := creerVendeur(t, db)
	categorie := creerCategorie(t, db)
	produit := models.Produit{
		Nom: "Crème solaire", Slug: "creme-solaire", Description: "SPF50",
		TypeProduit: models.TypeParapharmacie, Prix: 15.0, Stock: 5,
		CategorieID: categorie.ID, VendeurID: vendeur.ID, EstActif: true,
	}
	require.NoError(t, db.Create(&produit).Error)

	w := requete(r, http.MethodGet, "/produits/creme-solaire/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var relu models.Produit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &relu))
	assert.Equal(t, produit.ID, relu.ID)
	require.NotNil(t, relu.Categorie)
	assert.Equal(t, categorie.ID, relu.Categorie.ID)

	w = requete(r, http.MethodGet, "/produits/inexistant/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// An inactive listing is invisible by slug too.
	require.NoError(t, db.Model(&produit).Update("est_actif", false).Error)
	w = requete(r, http.MethodGet, "/produits/creme-solaire/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProduitsSimilaires(t *testing.T) {
	r, db := newTestRouter(t)
	vendeur, _ := creerVendeur(t, db)
	categorie := creerCategorie(t, db)
	autreCategorie := creerCategorie(t, db)

	var reference models.Produit
	for i, cat := range []uint{categorie.ID, categorie.ID, autreCategorie.ID} {
		p := models.Produit{
			Nom: fmt.Sprintf("Produit %d", i), Slug: fmt.Sprintf("produit-%d", i),
			Description: "x", TypeProduit: models.TypeParapharmacie, Prix: 10,
			CategorieID: cat, VendeurID: vendeur.ID, EstActif: true,
		}
		require.NoError(t, db.Create(&p).Error)
		if i == 0 {
			reference = p
		}
	}

	w := requete(r, http.MethodGet, fmt.Sprintf("/produits/%d/similaires/", reference.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var similaires []models.Produit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &similaires))
	// Same category only, the reference itself excluded.
	require.Len(t, similaires, 1)
	assert.Equal(t, categorie.ID, similaires[0].CategorieID)
	assert.NotEqual(t, reference.ID, similaires[0].ID)
}

func TestUpdateProduitProprietaire(t *testing.T) {
	r, db := newTestRouter(t)
	_, token := creerVendeur(t, db)
	_, autreToken := creerVendeur(t, db)
	categorie := creerCategorie(t, db)

	w := requete(r, http.MethodPost, "/produits/", token, produitValide(categorie.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	var produit models.Produit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &produit))

	maj := produitValide(categorie.ID)
	maj["prix"] = 18.0

	// Another vendor cannot touch it.
	w = requete(r, http.MethodPut, fmt.Sprintf("/produits/%d/", produit.ID), autreToken, maj)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = requete(r, http.MethodPut, fmt.Sprintf("/produits/%d/", produit.ID), token, maj)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var relu models.Produit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &relu))
	assert.InDelta(t, 18.0, relu.Prix, 1e-9)
	// The slug survives renames: URLs stay stable.
	assert.Equal(t, produit.Slug, relu.Slug)
}

func TestDeleteProduit(t *testing.T) {
	r, db := newTestRouter(t)
	_, token := creerVendeur(t, db)
	_, autreToken := creerVendeur(t, db)
	categorie := creerCategorie(t, db)

	w := requete(r, http.MethodPost, "/produits/", token, produitValide(categorie.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	var produit models.Produit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &produit))

	w = requete(r, http.MethodDelete, fmt.Sprintf("/produits/%d/", produit.ID), autreToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = requete(r, http.MethodDelete, fmt.Sprintf("/produits/%d/", produit.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Soft delete: gone from the public catalog, still in the table.
	w = requete(r, http.MethodGet, "/produits/"+produit.Slug+"/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var n int64
	require.NoError(t, db.Unscoped().Model(&models.Produit{}).Where("id = ?", produit.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestGetMesProduits(t *testing.T) {
	r, db := newTestRouter(t)
	vendeur, token := creerVendeur(t, db)
	autreVendeur, _ := creerVendeur(t, db)
	categorie := creerCategorie(t, db)

	seed := []models.Produit{
		{Nom: "Actif", Slug: "actif", Description: "x", TypeProduit: models.TypeParapharmacie,
			Prix: 10, CategorieID: categorie.ID, VendeurID: vendeur.ID, EstActif: true},
		{Nom: "Retiré", Slug: "retire", Description: "x", TypeProduit: models.TypeParapharmacie,
			Prix: 10, CategorieID: categorie.ID, VendeurID: vendeur.ID, EstActif: false},
		{Nom: "D'un autre", Slug: "autre", Description: "x", TypeProduit: models.TypeParapharmacie,
			Prix: 10, CategorieID: categorie.ID, VendeurID: autreVendeur.ID, EstActif: true},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	// The vendor's own view includes inactive listings so they stay editable.
	w := requete(r, http.MethodGet, "/produits/vendeur/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var produits []models.Produit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &produits))
	assert.Len(t, produits, 2)

	// The public vendor page shows active listings only.
	w = requete(r, http.MethodGet, "/produits/vendeur/"+vendeur.ID+"/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &produits))
	assert.Len(t, produits, 1)
	assert.Equal(t, "Actif", produits[0].Nom)
}
