package models

import "time"

type Categorie struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom          string    `gorm:"not null" json:"nom"`
	Slug         string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description  string    `json:"description,omitempty"`
	Icone        string    `json:"icone,omitempty"`
	ParentID     *uint     `gorm:"index" json:"parent_id,omitempty"`
	EstActive    bool      `json:"est_active"`
	DateCreation time.Time `gorm:"autoCreateTime" json:"date_creation"`
	Produits     []Produit `gorm:"foreignKey:CategorieID" json:"-"`
}
