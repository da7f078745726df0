package models

// Product is a catalog row. The catalog is owned by the import pipeline;
// this service only reads it.
type Product struct {
	ID          string `gorm:"column:id;primaryKey"`
	Name        string `gorm:"column:name;not null"`
	Brand       string `gorm:"column:brand"`
	Description string `gorm:"column:description"`
	CategoryID  int    `gorm:"column:category_id"`
	InStock     bool   `gorm:"column:in_stock;default:true"`

	Prices     []Price        `gorm:"foreignKey:ProductID"`
	Gallery    []GalleryImage `gorm:"foreignKey:ProductID"`
	Attributes []Attribute    `gorm:"foreignKey:ProductID"`
}

// TableName maps the struct onto the catalog table.
func (Product) TableName() string { return "products" }
