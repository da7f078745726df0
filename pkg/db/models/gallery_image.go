package models

// GalleryImage is one catalog image; position 0 is the primary image.
type GalleryImage struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID string `gorm:"column:product_id;not null;index"`
	ImageURL  string `gorm:"column:image_url;not null"`
	Position  int    `gorm:"column:position;default:0"`
}

func (GalleryImage) TableName() string { return "product_gallery" }
