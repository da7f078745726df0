package models

// Attribute is a selectable attribute name on a product (Color, Size, ...).
type Attribute struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID string `gorm:"column:product_id;not null;index"`
	Name      string `gorm:"column:name;not null"`

	Items []AttributeItem `gorm:"foreignKey:AttributeID"`
}

func (Attribute) TableName() string { return "attributes" }

// AttributeItem is one selectable value; catalog order is insertion order.
type AttributeItem struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	AttributeID  int64  `gorm:"column:attribute_id;not null;index"`
	Value        string `gorm:"column:value;not null"`
	DisplayValue string `gorm:"column:display_value"`
}

func (AttributeItem) TableName() string { return "attribute_items" }
