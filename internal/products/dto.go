package product

import (
	"github.com/shopspring/decimal"

	"github.com/shopfrontdev/shopfront-backend/pkg/db/models"
)

// Info is the catalog read-model used by cart and order flows. It carries
// exactly the fields the storefront renders plus the attribute catalog the
// normalizer needs for defaulting.
type Info struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Brand      string              `json:"brand"`
	Price      decimal.Decimal     `json:"price"`
	ImageURL   string              `json:"image_url"`
	InStock    bool                `json:"in_stock"`
	Attributes map[string][]string `json:"attributes,omitempty"`
}

// AttributeDTO is one attribute name with its selectable values, in catalog order.
type AttributeDTO struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

func toInfo(row *models.Product) *Info {
	info := &Info{
		ID:      row.ID,
		Name:    row.Name,
		Brand:   row.Brand,
		InStock: row.InStock,
	}
	if len(row.Prices) > 0 {
		info.Price = row.Prices[0].Amount
	}
	if len(row.Gallery) > 0 {
		info.ImageURL = row.Gallery[0].ImageURL
	}
	if len(row.Attributes) > 0 {
		info.Attributes = make(map[string][]string, len(row.Attributes))
		for _, attr := range row.Attributes {
			values := make([]string, 0, len(attr.Items))
			for _, item := range attr.Items {
				values = append(values, item.Value)
			}
			info.Attributes[attr.Name] = values
		}
	}
	return info
}
