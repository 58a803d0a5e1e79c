package seeders

import (
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts inserts a small starter catalog when the table is empty.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name:        "Cotton Kurta",
			Description: "Hand-block printed cotton kurta, full sleeve.",
			Price:       decimal.NewFromFloat(1299.00),
			Tags:        models.JoinTags([]string{"clothing", "kurta", "cotton"}),
		},
		{
			Name:        "Brass Diya Set",
			Description: "Set of four handcrafted brass diyas.",
			Price:       decimal.NewFromFloat(549.50),
			Tags:        models.JoinTags([]string{"decor", "brass"}),
		},
		{
			Name:        "Jute Tote Bag",
			Description: "Reusable jute tote with leather handles.",
			Price:       decimal.NewFromFloat(399.00),
			Tags:        models.JoinTags([]string{"bags", "jute", "eco"}),
		},
	}
	return db.Create(&products).Error
}
