package migration

import (
	"GIVD-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Product{}); err != nil {
		log.Fatalf("Error migrating product database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Receipt{}, &entities.ReceiptItem{}); err != nil {
		log.Fatalf("Error migrating receipt database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.StockItem{}); err != nil {
		log.Fatalf("Error migrating stock database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ConsumptionLog{}); err != nil {
		log.Fatalf("Error migrating consumption database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Plan{}, &entities.Subscription{}); err != nil {
		log.Fatalf("Error migrating subscription database: %v", err)
		return err
	}

	// Product names dedupe case-insensitively, AutoMigrate cannot express this.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_products_lower_name ON products (LOWER(name));")

	fmt.Println("Database migration complete")
	return nil
}
