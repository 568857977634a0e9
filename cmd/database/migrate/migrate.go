package migration

import (
	"ComiYA-Backend/entities"
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
	if err := db.AutoMigrate(&entities.Beneficiary{}); err != nil {
		log.Fatalf("Error migrating beneficiary database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Establishment{}); err != nil {
		log.Fatalf("Error migrating establishment database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Food{}); err != nil {
		log.Fatalf("Error migrating food database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Pickup{}); err != nil {
		log.Fatalf("Error migrating pickup database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Notification{}); err != nil {
		log.Fatalf("Error migrating notification database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DeviceToken{}); err != nil {
		log.Fatalf("Error migrating device token database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
