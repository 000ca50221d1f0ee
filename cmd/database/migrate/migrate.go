package migration

import (
	"fmt"
	"log"

	"github.com/dishcovery/dishcovery/entities"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Like{}); err != nil {
		log.Fatalf("Error migrating like database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.SearchSession{}); err != nil {
		log.Fatalf("Error migrating search session database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
