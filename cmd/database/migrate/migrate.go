package migration

import (
	"PixGen-Backend/entities"
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
	if err := db.AutoMigrate(&entities.VerificationCode{}); err != nil {
		log.Fatalf("Error migrating verification code database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Transaction{}); err != nil {
		log.Fatalf("Error migrating transaction database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Subscription{}); err != nil {
		log.Fatalf("Error migrating subscription database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Generation{}); err != nil {
		log.Fatalf("Error migrating generation database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Plan{}); err != nil {
		log.Fatalf("Error migrating plan database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Admin{}); err != nil {
		log.Fatalf("Error migrating admin database: %v", err)
		return err
	}

	if err := seedPlans(db); err != nil {
		log.Fatalf("Error seeding plans: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

func seedPlans(db *gorm.DB) error {
	plans := []entities.Plan{
		{ID: "basic", Name: "Basic", Credits: 10, Amount: 100, Active: true},
		{ID: "pro", Name: "Pro", Credits: 150, Amount: 1000, Active: true},
	}

	for _, plan := range plans {
		var count int64
		if err := db.Model(&entities.Plan{}).Where("id = ?", plan.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&plan).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
