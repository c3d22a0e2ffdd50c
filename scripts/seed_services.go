package main

import (
	"fmt"
	"log"

	"github.com/TungTV17/HostelFinder-sub001/models"
	"github.com/TungTV17/HostelFinder-sub001/storage"
)

// Seeds the default service catalog for a fresh install. Safe to run
// twice: existing services are matched by name and left alone.
func main() {
	db := storage.InitializeDB()

	defaults := []models.Service{
		{Name: "electricity", Description: "Metered electricity", ChargingMethod: models.ChargePerUsageUnit},
		{Name: "water", Description: "Metered water", ChargingMethod: models.ChargePerUsageUnit},
		{Name: "internet", Description: "Shared internet line", ChargingMethod: models.ChargeFlatFee},
		{Name: "garbage collection", Description: "Weekly garbage pickup", ChargingMethod: models.ChargePerPerson},
		{Name: "parking", Description: "Motorbike parking", ChargingMethod: models.ChargeFlatFee},
		{Name: "common area cleaning", Description: "Included in rent", ChargingMethod: models.ChargeFree},
	}

	for _, service := range defaults {
		var count int64
		if err := db.Model(&models.Service{}).Where("name = ?", service.Name).Count(&count).Error; err != nil {
			log.Fatalf("Error checking service %q: %v", service.Name, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&service).Error; err != nil {
			log.Fatalf("Error creating service %q: %v", service.Name, err)
		}
	}

	fmt.Println("Service catalog seeding completed successfully!")
}
