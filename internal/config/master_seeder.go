package config

import (
	"log"

	"bloodlink/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedMasterData seeds initial master data
func SeedMasterData(db *gorm.DB) error {
	// Seed Donation Centers
	if err := seedDonationCenters(db); err != nil {
		return err
	}

	// Seed System Settings
	if err := seedSystemSettings(db); err != nil {
		return err
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}

func seedDonationCenters(db *gorm.DB) error {
	centers := []models.DonationCenter{
		{
			Name:      "Central Bank",
			Address:   "12 Harbor Street, Central District",
			Phone:     "02-555-0101",
			OpenHours: "09:00-17:00",
			IsActive:  true,
		},
		{
			Name:      "Northside Community Center",
			Address:   "48 Elm Avenue, North District",
			Phone:     "02-555-0102",
			OpenHours: "09:00-17:00",
			IsActive:  true,
		},
		{
			Name:      "Riverside Medical Campus",
			Address:   "7 River Road, East District",
			Phone:     "02-555-0103",
			OpenHours: "09:00-17:00",
			IsActive:  true,
		},
		{
			Name:      "Westgate Mobile Unit",
			Address:   "Westgate Mall parking lot",
			Phone:     "02-555-0104",
			OpenHours: "10:00-16:00",
			IsActive:  true,
		},
	}

	for _, dc := range centers {
		var existing models.DonationCenter
		if err := db.Where("name = ?", dc.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&dc).Error; err != nil {
					return err
				}
				log.Printf("   Created donation_center: %s", dc.Name)
			}
		}
	}
	return nil
}

func seedSystemSettings(db *gorm.DB) error {
	settings := []models.SystemSetting{
		{
			Key:         models.SettingAppointmentWindowDays,
			Value:       "30",
			Description: "How many days ahead a donor may book an appointment",
		},
		{
			Key:         models.SettingUnitShelfLifeDays,
			Value:       "42",
			Description: "Whole-blood shelf life used to derive unit expiry dates",
		},
		{
			Key:         models.SettingMatchingResultLimit,
			Value:       "10",
			Description: "Maximum donors returned by a matching run",
		},
	}

	for _, st := range settings {
		var existing models.SystemSetting
		if err := db.Where("`key` = ?", st.Key).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&st).Error; err != nil {
					return err
				}
				log.Printf("   Created system_setting: %s=%s", st.Key, st.Value)
			}
		}
	}
	return nil
}
