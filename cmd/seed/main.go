package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/config"
	"bloodlink/internal/core/domain"
	"bloodlink/internal/pkg/password"
)

// Demo data generator for local development. Populates donors,
// hospitals, donation centers, blood units, requests and appointments
// so the dashboards have something to show.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("🌱 Seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	if err := config.SeedMasterData(db); err != nil {
		log.Fatalf("❌ Failed to seed master data: %v", err)
	}
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Fatalf("❌ Failed to seed admin user: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	donors, err := seedDonors(db, 40)
	if err != nil {
		log.Fatalf("❌ Seed donors: %v", err)
	}
	hospitals, err := seedHospitals(db, 6)
	if err != nil {
		log.Fatalf("❌ Seed hospitals: %v", err)
	}
	if err := seedUnits(db, donors, 120); err != nil {
		log.Fatalf("❌ Seed blood units: %v", err)
	}
	if err := seedRequests(db, hospitals, 25); err != nil {
		log.Fatalf("❌ Seed blood requests: %v", err)
	}
	if err := seedAppointments(db, donors, 30); err != nil {
		log.Fatalf("❌ Seed appointments: %v", err)
	}

	log.Println("✅ Seed complete")
}

func seedDonors(db *gorm.DB, count int) ([]models.DonorProfile, error) {
	log.Printf("seeding %d donors", count)

	hashed, err := password.Hash("donor123456")
	if err != nil {
		return nil, err
	}

	donors := make([]models.DonorProfile, 0, count)
	for i := 0; i < count; i++ {
		user := models.User{
			Username: fmt.Sprintf("donor_%s%d", strings.ToLower(gofakeit.LastName()), i),
			Email:    gofakeit.Email(),
			Password: hashed,
			Role:     models.RoleDonor,
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}

		dob := gofakeit.DateRange(
			time.Now().AddDate(-60, 0, 0),
			time.Now().AddDate(-18, 0, 0))
		profile := models.DonorProfile{
			UserID:      user.ID,
			FullName:    gofakeit.Name(),
			BloodType:   randomBloodType(),
			Phone:       gofakeit.Phone(),
			DateOfBirth: &dob,
			Address:     gofakeit.Address().Address,
			IsEligible:  true,
		}
		if err := db.Create(&profile).Error; err != nil {
			return nil, err
		}
		donors = append(donors, profile)
	}

	log.Println("donors seeded")
	return donors, nil
}

func seedHospitals(db *gorm.DB, count int) ([]models.HospitalProfile, error) {
	log.Printf("seeding %d hospitals", count)

	hashed, err := password.Hash("hospital123456")
	if err != nil {
		return nil, err
	}

	hospitals := make([]models.HospitalProfile, 0, count)
	for i := 0; i < count; i++ {
		user := models.User{
			Username: fmt.Sprintf("hospital_%d", i+1),
			Email:    gofakeit.Email(),
			Password: hashed,
			Role:     models.RoleHospital,
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}

		profile := models.HospitalProfile{
			UserID:        user.ID,
			Name:          gofakeit.City() + " General Hospital",
			LicenseNumber: fmt.Sprintf("HOSP-%05d", gofakeit.Number(10000, 99999)),
			Phone:         gofakeit.Phone(),
			Address:       gofakeit.Address().Address,
		}
		if err := db.Create(&profile).Error; err != nil {
			return nil, err
		}
		hospitals = append(hospitals, profile)
	}

	log.Println("hospitals seeded")
	return hospitals, nil
}

func seedUnits(db *gorm.DB, donors []models.DonorProfile, count int) error {
	log.Printf("seeding %d blood units", count)

	statuses := []domain.UnitStatus{
		domain.UnitCollected,
		domain.UnitStored,
		domain.UnitTested,
		domain.UnitAvailable,
		domain.UnitAvailable,
		domain.UnitAvailable,
		domain.UnitReserved,
		domain.UnitDelivered,
	}

	for i := 0; i < count; i++ {
		donor := donors[gofakeit.Number(0, len(donors)-1)]
		donated := gofakeit.DateRange(time.Now().AddDate(0, 0, -35), time.Now())
		unit := models.BloodUnit{
			SerialNumber:    "BU-" + strings.ToUpper(uuid.New().String()[:8]),
			BloodType:       donor.BloodType,
			Status:          statuses[gofakeit.Number(0, len(statuses)-1)],
			DonationDate:    donated,
			ExpiryDate:      donated.AddDate(0, 0, domain.DefaultShelfLifeDays),
			DonorID:         &donor.ID,
			CurrentLocation: gofakeit.City() + " Blood Bank",
		}
		if err := db.Create(&unit).Error; err != nil {
			return err
		}
	}

	log.Println("blood units seeded")
	return nil
}

func seedRequests(db *gorm.DB, hospitals []models.HospitalProfile, count int) error {
	log.Printf("seeding %d blood requests", count)

	priorities := []domain.RequestPriority{
		domain.PriorityLow,
		domain.PriorityMedium,
		domain.PriorityHigh,
		domain.PriorityCritical,
	}
	statuses := []domain.RequestStatus{
		domain.RequestPending,
		domain.RequestPending,
		domain.RequestApproved,
		domain.RequestRejected,
		domain.RequestFulfilled,
	}

	for i := 0; i < count; i++ {
		hospital := hospitals[gofakeit.Number(0, len(hospitals)-1)]
		req := models.BloodRequest{
			HospitalID: hospital.ID,
			BloodType:  randomBloodType(),
			Units:      gofakeit.Number(1, 5),
			Priority:   priorities[gofakeit.Number(0, len(priorities)-1)],
			Status:     statuses[gofakeit.Number(0, len(statuses)-1)],
			Notes:      gofakeit.Sentence(8),
		}
		if err := db.Create(&req).Error; err != nil {
			return err
		}
	}

	log.Println("blood requests seeded")
	return nil
}

func seedAppointments(db *gorm.DB, donors []models.DonorProfile, count int) error {
	log.Printf("seeding %d appointments", count)

	var centers []models.DonationCenter
	if err := db.Where("is_active = ?", true).Find(&centers).Error; err != nil {
		return err
	}
	if len(centers) == 0 {
		return fmt.Errorf("no active donation centers, run master seed first")
	}

	for i := 0; i < count; i++ {
		donor := donors[gofakeit.Number(0, len(donors)-1)]
		center := centers[gofakeit.Number(0, len(centers)-1)]
		date := gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 0, domain.AppointmentWindowDays))
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

		appt := models.Appointment{
			DonorID:  donor.ID,
			CenterID: center.ID,
			Date:     date,
			TimeSlot: domain.TimeSlots[gofakeit.Number(0, len(domain.TimeSlots)-1)],
			Status:   domain.ApptScheduled,
		}
		if err := db.Create(&appt).Error; err != nil {
			return err
		}
	}

	log.Println("appointments seeded")
	return nil
}

func randomBloodType() domain.BloodType {
	return domain.BloodTypes[gofakeit.Number(0, len(domain.BloodTypes)-1)]
}
