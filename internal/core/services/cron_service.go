package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService runs the daily housekeeping jobs: expiring units past
// their shelf life, marking missed appointments and sending day-before
// appointment reminders.
type CronService struct {
	cron      *cron.Cron
	inventory *InventoryService
	appts     *AppointmentService
}

// NewCronService creates a new cron service
func NewCronService(inventory *InventoryService, appts *AppointmentService) *CronService {
	return &CronService{
		cron:      cron.New(),
		inventory: inventory,
		appts:     appts,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() {
	// 00:30 expire units past their shelf life
	s.cron.AddFunc("30 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if n, err := s.inventory.SweepExpired(ctx); err != nil {
			log.Printf("❌ Expiry sweep failed: %v", err)
		} else {
			log.Printf("✅ Expiry sweep done (%d units expired)", n)
		}
	})

	// 01:00 mark yesterday's uncompleted appointments missed
	s.cron.AddFunc("0 1 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if n, err := s.appts.SweepMissed(ctx); err != nil {
			log.Printf("❌ Missed-appointment sweep failed: %v", err)
		} else {
			log.Printf("✅ Missed-appointment sweep done (%d marked)", n)
		}
	})

	// 08:30 remind donors with an appointment tomorrow
	s.cron.AddFunc("30 8 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if n, err := s.appts.SendReminders(ctx); err != nil {
			log.Printf("❌ Appointment reminders failed: %v", err)
		} else {
			log.Printf("✅ Appointment reminders sent (%d donors)", n)
		}
	})

	s.cron.Start()
	log.Println("✅ Cron service started (expiry sweep 00:30, missed sweep 01:00, reminders 08:30)")
}

// Stop stops the scheduled jobs
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Cron service stopped")
}
