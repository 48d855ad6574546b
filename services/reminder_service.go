// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	"gorm.io/gorm"

	"restro-backend/models"
	"restro-backend/utils"
)

// ReminderService sends payment-due reminders to credit and mess
// customers with an outstanding balance.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{
		db:     db,
		client: utils.NewSMSClient(),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendDueReminders()
	})

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendDueReminders messages every overdue credit customer and every
// mess subscriber still carrying a pending amount.
func (s *ReminderService) SendDueReminders() {
	log.Println("Starting due reminder processing...")

	var creditUsers []models.CreditUser
	if err := s.db.Where("total_due > 0 AND due_date < ?", time.Now()).Find(&creditUsers).Error; err != nil {
		log.Printf("Failed to fetch overdue credit users: %v", err)
	} else {
		for _, user := range creditUsers {
			message := fmt.Sprintf("Dear %s, your credit balance of %.2f is past due. Please settle it at the counter.", user.Username, user.TotalDue)
			s.send(user.MobileNumber, message)
		}
	}

	var messes []models.Mess
	if err := s.db.Where("pending_amount > 0 AND end_date <= ?", time.Now()).Find(&messes).Error; err != nil {
		log.Printf("Failed to fetch pending messes: %v", err)
	} else {
		for _, mess := range messes {
			message := fmt.Sprintf("Dear %s, your mess subscription has %.2f pending. Please clear it to renew.", mess.CustomerName, mess.PendingAmount)
			s.send(mess.MobileNumber, message)
		}
	}

	log.Println("Due reminder processing completed")
}

func (s *ReminderService) send(toNumber, message string) {
	if err := utils.SendSMS(s.client, toNumber, message); err != nil {
		log.Printf("Failed to send reminder to %s: %v", toNumber, err)
		return
	}

	notification := models.Notification{
		Message: fmt.Sprintf("Reminder sent to %s: %s", toNumber, message),
	}
	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("Failed to record reminder notification: %v", err)
	}
}
