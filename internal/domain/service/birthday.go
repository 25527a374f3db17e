package service

import (
	"fmt"
	"log"
	"time"

	"github.com/diegoclair/slack-attendance-bot/internal/domain/contract"
	"github.com/diegoclair/slack-attendance-bot/internal/domain/entity"
	"github.com/slack-go/slack"
)

// birthdayService sends a greeting DM to users whose configured month-day
// matches today.
type birthdayService struct {
	slackClient contract.SlackClient
	birthdays   []entity.Birthday
}

func newBirthday(slackClient contract.SlackClient, birthdays []entity.Birthday) *birthdayService {
	return &birthdayService{
		slackClient: slackClient,
		birthdays:   birthdays,
	}
}

// GreetBirthdays checks every configured birthday against now's month-day
// and sends a greeting for each match. Failures are logged per user.
func (s *birthdayService) GreetBirthdays(now time.Time) {
	today := now.Format("01-02")

	for _, birthday := range s.birthdays {
		if birthday.MonthDay != today {
			continue
		}

		message := fmt.Sprintf("🎉 Happy Birthday <@%s>! 🎂", birthday.UserID)
		if _, _, err := s.slackClient.PostMessage(birthday.UserID, slack.MsgOptionText(message, false)); err != nil {
			log.Printf("Failed to send birthday wish to %s: %v", birthday.UserID, err)
			continue
		}
		log.Printf("Sent birthday wish to %s!", birthday.UserID)
	}
}
