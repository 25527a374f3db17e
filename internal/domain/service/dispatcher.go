package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/diegoclair/slack-attendance-bot/internal/domain/contract"
	"github.com/diegoclair/slack-attendance-bot/internal/domain/entity"
	"github.com/diegoclair/slack-attendance-bot/internal/timetable"
	"github.com/slack-go/slack"
)

// dispatcherService composes and posts the scheduled announcement for one
// trigger time to every configured destination.
type dispatcherService struct {
	slackClient  contract.SlackClient
	tt           *timetable.Timetable
	talk         contract.TalkFinder
	destinations []entity.Destination
	skipWeekends bool
}

func newDispatcher(slackClient contract.SlackClient, tt *timetable.Timetable, talk contract.TalkFinder, destinations []entity.Destination, skipWeekends bool) *dispatcherService {
	return &dispatcherService{
		slackClient:  slackClient,
		tt:           tt,
		talk:         talk,
		destinations: destinations,
		skipWeekends: skipWeekends,
	}
}

// SendScheduledMessage posts the announcement for the trigger time. One
// destination failing must not block the others; failures are logged and
// there is no retry.
func (s *dispatcherService) SendScheduledMessage(ctx context.Context, hhmm string, now time.Time) {
	if s.skipWeekends && isWeekend(now) {
		log.Println("😴 Weekend detected, no message sent.")
		return
	}

	log.Printf("Trying to send scheduled message at %s", hhmm)

	template := s.tt.MessageFor(hhmm)
	if template == "" {
		log.Printf("No announcement configured for %s", hhmm)
		return
	}

	for _, dest := range s.destinations {
		if err := s.sendToDestination(ctx, dest, hhmm, template); err != nil {
			log.Printf("❌ Error sending message to channel %s: %v", dest.ChannelID, err)
		}
	}
}

func (s *dispatcherService) sendToDestination(ctx context.Context, dest entity.Destination, hhmm, template string) error {
	message := composeMessage(template, s.roleMention(dest.RoleName), dest.Link)

	if hhmm == s.tt.TalkTime && s.talk != nil {
		if talk := s.talk.TalkToday(ctx); talk != "" {
			message += "\n" + talk
		}
	}

	if _, _, err := s.slackClient.PostMessage(dest.ChannelID, slack.MsgOptionText(message, false)); err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}

	log.Printf("✅ Message sent to channel %s", dest.ChannelID)
	return nil
}

// roleMention resolves a user group handle to its mention syntax. An
// unknown or unresolvable group degrades to no mention with a warning.
func (s *dispatcherService) roleMention(roleName string) string {
	if roleName == "" {
		return ""
	}

	groups, err := s.slackClient.GetUserGroups()
	if err != nil {
		log.Printf("Warning: failed to list user groups: %v", err)
		return ""
	}

	for _, group := range groups {
		if group.Handle == roleName || group.Name == roleName {
			return fmt.Sprintf("<!subteam^%s>", group.ID)
		}
	}

	log.Printf("Warning: role %q not found, sending without mention", roleName)
	return ""
}

// composeMessage substitutes the role mention and reference link into an
// announcement template.
func composeMessage(template, mention, link string) string {
	return strings.NewReplacer("{role}", mention, "{link}", link).Replace(template)
}

func isWeekend(now time.Time) bool {
	weekday := now.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}
