package service

import (
	"time"

	"github.com/diegoclair/slack-attendance-bot/internal/config"
	"github.com/diegoclair/slack-attendance-bot/internal/domain/contract"
	"github.com/diegoclair/slack-attendance-bot/internal/llm"
	"github.com/diegoclair/slack-attendance-bot/internal/timetable"
)

type Instance struct {
	Sessions     *sessionStore
	Conversation *conversationService
	Dispatcher   *dispatcherService
	Birthday     *birthdayService
	Scheduler    *scheduler
	Timetable    *timetable.Timetable
}

func NewInstance(dm contract.DataManager, slackClient contract.SlackClient, llmClient llm.ChatCompleter, talk contract.TalkFinder, cfg *config.Config, loc *time.Location) *Instance {
	tt := timetable.Default()

	sessions := newSessionStore(dm, cfg.SnapshotPath)
	conversation := newConversation(llmClient, cfg.OpenAIModel, sessions)
	dispatcher := newDispatcher(slackClient, tt, talk, cfg.Destinations(), cfg.SkipWeekends)
	birthday := newBirthday(slackClient, cfg.Birthdays)

	return &Instance{
		Sessions:     sessions,
		Conversation: conversation,
		Dispatcher:   dispatcher,
		Birthday:     birthday,
		Scheduler:    newScheduler(dispatcher, birthday, tt, loc),
		Timetable:    tt,
	}
}
