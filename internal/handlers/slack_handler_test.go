package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/diegoclair/slack-attendance-bot/internal/timetable"
	"github.com/diegoclair/slack-attendance-bot/mocks"
	"github.com/slack-go/slack/slackevents"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type handlerMocks struct {
	slackClient  *mocks.MockSlackClient
	conversation *mocks.MockConversationService
	talk         *mocks.MockTalkFinder
}

func newHandlerTest(t *testing.T) (m handlerMocks, h *SlackHandler, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)
	m = handlerMocks{
		slackClient:  mocks.NewMockSlackClient(ctrl),
		conversation: mocks.NewMockConversationService(ctrl),
		talk:         mocks.NewMockTalkFinder(ctrl),
	}

	h = New(Params{
		SlackClient:      m.slackClient,
		Conversation:     m.conversation,
		Talk:             m.talk,
		Timetable:        timetable.Default(),
		MonitorChannelID: "CMONITOR",
		MentionUserIDs:   []string{"UADMIN1", "UADMIN2"},
	})
	h.botUserID = "UBOT"
	// A Tuesday at 09:10; next trigger is the 11:00 break.
	h.now = func() time.Time { return time.Date(2025, 6, 3, 9, 10, 0, 0, time.UTC) }

	return
}

func TestHandleMessage_DirectMessage(t *testing.T) {
	m, h, ctrl := newHandlerTest(t)
	defer ctrl.Finish()

	gomock.InOrder(
		// Monitor notification first, then the two replies to the sender.
		m.slackClient.EXPECT().PostMessage("CMONITOR", gomock.Any()).Return("", "", nil),
		m.slackClient.EXPECT().PostMessage("DDM123", gomock.Any()).Return("", "", nil),
		m.slackClient.EXPECT().PostMessage("DDM123", gomock.Any()).Return("", "", nil),
	)

	h.HandleMessage(context.Background(), &slackevents.MessageEvent{
		User:        "U123",
		Channel:     "DDM123",
		ChannelType: "im",
		Text:        "hello bot",
	})
}

func TestHandleMessage_IgnoresChannelMessages(t *testing.T) {
	_, h, ctrl := newHandlerTest(t)
	defer ctrl.Finish()

	h.HandleMessage(context.Background(), &slackevents.MessageEvent{
		User:        "U123",
		Channel:     "CGENERAL",
		ChannelType: "channel",
		Text:        "hello",
	})
}

func TestHandleMessage_IgnoresSelfAndBots(t *testing.T) {
	_, h, ctrl := newHandlerTest(t)
	defer ctrl.Finish()

	h.HandleMessage(context.Background(), &slackevents.MessageEvent{
		User:        "UBOT",
		Channel:     "DDM123",
		ChannelType: "im",
		Text:        "self message",
	})

	h.HandleMessage(context.Background(), &slackevents.MessageEvent{
		User:        "U999",
		BotID:       "B42",
		Channel:     "DDM123",
		ChannelType: "im",
		Text:        "bot message",
	})
}

func TestHandleMention_TimeQuery(t *testing.T) {
	m, h, ctrl := newHandlerTest(t)
	defer ctrl.Finish()

	// Two replies: the current time and the next trigger. No model call.
	m.slackClient.EXPECT().PostMessage("CGENERAL", gomock.Any()).Return("", "", nil).Times(2)

	h.HandleMention(context.Background(), &slackevents.AppMentionEvent{
		User:    "U123",
		Channel: "CGENERAL",
		Text:    "<@UBOT> what time is it?",
	})
}

func TestHandleMention_TalkQuery_NoTalkToday(t *testing.T) {
	m, h, ctrl := newHandlerTest(t)
	defer ctrl.Finish()

	m.talk.EXPECT().TalkToday(gomock.Any()).Return("")
	m.slackClient.EXPECT().PostMessage("CGENERAL", gomock.Any()).Return("", "", nil).Times(1)
	// No model call on an empty lookup.

	h.HandleMention(context.Background(), &slackevents.AppMentionEvent{
		User:    "U123",
		Channel: "CGENERAL",
		Text:    "<@UBOT> anything about the tech talk?",
	})
}

func TestHandleMention_TalkQuery_AugmentsPrompt(t *testing.T) {
	m, h, ctrl := newHandlerTest(t)
	defer ctrl.Finish()

	m.talk.EXPECT().TalkToday(gomock.Any()).Return("🎤 TECH-TALK ALERT 🎤\nLearner: Bob")
	m.conversation.EXPECT().
		Ask(gomock.Any(), "U123", gomock.Cond(func(prompt string) bool {
			return strings.Contains(prompt, "anything about the tech talk?") &&
				strings.Contains(prompt, "Learner: Bob")
		})).
		Return("Bob talks today!", nil)
	m.slackClient.EXPECT().PostMessage("CGENERAL", gomock.Any()).Return("", "", nil).Times(1)

	h.HandleMention(context.Background(), &slackevents.AppMentionEvent{
		User:    "U123",
		Channel: "CGENERAL",
		Text:    "<@UBOT> anything about the tech talk?",
	})
}

func TestHandleMention_ForwardsToModel(t *testing.T) {
	m, h, ctrl := newHandlerTest(t)
	defer ctrl.Finish()

	prompt := "<@UBOT> explain pandas groupby"
	m.conversation.EXPECT().Ask(gomock.Any(), "U123", prompt).Return("sure, groupby...", nil)
	m.slackClient.EXPECT().PostMessage("CGENERAL", gomock.Any()).Return("", "", nil).Times(1)

	h.HandleMention(context.Background(), &slackevents.AppMentionEvent{
		User:    "U123",
		Channel: "CGENERAL",
		Text:    prompt,
	})
}

func TestHandleMention_ModelFailureRepliesApology(t *testing.T) {
	m, h, ctrl := newHandlerTest(t)
	defer ctrl.Finish()

	m.conversation.EXPECT().Ask(gomock.Any(), "U123", gomock.Any()).Return("", assert.AnError)
	// The user still gets a reply (the canned apology).
	m.slackClient.EXPECT().PostMessage("CGENERAL", gomock.Any()).Return("", "", nil).Times(1)

	h.HandleMention(context.Background(), &slackevents.AppMentionEvent{
		User:    "U123",
		Channel: "CGENERAL",
		Text:    "<@UBOT> explain transformers",
	})
}

func TestHandleMention_IgnoresSelf(t *testing.T) {
	_, h, ctrl := newHandlerTest(t)
	defer ctrl.Finish()

	h.HandleMention(context.Background(), &slackevents.AppMentionEvent{
		User:    "UBOT",
		Channel: "CGENERAL",
		Text:    "talking to myself",
	})
}

func TestContainsAny(t *testing.T) {
	assert.True(t, containsAny("what time is it", []string{"what time", "time"}))
	assert.True(t, containsAny("is there a tech talk today", []string{"tech-talk", "tech talk"}))
	assert.False(t, containsAny("hello there", []string{"tech-talk", "tech talk"}))
}
