package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/diegoclair/slack-attendance-bot/internal/domain"
	"github.com/diegoclair/slack-attendance-bot/internal/domain/contract"
	"github.com/diegoclair/slack-attendance-bot/internal/timetable"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

const (
	apologyMessage = "⚠️ An error occurred with the assistant, please try again later."
	noTalkMessage  = "No tech talk scheduled for today."
)

// SlackHandler services the Socket Mode event stream: direct messages,
// app mentions and the /time slash command.
type SlackHandler struct {
	slackClient  contract.SlackClient
	socketClient *socketmode.Client
	conversation contract.ConversationService
	talk         contract.TalkFinder
	tt           *timetable.Timetable

	monitorChannelID string
	mentionUserIDs   []string
	botUserID        string
	now              func() time.Time
}

// Params collects the handler's collaborators.
type Params struct {
	SlackClient      contract.SlackClient
	SocketClient     *socketmode.Client
	Conversation     contract.ConversationService
	Talk             contract.TalkFinder
	Timetable        *timetable.Timetable
	MonitorChannelID string
	MentionUserIDs   []string
	Location         *time.Location
}

func New(p Params) *SlackHandler {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	return &SlackHandler{
		slackClient:      p.SlackClient,
		socketClient:     p.SocketClient,
		conversation:     p.Conversation,
		talk:             p.Talk,
		tt:               p.Timetable,
		monitorChannelID: p.MonitorChannelID,
		mentionUserIDs:   p.MentionUserIDs,
		now:              func() time.Time { return time.Now().In(loc) },
	}
}

// Run identifies the bot, posts the startup heartbeat and services the
// Socket Mode connection until ctx is done.
func (h *SlackHandler) Run(ctx context.Context) error {
	auth, err := h.slackClient.AuthTest()
	if err != nil {
		return fmt.Errorf("failed to identify bot user: %w", err)
	}
	h.botUserID = auth.UserID
	log.Printf("Bot connected as %s (%s)", auth.User, auth.UserID)

	h.post(h.monitorChannelID, "🤖 Yeah I'm still workin' no worries 🤖")

	go h.eventLoop(ctx)

	return h.socketClient.RunContext(ctx)
}

func (h *SlackHandler) eventLoop(ctx context.Context) {
	for evt := range h.socketClient.Events {
		switch evt.Type {
		case socketmode.EventTypeConnecting:
			log.Println("Connecting to Slack...")
		case socketmode.EventTypeConnectionError:
			log.Println("Slack connection failed, retrying...")
		case socketmode.EventTypeConnected:
			log.Println("Connected to Slack")
		case socketmode.EventTypeEventsAPI:
			eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
			if !ok {
				continue
			}
			if evt.Request != nil {
				h.socketClient.Ack(*evt.Request)
			}
			h.handleEventsAPI(ctx, eventsAPIEvent)
		case socketmode.EventTypeSlashCommand:
			cmd, ok := evt.Data.(slack.SlashCommand)
			if !ok {
				continue
			}
			h.handleSlashCommand(evt, cmd)
		}
	}
}

func (h *SlackHandler) handleEventsAPI(ctx context.Context, e slackevents.EventsAPIEvent) {
	if e.Type != slackevents.CallbackEvent {
		return
	}

	switch ev := e.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		h.HandleMention(ctx, ev)
	case *slackevents.MessageEvent:
		h.HandleMessage(ctx, ev)
	}
}

// HandleMessage reacts to direct messages: the monitor channel gets a
// copy, the sender gets the current time and the next scheduled event.
func (h *SlackHandler) HandleMessage(ctx context.Context, ev *slackevents.MessageEvent) {
	if ev.ChannelType != "im" {
		return
	}
	if h.isSelf(ev.User) || ev.BotID != "" || ev.SubType != "" {
		return
	}

	log.Printf("Private message received from %s: %s", ev.User, ev.Text)

	var mentions strings.Builder
	for _, userID := range h.mentionUserIDs {
		fmt.Fprintf(&mentions, "<@%s> ", userID)
	}
	h.post(h.monitorChannelID, fmt.Sprintf("🤖 %sPrivate message received from <@%s>: %s", mentions.String(), ev.User, ev.Text))

	now := h.now()
	h.post(ev.Channel, fmt.Sprintf("The current time is %s.", now.Format("15:04:05")))
	h.post(ev.Channel, h.tt.UntilNext(now))
}

// HandleMention answers @-mentions: time queries get the canned time
// reply, tech-talk queries go through the sheet lookup, everything else
// goes to the model with the user's session as context.
func (h *SlackHandler) HandleMention(ctx context.Context, ev *slackevents.AppMentionEvent) {
	if h.isSelf(ev.User) {
		return
	}

	prompt := ev.Text
	lower := strings.ToLower(prompt)
	log.Printf("Bot mentioned by %s in %s: %s", ev.User, ev.Channel, ev.Text)

	switch {
	case containsAny(lower, domain.TimeKeywords):
		now := h.now()
		h.post(ev.Channel, fmt.Sprintf("Hello <@%s>, the current time is %s. 🤖", ev.User, now.Format("15:04:05")))
		h.post(ev.Channel, h.tt.UntilNext(now))

	case containsAny(lower, domain.TalkKeywords):
		talk := h.talk.TalkToday(ctx)
		if talk == "" {
			h.post(ev.Channel, noTalkMessage)
			return
		}
		prompt += fmt.Sprintf(" The user is asking about the tech talk. This is the tech talk scheduled today: %s. Can you summarize or comment on it?", talk)
		h.askAndReply(ctx, ev.Channel, ev.User, prompt)

	default:
		h.askAndReply(ctx, ev.Channel, ev.User, prompt)
	}
}

// askAndReply forwards the prompt to the model; a failed call degrades to
// the fixed apology instead of propagating.
func (h *SlackHandler) askAndReply(ctx context.Context, channelID, userID, prompt string) {
	reply, err := h.conversation.Ask(ctx, userID, prompt)
	if err != nil {
		log.Printf("Model error for user %s: %v", userID, err)
		reply = apologyMessage
	}
	h.post(channelID, reply)
}

func (h *SlackHandler) handleSlashCommand(evt socketmode.Event, cmd slack.SlashCommand) {
	if evt.Request == nil {
		return
	}
	if cmd.Command != "/time" {
		h.socketClient.Ack(*evt.Request)
		return
	}

	h.socketClient.Ack(*evt.Request, map[string]interface{}{
		"response_type": slack.ResponseTypeInChannel,
		"text":          fmt.Sprintf("The current time is %s.", h.now().Format("15:04:05")),
	})
}

func (h *SlackHandler) post(channelID, text string) {
	if channelID == "" || text == "" {
		return
	}
	if _, _, err := h.slackClient.PostMessage(channelID, slack.MsgOptionText(text, false)); err != nil {
		log.Printf("Failed to post message to %s: %v", channelID, err)
	}
}

func (h *SlackHandler) isSelf(userID string) bool {
	return userID == "" || userID == h.botUserID
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
