// internal/bot/bot.go

// Package bot wires the Discord event stream to the classifier, store,
// and renderers. All externally-triggered failures are converted to short
// user-facing messages here; nothing below this layer talks to the user.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"nutribot/internal/models"
)

// Advisor is the model-backed side of the bot: classification, tips, and
// suggestions. Implemented by gemini.Client.
type Advisor interface {
	ClassifyMeal(ctx context.Context, description, imageURL string) (models.Classification, error)
	InferFoodName(ctx context.Context, imageURL string) (string, error)
	MealTip(ctx context.Context, cls models.Classification, foodName string) (string, error)
	SuggestFoods(ctx context.Context, totals models.Classification, below []models.Group) ([]string, error)
}

// Store is the persistence side of the bot. Implemented by
// storage.SQLiteStorage.
type Store interface {
	SaveMeal(ctx context.Context, meal *models.MealLog) (int64, error)
	WeeklyTotals(ctx context.Context, userID string, now time.Time) (models.Classification, error)
}

const (
	commandReport    = "!report"
	commandRecommend = "!recommend"
)

type Bot struct {
	session *discordgo.Session
	advisor Advisor
	store   Store
	channel string
	log     *slog.Logger
	now     func() time.Time
}

func New(token string, advisor Advisor, store Store, channel string, log *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	b := &Bot{
		session: session,
		advisor: advisor,
		store:   store,
		channel: channel,
		log:     log,
		now:     time.Now,
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
	session.AddHandler(b.onMessageCreate)

	return b, nil
}

// Start opens the Discord gateway connection and blocks until the context
// is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	b.log.Info("bot connected", "channel", b.channel)

	<-ctx.Done()
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

// action is the routing decision for one incoming message.
type action int

const (
	actionIgnore action = iota
	actionReport
	actionRecommend
	actionLogMeal
)

// route classifies one incoming message: drop it, run a command, or treat
// it as a meal submission. Messages from bots and messages outside DMs or
// the monitored channel are dropped without a reply. Commands must match
// exactly after trimming and lowercasing; any other non-empty content, or
// an image attachment, is a meal.
func (b *Bot) route(s *discordgo.Session, m *discordgo.MessageCreate) action {
	if m.Author == nil || m.Author.Bot {
		return actionIgnore
	}
	if !b.monitored(s, m) {
		return actionIgnore
	}

	switch strings.ToLower(strings.TrimSpace(m.Content)) {
	case commandReport:
		return actionReport
	case commandRecommend:
		return actionRecommend
	}

	if strings.TrimSpace(m.Content) == "" && firstImageAttachment(m.Attachments) == "" {
		return actionIgnore
	}
	return actionLogMeal
}

// onMessageCreate handles one incoming message. Events for different users
// arrive concurrently; each handler runs one complete flow before
// returning, and the store tolerates concurrent appends.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	act := b.route(s, m)
	if act == actionIgnore {
		return
	}

	ctx := context.Background()
	b.typing(s, m.ChannelID)

	var reply string
	var err error

	switch act {
	case actionReport:
		reply, err = b.WeeklyReport(ctx, m.Author.ID)
	case actionRecommend:
		reply, err = b.Recommend(ctx, m.Author.ID)
	default:
		reply, err = b.LogMeal(ctx, m.Author.ID, strings.TrimSpace(m.Content), firstImageAttachment(m.Attachments))
	}

	if err != nil {
		b.log.Error("flow failed", "user_id", m.Author.ID, "error", err)
		reply = userMessage(err)
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		b.log.Error("failed to send reply", "channel_id", m.ChannelID, "error", err)
	}
}

// monitored reports whether the message arrived via DM or in the
// configured food channel. Anything else is silently ignored.
func (b *Bot) monitored(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if m.GuildID == "" {
		return true // direct message
	}

	ch, err := s.State.Channel(m.ChannelID)
	if err != nil {
		ch, err = s.Channel(m.ChannelID)
		if err != nil {
			b.log.Warn("failed to resolve channel", "channel_id", m.ChannelID, "error", err)
			return false
		}
	}
	return ch.Name == b.channel
}

// typing signals that an external call is in flight. Pure UX; errors are
// ignored.
func (b *Bot) typing(s *discordgo.Session, channelID string) {
	_ = s.ChannelTyping(channelID)
}

// firstImageAttachment returns the URL of the first image attachment, or
// "" if the message carries none.
func firstImageAttachment(attachments []*discordgo.MessageAttachment) string {
	for _, a := range attachments {
		if strings.HasPrefix(a.ContentType, "image/") {
			return a.URL
		}
	}
	return ""
}
