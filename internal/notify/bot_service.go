// Package notify handles the integration with the Telegram Bot API. New
// complaints are announced in the staff chat, and staff members can query
// complaint state with bot commands without opening the dashboard.
package notify

import (
	"errors"
	"fmt"
	"strings"

	"campusvoice/backend/internal/complaint"
	"campusvoice/backend/internal/config"
	"campusvoice/backend/internal/logger"
	"campusvoice/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// botSession is the service-boundary identity the bot acts under. The staff
// chat is admin territory, so the bot holds the admin capability.
var botSession = models.Session{
	UserID:   "staff-bot",
	UserName: "Staff Bot",
	Role:     config.RoleAdmin,
}

// BotService announces portal activity to a staff chat and answers /track
// and /stats commands there.
type BotService struct {
	BotAPI      *tgbotapi.BotAPI
	StaffChatID int64
	Complaints  *complaint.Service
	Log         *logger.Logger
}

// NewBotService creates a new BotService instance.
func NewBotService(token string, staffChatID int64, svc *complaint.Service, log *logger.Logger) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Infof("✅ Authorized on account %s", bot.Self.UserName)

	return &BotService{
		BotAPI:      bot,
		StaffChatID: staffChatID,
		Complaints:  svc,
		Log:         log,
	}, nil
}

// ComplaintSubmitted implements complaint.Notifier. It runs on the request
// path, so failures are logged and swallowed.
func (s *BotService) ComplaintSubmitted(c *models.Complaint) {
	redacted := c.Redacted()
	submitter := redacted.UserName
	if submitter == "" {
		submitter = "Anonymous"
	}

	text := fmt.Sprintf("📣 New complaint %s\nCategory: %s\nTitle: %s\nFrom: %s",
		redacted.TrackingID, redacted.Category, redacted.Title, submitter)

	if _, err := s.BotAPI.Send(tgbotapi.NewMessage(s.StaffChatID, text)); err != nil {
		s.Log.Errorf("Failed to notify staff chat about %s: %v", c.TrackingID, err)
	}
}

// Run polls Telegram for updates and answers staff commands.
func (s *BotService) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for update := range s.BotAPI.GetUpdatesChan(u) {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		// Commands are only honored inside the staff chat.
		if update.Message.Chat.ID != s.StaffChatID {
			continue
		}

		var reply string
		switch update.Message.Command() {
		case "track":
			reply = s.handleTrack(update.Message.CommandArguments())
		case "stats":
			reply = s.handleStats()
		default:
			continue
		}

		if _, err := s.BotAPI.Send(tgbotapi.NewMessage(update.Message.Chat.ID, reply)); err != nil {
			s.Log.Errorf("Failed to send bot reply: %v", err)
		}
	}
}

func (s *BotService) handleTrack(args string) string {
	trackingID := strings.TrimSpace(args)
	if trackingID == "" {
		return "Usage: /track TRK123456"
	}

	c, err := s.Complaints.Track(trackingID)
	if err != nil {
		var nfErr *complaint.NotFoundError
		if errors.As(err, &nfErr) {
			return fmt.Sprintf("No complaint found for %s", trackingID)
		}
		s.Log.Errorf("Failed to track %s for bot: %v", trackingID, err)
		return "Tracking is unavailable right now."
	}

	return fmt.Sprintf("%s — %s\nStatus: %s\nCategory: %s\nResponses: %d",
		c.TrackingID, c.Title, c.Status, c.Category, len(c.Responses))
}

func (s *BotService) handleStats() string {
	stats, err := s.Complaints.Stats(botSession)
	if err != nil {
		s.Log.Errorf("Failed to compute stats for bot: %v", err)
		return "Statistics are unavailable right now."
	}

	return fmt.Sprintf("📊 Complaints: %d total\nPending: %d\nIn progress: %d\nResolved: %d\nRejected: %d",
		stats.Total, stats.Pending, stats.InProgress, stats.Resolved, stats.Rejected)
}
