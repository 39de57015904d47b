package notification

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	// KindStreakMilestone indicates a user reached a notable streak length.
	KindStreakMilestone = "streak_milestone"
	// KindDailyReminder is the scheduled broadcast nudging users to check in.
	KindDailyReminder = "daily_reminder"
)

// Milestones are the streak lengths that trigger a milestone notification.
var Milestones = []int{7, 14, 30, 60, 90, 365}

// Message describes a notification payload.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers notifications to downstream systems. Push delivery
// itself lives outside this service.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "destination", message.Destination, "body", message.Body)
	return nil
}

// MilestoneMessage builds the payload for a reached streak milestone. The
// second return is false when the streak is not a milestone.
func MilestoneMessage(fid int64, streak int) (Message, bool) {
	for _, m := range Milestones {
		if streak == m {
			return Message{
				Kind:        KindStreakMilestone,
				Destination: fmt.Sprintf("fid:%d", fid),
				Body:        fmt.Sprintf("You've reached a %d day streak!", streak),
			}, true
		}
	}
	return Message{}, false
}
