package usecases

import (
	"context"

	"go.uber.org/zap"

	"bot-commander.backend/pkg/logger"
)

// BotNotifier pushes a behaviour-flag change to the running bot. The
// decrypted bot identifier is handed over for the outbound call and is
// never persisted by implementations.
type BotNotifier interface {
	NotifyFlagChange(ctx context.Context, botID string, action string, value bool) error
}

// LogNotifier records flag changes in the application log. It stands in
// until the outbound bot transport is wired up.
type LogNotifier struct{}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// NotifyFlagChange logs the change and always succeeds. The plaintext
// bot id is kept out of the log output.
func (n *LogNotifier) NotifyFlagChange(ctx context.Context, botID string, action string, value bool) error {
	logger.Info(ctx, "bot flag change",
		zap.String("action", action),
		zap.Bool("value", value))
	return nil
}
