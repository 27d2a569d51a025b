package externals

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogSender replaces the mail and sms senders and the image store when they
// are not configured, e.g. on a local machine or in test mode. Only the
// recipient and subject are logged, bodies carry codes and passwords. Images
// are discarded.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (sender *LogSender) SendMail(ctx context.Context, to string, subject string, htmlBody string) error {
	sender.logger.Info("mail not sent, no smtp server configured",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

func (sender *LogSender) SendSMS(ctx context.Context, phoneNumber string, message string) error {
	sender.logger.Info("sms not sent, no sms provider configured",
		zap.String("to", phoneNumber))
	return nil
}

func (sender *LogSender) UploadUserImage(ctx context.Context, image io.Reader) (string, error) {
	size, err := io.Copy(io.Discard, image)
	if err != nil {
		return "", err
	}
	key := userImageKey(uuid.NewString())
	sender.logger.Info("image not uploaded, no storage configured", zap.String("key", key), zap.Int64("size", size))
	return "/" + key, nil
}
