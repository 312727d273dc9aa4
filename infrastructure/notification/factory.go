package notification

import (
	"context"
	"fmt"

	"invoicing/config"
	"invoicing/domain/notification"
)

// NewDriver builds the driver named by cfg.Driver. The returned close function
// releases driver resources and is never nil.
func NewDriver(ctx context.Context, cfg config.NotificationConfig) (notification.Driver, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "", "log":
		return NewLogDriver(), noop, nil
	case "smtp":
		return NewSMTPDriver(cfg.SMTP, cfg.From), noop, nil
	case "ses":
		d, err := NewSESDriver(ctx, cfg.SES, cfg.From)
		if err != nil {
			return nil, noop, err
		}
		return d, noop, nil
	case "kafka":
		d := NewKafkaDriver(cfg.Kafka.Brokers, cfg.Kafka.NotifyTopic)
		return d, d.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported notification driver: %q", cfg.Driver)
	}
}
