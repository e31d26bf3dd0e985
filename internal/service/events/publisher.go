package events

import (
	"context"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/kafka"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
)

// Publisher emits freshly computed signal bundles to a broker topic, keyed
// by symbol. A nil Publisher is valid and drops every event, which is how
// the disabled configuration is represented.
type Publisher struct {
	producer *kafka.Producer
	topic    string
	l        *applogger.Logger
}

func New(producer *kafka.Producer, topic string, l *applogger.Logger) *Publisher {
	return &Publisher{producer: producer, topic: topic, l: l}
}

// PublishSignal sends a SignalEvent derived from the bundle. Broker failures
// are logged and swallowed; event delivery never affects the analysis path.
func (p *Publisher) PublishSignal(ctx context.Context, bundle *models.SignalBundle) {
	if p == nil || p.producer == nil {
		return
	}

	event := models.SignalEvent{
		Symbol:     bundle.Symbol,
		Signal:     bundle.Signal,
		Strength:   bundle.Strength,
		Confidence: bundle.Confidence,
		Price:      bundle.CurrentPrice,
		Timestamp:  bundle.Timestamp,
	}

	if err := p.producer.Publish(ctx, p.topic, []byte(bundle.Symbol), event); err != nil {
		p.l.Warn("signal event publish failed",
			applogger.String("symbol", bundle.Symbol),
			applogger.String("topic", p.topic),
			applogger.Error(err),
		)
	}
}
