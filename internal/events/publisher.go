package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/ShayCichocki/vox/internal/logging"
)

// Defaults for PublisherConfig.
const (
	DefaultStream        = "VOX"
	DefaultSubjectPrefix = "events"
)

// Sink accepts events. Publisher is the production implementation.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// PublisherConfig configures a Publisher.
type PublisherConfig struct {
	URL           string
	Stream        string
	SubjectPrefix string
	Logger        logging.Logger
}

// Publisher sends events to JetStream.
type Publisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	prefix string
}

// NewPublisher connects to NATS and makes sure the stream exists.
func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	if cfg.Stream == "" {
		cfg.Stream = DefaultStream
	}
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = DefaultSubjectPrefix
	}
	log := logging.OrNop(cfg.Logger)

	nc, err := nats.Connect(cfg.URL,
		nats.Name("vox"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      cfg.Stream,
		Subjects:  []string{cfg.SubjectPrefix + ".>"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    24 * time.Hour,
	})
	if err != nil {
		// The stream may already exist with other settings, or the server
		// may still be starting; publishing will report real failures.
		log.Warn("events", "failed to ensure stream", logging.Fields{
			"stream": cfg.Stream,
			"error":  err.Error(),
		})
	}

	return &Publisher{nc: nc, js: js, prefix: cfg.SubjectPrefix}, nil
}

// Subject returns the subject an event is published on.
func Subject(prefix string, event Event) string {
	return prefix + "." + event.EventType()
}

// Publish sends one event.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	subject := Subject(p.prefix, event)
	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("publish event to %s: %w", subject, err)
	}
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
	}
}
