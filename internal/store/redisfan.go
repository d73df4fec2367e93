package store

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/sijil-app/sijil/internal/logging"
)

const fanChannel = "sijil:changes"

// RedisFan broadcasts change topics over a redis pub/sub channel so that
// several server instances sharing one SQL database keep their
// subscribers fresh. Messages carry the sender's instance id; a fan
// ignores its own, since the local hub was already notified by the
// mutation itself. Publish failures are logged and dropped: a missed
// broadcast means a stale list on another instance until its next change,
// never an error for the writer.
type RedisFan struct {
	client *redis.Client
	id     string
	logger logging.Logger
}

var _ Notifier = (*RedisFan)(nil)

func NewRedisFan(client *redis.Client, logger logging.Logger) *RedisFan {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &RedisFan{
		client: client,
		id:     NewPushID(),
		logger: logger.With("component", "redisfan"),
	}
}

func (f *RedisFan) Publish(ctx context.Context, topic string) {
	if err := f.client.Publish(ctx, fanChannel, topic+"@"+f.id).Err(); err != nil {
		f.logger.Warn(ctx, "publish failed", "topic", topic, "error", err)
	}
}

// Run consumes broadcasts until ctx is cancelled, invoking onTopic for
// every change announced by another instance.
func (f *RedisFan) Run(ctx context.Context, onTopic func(topic string)) {
	pubsub := f.client.Subscribe(ctx, fanChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			topic, sender, found := strings.Cut(msg.Payload, "@")
			if !found {
				f.logger.Warn(ctx, "malformed broadcast", "payload", msg.Payload)
				continue
			}
			if sender == f.id {
				continue
			}
			onTopic(topic)
		}
	}
}
