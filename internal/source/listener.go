package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/pubsub"
	"github.com/sirupsen/logrus"
)

// objectNotification is the payload of a storage bucket notification.
// Only the fields the listener routes on are decoded.
type objectNotification struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// ImportFunc handles one finalized batch object.
type ImportFunc func(ctx context.Context, object string) error

// Listener pulls storage notifications from a subscription and triggers
// an import for each newly finalized JSON object. Messages are acked
// only after a successful import so failed batches are redelivered.
type Listener struct {
	sub      *pubsub.Subscription
	bucket   string
	handleFn ImportFunc
	log      *logrus.Logger
}

// NewListener creates a Listener on the given subscription, accepting
// notifications for one bucket only.
func NewListener(client *pubsub.Client, subscriptionID, bucket string, handle ImportFunc, log *logrus.Logger) *Listener {
	return &Listener{
		sub:      client.Subscription(subscriptionID),
		bucket:   bucket,
		handleFn: handle,
		log:      log,
	}
}

// Listen blocks receiving notifications until ctx is canceled.
func (l *Listener) Listen(ctx context.Context) error {
	l.log.WithFields(logrus.Fields{
		"subscription": l.sub.ID(),
		"bucket":       l.bucket,
	}).Info("listening for batch notifications")

	err := l.sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		object, ok := l.accept(msg)
		if !ok {
			// Not a batch for us; acking avoids redelivery loops.
			msg.Ack()
			return
		}

		if err := l.handleFn(ctx, object); err != nil {
			l.log.WithFields(logrus.Fields{
				"object": object,
				"error":  err.Error(),
			}).Error("batch import failed, nacking for redelivery")
			msg.Nack()
			return
		}

		msg.Ack()
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("receiving notifications: %w", err)
	}

	return nil
}

// accept decides whether a notification names an importable object and
// returns its name. Only OBJECT_FINALIZE events for JSON objects in the
// configured bucket qualify.
func (l *Listener) accept(msg *pubsub.Message) (string, bool) {
	if ev := msg.Attributes["eventType"]; ev != "" && ev != "OBJECT_FINALIZE" {
		return "", false
	}

	var n objectNotification
	if err := json.Unmarshal(msg.Data, &n); err != nil {
		l.log.WithField("error", err.Error()).Warn("undecodable notification")
		return "", false
	}

	if n.Bucket != l.bucket || !strings.HasSuffix(n.Name, ".json") {
		return "", false
	}

	return n.Name, true
}
