package source

import (
	"testing"

	"cloud.google.com/go/pubsub"
	"github.com/sirupsen/logrus"
)

func testListener() *Listener {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &Listener{bucket: "cinelake-batches", log: log}
}

func notification(eventType string, data string) *pubsub.Message {
	msg := &pubsub.Message{Data: []byte(data)}
	if eventType != "" {
		msg.Attributes = map[string]string{"eventType": eventType}
	}
	return msg
}

func TestAccept_FinalizedBatchObject(t *testing.T) {
	t.Parallel()

	l := testListener()
	msg := notification("OBJECT_FINALIZE", `{"bucket":"cinelake-batches","name":"movies_100_to_150.json"}`)

	object, ok := l.accept(msg)
	if !ok {
		t.Fatal("expected notification to be accepted")
	}
	if object != "movies_100_to_150.json" {
		t.Fatalf("object = %q", object)
	}
}

func TestAccept_IgnoresNonBatchNotifications(t *testing.T) {
	t.Parallel()

	l := testListener()
	tests := []struct {
		name string
		msg  *pubsub.Message
	}{
		{
			name: "delete event",
			msg:  notification("OBJECT_DELETE", `{"bucket":"cinelake-batches","name":"movies_1_to_2.json"}`),
		},
		{
			name: "wrong bucket",
			msg:  notification("OBJECT_FINALIZE", `{"bucket":"other","name":"movies_1_to_2.json"}`),
		},
		{
			name: "checkpoint object",
			msg:  notification("OBJECT_FINALIZE", `{"bucket":"cinelake-batches","name":"last_id.txt"}`),
		},
		{
			name: "undecodable payload",
			msg:  notification("OBJECT_FINALIZE", `not json`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := l.accept(tt.msg); ok {
				t.Fatal("expected notification to be ignored")
			}
		})
	}
}

func TestAccept_MissingEventTypeStillRoutesOnPayload(t *testing.T) {
	t.Parallel()

	l := testListener()
	msg := notification("", `{"bucket":"cinelake-batches","name":"movies_1_to_2.json"}`)
	if _, ok := l.accept(msg); !ok {
		t.Fatal("expected notification without eventType attribute to be accepted")
	}
}
