package publishers

import "context"

// Publisher sends events to a downstream sink (SQS, SNS, Pub/Sub, HTTP).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// sender delivers an encoded event; queue-style publishers wrap one.
type sender interface {
	Send(ctx context.Context, evt Event) error
}
