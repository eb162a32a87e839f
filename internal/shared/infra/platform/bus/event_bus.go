package bus

import "context"

type Keyer interface {
	PartitionKey() string
}

// A semântica de topic/nome e o formato do payload decidem-se nos adapters.
type EventBus interface {
	Publish(ctx context.Context, event interface{}) error
}
