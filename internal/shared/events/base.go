package events

import (
	"encoding/json"
	"time"
)

// Base de todos os eventos de integração trocados entre contextos.
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Key       string          `json:"key,omitempty"` // chave de partição no broker
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// PartitionKey propaga a chave do evento embrulhado para o publisher.
func (e IntegrationEvent) PartitionKey() string { return e.Key }
