package domain

import (
	"context"
	"fmt"
)

// Nomes das coleções tal como existem nos dados de produção.
// "Events" mantém a maiúscula histórica.
const (
	CollectionUsers  = "users"
	CollectionEvents = "Events"
)

// Document é o resultado de uma leitura: um documento pode não existir
// sem que isso seja um erro.
type Document struct {
	Exists bool
	Fields map[string]any
}

// Identified é um documento devolvido por uma leitura em bloco da coleção.
type Identified struct {
	ID     string
	Fields map[string]any
}

// Store é o port para o armazenamento de documentos. Cada operação é
// atómica apenas ao nível de um único documento; nenhuma garantia
// transacional cobre chamadas consecutivas.
type Store interface {
	// Get devolve Document{Exists: false} se o documento não existir.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Set grava os campos indicados. Com merge=true os restantes campos
	// do documento ficam intactos; com merge=false o documento é
	// substituído por inteiro. Cria o documento se não existir.
	Set(ctx context.Context, collection, id string, fields map[string]any, merge bool) error

	// List devolve todos os documentos da coleção.
	List(ctx context.Context, collection string) ([]Identified, error)
}

// StoreError envolve falhas de rede/permissão vindas do adapter.
type StoreError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("store %s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
	}
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError é o construtor usado pelos adapters.
func NewStoreError(op, collection, id string, err error) *StoreError {
	return &StoreError{Op: op, Collection: collection, ID: id, Err: err}
}

// StringsField extrai um campo de conjunto de um documento. Campos
// ausentes ou com tipo inesperado contam como conjunto vazio; elementos
// que não sejam strings são ignorados. Os drivers devolvem arrays como
// []any, por isso o switch cobre as duas formas.
func StringsField(fields map[string]any, key string) []string {
	if fields == nil {
		return []string{}
	}
	switch v := fields[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
