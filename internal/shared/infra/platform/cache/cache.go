package cache

import "context"

// Cache é o port genérico de cache usado pelos serviços de aplicação.
type Cache interface {
	// Get tenta preencher dest (ponteiro) com o valor associado à key.
	// Devolve (true, nil) num hit, (false, nil) num miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set serializa e guarda o valor com TTL em segundos.
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error

	// Delete remove a key do cache.
	Delete(ctx context.Context, key string) error
}
