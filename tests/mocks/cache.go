package mocks

import (
	"context"
	"encoding/json"
	"sync"

	sharedCache "github.com/annaclara1997/event-buddy-project/internal/shared/infra/platform/cache"
)

// DummyCache simula o port de cache. Por omissão é sempre miss; os testes
// podem semear valores com SetForTest.
type DummyCache struct {
	mu    sync.Mutex
	items map[string][]byte

	Sets    int
	Deletes int
}

var _ sharedCache.Cache = (*DummyCache)(nil)

func NewDummyCache() *DummyCache {
	return &DummyCache{items: make(map[string][]byte)}
}

// SetForTest insere diretamente um valor, sem contar como Set.
func (c *DummyCache) SetForTest(key string, val interface{}) {
	data, _ := json.Marshal(val)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
}

func (c *DummyCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.items[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *DummyCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	c.Sets++
	return nil
}

func (c *DummyCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	c.Deletes++
	return nil
}
