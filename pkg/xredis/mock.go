package xredis

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"
)

// MockClient is an in-memory Client for tests.
type MockClient struct {
	mutex sync.Mutex
	data  map[string]string
}

func NewMockClient() *MockClient {
	return &MockClient{data: make(map[string]string)}
}

func (c *MockClient) Exist(ctx context.Context, key string) (bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, ok := c.data[key]
	return ok, nil
}

func (c *MockClient) Del(ctx context.Context, key ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, k := range key {
		delete(c.data, k)
	}

	return nil
}

func (c *MockClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var keys []string
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}

	return keys, nil
}

func (c *MockClient) Set(ctx context.Context, key, value string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = value
	return nil
}

func (c *MockClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	return c.Set(ctx, key, string(b))
}

func (c *MockClient) Get(ctx context.Context, key string) (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	value, ok := c.data[key]
	if !ok {
		return "", Nil
	}

	return value, nil
}

func (c *MockClient) GetObj(ctx context.Context, key string, v any) error {
	s, err := c.Get(ctx, key)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(s), v)
}
