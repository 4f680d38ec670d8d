// Package cache keeps short lived copies of read-only API responses.
package cache

import (
	"errors"
	"log"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
}

// NopStore never hits.
type NopStore struct{}

func (NopStore) Get(string) ([]byte, bool)         { return nil, false }
func (NopStore) Set(string, []byte, time.Duration) {}

type Memcached struct {
	client *memcache.Client
}

func NewMemcached(servers ...string) *Memcached {
	client := memcache.New(servers...)
	client.Timeout = 200 * time.Millisecond
	return &Memcached{client: client}
}

func (m *Memcached) Get(key string) ([]byte, bool) {
	item, err := m.client.Get(key)
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			log.Printf("memcache get %s: %v", key, err)
		}
		return nil, false
	}
	return item.Value, true
}

// Set stores value for ttl, rounded down to whole seconds.
func (m *Memcached) Set(key string, value []byte, ttl time.Duration) {
	err := m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(ttl / time.Second),
	})
	if err != nil {
		log.Printf("memcache set %s: %v", key, err)
	}
}
