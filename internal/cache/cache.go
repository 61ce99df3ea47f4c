// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores serialized provider responses for reuse across requests.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache stores byte values with a per-entry TTL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
	Clear()
}

// Key derives a cache key from a namespace and a query. Queries are
// lowercased and trimmed, so "Fraud " and "fraud" share an entry.
func Key(namespace, query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return "scout:v1:" + namespace + ":" + hex.EncodeToString(sum[:])
}

// Memory is an in-process Cache backed by go-cache.
type Memory struct {
	c *gocache.Cache
}

// NewMemory creates a cache whose entries default to defaultTTL and whose
// expired entries are purged every cleanupInterval.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{c: gocache.New(defaultTTL, cleanupInterval)}
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Set stores value under key. A ttl of 0 uses the default TTL.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, value, ttl)
}

// Delete removes key.
func (m *Memory) Delete(key string) {
	m.c.Delete(key)
}

// Clear removes every entry.
func (m *Memory) Clear() {
	m.c.Flush()
}

// Len returns the number of entries, including expired ones not yet purged.
func (m *Memory) Len() int {
	return m.c.ItemCount()
}
