// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, Key("kaggle", "Fraud"), Key("kaggle", "  fraud "))
	assert.NotEqual(t, Key("kaggle", "fraud"), Key("huggingface", "fraud"))
	assert.NotEqual(t, Key("kaggle", "fraud"), Key("kaggle", "churn"))
	assert.Contains(t, Key("kaggle", "fraud"), "scout:v1:kaggle:")
}

func TestMemory(t *testing.T) {
	m := NewMemory(time.Minute, time.Minute)

	_, ok := m.Get("missing")
	assert.False(t, ok)

	m.Set("a", []byte("1"), 0)
	m.Set("b", []byte("2"), time.Hour)
	got, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("1"), got)
	assert.Equal(t, 2, m.Len())

	m.Delete("a")
	_, ok = m.Get("a")
	assert.False(t, ok)

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory(time.Minute, time.Minute)
	m.Set("short", []byte("x"), 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	_, ok := m.Get("short")
	assert.False(t, ok)
}
