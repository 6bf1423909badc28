package cache

import "testing"

func TestNewMemoryBackend(t *testing.T) {
	for _, typ := range []string{"", "memory"} {
		c, err := New(Config{Type: typ})
		if err != nil {
			t.Fatalf("New(%q): %v", typ, err)
		}
		if _, ok := c.(*Memory); !ok {
			t.Errorf("New(%q) = %T, want *Memory", typ, c)
		}
		_ = c.Close()
	}
}

func TestNewUnknownBackend(t *testing.T) {
	if _, err := New(Config{Type: "memcached"}); err == nil {
		t.Error("New(memcached) error = nil, want error")
	}
}

func TestNewRedisRequiresURL(t *testing.T) {
	if _, err := New(Config{Type: "redis"}); err == nil {
		t.Error("New(redis) without URL error = nil, want error")
	}
}
