package ai

import (
	"context"
	"testing"
	"time"

	"github.com/olegiv/omarket-go/internal/cache"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     float64
	}{
		{"bare number", "29.99", 29.99},
		{"dollar sign", "$29.99", 29.99},
		{"integer", "45", 45},
		{"embedded in prose", "I would suggest 19.50 USD for this product.", 19.50},
		{"first number wins", "between 10 and 20", 10},
		{"no number", "I cannot price this.", FallbackPrice},
		{"empty", "", FallbackPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPrice(tt.response); got != tt.want {
				t.Errorf("extractPrice(%q) = %v, want %v", tt.response, got, tt.want)
			}
		})
	}
}

func TestDisabledGeneratorServesFallbacks(t *testing.T) {
	g := New(Options{})
	ctx := context.Background()

	if g.Enabled() {
		t.Error("Enabled() = true without API key")
	}
	if got := g.ProjectPitch(ctx, "1", "Scraper", "Scrapes things"); got != FallbackPitch {
		t.Errorf("ProjectPitch = %q, want fallback", got)
	}
	if got := g.SuggestPrice(ctx, "Scraper", []string{"Fast"}); got != FallbackPrice {
		t.Errorf("SuggestPrice = %v, want %v", got, FallbackPrice)
	}
}

func TestProjectPitchPrefersCache(t *testing.T) {
	c := cache.NewMemory(cache.MemoryOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	if err := c.Set(ctx, "pitch:42", []byte("cached pitch"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Disabled generator, so a cache miss would return the fallback.
	g := New(Options{Cache: c})
	if got := g.ProjectPitch(ctx, "42", "Scraper", "desc"); got != "cached pitch" {
		t.Errorf("ProjectPitch = %q, want cached value", got)
	}

	g.InvalidatePitch(ctx, "42")
	if got := g.ProjectPitch(ctx, "42", "Scraper", "desc"); got != FallbackPitch {
		t.Errorf("ProjectPitch after invalidation = %q, want fallback", got)
	}
}

func TestNewDefaults(t *testing.T) {
	g := New(Options{})
	if g.model != DefaultModel {
		t.Errorf("model = %q, want %q", g.model, DefaultModel)
	}
	if g.log == nil {
		t.Error("logger not defaulted")
	}
}
