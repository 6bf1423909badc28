// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ai generates marketing copy and price suggestions for catalog
// projects. Every operation degrades to a static fallback when the
// provider is unconfigured or unreachable, so callers never branch on
// whether AI is available.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/olegiv/omarket-go/internal/cache"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"

	// FallbackPitch is returned when no pitch can be generated.
	FallbackPitch = "This high-quality project is exactly what your workflow needs. Buy now to get full access!"

	// FallbackPrice is suggested when no price can be extracted.
	FallbackPrice = 49.99

	requestTimeout = 30 * time.Second
	pitchTTL       = 12 * time.Hour
)

// priceRe matches the first decimal number in a model response.
var priceRe = regexp.MustCompile(`\d+(\.\d+)?`)

// Generator produces pitches and price suggestions.
type Generator struct {
	client  openai.Client
	model   string
	cache   cache.Cache
	log     *slog.Logger
	enabled bool
}

// Options configures a Generator.
type Options struct {
	// APIKey enables the provider. Empty means fallback-only mode.
	APIKey string

	// Model overrides DefaultModel.
	Model string

	// Cache stores generated pitches per project. Optional.
	Cache cache.Cache

	Logger *slog.Logger
}

// New creates a Generator. A Generator without an API key is valid and
// serves fallbacks only.
func New(opts Options) *Generator {
	g := &Generator{
		model:   opts.Model,
		cache:   opts.Cache,
		log:     opts.Logger,
		enabled: opts.APIKey != "",
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	if g.enabled {
		g.client = openai.NewClient(option.WithAPIKey(opts.APIKey))
	}
	return g
}

// Enabled reports whether a provider is configured.
func (g *Generator) Enabled() bool { return g.enabled }

// ProjectPitch returns a short sales pitch for a project. Pitches are
// cached per project id so repeated detail-page views do not burn
// provider tokens.
func (g *Generator) ProjectPitch(ctx context.Context, projectID, name, description string) string {
	cacheKey := "pitch:" + projectID

	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey); err == nil {
			return string(cached)
		}
	}

	if !g.enabled {
		return FallbackPitch
	}

	prompt := fmt.Sprintf(
		"Write a short, exciting, one-paragraph sales pitch for a digital product named %q. Description: %s. Keep it under 50 words. Do not use markdown.",
		name, description,
	)

	pitch, err := g.complete(ctx, prompt)
	if err != nil {
		g.log.Warn("pitch generation failed", "project_id", projectID, "error", err)
		return FallbackPitch
	}
	pitch = strings.TrimSpace(pitch)
	if pitch == "" {
		return FallbackPitch
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, cacheKey, []byte(pitch), pitchTTL); err != nil {
			g.log.Warn("pitch cache write failed", "project_id", projectID, "error", err)
		}
	}
	return pitch
}

// InvalidatePitch drops the cached pitch for a project. Called when the
// project's name or description changes.
func (g *Generator) InvalidatePitch(ctx context.Context, projectID string) {
	if g.cache == nil {
		return
	}
	if err := g.cache.Delete(ctx, "pitch:"+projectID); err != nil {
		g.log.Warn("pitch cache invalidation failed", "project_id", projectID, "error", err)
	}
}

// SuggestPrice returns a market price suggestion in USD for a project
// described by its name and feature list.
func (g *Generator) SuggestPrice(ctx context.Context, name string, features []string) float64 {
	if !g.enabled {
		return FallbackPrice
	}

	prompt := fmt.Sprintf(
		"Suggest a competitive market price in USD for a digital product named %q with these features: %s. Respond with just the number.",
		name, strings.Join(features, ", "),
	)

	resp, err := g.complete(ctx, prompt)
	if err != nil {
		g.log.Warn("price suggestion failed", "name", name, "error", err)
		return FallbackPrice
	}
	return extractPrice(resp)
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// extractPrice pulls the first decimal number out of a model response.
// Responses like "$29.99" or "I'd suggest 45 USD" both work.
func extractPrice(response string) float64 {
	match := priceRe.FindString(response)
	if match == "" {
		return FallbackPrice
	}
	price, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return FallbackPrice
	}
	return price
}
