// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package ghmodel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/go-github/v82/github"

	"github.com/tprasadtp/go-ghmodel/internal/api"
)

var (
	_ slog.LogValuer = (*RateLimits)(nil)
)

// RateLimits is the rate limit status of the authenticated user
// or the client IP for anonymous requests.
//
// https://docs.github.com/en/rest/rate-limit/rate-limit?apiVersion=2022-11-28
type RateLimits struct {
	// Resources holds limits for each API category.
	Resources *github.RateLimits `json:"resources" yaml:"resources"`

	// Rate is the core API limit. This is deprecated by GitHub in favor
	// of Resources.Core, but is still returned.
	Rate *github.Rate `json:"rate,omitempty" yaml:"rate,omitempty"`
}

// Core returns the rate limit for standard (non search, non GraphQL) requests.
func (r *RateLimits) Core() *github.Rate {
	if r == nil {
		return nil
	}
	if core := r.Resources.GetCore(); core != nil {
		return core
	}
	return r.Rate
}

// StandardRequestsRemaining returns number of remaining standard requests.
func (r *RateLimits) StandardRequestsRemaining() int {
	if core := r.Core(); core != nil {
		return core.Remaining
	}
	return 0
}

// NextReset returns time at which standard request limit resets.
// Returns zero time if unknown.
func (r *RateLimits) NextReset() time.Time {
	if core := r.Core(); core != nil {
		return core.Reset.Time
	}
	return time.Time{}
}

// LogValue implements [log/slog.LogValuer].
func (r *RateLimits) LogValue() slog.Value {
	core := r.Core()
	if core == nil {
		return slog.GroupValue()
	}
	return slog.GroupValue(
		slog.Int("limit", core.Limit),
		slog.Int("remaining", core.Remaining),
		slog.Int("used", core.Used),
		slog.Time("reset", core.Reset.Time),
	)
}

// RateLimits returns current API rate limits. Checking rate limits does
// not count against the limit.
func (c *Client) RateLimits(ctx context.Context) (*RateLimits, error) {
	resp, err := c.get(ctx, api.RateLimitPath)
	if err != nil {
		return nil, err
	}

	limits := &RateLimits{}
	if err := decodeJSON(resp.Body, limits); err != nil {
		return nil, err
	}

	if limits.Core() == nil {
		return nil, fmt.Errorf("ghmodel: rate limit response is missing core limits")
	}
	return limits, nil
}

// StandardRequestsRemaining returns number of remaining standard requests.
// This always fetches current rate limits.
func (c *Client) StandardRequestsRemaining(ctx context.Context) (int, error) {
	limits, err := c.RateLimits(ctx)
	if err != nil {
		return 0, err
	}
	return limits.StandardRequestsRemaining(), nil
}

// NextRateLimitReset returns time at which standard request limit resets.
// This always fetches current rate limits.
func (c *Client) NextRateLimitReset(ctx context.Context) (time.Time, error) {
	limits, err := c.RateLimits(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return limits.NextReset(), nil
}
