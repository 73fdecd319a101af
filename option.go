// SPDX-FileCopyrightText: Copyright 2023 Prasad Tengse
// SPDX-License-Identifier: MIT

package ghmodel

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Options takes a variadic slice of [Options] and returns
// a single [Options] which includes all the given options.
// This is useful for sharing presets. If conflicting options
// are specified, last one specified wins. As a special case,
// if no options are specified or all specified options are nil,
// this will return nil.
func Options(options ...Option) Option {
	nils := 0
	for i := range options {
		if options[i] == nil {
			nils++
		}
	}
	if len(options) == nils {
		return nil
	}

	return &funcOption{
		f: func(c *Client) error {
			var err error
			for i := range options {
				if options[i] != nil {
					err = errors.Join(err, options[i].apply(c))
				}
			}
			return err
		},
	}
}

// Option is option to apply for [Client].
type Option interface {
	apply(c *Client) error
}

// funcOption wraps a function that is applied to the Client
// during its initial configuration. It implements [Option]
// interface.
type funcOption struct {
	f func(*Client) error
}

func (opt *funcOption) apply(c *Client) error {
	return opt.f(c)
}

// WithEndpoint configures [Client] to use custom REST API(v3) endpoint,
// for example GitHub Enterprise Server "https://github.example.com/api/v3/".
//
// When not specified or empty, "https://api.github.com/" is used.
func WithEndpoint(endpoint string) Option {
	if endpoint == "" {
		return nil
	}
	return &funcOption{
		f: func(c *Client) error {
			u, err := url.Parse(endpoint)
			if err != nil {
				return fmt.Errorf("invalid endpoint url: %w", err)
			}
			switch u.Scheme {
			case "http", "https":
			default:
				return fmt.Errorf("invalid url scheme : %s (%s)", u.Scheme, endpoint)
			}

			if u.Fragment != "" || u.RawQuery != "" {
				return fmt.Errorf("endpoint cannot have fragments or queries: %s", endpoint)
			}

			c.baseURL = u
			return nil
		},
	}
}

// WithRoundTripper configures [Client] to use next as underlying [http.RoundTripper].
//
// This can be used to further customize headers, add logging or retries.
// Authorization header is added before next is invoked.
func WithRoundTripper(next http.RoundTripper) Option {
	if next == nil {
		return nil
	}
	return &funcOption{
		f: func(c *Client) error {
			c.next = next
			return nil
		},
	}
}

// WithUserAgent configures user agent header to use for API requests.
func WithUserAgent(ua string) Option {
	if strings.TrimSpace(ua) == "" {
		return nil
	}
	return &funcOption{
		f: func(c *Client) error {
			c.ua = ua
			return nil
		},
	}
}

// WithLogger configures logger used by [Client]. Requests are logged at
// [log/slog.LevelDebug]. By default, nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		return nil
	}
	return &funcOption{
		f: func(c *Client) error {
			c.logger = logger
			return nil
		},
	}
}

// WithTimeout configures timeout for a single request including reading
// the response body. Default is one minute.
func WithTimeout(d time.Duration) Option {
	return &funcOption{
		f: func(c *Client) error {
			if d <= 0 {
				return fmt.Errorf("timeout must be positive: %s", d)
			}
			c.timeout = d
			return nil
		},
	}
}
