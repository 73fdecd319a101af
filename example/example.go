// SPDX-FileCopyrightText: Copyright 2023 Prasad Tengse
// SPDX-License-Identifier: MIT

// An example CLI which reads and updates users, repositories and
// collaborators with the GitHub REST API.
//
// This is an example CLI and is not covered by semver compatibility guarantees.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/spf13/cobra"

	"github.com/tprasadtp/go-ghmodel"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// app holds global flags and the client built from them.
type app struct {
	token    string
	endpoint string
	output   string
	timeout  time.Duration
	debug    bool

	logger *slog.Logger
	client *ghmodel.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:          "ghmodel",
		Short:        "Inspect and update GitHub users, repositories and collaborators",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.token, "token", "", "GitHub token (default from GITHUB_TOKEN, GH_TOKEN or gh CLI)")
	flags.StringVar(&a.endpoint, "endpoint", ghmodel.DefaultEndpoint, "GitHub REST API endpoint")
	flags.StringVarP(&a.output, "output", "o", formatJSON, "Output format, json or yaml")
	flags.DurationVar(&a.timeout, "timeout", time.Minute, "Per request timeout")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logs")

	cmd.AddCommand(
		newWhoamiCmd(a),
		newReposCmd(a),
		newCollaboratorsCmd(a),
		newRateLimitCmd(a),
	)
	return cmd
}

// setup validates flags and builds the client.
func (a *app) setup(stderr io.Writer) error {
	switch a.output {
	case formatJSON, formatYAML:
	default:
		return fmt.Errorf("unsupported output format: %q", a.output)
	}

	level := slog.LevelInfo
	if a.debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	token, source := resolveToken(a.token, a.endpoint)
	if token == "" {
		a.logger.Debug("No token found, requests are anonymous")
	} else {
		a.logger.Debug("Using token", slog.String("source", source))
	}

	client, err := ghmodel.NewClient(token,
		ghmodel.WithEndpoint(a.endpoint),
		ghmodel.WithTimeout(a.timeout),
		ghmodel.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

// resolveToken returns token and its source. Priority order is flag,
// GITHUB_TOKEN, GH_TOKEN and then gh CLI configuration for the
// endpoint's host.
func resolveToken(flagToken, endpoint string) (token, source string) {
	if flagToken != "" {
		return flagToken, "flag"
	}

	for _, env := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if v := os.Getenv(env); v != "" {
			return v, env
		}
	}

	host := "github.com"
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" && u.Host != "api.github.com" {
		host = u.Hostname()
	}
	return auth.TokenForHost(host)
}
