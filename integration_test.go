// SPDX-FileCopyrightText: Copyright 2023 Prasad Tengse
// SPDX-License-Identifier: MIT

package ghmodel_test

import (
	"errors"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tprasadtp/go-ghmodel"
	"github.com/tprasadtp/go-ghmodel/internal/shared"
)

// This tests makes live API calls to GitHub api endpoint.
// Only read operations are performed.
func TestIntegration(t *testing.T) {
	if testing.Short() {
		t.Skipf("Skip => Integration tests")
	}

	// API endpoint is rate limited for anonymous requests and most of the
	// operations require authentication. Token need not have any scopes.
	token := os.Getenv("GO_GHMODEL_TEST_TOKEN")
	if token == "" {
		t.Skipf("Skip => GO_GHMODEL_TEST_TOKEN is not defined")
	}

	// Repository the token has push access to, in owner/repo format.
	repoEnv := os.Getenv("GO_GHMODEL_TEST_REPO")
	if repoEnv == "" {
		t.Skipf("Skip => GO_GHMODEL_TEST_REPO is not defined")
	}

	// Check if GO_GHMODEL_TEST_API_URL is set.
	baseURLEnv := os.Getenv("GO_GHMODEL_TEST_API_URL")
	if baseURLEnv == "" {
		baseURLEnv = ghmodel.DefaultEndpoint
	}

	if _, err := url.Parse(baseURLEnv); err != nil {
		t.Fatalf("Invalid REST API endpoint URL: %s", baseURLEnv)
	}

	client, err := ghmodel.NewClient(token, ghmodel.WithEndpoint(baseURLEnv))
	if err != nil {
		t.Fatalf("Failed to build client: %s", err)
	}

	t.Run("RateLimits", func(t *testing.T) {
		ctx, cancel := shared.TestingCtx(t, time.Minute)
		defer cancel()

		limits, err := client.RateLimits(ctx)
		if err != nil {
			t.Fatalf("Failed to get rate limits: %s", err)
		}

		if limits.StandardRequestsRemaining() == 0 {
			t.Skipf("Skip => Rate limit exceeded, resets at %s", limits.NextReset())
		}
		t.Logf("Rate limits: %d remaining", limits.StandardRequestsRemaining())
	})

	var login string
	t.Run("AuthenticatedUser", func(t *testing.T) {
		ctx, cancel := shared.TestingCtx(t, time.Minute)
		defer cancel()

		user, err := client.AuthenticatedUser(ctx)
		if err != nil {
			t.Fatalf("Failed to get authenticated user: %s", err)
		}

		if user.Login() == "" || user.ID() == 0 {
			t.Errorf("login and id must not be empty: %v", user)
		}
		login = user.Login()
	})

	t.Run("UserNotFound", func(t *testing.T) {
		ctx, cancel := shared.TestingCtx(t, time.Minute)
		defer cancel()

		// Logins cannot end with a hyphen.
		_, _, err := client.User(ctx, "ghost-")
		if !errors.Is(err, ghmodel.ErrInvalidName) {
			t.Errorf("expected ErrInvalidName, got %v", err)
		}
	})

	t.Run("Repository", func(t *testing.T) {
		ctx, cancel := shared.TestingCtx(t, time.Minute)
		defer cancel()

		repo, found, err := client.Repositories().Get(ctx, repoEnv)
		if err != nil {
			t.Fatalf("Failed to get repository: %s", err)
		}
		if !found {
			t.Fatalf("Repository not found: %s", repoEnv)
		}

		if !strings.EqualFold(repo.FullName(), repoEnv) {
			t.Errorf("expected full_name=%s, got=%s", repoEnv, repo.FullName())
		}

		owner := repo.Owner()
		if owner == nil {
			t.Fatalf("repository has no owner")
		}
		if owner.Repository() == nil || owner.Repository().Object != repo.Object {
			t.Errorf("owner must refer back to the repository")
		}

		if login == "" {
			t.Skipf("Skip => Authenticated user is unknown")
		}

		collaborator, found, err := repo.Collaborators().Get(ctx, login)
		if err != nil {
			t.Fatalf("Failed to get collaborator: %s", err)
		}
		if !found {
			t.Fatalf("%s is not a collaborator of %s", login, repoEnv)
		}
		if collaborator.Login() != login {
			t.Errorf("expected login=%s, got=%s", login, collaborator.Login())
		}
	})
}
