// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package ghmodel

import (
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tprasadtp/go-ghmodel/internal/shared"
	"github.com/tprasadtp/go-ghmodel/internal/testdata/apitestdata"
)

// newTestRepository returns octocat/Hello-World bound to c.
func newTestRepository(t *testing.T, c *Client) *Repository {
	t.Helper()
	repo := NewRepository(c)
	require.NoError(t, repo.UnmarshalJSON(apitestdata.Get(t)["repository"]))
	return repo
}

func TestCollaboratorsList(t *testing.T) {
	ctx, cancel := shared.TestingCtx(t, time.Minute)
	defer cancel()

	data := apitestdata.Get(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/octocat/Hello-World/collaborators", r.URL.Path)
		serveJSON(w, http.StatusOK, data["collaborators"])
	})

	repo := newTestRepository(t, c)
	collaborators := repo.Collaborators()
	require.Same(t, repo, collaborators.Repository())

	users, err := collaborators.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, apitestdata.Login, users[0].Login())
	require.Equal(t, apitestdata.Collaborator, users[1].Login())
	require.Equal(t, apitestdata.BotCollaborator, users[2].Login())
	require.Equal(t, "Bot", users[2].Type())

	// "false" is coerced to false.
	require.False(t, users[1].SiteAdmin())

	// role_name is not part of the schema.
	require.False(t, users[0].IsSet("role_name"))
}

func TestCollaboratorsGet(t *testing.T) {
	data := apitestdata.Get(t)

	var lists atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octocat/Hello-World/collaborators":
			lists.Add(1)
			serveJSON(w, http.StatusOK, data["collaborators"])
		case "/users/octocat":
			serveJSON(w, http.StatusOK, data["user"])
		case "/users/dependabot[bot]":
			serveJSON(w, http.StatusOK, []byte(`{"login":"dependabot[bot]","id":49699333,"type":"Bot"}`))
		default:
			assert.Failf(t, "unexpected request", "%s %s", r.Method, r.URL.Path)
			serveJSON(w, http.StatusNotFound, data["error_not_found"])
		}
	})
	repo := newTestRepository(t, c)

	type testCase struct {
		name  string
		login string
		found bool
		err   error
	}
	tt := []testCase{
		{name: "found", login: "octocat", found: true},
		{name: "found-case-insensitive", login: "OctoCat", found: true},
		{name: "found-bot", login: "dependabot[bot]", found: true},
		{name: "not-a-collaborator", login: "ghost"},
		{name: "invalid-login", login: "octo cat", err: ErrInvalidName},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := shared.TestingCtx(t, time.Minute)
			defer cancel()

			before := lists.Load()
			u, found, err := repo.Collaborators().Get(ctx, tc.login)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.Equal(t, before, lists.Load(), "no request must be made for invalid login")
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.found, found)
			require.Equal(t, before+1, lists.Load(), "collaborators must be listed on every call")
			if !found {
				require.Nil(t, u)
				return
			}
			require.True(t, strings.EqualFold(tc.login, u.Login()))
			if u.Login() == apitestdata.Login {
				// Full profile is returned.
				require.Equal(t, "The Octocat", u.Name())
				require.Equal(t, int64(17966), u.Followers())
			}
		})
	}
}

func TestCollaboratorsGetEmpty(t *testing.T) {
	ctx, cancel := shared.TestingCtx(t, time.Minute)
	defer cancel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		serveJSON(w, http.StatusOK, []byte(`[]`))
	})

	u, found, err := newTestRepository(t, c).Collaborators().Get(ctx, "ghost")
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, u)
}

func TestCollaboratorsAdd(t *testing.T) {
	type testCase struct {
		name       string
		permission string
		body       string
		err        bool
	}
	tt := []testCase{
		{name: "default", body: ""},
		{name: "admin", permission: "admin", body: `{"permission":"admin"}`},
		{name: "triage", permission: "triage", body: `{"permission":"triage"}`},
		{name: "invalid-permission", permission: "owner", err: true},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := shared.TestingCtx(t, time.Minute)
			defer cancel()

			var requests atomic.Int32
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				requests.Add(1)
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/repos/octocat/Hello-World/collaborators/hubot", r.URL.Path)
				body, _ := io.ReadAll(r.Body)
				assert.Equal(t, tc.body, string(body))
				w.WriteHeader(http.StatusNoContent)
			})

			user := NewUser(nil)
			require.NoError(t, user.Set("login", apitestdata.Collaborator))

			collaborators := newTestRepository(t, c).Collaborators()
			var err error
			if tc.permission == "" {
				err = collaborators.Add(ctx, user)
			} else {
				err = collaborators.AddWithPermission(ctx, user, tc.permission)
			}

			if tc.err {
				require.Error(t, err)
				require.Zero(t, requests.Load(), "no request must be made on error")
				return
			}
			require.NoError(t, err)
			require.Equal(t, int32(1), requests.Load())
		})
	}
}

func TestCollaboratorsAddErrors(t *testing.T) {
	ctx, cancel := shared.TestingCtx(t, time.Minute)
	defer cancel()

	t.Run("nil-user", func(t *testing.T) {
		c, err := NewClient("")
		require.NoError(t, err)
		err = newTestRepository(t, c).Collaborators().Add(ctx, nil)
		require.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("no-login", func(t *testing.T) {
		c, err := NewClient("")
		require.NoError(t, err)
		err = newTestRepository(t, c).Collaborators().Add(ctx, NewUser(nil))
		require.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("no-client", func(t *testing.T) {
		user := NewUser(nil)
		require.NoError(t, user.Set("login", "hubot"))
		err := newTestRepository(t, nil).Collaborators().Add(ctx, user)
		require.ErrorIs(t, err, ErrNoClient)
	})

	t.Run("forbidden", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			serveJSON(w, http.StatusForbidden, []byte(`{"message":"Must have admin rights to Repository."}`))
		})
		user := NewUser(nil)
		require.NoError(t, user.Set("login", "hubot"))
		err := newTestRepository(t, c).Collaborators().Add(ctx, user)
		require.ErrorIs(t, err, ErrResponse)
	})
}
