// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package ghmodel

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tprasadtp/go-ghmodel/internal/shared"
	"github.com/tprasadtp/go-ghmodel/internal/testdata/apitestdata"
	"github.com/tprasadtp/go-ghmodel/model"
)

func TestRepositoryOwner(t *testing.T) {
	data := apitestdata.Get(t)

	repo := NewRepository(nil)
	require.NoError(t, json.Unmarshal(data["repository"], repo))

	require.Equal(t, int64(apitestdata.RepositoryID), repo.ID())
	require.Equal(t, apitestdata.RepositoryFullName, repo.FullName())
	require.Equal(t, "Hello-World", repo.Name())
	require.Equal(t, "My first repository on GitHub!", repo.Description())
	require.Equal(t, "", repo.Language())
	require.Equal(t, "master", repo.DefaultBranch())
	require.Equal(t, int64(2700), repo.Stars())
	require.Equal(t, time.Date(2023, time.November, 1, 6, 41, 21, 0, time.UTC), repo.PushedAt())
	require.False(t, repo.Private())
	require.False(t, repo.Fork())

	owner := repo.Owner()
	require.NotNil(t, owner)
	require.Equal(t, apitestdata.Login, owner.Login())

	// Owner refers back to the repository it was deserialized for.
	back := owner.Repository()
	require.NotNil(t, back)
	require.Same(t, repo.Object, back.Object)

	// Attributes not declared in the schema are ignored.
	require.False(t, repo.IsSet("permissions"))
}

func TestRepositoryOwnerAbsent(t *testing.T) {
	repo := NewRepository(nil)
	require.NoError(t, repo.SetData(map[string]any{"full_name": "octocat/Hello-World"}))
	require.Nil(t, repo.Owner(), "Owner() must be nil when owner was never set")
}

func TestRepositoryOwnerInvalid(t *testing.T) {
	repo := NewRepository(nil)
	err := repo.Set("owner", map[string]any{"id": "not-a-number"})
	require.ErrorIs(t, err, model.ErrCoercion)
}

func TestRepositoriesGet(t *testing.T) {
	data := apitestdata.Get(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Path {
		case "/repos/octocat/Hello-World":
			serveJSON(w, http.StatusOK, data["repository"])
		default:
			serveJSON(w, http.StatusNotFound, data["error_not_found"])
		}
	})

	type testCase struct {
		name     string
		fullName string
		found    bool
		err      error
	}
	tt := []testCase{
		{name: "found", fullName: "octocat/Hello-World", found: true},
		{name: "not-found", fullName: "octocat/does-not-exist"},
		{name: "no-owner", fullName: "Hello-World", err: ErrInvalidName},
		{name: "invalid-owner", fullName: "-octocat/Hello-World", err: ErrInvalidName},
		{name: "dot-dot", fullName: "octocat/..", err: ErrInvalidName},
		{name: "nested", fullName: "octocat/Hello-World/issues", err: ErrInvalidName},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := shared.TestingCtx(t, time.Minute)
			defer cancel()

			repo, found, err := c.Repositories().Get(ctx, tc.fullName)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.found, found)
			if found {
				require.Equal(t, tc.fullName, repo.FullName())
				require.Same(t, c, repo.Client())
				require.Same(t, c, repo.Owner().Client())
			} else {
				require.Nil(t, repo)
			}
		})
	}
}

func TestRepositoriesList(t *testing.T) {
	ctx, cancel := shared.TestingCtx(t, time.Minute)
	defer cancel()

	data := apitestdata.Get(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user/repos", r.URL.Path)
		serveJSON(w, http.StatusOK, data["repositories"])
	})

	repos, err := c.Repositories().List(ctx)
	require.NoError(t, err)
	require.Len(t, repos, 2)

	names := make([]string, 0, len(repos))
	for _, repo := range repos {
		names = append(names, repo.FullName())
	}
	require.Equal(t, []string{"octocat/Hello-World", "octocat/git-consortium"}, names)

	// Stringly typed counts are coerced.
	require.Equal(t, int64(25), repos[1].Stars())
	require.True(t, repos[1].Private())
	require.True(t, repos[1].Fork())
	require.Equal(t, "", repos[1].Description())

	for _, repo := range repos {
		require.Same(t, repo.Object, repo.Owner().Repository().Object)
	}
}

func TestRepositoriesListInvalid(t *testing.T) {
	ctx, cancel := shared.TestingCtx(t, time.Minute)
	defer cancel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		serveJSON(w, http.StatusOK, []byte(`[{"id":"abc"}]`))
	})

	_, err := c.Repositories().List(ctx)
	require.ErrorIs(t, err, model.ErrCoercion)
}

func TestRepositorySave(t *testing.T) {
	ctx, cancel := shared.TestingCtx(t, time.Minute)
	defer cancel()

	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/repos/octocat/Hello-World", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		serveJSON(w, http.StatusOK, []byte(`{
			"id": 1296269,
			"full_name": "octocat/Hello-World",
			"description": "Updated",
			"homepage": "https://example.com",
			"stargazers_count": 2701
		}`))
	})

	repo := NewRepository(c)
	require.NoError(t, repo.SetData(map[string]any{
		"id":        1296269,
		"full_name": "octocat/Hello-World",
	}))
	repo.SetDescription("Updated")
	repo.SetHomepage("https://example.com")

	require.NoError(t, repo.Save(ctx))

	expect := map[string]any{
		"description": "Updated",
		"homepage":    "https://example.com",
	}
	require.Equal(t, expect, got)

	require.Equal(t, int64(2701), repo.Stars())
}

func TestRepositorySaveFetched(t *testing.T) {
	ctx, cancel := shared.TestingCtx(t, time.Minute)
	defer cancel()

	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		serveJSON(w, http.StatusOK, body)
	})

	repo := NewRepository(c)
	require.NoError(t, json.Unmarshal([]byte(`{
		"full_name": "octocat/Hello-World",
		"description": "Updated",
		"homepage": null,
		"language": null
	}`), repo))

	require.NoError(t, repo.Save(ctx))

	// Null homepage is sent as its zero value, read-only language is not sent.
	expect := map[string]any{
		"description": "Updated",
		"homepage":    "",
	}
	require.Equal(t, expect, got)
}

func TestRepositorySaveErrors(t *testing.T) {
	ctx, cancel := shared.TestingCtx(t, time.Minute)
	defer cancel()

	t.Run("no-client", func(t *testing.T) {
		repo := NewRepository(nil)
		require.ErrorIs(t, repo.Save(ctx), ErrNoClient)
	})

	t.Run("no-full-name", func(t *testing.T) {
		c, err := NewClient("")
		require.NoError(t, err)
		repo := NewRepository(c)
		require.ErrorIs(t, repo.Save(ctx), ErrInvalidName)
	})

	t.Run("validation-failed", func(t *testing.T) {
		data := apitestdata.Get(t)
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			serveJSON(w, http.StatusUnprocessableEntity, data["error_validation"])
		})
		repo := NewRepository(c)
		require.NoError(t, repo.Set("full_name", "octocat/Hello-World"))
		repo.SetName("Spoon-Knife")

		err := repo.Save(ctx)
		var re *ResponseError
		require.ErrorAs(t, err, &re)
		require.Equal(t, http.StatusUnprocessableEntity, re.StatusCode)

		// Local changes are kept on failure.
		require.Equal(t, "Spoon-Knife", repo.Name())
	})
}
