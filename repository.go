// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package ghmodel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tprasadtp/go-ghmodel/internal/api"
	"github.com/tprasadtp/go-ghmodel/model"
)

var (
	_ slog.LogValuer = (*Repository)(nil)
)

// RepositorySchema is the schema of [Repository].
//
//nolint:gochecknoglobals // static schema
var RepositorySchema = model.NewSchema("Repository",
	model.Integer("id", model.ReadOnly()),
	model.Char("node_id", model.ReadOnly()),
	model.Char("name"),
	model.Char("full_name", model.ReadOnly()),
	model.Char("description"),
	model.Char("homepage"),
	model.Boolean("private"),
	model.Boolean("fork", model.ReadOnly()),
	model.Boolean("archived"),
	model.Boolean("has_issues"),
	model.Boolean("has_wiki"),
	model.Char("default_branch"),
	model.Char("language", model.ReadOnly()),
	model.Char("html_url", model.ReadOnly()),
	model.Integer("size", model.ReadOnly()),
	model.Integer("stargazers_count", model.ReadOnly()),
	model.Integer("watchers_count", model.ReadOnly()),
	model.Integer("forks_count", model.ReadOnly()),
	model.Integer("open_issues_count", model.ReadOnly()),
	model.Float("score", model.ReadOnly()),
	model.Time("created_at", model.ReadOnly()),
	model.Time("updated_at", model.ReadOnly()),
	model.Time("pushed_at", model.ReadOnly()),
	model.Relation("owner", UserSchema, model.BackRef(userRepositoryAttr)),
)

// Repository is a GitHub repository.
type Repository struct {
	*model.Object
	client *Client
}

// NewRepository returns an empty repository bound to client. client may be nil,
// in which case the repository can only be used to build payloads.
func NewRepository(client *Client) *Repository {
	return &Repository{Object: RepositorySchema.New(), client: client}
}

// wrapRepository binds an existing object of [RepositorySchema] to a client.
func wrapRepository(obj *model.Object, client *Client) *Repository {
	if obj == nil {
		return nil
	}
	return &Repository{Object: obj, client: client}
}

func (r *Repository) ID() int64 {
	return r.Int("id")
}

func (r *Repository) Name() string {
	return r.Char("name")
}

// FullName returns name in owner/repo format.
func (r *Repository) FullName() string {
	return r.Char("full_name")
}

func (r *Repository) Description() string {
	return r.Char("description")
}

func (r *Repository) Homepage() string {
	return r.Char("homepage")
}

func (r *Repository) Private() bool {
	return r.Bool("private")
}

// Fork reports whether the repository is a fork.
func (r *Repository) Fork() bool {
	return r.Bool("fork")
}

func (r *Repository) Archived() bool {
	return r.Bool("archived")
}

func (r *Repository) DefaultBranch() string {
	return r.Char("default_branch")
}

func (r *Repository) Language() string {
	return r.Char("language")
}

func (r *Repository) HTMLURL() string {
	return r.Char("html_url")
}

// Stars returns stargazers count.
func (r *Repository) Stars() int64 {
	return r.Int("stargazers_count")
}

func (r *Repository) Forks() int64 {
	return r.Int("forks_count")
}

func (r *Repository) OpenIssues() int64 {
	return r.Int("open_issues_count")
}

// Score is the search relevance score. Only present in search results.
func (r *Repository) Score() float64 {
	return r.Float("score")
}

func (r *Repository) CreatedAt() time.Time {
	return r.Time("created_at")
}

func (r *Repository) UpdatedAt() time.Time {
	return r.Time("updated_at")
}

// PushedAt returns time of the last push.
func (r *Repository) PushedAt() time.Time {
	return r.Time("pushed_at")
}

// Owner returns the owner of the repository or nil if the repository
// has no owner data. Owner's [User.Repository] returns this repository.
func (r *Repository) Owner() *User {
	return wrapUser(r.Related("owner"), r.client)
}

// SetName renames the repository. Use [Repository.Save] to update it on GitHub.
func (r *Repository) SetName(v string) {
	mustSet(r.Object, "name", v)
}

func (r *Repository) SetDescription(v string) {
	mustSet(r.Object, "description", v)
}

func (r *Repository) SetHomepage(v string) {
	mustSet(r.Object, "homepage", v)
}

func (r *Repository) SetPrivate(v bool) {
	mustSet(r.Object, "private", v)
}

func (r *Repository) SetArchived(v bool) {
	mustSet(r.Object, "archived", v)
}

func (r *Repository) SetDefaultBranch(v string) {
	mustSet(r.Object, "default_branch", v)
}

// Client returns the client the repository is bound to.
func (r *Repository) Client() *Client {
	return r.client
}

// String returns the full name.
func (r *Repository) String() string {
	return r.FullName()
}

// LogValue implements [log/slog.LogValuer].
func (r *Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("id", r.ID()),
		slog.String("full_name", r.FullName()),
		slog.Bool("private", r.Private()),
	)
}

// Collaborators returns collaborators of the repository.
func (r *Repository) Collaborators() *CollaboratorCollection {
	return &CollaboratorCollection{client: r.client, parent: r}
}

// Save updates the repository with writable fields which are set and
// applies the response. Repository is identified by its full name.
//
// Every set writable field is sent, including attributes which were null
// in the response and hold their zero value. To change a few attributes,
// build a repository with [NewRepository], set full_name and only those.
//
// https://docs.github.com/en/rest/repos/repos?apiVersion=2022-11-28#update-a-repository
func (r *Repository) Save(ctx context.Context) error {
	if r.client == nil {
		return ErrNoClient
	}

	if err := checkFullName(r.FullName()); err != nil {
		return err
	}

	body, err := r.WritableMap()
	if err != nil {
		return err
	}

	resp, err := r.client.patch(ctx, api.ExpandPath(api.RepositoryPathTemplate, "full_name", r.FullName()), body)
	if err != nil {
		return err
	}
	return r.apply(resp)
}

// apply sets fields from a response body.
func (r *Repository) apply(resp *response) error {
	if err := r.UnmarshalJSON(resp.Body); err != nil {
		return fmt.Errorf("ghmodel: failed to decode repository: %w", err)
	}
	return nil
}
