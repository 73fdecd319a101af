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
	_ slog.LogValuer = (*User)(nil)
)

// UserSchema is the schema of [User].
//
//nolint:gochecknoglobals // static schema
var UserSchema = model.NewSchema("User",
	model.Char("login", model.ReadOnly()),
	model.Integer("id", model.ReadOnly()),
	model.Char("node_id", model.ReadOnly()),
	model.Char("type", model.ReadOnly()),
	model.Char("name"),
	model.Char("company"),
	model.Char("blog"),
	model.Char("location"),
	model.Char("email"),
	model.Char("bio"),
	model.Char("twitter_username"),
	model.Boolean("hireable"),
	model.Boolean("site_admin", model.ReadOnly()),
	model.Integer("public_repos", model.ReadOnly()),
	model.Integer("public_gists", model.ReadOnly()),
	model.Integer("followers", model.ReadOnly()),
	model.Integer("following", model.ReadOnly()),
	model.Char("avatar_url", model.ReadOnly()),
	model.Char("html_url", model.ReadOnly()),
	model.Time("created_at", model.ReadOnly()),
	model.Time("updated_at", model.ReadOnly()),
)

// userRepositoryAttr is the back-reference set on the owner of a [Repository].
const userRepositoryAttr = "repository"

// User is a GitHub user or organization account.
type User struct {
	*model.Object
	client *Client
}

// NewUser returns an empty user bound to client. client may be nil,
// in which case the user can only be used to build payloads.
func NewUser(client *Client) *User {
	return &User{Object: UserSchema.New(), client: client}
}

// wrapUser binds an existing object of [UserSchema] to a client.
func wrapUser(obj *model.Object, client *Client) *User {
	if obj == nil {
		return nil
	}
	return &User{Object: obj, client: client}
}

// Login returns the user's login.
func (u *User) Login() string {
	return u.Char("login")
}

// ID returns the user's id.
func (u *User) ID() int64 {
	return u.Int("id")
}

// Type returns account type, "User", "Organization" or "Bot".
func (u *User) Type() string {
	return u.Char("type")
}

// Name returns display name.
func (u *User) Name() string {
	return u.Char("name")
}

func (u *User) Company() string {
	return u.Char("company")
}

func (u *User) Blog() string {
	return u.Char("blog")
}

func (u *User) Location() string {
	return u.Char("location")
}

// Email returns public email address.
func (u *User) Email() string {
	return u.Char("email")
}

func (u *User) Bio() string {
	return u.Char("bio")
}

func (u *User) Hireable() bool {
	return u.Bool("hireable")
}

func (u *User) SiteAdmin() bool {
	return u.Bool("site_admin")
}

// PublicRepos returns number of public repositories.
func (u *User) PublicRepos() int64 {
	return u.Int("public_repos")
}

func (u *User) Followers() int64 {
	return u.Int("followers")
}

func (u *User) Following() int64 {
	return u.Int("following")
}

// HTMLURL returns URL of the profile page.
func (u *User) HTMLURL() string {
	return u.Char("html_url")
}

func (u *User) CreatedAt() time.Time {
	return u.Time("created_at")
}

func (u *User) UpdatedAt() time.Time {
	return u.Time("updated_at")
}

// SetName sets display name. Use [User.Save] to update it on GitHub.
func (u *User) SetName(v string) {
	mustSet(u.Object, "name", v)
}

func (u *User) SetCompany(v string) {
	mustSet(u.Object, "company", v)
}

func (u *User) SetBlog(v string) {
	mustSet(u.Object, "blog", v)
}

func (u *User) SetLocation(v string) {
	mustSet(u.Object, "location", v)
}

func (u *User) SetEmail(v string) {
	mustSet(u.Object, "email", v)
}

func (u *User) SetBio(v string) {
	mustSet(u.Object, "bio", v)
}

func (u *User) SetHireable(v bool) {
	mustSet(u.Object, "hireable", v)
}

// Client returns the client the user is bound to.
func (u *User) Client() *Client {
	return u.client
}

// String returns the login.
func (u *User) String() string {
	return u.Login()
}

// LogValue implements [log/slog.LogValuer].
func (u *User) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("login", u.Login()),
		slog.Int64("id", u.ID()),
		slog.String("type", u.Type()),
	)
}

// Repository returns the repository this user was deserialized as owner of,
// or nil.
func (u *User) Repository() *Repository {
	obj, _ := u.Attr(userRepositoryAttr).(*model.Object)
	return wrapRepository(obj, u.client)
}

// Save updates the authenticated user with writable fields which are set
// and applies the response.
//
// Every set writable field is sent, not only the ones changed since the
// user was fetched. Attributes which were null in the response are set to
// their zero value, so saving a fetched user sends "email": "" and the like.
// To change a few attributes, build a user with [NewUser] and set only those.
//
// https://docs.github.com/en/rest/users/users?apiVersion=2022-11-28#update-the-authenticated-user
func (u *User) Save(ctx context.Context) error {
	if u.client == nil {
		return ErrNoClient
	}

	body, err := u.WritableMap()
	if err != nil {
		return err
	}

	resp, err := u.client.patch(ctx, api.AuthenticatedUserPath, body)
	if err != nil {
		return err
	}
	return u.apply(resp)
}

// apply sets fields from a response body.
func (u *User) apply(resp *response) error {
	if err := u.UnmarshalJSON(resp.Body); err != nil {
		return fmt.Errorf("ghmodel: failed to decode user: %w", err)
	}
	return nil
}

// mustSet assigns a value of canonical type to a declared field.
// This cannot fail unless field name or type is wrong, which is a bug.
func mustSet(obj *model.Object, name string, v any) {
	if err := obj.Set(name, v); err != nil {
		panic(err)
	}
}

// AuthenticatedUser returns the user the token belongs to.
//
// https://docs.github.com/en/rest/users/users?apiVersion=2022-11-28#get-the-authenticated-user
func (c *Client) AuthenticatedUser(ctx context.Context) (*User, error) {
	resp, err := c.get(ctx, api.AuthenticatedUserPath)
	if err != nil {
		return nil, err
	}
	u := NewUser(c)
	if err := u.apply(resp); err != nil {
		return nil, err
	}
	return u, nil
}

// User returns a user by login. If user does not exist, found is false
// and error is nil.
//
// https://docs.github.com/en/rest/users/users?apiVersion=2022-11-28#get-a-user
func (c *Client) User(ctx context.Context, login string) (user *User, found bool, err error) {
	if err := checkLogin(login); err != nil {
		return nil, false, err
	}

	resp, found, err := c.lookup(ctx, api.ExpandPath(api.UserPathTemplate, "login", login))
	if err != nil || !found {
		return nil, false, err
	}

	u := NewUser(c)
	if err := u.apply(resp); err != nil {
		return nil, false, err
	}
	return u, true, nil
}
