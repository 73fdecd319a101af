// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package ghmodel

import (
	"context"
	"fmt"
	"strings"

	"github.com/tprasadtp/go-ghmodel/internal/api"
)

// RepositoryCollection is the set of repositories accessible to
// the authenticated user.
type RepositoryCollection struct {
	client *Client
}

// Repositories returns repositories accessible to the authenticated user.
func (c *Client) Repositories() *RepositoryCollection {
	return &RepositoryCollection{client: c}
}

// List returns repositories the authenticated user has explicit permission
// to access. Only the first page is returned.
//
// https://docs.github.com/en/rest/repos/repos?apiVersion=2022-11-28#list-repositories-for-the-authenticated-user
func (rc *RepositoryCollection) List(ctx context.Context) ([]*Repository, error) {
	resp, err := rc.client.get(ctx, api.CurrentUserReposPath)
	if err != nil {
		return nil, err
	}

	objs, err := RepositorySchema.DecodeList(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ghmodel: failed to decode repositories: %w", err)
	}

	items := make([]*Repository, 0, len(objs))
	for _, obj := range objs {
		items = append(items, wrapRepository(obj, rc.client))
	}
	return items, nil
}

// Get returns repository by its full name (owner/repo). If repository does
// not exist or is not accessible, found is false and error is nil.
//
// https://docs.github.com/en/rest/repos/repos?apiVersion=2022-11-28#get-a-repository
func (rc *RepositoryCollection) Get(ctx context.Context, fullName string) (repo *Repository, found bool, err error) {
	if err := checkFullName(fullName); err != nil {
		return nil, false, err
	}

	resp, found, err := rc.client.lookup(ctx, api.ExpandPath(api.RepositoryPathTemplate, "full_name", fullName))
	if err != nil || !found {
		return nil, false, err
	}

	repo = NewRepository(rc.client)
	if err := repo.apply(resp); err != nil {
		return nil, false, err
	}
	return repo, true, nil
}

// CollaboratorCollection is the set of collaborators of a repository.
type CollaboratorCollection struct {
	client *Client
	parent *Repository
}

// Repository returns the repository collaborators belong to.
func (cc *CollaboratorCollection) Repository() *Repository {
	return cc.parent
}

// path returns expanded template for the parent repository.
func (cc *CollaboratorCollection) path(template string, params ...string) (string, error) {
	if cc.client == nil {
		return "", ErrNoClient
	}
	fullName := cc.parent.FullName()
	if err := checkFullName(fullName); err != nil {
		return "", err
	}
	return api.ExpandPath(template, append([]string{"full_name", fullName}, params...)...), nil
}

// List returns collaborators of the repository. Only the first page is returned.
//
// https://docs.github.com/en/rest/collaborators/collaborators?apiVersion=2022-11-28#list-repository-collaborators
func (cc *CollaboratorCollection) List(ctx context.Context) ([]*User, error) {
	path, err := cc.path(api.CollaboratorsPathTemplate)
	if err != nil {
		return nil, err
	}

	resp, err := cc.client.get(ctx, path)
	if err != nil {
		return nil, err
	}

	objs, err := UserSchema.DecodeList(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ghmodel: failed to decode collaborators: %w", err)
	}

	items := make([]*User, 0, len(objs))
	for _, obj := range objs {
		items = append(items, wrapUser(obj, cc.client))
	}
	return items, nil
}

// Get returns the full profile of a collaborator by login. If login is not
// a collaborator of the repository, found is false and error is nil.
// Collaborators are listed on every call.
func (cc *CollaboratorCollection) Get(ctx context.Context, login string) (user *User, found bool, err error) {
	if err := checkLogin(login); err != nil {
		return nil, false, err
	}

	items, err := cc.List(ctx)
	if err != nil {
		return nil, false, err
	}

	for _, item := range items {
		if strings.EqualFold(item.Login(), login) {
			return cc.client.User(ctx, item.Login())
		}
	}
	return nil, false, nil
}

// Add adds user as a collaborator with the default permission (push).
// For users who are not yet collaborators an invitation is created.
//
// https://docs.github.com/en/rest/collaborators/collaborators?apiVersion=2022-11-28#add-a-repository-collaborator
func (cc *CollaboratorCollection) Add(ctx context.Context, user *User) error {
	return cc.add(ctx, user, "")
}

// AddWithPermission is like [CollaboratorCollection.Add] but grants permission,
// which must be one of "pull", "triage", "push", "maintain" or "admin".
func (cc *CollaboratorCollection) AddWithPermission(ctx context.Context, user *User, permission string) error {
	if !api.IsPermission(permission) {
		return fmt.Errorf("ghmodel: invalid permission: %q", permission)
	}
	return cc.add(ctx, user, permission)
}

func (cc *CollaboratorCollection) add(ctx context.Context, user *User, permission string) error {
	if user == nil || user.Object == nil {
		return fmt.Errorf("%w: user is nil", ErrInvalidName)
	}

	if err := checkLogin(user.Login()); err != nil {
		return err
	}

	path, err := cc.path(api.CollaboratorPathTemplate, "login", user.Login())
	if err != nil {
		return err
	}

	var body any
	if permission != "" {
		body = api.CollaboratorRequest{Permission: permission}
	}

	_, err = cc.client.put(ctx, path, body)
	return err
}
