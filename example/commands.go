// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tprasadtp/go-ghmodel"
)

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.client.AuthenticatedUser(cmd.Context())
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), a.output, user)
		},
	}
}

func newReposCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repos",
		Short: "List, show and edit repositories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List repositories of the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repos, err := a.client.Repositories().List(cmd.Context())
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), a.output, mappers(repos))
		},
	}

	get := &cobra.Command{
		Use:   "get <owner/repo>",
		Short: "Show a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository(cmd, args[0])
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), a.output, repo)
		},
	}

	var description, homepage string
	edit := &cobra.Command{
		Use:   "edit <owner/repo>",
		Short: "Update description or homepage of a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("description") && !flags.Changed("homepage") {
				return fmt.Errorf("nothing to update, specify --description or --homepage")
			}

			repo, err := a.repository(cmd, args[0])
			if err != nil {
				return err
			}

			if flags.Changed("description") {
				repo.SetDescription(description)
			}
			if flags.Changed("homepage") {
				repo.SetHomepage(homepage)
			}

			if err := repo.Save(cmd.Context()); err != nil {
				return err
			}
			a.logger.Info("Updated repository", "repository", repo)
			return write(cmd.OutOrStdout(), a.output, repo)
		},
	}
	edit.Flags().StringVar(&description, "description", "", "Repository description")
	edit.Flags().StringVar(&homepage, "homepage", "", "Repository homepage URL")

	cmd.AddCommand(list, get, edit)
	return cmd
}

func newCollaboratorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collaborators",
		Aliases: []string{"collab"},
		Short:   "List, show and add repository collaborators",
	}

	list := &cobra.Command{
		Use:   "list <owner/repo>",
		Short: "List collaborators of a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository(cmd, args[0])
			if err != nil {
				return err
			}
			users, err := repo.Collaborators().List(cmd.Context())
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), a.output, mappers(users))
		},
	}

	get := &cobra.Command{
		Use:   "get <owner/repo> <login>",
		Short: "Show profile of a collaborator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository(cmd, args[0])
			if err != nil {
				return err
			}
			user, found, err := repo.Collaborators().Get(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%s is not a collaborator of %s", args[1], repo)
			}
			return write(cmd.OutOrStdout(), a.output, user)
		},
	}

	var permission string
	add := &cobra.Command{
		Use:   "add <owner/repo> <login>",
		Short: "Add or invite a collaborator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository(cmd, args[0])
			if err != nil {
				return err
			}
			user, found, err := a.client.User(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("user %s not found", args[1])
			}

			if permission == "" {
				err = repo.Collaborators().Add(cmd.Context(), user)
			} else {
				err = repo.Collaborators().AddWithPermission(cmd.Context(), user, permission)
			}
			if err != nil {
				return err
			}
			a.logger.Info("Added collaborator", "repository", repo, "user", user)
			return nil
		},
	}
	add.Flags().StringVar(&permission, "permission", "", "Permission to grant, pull, triage, push, maintain or admin")

	cmd.AddCommand(list, get, add)
	return cmd
}

// rateLimit is the output of the rate-limit command.
type rateLimit struct {
	Limit     int       `json:"limit" yaml:"limit"`
	Remaining int       `json:"remaining" yaml:"remaining"`
	Used      int       `json:"used" yaml:"used"`
	Reset     time.Time `json:"reset" yaml:"reset"`
}

func newRateLimitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rate-limit",
		Short: "Show rate limit for standard requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limits, err := a.client.RateLimits(cmd.Context())
			if err != nil {
				return err
			}
			core := limits.Core()
			return write(cmd.OutOrStdout(), a.output, rateLimit{
				Limit:     core.Limit,
				Remaining: core.Remaining,
				Used:      core.Used,
				Reset:     core.Reset.UTC(),
			})
		},
	}
}

// repository returns repository by full name or an error if it is not found.
func (a *app) repository(cmd *cobra.Command, fullName string) (*ghmodel.Repository, error) {
	repo, found, err := a.client.Repositories().Get(cmd.Context(), fullName)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("repository %s not found", fullName)
	}
	return repo, nil
}
