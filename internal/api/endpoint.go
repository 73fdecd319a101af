// SPDX-FileCopyrightText: Copyright 2023 Prasad Tengse
// SPDX-License-Identifier: MIT

package api

import "strings"

// DefaultEndpoint is default GitHub REST API endpoint.
const DefaultEndpoint = "https://api.github.com/"

// URL path templates relative to the API endpoint. Placeholders are
// expanded with [ExpandPath].
const (
	RateLimitPath             = "rate_limit"
	AuthenticatedUserPath     = "user"
	CurrentUserReposPath      = "user/repos"
	RepositoryPathTemplate    = "repos/{full_name}"
	CollaboratorsPathTemplate = "repos/{full_name}/collaborators"
	CollaboratorPathTemplate  = "repos/{full_name}/collaborators/{login}"
	UserPathTemplate          = "users/{login}"
)

// ExpandPath replaces placeholders in template. params are given as
// name, value pairs without braces. A trailing name without a value is ignored.
//
//	ExpandPath(UserPathTemplate, "login", "octocat") // users/octocat
func ExpandPath(template string, params ...string) string {
	pairs := make([]string, 0, len(params))
	for i := 0; i+1 < len(params); i += 2 {
		pairs = append(pairs, "{"+params[i]+"}", params[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
