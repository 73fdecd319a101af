// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package ghmodel

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	repoNameRegExp = regexp.MustCompile("^[a-z0-9_.-]+$")
	userNameRegExp = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]+)?)(\[bot\])?$`)
)

// checkLogin validates user or organization login. Logins are case-insensitive.
// App bot accounts like dependabot[bot] are accepted.
func checkLogin(login string) error {
	if !userNameRegExp.MatchString(strings.ToLower(login)) {
		return fmt.Errorf("%w: login %q", ErrInvalidName, login)
	}
	return nil
}

// checkFullName validates repository name in owner/repo format.
func checkFullName(fullName string) error {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok {
		return fmt.Errorf("%w: repository %q is not in owner/repo format", ErrInvalidName, fullName)
	}

	if err := checkLogin(owner); err != nil {
		return fmt.Errorf("%w: repository %q has invalid owner", ErrInvalidName, fullName)
	}

	if repo == "." || repo == ".." || !repoNameRegExp.MatchString(strings.ToLower(repo)) {
		return fmt.Errorf("%w: repository %q has invalid name", ErrInvalidName, fullName)
	}
	return nil
}
