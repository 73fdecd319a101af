// SPDX-FileCopyrightText: Copyright 2023 Prasad Tengse
// SPDX-License-Identifier: MIT

package apitestdata

import (
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// Login of the user in user.json.
const Login = "octocat"

// UserID of the user in user.json.
const UserID = 583231

// RepositoryFullName of the repository in repository.json.
const RepositoryFullName = "octocat/Hello-World"

// RepositoryID of the repository in repository.json.
const RepositoryID = 1296269

// Collaborator is a login present in collaborators.json other than [Login].
const Collaborator = "hubot"

// BotCollaborator is an app bot login present in collaborators.json.
const BotCollaborator = "dependabot[bot]"

// Read api data once.
var once sync.Once

// API data storage.
var apiDataMap map[string][]byte

// Get returns API test data which is a map of file names, with and without
// .json extension, to JSON responses from API endpoints. Tests must be run
// from the module root.
func Get(t *testing.T) map[string][]byte {
	once.Do(func() {
		apiDataMap = make(map[string][]byte)
		dir := filepath.Join("internal", "testdata", "apitestdata")
		items, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to read dir %s: %s", dir, err)
		}

		dataFiles := make([]fs.DirEntry, 0, len(items))
		for _, item := range items {
			if filepath.Ext(item.Name()) == ".json" && item.Type().IsRegular() {
				dataFiles = append(dataFiles, item)
			}
		}

		if len(dataFiles) == 0 {
			t.Fatalf("no api response data found in %s", dir)
		}

		for _, item := range dataFiles {
			slurp, err := os.ReadFile(filepath.Join(dir, item.Name()))
			if err != nil {
				t.Fatalf("Failed to read file %s: %s", item, err)
			}

			apiDataMap[item.Name()] = slurp
			apiDataMap[strings.TrimSuffix(item.Name(), ".json")] = slurp
		}
	})

	if apiDataMap == nil {
		t.Fatalf("failed to populate api data")
	}

	// Return clone of the map, as some callers may mutate map keys.
	return maps.Clone(apiDataMap)
}
