// SPDX-FileCopyrightText: Copyright 2023 Prasad Tengse
// SPDX-License-Identifier: MIT

package api

import "encoding/json"

// ErrorResponse is the body returned by the API for non 2xx responses.
//
// https://docs.github.com/en/rest/using-the-rest-api/troubleshooting-the-rest-api
type ErrorResponse struct {
	Message          string       `json:"message,omitempty"` // error message
	DocumentationURL string       `json:"documentation_url,omitempty"`
	Errors           []ErrorEntry `json:"errors,omitempty"`
}

// ErrorEntry is a single item of [ErrorResponse.Errors].
type ErrorEntry struct {
	Resource string `json:"resource,omitempty"`
	Field    string `json:"field,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

// UnmarshalJSON implements [encoding/json.Unmarshaler]. Some endpoints
// return errors as plain strings, these are stored as message.
func (e *ErrorEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = ErrorEntry{Message: s}
		return nil
	}
	type entry ErrorEntry
	var v entry
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*e = ErrorEntry(v)
	return nil
}

// String returns message if present or a description built from code,
// resource and field.
func (e ErrorEntry) String() string {
	if e.Message != "" {
		return e.Message
	}
	switch {
	case e.Resource != "" && e.Field != "":
		return e.Resource + "." + e.Field + " " + e.Code
	case e.Field != "":
		return e.Field + " " + e.Code
	default:
		return e.Code
	}
}

// CollaboratorRequest is payload for adding a repository collaborator.
//
// https://docs.github.com/en/rest/collaborators/collaborators?apiVersion=2022-11-28#add-a-repository-collaborator
type CollaboratorRequest struct {
	Permission string `json:"permission,omitempty"`
}
