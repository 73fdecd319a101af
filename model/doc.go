// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

// Package model is a small declarative field layer which maps loosely typed
// JSON payloads to typed attributes.
//
// A [Schema] is declared once per model type with a fixed set of [Field]
// descriptors. [Object] is an instance of a schema. Every assignment to a
// declared field is coerced into the canonical type of the field at write
// time, thus readers always observe a stable type regardless of how the
// value was encoded on the wire (numbers as strings, booleans as "true" etc).
//
//	var userSchema = model.NewSchema("User",
//		model.Char("login", model.ReadOnly()),
//		model.Integer("id", model.ReadOnly()),
//		model.Boolean("hireable"),
//	)
//
//	obj, err := userSchema.Build(map[string]any{"login": "octocat", "id": "1"})
//	obj.Int("id") // 1
//
// Assignments to names not declared by the schema are stored verbatim and are
// never serialized. This is used to attach back-references and handles which
// are not part of the payload.
//
// Objects are not safe for concurrent mutation. Schemas are immutable
// and can be shared freely.
package model
