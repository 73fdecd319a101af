// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

// Package api holds endpoint paths, headers and wire types which are
// not modelled with [github.com/tprasadtp/go-ghmodel/model].
package api
