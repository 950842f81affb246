// Package mcp provides an MCP (Model Context Protocol) server adapter for quizarc.
// It lets AI assistants browse and search the curated question archive read-only.
package mcp

import "errors"

// ErrMissingArchiveService is returned when the archive query service is not provided.
var ErrMissingArchiveService = errors.New("mcp: archive query service is required")
