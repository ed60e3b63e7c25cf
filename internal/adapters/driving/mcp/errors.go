// Package mcp provides an MCP (Model Context Protocol) server adapter for Quill.
// It gives AI assistants read access to local writing projects.
package mcp

import "errors"

// ErrMissingDocumentReader is returned when the document reader is not provided.
var ErrMissingDocumentReader = errors.New("mcp: document reader is required")
