package mcp

import (
	"github.com/custodia-labs/quizarc/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Archive answers part and question queries.
	Archive driving.ArchiveQueryService

	// History exposes deduplication runs. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Archive == nil {
		return ErrMissingArchiveService
	}
	return nil
}
