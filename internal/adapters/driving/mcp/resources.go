package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/quizarc/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for quizarc resources.
	uriScheme = "quizarc://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "parts",
		Name:        "parts",
		Description: "Archive parts with their question counts",
		MIMEType:    "application/json",
	}, s.handlePartsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "parts/{part}",
		Name:        "part-questions",
		Description: "Questions filed under one part (label URL-escaped)",
		MIMEType:    "application/json",
	}, s.handlePartResource)
}

// handlePartsResource returns the part list.
func (s *Server) handlePartsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	parts, err := s.ports.Archive.Parts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing parts: %w", err)
	}

	infos := make([]PartOutput, len(parts))
	for i, p := range parts {
		infos[i] = PartOutput{Part: p.Part, Questions: p.Questions}
	}
	return jsonResult(req.Params.URI, infos)
}

// handlePartResource returns the questions of one part.
func (s *Server) handlePartResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	label := extractPart(req.Params.URI)
	if label == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	views, err := s.ports.Archive.Part(ctx, label)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("reading part: %w", err)
	}

	out := make([]QuestionOutput, len(views))
	for i := range views {
		out[i] = toQuestionOutput(views[i])
	}
	return jsonResult(req.Params.URI, out)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPart extracts the part label from a URI like quizarc://parts/{part}.
func extractPart(uri string) string {
	const prefix = uriScheme + "parts/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	label, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return label
}
