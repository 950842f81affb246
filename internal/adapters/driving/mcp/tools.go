package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/quizarc/internal/core/ports/driving"
)

// DefaultRunsLimit caps recent_runs when no limit is given.
const DefaultRunsLimit = 10

// SearchInput is the input schema for the search_questions tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"text to look for in question descriptions"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of questions to return (default 10)"`
}

// SearchOutput is the output schema for the search_questions tool.
type SearchOutput struct {
	Questions []QuestionOutput `json:"questions"`
	Count     int              `json:"count"`
}

// QuestionOutput is one question as returned to the assistant.
type QuestionOutput struct {
	Part        string   `json:"part"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Choices     []string `json:"choices"`
	Answers     []string `json:"answers"`
	Solution    string   `json:"solution,omitempty"`
}

// ListPartsInput is the (empty) input schema for the list_parts tool.
type ListPartsInput struct{}

// ListPartsOutput is the output schema for the list_parts tool.
type ListPartsOutput struct {
	Parts []PartOutput `json:"parts"`
	Total int          `json:"total_questions"`
}

// PartOutput is a part label and its size.
type PartOutput struct {
	Part      string `json:"part"`
	Questions int    `json:"questions"`
}

// RunsInput is the input schema for the recent_runs tool.
type RunsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of runs to return (default 10)"`
}

// RunsOutput is the output schema for the recent_runs tool.
type RunsOutput struct {
	Runs []RunOutput `json:"runs"`
}

// RunOutput summarises one deduplication run.
type RunOutput struct {
	ID         string `json:"id"`
	StartedAt  string `json:"started_at"`
	Inputs     int    `json:"inputs"`
	Unique     int    `json:"unique"`
	Duplicates int    `json:"duplicates"`
	Merged     int    `json:"merged"`
	Conflicts  int    `json:"conflicts"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_questions",
		Description: "Search the question archive by description text",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_parts",
		Description: "List archive parts with their question counts",
	}, s.handleListParts)

	if s.ports.History != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "recent_runs",
			Description: "List recent deduplication runs, newest first",
		}, s.handleRecentRuns)
	}
}

// handleSearch handles the search_questions tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	views, err := s.ports.Archive.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Questions: make([]QuestionOutput, len(views)),
		Count:     len(views),
	}
	for i := range views {
		output.Questions[i] = toQuestionOutput(views[i])
	}
	return nil, output, nil
}

// handleListParts handles the list_parts tool invocation.
func (s *Server) handleListParts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListPartsInput,
) (*mcp.CallToolResult, ListPartsOutput, error) {
	parts, err := s.ports.Archive.Parts(ctx)
	if err != nil {
		return nil, ListPartsOutput{}, err
	}

	output := ListPartsOutput{Parts: make([]PartOutput, len(parts))}
	for i, p := range parts {
		output.Parts[i] = PartOutput{Part: p.Part, Questions: p.Questions}
		output.Total += p.Questions
	}
	return nil, output, nil
}

// handleRecentRuns handles the recent_runs tool invocation.
func (s *Server) handleRecentRuns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunsInput,
) (*mcp.CallToolResult, RunsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultRunsLimit
	}

	runs, err := s.ports.History.Runs(ctx, limit)
	if err != nil {
		return nil, RunsOutput{}, err
	}

	output := RunsOutput{Runs: make([]RunOutput, len(runs))}
	for i, r := range runs {
		output.Runs[i] = RunOutput{
			ID:         r.ID,
			StartedAt:  r.StartedAt.UTC().Format("2006-01-02T15:04:05Z"),
			Inputs:     r.Inputs,
			Unique:     r.Unique,
			Duplicates: r.Duplicates,
			Merged:     r.Merged,
			Conflicts:  r.Conflicts,
		}
	}
	return nil, output, nil
}

func toQuestionOutput(v driving.QuestionView) QuestionOutput {
	out := QuestionOutput{
		Part:        v.Part,
		Description: v.Description,
		Type:        v.Type,
		Choices:     v.Choices,
		Answers:     v.Answers,
	}
	if v.Solution != nil {
		out.Solution = *v.Solution
	}
	return out
}
