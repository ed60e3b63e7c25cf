package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// OutlineInput is the input schema for the outline tool.
type OutlineInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project whose outline to read"`
}

// OutlineOutput is the output schema for the outline tool.
type OutlineOutput struct {
	Sections []SectionOutput `json:"sections"`
	Count    int             `json:"count"`
}

// SectionOutput represents one outline section.
type SectionOutput struct {
	ID       string   `json:"id"`
	Level    int      `json:"level"`
	Title    string   `json:"title"`
	ParentID string   `json:"parent_id,omitempty"`
	Status   string   `json:"status,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	WordGoal int      `json:"word_goal,omitempty"`
}

// ReadSectionInput is the input schema for the read_section tool.
type ReadSectionInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project containing the section"`
	SectionID string `json:"section_id" jsonschema:"the heading whose subtree to read"`
}

// ReadSectionOutput is the output schema for the read_section tool.
type ReadSectionOutput struct {
	Text string `json:"text"`
}

// ReadDocumentInput is the input schema for the read_document tool.
type ReadDocumentInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project whose document to read"`
}

// ReadDocumentOutput is the output schema for the read_document tool.
type ReadDocumentOutput struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "outline",
		Description: "Read the section outline of a writing project",
	}, s.handleOutline)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_section",
		Description: "Read the text of one section's subtree",
	}, s.handleReadSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_document",
		Description: "Read the full assembled document of a project",
	}, s.handleReadDocument)
}

// handleOutline handles the outline tool invocation.
func (s *Server) handleOutline(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OutlineInput,
) (*mcp.CallToolResult, OutlineOutput, error) {
	sections, err := s.ports.Reader.Outline(ctx, input.ProjectID)
	if err != nil {
		return nil, OutlineOutput{}, err
	}

	output := OutlineOutput{
		Sections: make([]SectionOutput, len(sections)),
		Count:    len(sections),
	}
	for i := range sections {
		output.Sections[i] = SectionOutput{
			ID:       sections[i].ID,
			Level:    sections[i].Level,
			Title:    sections[i].Title,
			ParentID: sections[i].ParentID,
			Status:   sections[i].Status,
			Tags:     sections[i].Tags,
			WordGoal: sections[i].WordGoal,
		}
	}
	return nil, output, nil
}

// handleReadSection handles the read_section tool invocation.
func (s *Server) handleReadSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadSectionInput,
) (*mcp.CallToolResult, ReadSectionOutput, error) {
	text, err := s.ports.Reader.SectionText(ctx, input.ProjectID, input.SectionID)
	if err != nil {
		return nil, ReadSectionOutput{}, err
	}
	return nil, ReadSectionOutput{Text: text}, nil
}

// handleReadDocument handles the read_document tool invocation.
func (s *Server) handleReadDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadDocumentInput,
) (*mcp.CallToolResult, ReadDocumentOutput, error) {
	text, err := s.ports.Reader.DocumentText(ctx, input.ProjectID)
	if err != nil {
		return nil, ReadDocumentOutput{}, err
	}
	count, err := s.ports.Reader.WordCount(ctx, input.ProjectID)
	if err != nil {
		return nil, ReadDocumentOutput{}, err
	}
	return nil, ReadDocumentOutput{Text: text, WordCount: count}, nil
}
