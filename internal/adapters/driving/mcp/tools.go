package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	CaseID         string   `json:"case_id" jsonschema:"the id of the case to list"`
	Categories     []string `json:"categories,omitempty" jsonschema:"only documents in any of these categories: procedural, medical, other"`
	Tags           []string `json:"tags,omitempty" jsonschema:"only documents with any of these issue tags"`
	Search         string   `json:"search,omitempty" jsonschema:"free text matched against type, date, tags, categories and comments"`
	SortBy         string   `json:"sort_by,omitempty" jsonschema:"receivedAt (default) or type"`
	Descending     bool     `json:"descending,omitempty" jsonschema:"sort in descending order"`
	ExpandComments bool     `json:"expand_comments,omitempty" jsonschema:"include the comments of every document"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	CaseID      string           `json:"case_id"`
	VeteranName string           `json:"veteran_name"`
	Total       int              `json:"total"`
	Count       int              `json:"count"`
	Documents   []DocumentOutput `json:"documents"`
}

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	DocumentID int64 `json:"document_id" jsonschema:"the numeric id of the document"`
}

// DocumentOutput represents a single document.
type DocumentOutput struct {
	ID         int64           `json:"id"`
	CaseID     string          `json:"case_id"`
	Type       string          `json:"type"`
	ReceivedAt string          `json:"received_at"`
	Read       bool            `json:"read"`
	Categories []string        `json:"categories"`
	Tags       []string        `json:"tags"`
	Comments   []CommentOutput `json:"comments,omitempty"`
}

// CommentOutput represents one comment on a document page.
type CommentOutput struct {
	ID      string `json:"id"`
	Page    int    `json:"page"`
	Comment string `json:"comment"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents of a claims folder, filtered and sorted",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Get one document of a claims folder with its comments",
	}, s.handleGetDocument)
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	query := domain.ListQuery{
		Categories:     input.Categories,
		Tags:           input.Tags,
		Search:         input.Search,
		SortBy:         input.SortBy,
		Descending:     input.Descending,
		ExpandComments: input.ExpandComments,
	}
	state, err := query.State()
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	folder, err := s.ports.Reader.LoadFolder(ctx, input.CaseID)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	rows, err := s.ports.Reader.ListRows(ctx, input.CaseID, state)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	docs := documentsFromRows(rows)
	return nil, ListDocumentsOutput{
		CaseID:      folder.Case.ID,
		VeteranName: folder.Case.VeteranName,
		Total:       len(folder.Documents),
		Count:       len(docs),
		Documents:   docs,
	}, nil
}

// handleGetDocument handles the get_document tool invocation.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	if s.ports.Document == nil {
		return nil, DocumentOutput{}, ErrDocumentsUnavailable
	}

	doc, err := s.ports.Document.Get(ctx, input.DocumentID)
	if err != nil {
		return nil, DocumentOutput{}, err
	}

	out := toDocumentOutput(doc)
	if s.ports.Annotation != nil {
		comments, err := s.ports.Annotation.ListByDocument(ctx, doc.ID)
		if err != nil {
			return nil, DocumentOutput{}, err
		}
		out.Comments = toCommentOutputs(comments)
	}
	return nil, out, nil
}

// documentsFromRows folds comment rows into the preceding document.
func documentsFromRows(rows []domain.Row) []DocumentOutput {
	docs := make([]DocumentOutput, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		if row.IsComment() {
			if len(docs) > 0 {
				docs[len(docs)-1].Comments = toCommentOutputs(row.Annotations)
			}
			continue
		}
		docs = append(docs, toDocumentOutput(&row.Document))
	}
	return docs
}

func toDocumentOutput(doc *domain.Document) DocumentOutput {
	categories := make([]string, 0, len(domain.Categories))
	for _, c := range doc.Categories.List() {
		categories = append(categories, c.String())
	}
	tags := append([]string{}, doc.Tags...)
	return DocumentOutput{
		ID:         doc.ID,
		CaseID:     doc.CaseID,
		Type:       doc.Type,
		ReceivedAt: doc.FormattedReceivedAt(),
		Read:       doc.OpenedByCurrentUser,
		Categories: categories,
		Tags:       tags,
	}
}

func toCommentOutputs(annotations []domain.Annotation) []CommentOutput {
	if len(annotations) == 0 {
		return nil
	}
	out := make([]CommentOutput, len(annotations))
	for i, a := range annotations {
		out[i] = CommentOutput{ID: a.UUID, Page: a.Page, Comment: a.Comment}
	}
	return out
}
