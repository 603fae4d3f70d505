package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for reader resources.
	uriScheme = "reader://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "cases",
		Name:        "cases",
		Description: "List of all imported cases",
		MIMEType:    "application/json",
	}, s.handleCasesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "cases/{caseId}/documents",
		Name:        "case-documents",
		Description: "Documents of a case, oldest receipt date first",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document",
		Description: "A single document with its comments",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)
}

// handleCasesResource returns a list of all imported cases.
func (s *Server) handleCasesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Case == nil {
		return jsonResult(req.Params.URI, []struct{}{})
	}

	cases, err := s.ports.Case.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cases: %w", err)
	}

	type caseInfo struct {
		ID          string `json:"id"`
		VeteranName string `json:"veteran_name"`
		URI         string `json:"uri"`
	}

	infos := make([]caseInfo, len(cases))
	for i, c := range cases {
		infos[i] = caseInfo{
			ID:          c.ID,
			VeteranName: c.VeteranName,
			URI:         uriScheme + "cases/" + c.ID + "/documents",
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleDocumentsResource returns the documents of one case in the order
// of a fresh document list.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	caseID := extractCaseID(req.Params.URI)
	if caseID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rows, err := s.ports.Reader.ListRows(ctx, caseID, domain.NewListState())
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	return jsonResult(req.Params.URI, documentsFromRows(rows))
}

// handleDocumentResource returns one document with its comments.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docID, ok := extractDocumentID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	_, out, err := s.handleGetDocument(ctx, nil, GetDocumentInput{DocumentID: docID})
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
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

// extractCaseID extracts the case ID from a URI like reader://cases/{caseId}/documents.
func extractCaseID(uri string) string {
	const prefix = uriScheme + "cases/"
	const suffix = "/documents"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

// extractDocumentID extracts the document ID from a URI like reader://documents/{documentId}.
func extractDocumentID(uri string) (int64, bool) {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
