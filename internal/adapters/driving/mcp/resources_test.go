package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

func TestExtractCaseID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid case documents URI",
			uri:      "reader://cases/3014/documents",
			expected: "3014",
		},
		{
			name:     "invalid prefix",
			uri:      "file://cases/3014/documents",
			expected: "",
		},
		{
			name:     "missing documents suffix",
			uri:      "reader://cases/3014",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractCaseID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		wantID int64
		wantOK bool
	}{
		{"valid document URI", "reader://documents/42", 42, true},
		{"invalid prefix", "file://documents/42", 0, false},
		{"not a number", "reader://documents/doc-42", 0, false},
		{"zero", "reader://documents/0", 0, false},
		{"empty URI", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := extractDocumentID(tt.uri)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleCasesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil case service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Reader: &mockReaderService{}})
		require.NoError(t, err)

		req := makeReadResourceRequest("reader://cases")
		result, err := server.handleCasesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns cases successfully", func(t *testing.T) {
		cases := &mockCaseService{cases: []domain.Case{{ID: "3014", VeteranName: "Joe Snuffy"}}}
		server, err := NewServer(&Ports{Reader: &mockReaderService{}, Case: cases})
		require.NoError(t, err)

		req := makeReadResourceRequest("reader://cases")
		result, err := server.handleCasesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"id": "3014"`)
		assert.Contains(t, result.Contents[0].Text, "Joe Snuffy")
		assert.Contains(t, result.Contents[0].Text, "reader://cases/3014/documents")
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		cases := &mockCaseService{err: errors.New("database error")}
		server, err := NewServer(&Ports{Reader: &mockReaderService{}, Case: cases})
		require.NoError(t, err)

		req := makeReadResourceRequest("reader://cases")
		_, err = server.handleCasesResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing cases")
	})
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Reader: &mockReaderService{}})
		require.NoError(t, err)

		req := makeReadResourceRequest("reader://invalid/uri")
		_, err = server.handleDocumentsResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("returns documents in default list order", func(t *testing.T) {
		reader := &mockReaderService{
			rows: []domain.Row{
				{Kind: domain.RowDocument, Document: domain.Document{ID: 1, Type: "Form 9"}},
				{Kind: domain.RowDocument, Document: domain.Document{ID: 2, Type: "NOD"}},
			},
		}
		server, err := NewServer(&Ports{Reader: reader})
		require.NoError(t, err)

		req := makeReadResourceRequest("reader://cases/3014/documents")
		result, err := server.handleDocumentsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "Form 9")
		assert.Contains(t, result.Contents[0].Text, "NOD")
		assert.Equal(t, domain.DefaultSort(), reader.lastState.Criteria.Sort)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Reader: &mockReaderService{err: errors.New("storage error")}})
		require.NoError(t, err)

		req := makeReadResourceRequest("reader://cases/3014/documents")
		_, err = server.handleDocumentsResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing documents")
	})

	t.Run("handles empty document list", func(t *testing.T) {
		server, err := NewServer(&Ports{Reader: &mockReaderService{rows: []domain.Row{}}})
		require.NoError(t, err)

		req := makeReadResourceRequest("reader://cases/3014/documents")
		result, err := server.handleDocumentsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleDocumentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil document service returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Reader: &mockReaderService{}})
		require.NoError(t, err)

		req := makeReadResourceRequest("reader://documents/42")
		_, err = server.handleDocumentResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		ports := &Ports{Reader: &mockReaderService{}, Document: &mockDocumentService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("reader://invalid/uri")
		_, err = server.handleDocumentResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("returns document successfully", func(t *testing.T) {
		ports := &Ports{
			Reader:   &mockReaderService{},
			Document: &mockDocumentService{document: &domain.Document{ID: 42, Type: "Form 9"}},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("reader://documents/42")
		result, err := server.handleDocumentResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"id": 42`)
		assert.Contains(t, result.Contents[0].Text, "Form 9")
	})

	t.Run("returns error on lookup failure", func(t *testing.T) {
		ports := &Ports{
			Reader:   &mockReaderService{},
			Document: &mockDocumentService{err: domain.ErrNotFound},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("reader://documents/42")
		_, err = server.handleDocumentResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting document")
	})
}
