package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "List and open case documents",
	Long:  `List the documents of a case, show a single document, or mark it read.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list [case-id]",
	Short: "List the documents of a case",
	Long: `List the documents of a case as a table, filtered and sorted like the
document list of the terminal UI.

Category and tag filters each match any selected value; both together
must match. The search matches type, receipt date, tags, categories and
comment text.

Examples:
  reader document list 3014 --category medical --tag "Service Connection"
  reader document list 3014 --sort type --desc
  reader document list 3014 --search "knee" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentOpenCmd = &cobra.Command{
	Use:   "open [doc-id]",
	Short: "Mark a document as read",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentOpen,
}

// documentListOptions holds the flags of the list command.
type documentListOptions struct {
	categories []string
	tags       []string
	search     string
	sort       string
	desc       bool
	expand     bool
	json       bool
}

var listOpts documentListOptions

func init() {
	flags := documentListCmd.Flags()
	flags.StringSliceVarP(&listOpts.categories, "category", "c", nil, "Show documents in category (procedural, medical, other)")
	flags.StringSliceVarP(&listOpts.tags, "tag", "t", nil, "Show documents with issue tag")
	flags.StringVarP(&listOpts.search, "search", "s", "", "Search documents and comments")
	flags.StringVar(&listOpts.sort, "sort", string(domain.SortByReceivedAt), "Sort by field (receivedAt, type)")
	flags.BoolVar(&listOpts.desc, "desc", false, "Sort descending")
	flags.BoolVarP(&listOpts.expand, "expand", "e", false, "List the comments of every document")
	flags.BoolVar(&listOpts.json, "json", false, "Print JSON instead of a table")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentOpenCmd)
	rootCmd.AddCommand(documentCmd)
}

// query converts the flags into a list query.
func (o *documentListOptions) query() domain.ListQuery {
	return domain.ListQuery{
		Categories:     o.categories,
		Tags:           o.tags,
		Search:         o.search,
		SortBy:         o.sort,
		Descending:     o.desc,
		ExpandComments: o.expand,
	}
}

func runDocumentList(cmd *cobra.Command, args []string) error {
	if readerService == nil {
		return errors.New("reader service not configured")
	}

	caseID := args[0]
	ctx := cmd.Context()

	// A fresh list, so the output does not depend on state saved by the TUI.
	state, err := listOpts.query().State()
	if err != nil {
		return err
	}

	folder, err := readerService.LoadFolder(ctx, caseID)
	if err != nil {
		return fmt.Errorf("failed to load case: %w", err)
	}

	rows, err := readerService.ListRows(ctx, caseID, state)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if listOpts.json {
		return writeJSON(cmd.OutOrStdout(), rowsJSON(rows))
	}

	out := cmd.OutOrStdout()
	bold := styler(out, color.Bold)

	cmd.Printf("%s (%s)\n", bold.Sprint(folder.Case.VeteranName), folder.Case.ID)
	cmd.Printf("%d of %d documents read\n\n", folder.ReadCount(), len(folder.Documents))

	shown := 0
	for i := range rows {
		if !rows[i].IsComment() {
			shown++
		}
	}
	if shown == 0 {
		cmd.Println("No documents match the current filters.")
		return nil
	}

	tbl := newTable(out)
	tbl.AddRow(
		bold.Sprint("ID"),
		bold.Sprint("CAT"),
		bold.Sprint(sortHeader("RECEIPT DATE", domain.SortByReceivedAt, state.Criteria.Sort)),
		bold.Sprint(sortHeader("TYPE", domain.SortByType, state.Criteria.Sort)),
		bold.Sprint("ISSUE TAGS"),
		bold.Sprint("COMMENTS"),
	)
	for i := range rows {
		row := &rows[i]
		if row.IsComment() {
			for _, a := range row.Annotations {
				tbl.AddRow("", "", "", fmt.Sprintf("  p.%d", a.Page), a.Comment, "")
			}
			continue
		}
		doc := &row.Document
		docType := doc.Type
		if !doc.OpenedByCurrentUser {
			docType = bold.Sprint(docType)
		}
		tbl.AddRow(
			doc.ID,
			categorySymbols(doc.Categories),
			doc.FormattedReceivedAt(),
			docType,
			strings.Join(doc.Tags, ", "),
			commentCount(folder.Annotations[doc.ID]),
		)
	}
	cmd.Println(tbl)

	if active := state.Criteria.ActiveFilterKinds(); len(active) > 0 {
		cmd.Printf("\nShowing %d of %d documents, filtered by %s\n",
			shown, len(folder.Documents), strings.Join(active, " and "))
	} else {
		cmd.Printf("\nTotal: %d documents\n", shown)
	}
	return nil
}

func sortHeader(label string, field domain.SortField, s domain.Sort) string {
	if s.SortBy != field {
		return label
	}
	if s.SortAscending {
		return label + " ▲"
	}
	return label + " ▼"
}

func commentCount(annotations []domain.Annotation) string {
	if len(annotations) == 0 {
		return ""
	}
	return strconv.Itoa(len(annotations))
}

func parseDocumentID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: document id %q", domain.ErrInvalidInput, arg)
	}
	return id, nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	doc, err := documentService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	status := "Unread"
	if doc.OpenedByCurrentUser {
		status = "Read"
	}

	cmd.Printf("Document: %d\n\n", doc.ID)
	cmd.Printf("  Type:        %s\n", doc.Type)
	cmd.Printf("  Case:        %s\n", doc.CaseID)
	cmd.Printf("  Received:    %s\n", doc.FormattedReceivedAt())
	cmd.Printf("  Categories:  %s\n", strings.Join(categoryLabels(doc.Categories), ", "))
	cmd.Printf("  Issue tags:  %s\n", strings.Join(doc.Tags, ", "))
	cmd.Printf("  Status:      %s\n", status)

	if annotationService == nil {
		return nil
	}
	comments, err := annotationService.ListByDocument(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}
	if len(comments) > 0 {
		cmd.Printf("\n  Comments:\n")
		for _, a := range comments {
			cmd.Printf("    Page %d: %s\n", a.Page, a.Comment)
		}
	}
	return nil
}

func runDocumentOpen(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	doc, err := documentService.MarkRead(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	cmd.Printf("Marked read: %s (%s)\n", doc.Type, doc.FormattedReceivedAt())
	return nil
}
