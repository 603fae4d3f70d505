package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Manage document comments",
}

var commentListCmd = &cobra.Command{
	Use:   "list [doc-id]",
	Short: "List the comments of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentList,
}

var commentAddCmd = &cobra.Command{
	Use:   "add [doc-id] [comment...]",
	Short: "Add a comment to a document page",
	Long: `Add a comment to a page of a document.

Example:
  reader comment add 42 --page 3 "Knee x-ray shows effusion"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCommentAdd,
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete [comment-id]",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentDelete,
}

var commentPage int

func init() {
	commentAddCmd.Flags().IntVarP(&commentPage, "page", "p", 1, "Page the comment refers to")

	commentCmd.AddCommand(commentListCmd)
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentDeleteCmd)
	rootCmd.AddCommand(commentCmd)
}

func runCommentList(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	comments, err := annotationService.ListByDocument(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}

	if len(comments) == 0 {
		cmd.Printf("No comments on document %d\n", id)
		return nil
	}

	tbl := newTable(cmd.OutOrStdout())
	tbl.AddRow("ID", "PAGE", "COMMENT")
	for _, a := range comments {
		tbl.AddRow(a.UUID, a.Page, a.Comment)
	}
	cmd.Println(tbl)
	return nil
}

func runCommentAdd(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	text := strings.Join(args[1:], " ")
	a, err := annotationService.Add(cmd.Context(), id, commentPage, text)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	cmd.Printf("Added comment %s on page %d\n", a.UUID, a.Page)
	return nil
}

func runCommentDelete(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	if err := annotationService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	cmd.Printf("Deleted comment %s\n", args[0])
	return nil
}
