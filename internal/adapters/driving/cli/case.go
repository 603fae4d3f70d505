package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Manage imported cases",
}

var caseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported cases",
	Args:  cobra.NoArgs,
	RunE:  runCaseList,
}

func init() {
	caseCmd.AddCommand(caseListCmd)
	rootCmd.AddCommand(caseCmd)
}

func runCaseList(cmd *cobra.Command, _ []string) error {
	if caseService == nil {
		return errors.New("case service not configured")
	}

	cases, err := caseService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list cases: %w", err)
	}

	if len(cases) == 0 {
		cmd.Println("No cases imported. Run 'reader import <manifest>' first.")
		return nil
	}

	out := cmd.OutOrStdout()
	bold := styler(out, color.Bold)
	tbl := newTable(out)
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("VETERAN"))
	for _, c := range cases {
		tbl.AddRow(c.ID, c.VeteranName)
	}
	cmd.Println(tbl)
	cmd.Printf("\nTotal: %d cases\n", len(cases))
	return nil
}
