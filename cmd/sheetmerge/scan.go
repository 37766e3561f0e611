package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"sheetmerge/core"
)

func scanCmd() *cobra.Command {
	var template, sheet string
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the label cells and anchors of a template sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := core.OpenExcelFile(template)
			if err != nil {
				return err
			}
			defer f.Close()

			cells, err := core.ScanSheet(f, sheet)
			if err != nil {
				return err
			}
			return printLabelCells(cmd.OutOrStdout(), f, sheet, cells)
		},
	}
	cmd.Flags().StringVar(&template, "template", "", "Template workbook")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet to scan")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("sheet")
	return cmd
}

// printLabelCells lists each label cell with its raw text as stored in the
// sheet, so "010" and "10" can be told apart.
func printLabelCells(w io.Writer, f core.ExcelFile, sheet string, cells []core.LabelCell) error {
	anchors := core.ClassifyAnchors(cells)
	isRow := make(map[core.LabelCell]bool, len(anchors.Rows))
	for _, c := range anchors.Rows {
		isRow[c] = true
	}
	isColumn := make(map[core.LabelCell]bool, len(anchors.Columns))
	for _, c := range anchors.Columns {
		isColumn[c] = true
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CELL\tROW\tCOLUMN\tTEXT\tVALUE\tROLE")
	for _, c := range cells {
		role := "-"
		switch {
		case isRow[c] && isColumn[c]:
			role = "row,column"
		case isRow[c]:
			role = "row"
		case isColumn[c]:
			role = "column"
		}
		name, err := excelize.CoordinatesToCellName(c.Column, c.Row)
		if err != nil {
			return err
		}
		text, err := f.GetCellValue(sheet, name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%q\t%d\t%s\n", name, c.Row, c.Column, text, c.Value, role)
	}
	fmt.Fprintf(tw, "\n%d label cells, %d row anchors, %d column anchors\n", len(cells), len(anchors.Rows), len(anchors.Columns))
	return tw.Flush()
}
