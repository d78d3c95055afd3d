package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthewjhunter/longbox"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import records from a CSV file",
		Long: `Import records from a CSV file. The record kind is chosen by the header
row. Rows that cannot be parsed or inserted are skipped and reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCollection(func(c *longbox.Collection) error {
				res, err := c.Import(args[0])
				if err != nil {
					return err
				}
				return formatter.OutputImportResult(args[0], res)
			})
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <sequenced|categorized|narrative> <file.csv>",
		Short: "Export every record of one kind to a CSV file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := longbox.ParseKind(args[0])
			if err != nil {
				return err
			}
			return withCollection(func(c *longbox.Collection) error {
				n, err := c.Export(kind, args[1])
				if err != nil {
					return err
				}
				formatter.OutputEvent("exported",
					fmt.Sprintf("Exported %d %s record(s) to %s", n, kind, args[1]),
					map[string]any{"kind": string(kind), "count": n, "path": args[1]})
				return nil
			})
		},
	}
}
