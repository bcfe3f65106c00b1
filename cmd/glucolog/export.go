// ABOUTME: CLI command for exporting the full metric store.
// ABOUTME: Supports JSON and YAML output to stdout or a file.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:       "export <format>",
	Short:     "Export all stored data",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	Long: `Export the full metric store.

FORMATS:

  json   Full JSON export (suitable for backup)
  yaml   YAML export (human-readable)

EXAMPLES:

  glucolog export json                 # Print to stdout
  glucolog export json -o backup.json  # Save to file
  glucolog export yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		export, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		var data []byte
		switch format {
		case "json":
			data, err = json.MarshalIndent(export, "", "  ")
		case "yaml":
			data, err = yaml.Marshal(export)
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
