package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umeldt/darwinsheet/internal/spreadsheet/processor"
)

// fieldsCmd represents the fields command
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Lists the fields of the catalogue and their rules.",
	Run:   cliCmdFields,
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
	fieldsCmd.Flags().String("format", "text", "Output format: text, json or yaml")
}

func cliCmdFields(cmd *cobra.Command, args []string) {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := processor.ParseFormat(formatName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		exit(exitError)
	}

	_, cat, err := loadCatalogue()
	if err != nil {
		printErrors("Loading the field catalogue failed", err)
		exit(exitError)
	}

	if err := processor.NewDisplayer(os.Stdout, format).ShowFields(cat.Fields()); err != nil {
		fmt.Fprintln(stderr, err)
		exit(exitError)
	}
}
