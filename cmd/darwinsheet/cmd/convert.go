package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umeldt/darwinsheet/internal/check"
	"github.com/umeldt/darwinsheet/internal/logging"
	"github.com/umeldt/darwinsheet/internal/spreadsheet/processor"
	"github.com/umeldt/darwinsheet/internal/toktlog"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Converts a cruise activity log export into a sample log.",
	Long: `The convert command reads the activities and the cruise of a cruise activity log
export (both JSON) and writes a sample log with one Data row per activity. Activities
that can't be converted are reported and left out.`,
	Run: cliCmdConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("activities", "", "Path to the activities JSON file")
	convertCmd.Flags().String("cruise", "", "Path to the cruise JSON file")
	convertCmd.Flags().StringP("output", "o", "", "Path of the sample log to write")
}

func cliCmdConvert(cmd *cobra.Command, args []string) {
	activitiesPath, _ := cmd.Flags().GetString("activities")
	cruisePath, _ := cmd.Flags().GetString("cruise")
	output, _ := cmd.Flags().GetString("output")
	if activitiesPath == "" || cruisePath == "" || output == "" {
		fmt.Fprintln(stderr, "convert needs --activities, --cruise and --output")
		exit(exitError)
	}

	_, cat, err := loadCatalogue()
	if err != nil {
		printErrors("Loading the field catalogue failed", err)
		exit(exitError)
	}

	activities, err := fs.Open(activitiesPath)
	if err != nil {
		printErrors("Opening the activities failed", err)
		exit(exitError)
	}
	defer activities.Close()

	cruiseFile, err := fs.Open(cruisePath)
	if err != nil {
		printErrors("Opening the cruise failed", err)
		exit(exitError)
	}
	defer cruiseFile.Close()

	acts, cruise, err := toktlog.Decode(activities, cruiseFile)
	if err != nil {
		printErrors("Reading the activity log failed", err)
		exit(exitError)
	}

	code := exitPassed
	ds, err := toktlog.ToDataset(acts, cruise)
	if err != nil {
		if ds == nil {
			printErrors("Converting the activity log failed", err)
			exit(exitError)
		}
		printErrors("Some activities were left out", err)
		code = exitFailed
	}

	if err := processor.NewExporter(output, cat).WithFs(fs).Apply(&check.Result{Cleaned: ds}); err != nil {
		printErrors("Writing the sample log failed", err)
		exit(exitError)
	}
	logging.Log.INFO.Printf("Wrote %d activities to %s", len(ds.Rows), output)

	activities.Close()
	cruiseFile.Close()
	exit(code)
}
