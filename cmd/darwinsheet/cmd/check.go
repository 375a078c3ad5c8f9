package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/umeldt/darwinsheet/internal/check"
	"github.com/umeldt/darwinsheet/internal/logging"
	"github.com/umeldt/darwinsheet/internal/spreadsheet"
	"github.com/umeldt/darwinsheet/internal/spreadsheet/processor"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Checks the given sample log(s) for errors and reports the errors.",
	Long: `The check command validates the given sample logs against the field catalogue
and the rules of the chosen setup and reports any errors. The exit code is 0 when
every file passed, 1 when a file has errors and 2 when a file could not be checked.

With --cleaned-output the cleaned Data sheet (repaired ids, numbers written with
a decimal comma fixed) is written to a new workbook. Add --inherit to fill in the
values child events inherit from their parents.`,
	Run: cliCmdCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("files", "f", "", "Comma separated paths to the sample logs")
	checkCmd.Flags().String("format", "text", "Report format: text, json or yaml")
	checkCmd.Flags().StringP("cleaned-output", "o", "", "Write the cleaned sample log to this file")
	checkCmd.Flags().Bool("inherit", false, "Fill in inherited values in the cleaned sample log")
}

func cliCmdCheck(cmd *cobra.Command, args []string) {
	files, err := cmd.Flags().GetString("files")
	if err != nil {
		printErrors("Reading the flags failed", err)
		exit(exitError)
	}
	paths := filePaths(files, args)
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "No sample logs given, use --files or list them after check")
		exit(exitError)
	}

	formatName, _ := cmd.Flags().GetString("format")
	format, err := processor.ParseFormat(formatName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		exit(exitError)
	}

	cleanedOutput, _ := cmd.Flags().GetString("cleaned-output")
	if cleanedOutput != "" && len(paths) > 1 {
		fmt.Fprintln(stderr, "--cleaned-output needs a single sample log")
		exit(exitError)
	}
	inherit, _ := cmd.Flags().GetBool("inherit")

	settings, cat, err := loadCatalogue()
	if err != nil {
		printErrors("Loading the field catalogue failed", err)
		exit(exitError)
	}

	setup, err := settings.Setups.Get(settings.Setup)
	if err != nil {
		fmt.Fprintln(stderr, err)
		exit(exitError)
	}

	checker, err := check.NewChecker(cat, setup)
	if err != nil {
		printErrors("Building the validators failed", err)
		exit(exitError)
	}

	processors := []processor.Processor{processor.NewDisplayer(os.Stdout, format)}
	if cleanedOutput != "" {
		if inherit {
			processors = append(processors, processor.NewInheritor(cat))
		}
		processors = append(processors, processor.NewExporter(cleanedOutput, cat).WithFs(fs))
	}

	loader := spreadsheet.NewLoader(settings.HeaderRow).WithFs(fs)
	exit(checkFiles(loader, checker, paths, processors))
}

func checkFiles(loader *spreadsheet.Loader, checker *check.Checker, paths []string, processors []processor.Processor) int {
	code := exitPassed
	for _, path := range paths {
		logging.Log.INFO.Printf("Checking %s with setup '%s'", path, checker.Setup().Name)

		result, err := checkFile(loader, checker, path)
		if err != nil {
			printErrors("Loading spreadsheet failed", err)
			code = exitError
			continue
		}

		if err := processor.Run(result, processors...); err != nil {
			printErrors("Processing the report failed", err)
			code = exitError
			continue
		}

		if !result.Report.Passed && code == exitPassed {
			code = exitFailed
		}
	}
	return code
}

// checkFile loads and checks one sample log. A workbook without the Data
// sheet is reported like any other problem with the file.
func checkFile(loader *spreadsheet.Loader, checker *check.Checker, path string) (*check.Result, error) {
	wb, err := loader.Load(path)
	if err != nil {
		if missing, ok := spreadsheet.AsMissingSheet(err); ok {
			return &check.Result{
				File:   path,
				Setup:  checker.Setup().Name,
				Report: check.StructuralReport(missing.Error()),
			}, nil
		}
		return nil, err
	}

	result := checker.CheckWorkbook(wb)
	result.File = path
	logging.Log.DEBUG.Printf("%s: %d findings", path, len(result.Report.Findings))
	return result, nil
}

func filePaths(files string, args []string) []string {
	var paths []string
	for _, p := range append(strings.Split(files, ","), args...) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
