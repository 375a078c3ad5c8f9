package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/umeldt/darwinsheet/internal/config"
	"github.com/umeldt/darwinsheet/internal/fields"
	"github.com/umeldt/darwinsheet/internal/logging"
)

// Exit codes.
const (
	exitPassed = 0
	exitFailed = 1
	exitError  = 2
)

var (
	cfgFile   string
	v         = viper.New()
	fs        = afero.NewOsFs()
	logCloser io.Closer

	// stderr receives error messages. The report goes to stdout.
	stderr io.Writer = os.Stderr
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "darwinsheet",
	Short: "Checks cruise sample logs against the field catalogue.",
	Long: `darwinsheet checks the sample logs filled in during oceanographic cruises.
A sample log is an xlsx workbook with a Data sheet, one row per event or sample,
and for some setups a Metadata sheet. Every column is checked against the field
catalogue and the events are checked for broken parent links and reused ids.`,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: closeLog,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		os.Exit(exitError)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/darwinsheet.yaml)")
	flags.StringP("setup", "s", "", "Setup to check against (default aen)")
	flags.IntP("header-row", "r", 0, "Row holding the field names (default 3)")
	flags.String("log-level", "", "Log level: trace, debug, info, warn or error (default info)")
	flags.String("log-file", "", "Also append the log to this file")

	bindFlags(flags, map[string]string{
		"setup":      "setup",
		"header_row": "header-row",
		"log_level":  "log-level",
		"log_file":   "log-file",
	})
}

// bindFlags makes the flags override the settings of the same meaning.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.Init(v, cfgFile); err != nil {
		fmt.Fprintln(stderr, err)
		os.Exit(exitError)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(v)
	if err != nil {
		return err
	}

	logCloser, err = logging.Setup(fs, settings.LogLevel, settings.LogFile)
	if err != nil {
		return err
	}

	if f := v.ConfigFileUsed(); f != "" {
		logging.Log.DEBUG.Println("Using config file:", f)
	}
	return nil
}

// exit closes the log file and ends the program with code.
func exit(code int) {
	closeLog(nil, nil)
	os.Exit(code)
}

func closeLog(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	return logCloser.Close()
}

// loadCatalogue reads the settings and builds the field catalogue they
// describe.
func loadCatalogue() (*config.Settings, *fields.Catalogue, error) {
	settings, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}

	cat, err := settings.Catalogue(fs)
	if err != nil {
		return nil, nil, err
	}
	logging.Log.DEBUG.Printf("Catalogue has %d fields", cat.Len())

	return settings, cat, nil
}

// printErrors writes msg followed by every error err holds.
func printErrors(msg string, err error) {
	logging.Log.DEBUG.Println(msg, err)
	fmt.Fprintln(stderr, msg)
	if merr, ok := err.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			fmt.Fprintln(stderr, " ", e)
		}
		return
	}
	fmt.Fprintln(stderr, " ", err)
}
