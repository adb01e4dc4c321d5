// Package main provides the CLI entry point for subsync.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"subsync/internal/config"
	"subsync/pkg/subsync"
	"subsync/pkg/subsync/sheet"
	"subsync/pkg/subsync/source"
)

var (
	verbose bool
	envFile string

	date         string
	fromDate     string
	toDate       string
	excelFolder  string
	templateRow  int
	defaultSMS   int
	message      string
	onlyWhatsApp bool
	dryRun       bool

	logger *zap.Logger
)

// errUsage marks failures that should exit with the usage-error code.
var errUsage = errors.New("usage error")

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		return exitCode(err)
	}
	return 0
}

// exitCode maps errors to process exit status: 2 for configuration and
// validation problems, 1 for everything else.
func exitCode(err error) int {
	switch {
	case errors.Is(err, errUsage),
		errors.Is(err, config.ErrMissingCredentials),
		errors.Is(err, subsync.ErrInvalidDate),
		errors.Is(err, subsync.ErrInvalidRange),
		errors.Is(err, sheet.ErrFileNotFound):
		return 2
	}
	return 1
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "subsync",
		Short: "Sync active subscribers into the daily spreadsheet files",
		Long: `subsync reconciles the remote subscriber directory against the
date-named spreadsheet files that drive the daily outbound send. New
subscribers are appended as rows synthesized from a template row; existing
rows are matched by digits-only phone number and never duplicated.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file with credentials")

	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newRangeCmd())
	return rootCmd
}

func addPassthroughFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&excelFolder, "excel-folder", "excel", "Folder holding the daily spreadsheet files")
	cmd.Flags().IntVar(&templateRow, "template-row", 2, "Row used as template for new rows (first data row is 2)")
	cmd.Flags().IntVar(&defaultSMS, "default-sms", 0, "SMS value for new rows (0=pending, 1=sent)")
	cmd.Flags().StringVar(&message, "message", "", "Text for TEXTO_MENSAJE; defaults to the template row's own text")
	cmd.Flags().BoolVar(&onlyWhatsApp, "only-whatsapp", false, "Only sync when the template row is marked WHATSAPP=SI")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the result without writing the spreadsheet")
}

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync subscribers into a single date's spreadsheet",
		Args:  cobra.NoArgs,
		RunE:  runSync,
	}
	cmd.Flags().StringVar(&date, "date", subsync.Today(), "Target date in DDMMYYYY form")
	addPassthroughFlags(cmd)
	return cmd
}

func newRangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Sync subscribers for every day in an inclusive date range",
		Args:  cobra.NoArgs,
		RunE:  runRange,
	}
	cmd.Flags().StringVar(&fromDate, "from-date", "", "Start date in DDMMYYYY form (inclusive)")
	cmd.Flags().StringVar(&toDate, "to-date", "", "End date in DDMMYYYY form (inclusive)")
	addPassthroughFlags(cmd)
	return cmd
}

func dayOptions(cmd *cobra.Command) (subsync.Options, error) {
	if templateRow < 2 {
		return subsync.Options{}, fmt.Errorf("%w: --template-row must be at least 2 (row 1 holds the headers)", errUsage)
	}

	opts := subsync.Options{
		Folder:       excelFolder,
		TemplateRow:  templateRow,
		DefaultSMS:   defaultSMS,
		OnlyWhatsApp: onlyWhatsApp,
		DryRun:       dryRun,
	}
	if cmd.Flags().Changed("message") {
		opts.Message = &message
	}
	return opts, nil
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if _, err := subsync.ParseDate(date); err != nil {
		return err
	}

	opts, err := dayOptions(cmd)
	if err != nil {
		return err
	}
	opts.Date = date

	src := source.NewClient(cfg.SourceURL, cfg.ServiceKey)
	res, err := subsync.Run(cmd.Context(), src, opts, logger)
	if err != nil {
		return err
	}
	return printJSON(res)
}

func runRange(cmd *cobra.Command, args []string) error {
	if fromDate == "" || toDate == "" {
		return fmt.Errorf("%w: --from-date and --to-date are required", errUsage)
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	day, err := dayOptions(cmd)
	if err != nil {
		return err
	}
	ropts := subsync.RangeOptions{
		From: fromDate,
		To:   toDate,
		Day:  day,
	}

	src := source.NewClient(cfg.SourceURL, cfg.ServiceKey)
	outcomes, rangeErr := subsync.RunRange(cmd.Context(), src, ropts, logger)
	if outcomes != nil {
		if err := printJSON(outcomes); err != nil {
			return err
		}
	}
	return rangeErr
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
