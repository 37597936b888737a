// docseed
//
// Entry point: scans a source directory and writes a mock print-document dataset next to the files.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mtiwari1/docseed/internal/config"
	"github.com/mtiwari1/docseed/internal/dataset"
	"github.com/mtiwari1/docseed/internal/output"
)

type options struct {
	configPath string
	customerID string
	format     string
	outputName string
	seed       uint64
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the CLI. out receives the completion line, logs go to errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "docseed [source-dir]",
		Short: "Generate a mock print-document dataset from the files in a directory",
		Long: `docseed reads every regular file in a flat directory, base64-encodes it and
emits one document record per file with mock print attributes:

  printSideType   SINGLE_SIDE on even positions, DOUBLE_SIDE on odd
  pageSize        A3 on positions divisible by 3, A4 otherwise
  documentStatus  PENDING, IS_PRINTING, COMPLETED, FAILED in turn
  totalCostPage   random 1-20
  numOfCop        random 1-5

The dataset is written to <source-dir>/documentData.js (or .json), replacing any earlier output.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(errOut, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			cfg, err := resolveConfig(cmd, opts, args)
			if err != nil {
				logger.Error("load config", slog.String("error", err.Error()))
				return err
			}

			path, err := run(cmd.Context(), afero.NewOsFs(), cfg, logger)
			if err != nil {
				logger.Error("generation failed", slog.String("error", err.Error()))
				return err
			}
			fmt.Fprintf(out, "Dataset written to %s\n", path)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	f.StringVar(&opts.customerID, "customer-id", "", `customer identifier stamped on every record ("auto" for a UUID)`)
	f.StringVarP(&opts.format, "format", "f", "", "output format: js or json")
	f.StringVarP(&opts.outputName, "output-name", "o", "", "artifact file stem and export name")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for the numeric fields (0 = random)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log every record at debug level")

	return cmd
}

// resolveConfig layers explicitly set flags and the positional directory over config.Load.
func resolveConfig(cmd *cobra.Command, opts *options, args []string) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	f := cmd.Flags()
	if len(args) == 1 {
		cfg.SourceDir = args[0]
	}
	if f.Changed("customer-id") {
		cfg.CustomerID = opts.customerID
	}
	if f.Changed("format") {
		cfg.Format = strings.ToLower(opts.format)
	}
	if f.Changed("output-name") {
		cfg.OutputName = opts.outputName
	}
	if f.Changed("seed") {
		cfg.Seed = opts.seed
	}

	cfg.ResolveCustomerID()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// run generates the dataset for cfg and returns the artifact path.
// Nothing is written unless every entry was turned into a record.
func run(ctx context.Context, fsys afero.Fs, cfg config.Config, logger *slog.Logger) (string, error) {
	start := time.Now()

	w, err := output.NewWriter(cfg.Format, cfg.OutputName)
	if err != nil {
		return "", err
	}
	path := output.OutputPath(cfg.SourceDir, cfg.OutputName, w)

	logger.Info("starting generation",
		slog.String("source_dir", cfg.SourceDir),
		slog.String("customer_id", cfg.CustomerID),
		slog.String("format", cfg.Format),
	)

	gen := dataset.NewGenerator(
		fsys,
		cfg.CustomerID,
		dataset.NewSeededRand(cfg.Seed),
		logger,
		dataset.WithExclude(output.ExcludePatterns(cfg.OutputName)...),
	)
	records, err := gen.Generate(ctx, cfg.SourceDir)
	if err != nil {
		return "", err
	}

	if err := output.WriteDataset(fsys, records, path, w); err != nil {
		return "", err
	}

	logger.Info("dataset written",
		slog.String("path", path),
		slog.Int("records", len(records)),
		slog.Duration("latency", time.Since(start)),
	)
	return path, nil
}
