package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/epigraph-tools/lapis/dataset"
	"github.com/epigraph-tools/lapis/engine"
)

// =============================================================================
// LAPIS CLI — Latin inscriptions query engine & dashboard
// =============================================================================

var (
	logger *zap.Logger

	flagFile    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lapis",
	Short: "Query and serve a Latin inscriptions dataset",
	Long: `Lapis loads a CSV of Latin inscriptions and answers filter,
aggregation, and summary queries against it — one-shot from the command
line, or continuously through the browser dashboard.

When the data file is missing or unparsable, the built-in ten-record
sample dataset is used so the session still starts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if flagVerbose {
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

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFile, "file", dataset.DefaultFile,
		"path to the inscriptions CSV file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(profileCmd)
}

// loadData loads the data file, falling back to the sample dataset with a
// logged warning — load failure never kills the session.
func loadData() (*engine.Dataset, string) {
	ds, source, err := dataset.LoadFileOrSample(flagFile)
	if err != nil {
		logger.Warn("using sample data",
			zap.String("file", flagFile),
			zap.Error(err))
	} else {
		logger.Debug("data loaded",
			zap.String("file", source),
			zap.Int("rows", ds.Len()))
	}
	return ds, source
}

// outputWriter resolves --out style flags to a writer.
func outputWriter(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
