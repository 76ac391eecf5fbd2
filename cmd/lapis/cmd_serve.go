package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/epigraph-tools/lapis/config"
	"github.com/epigraph-tools/lapis/dataset"
	"github.com/epigraph-tools/lapis/render"
	"github.com/epigraph-tools/lapis/server"
)

var (
	flagAddr   string
	flagConfig string
	flagWatch  bool
	flagCharts string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard server",
	Long: `Serves the Overview, Search, Statistics, and About pages plus the
JSON API. The dataset is loaded once at startup and replaced wholesale on
upload or, with --watch, when the data file changes on disk.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "path to lapis.yaml")
	serveCmd.Flags().BoolVar(&flagWatch, "watch", false, "reload when the data file changes")
	serveCmd.Flags().StringVar(&flagCharts, "charts", "", `chart adapter: "plotly" or "native"`)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	// Flags beat file values.
	if flagAddr != "" {
		cfg.Addr = flagAddr
	}
	if flagCharts != "" {
		cfg.Charts = flagCharts
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = flagWatch
	}
	if cmd.Flags().Changed("file") {
		cfg.DataFile = flagFile
	}

	ds, source, loadErr := dataset.LoadFileOrSample(cfg.DataFile)
	sess := server.NewSession(ds, source)
	if loadErr != nil {
		logger.Warn("using sample data", zap.String("file", cfg.DataFile), zap.Error(loadErr))
		sess.SetNotice("Using sample data. Upload your CSV to see real data.")
	}

	if cfg.Watch {
		w, err := server.NewWatcher(cfg.DataFile, sess, logger)
		if err != nil {
			logger.Warn("file watching disabled", zap.Error(err))
		} else {
			w.Start()
			defer w.Stop()
			logger.Info("watching data file", zap.String("file", cfg.DataFile))
		}
	}

	srv := server.New(sess, render.ForName(cfg.Charts), cfg.Title, logger)
	return srv.Start(cfg.Addr)
}
