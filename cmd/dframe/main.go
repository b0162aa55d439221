package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/toastedbreadandomelette/dframe/pkg/config"
	"github.com/toastedbreadandomelette/dframe/pkg/dframe"
	"github.com/toastedbreadandomelette/dframe/pkg/formats"
	"github.com/toastedbreadandomelette/dframe/pkg/logger"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "dframe",
		Short: "dframe - parallel CSV to typed columnar table parser",
		Long: `dframe memory-maps a CSV file and parses it into a typed, columnar
in-memory table using multiple workers over line-aligned shards.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dframe v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(newParseCmd())
	root.AddCommand(newExportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newParseCmd() *cobra.Command {
	var (
		configFile string
		shards     int
		preview    int
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a CSV file and print a summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(configFile, args, shards, preview, logLevel)
			if err != nil {
				return err
			}

			table, err := parseWithConfig(cfg)
			if err != nil {
				return err
			}
			printSummary(table, cfg.Preview)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	cmd.Flags().IntVarP(&shards, "shards", "s", 0, "number of parallel workers (0 = CPU count)")
	cmd.Flags().IntVarP(&preview, "preview", "p", 10, "rows to print after parsing")
	cmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		configFile string
		shards     int
		output     string
		pretty     bool
		gzipOut    bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Parse a CSV file and export the table as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(configFile, args, shards, 0, logLevel)
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Export.Output = output
			}
			if cmd.Flags().Changed("pretty") {
				cfg.Export.Pretty = pretty
			}
			if cmd.Flags().Changed("gzip") {
				cfg.Export.Gzip = gzipOut
			}

			table, err := parseWithConfig(cfg)
			if err != nil {
				return err
			}

			out := os.Stdout
			if cfg.Export.Output != "" && cfg.Export.Output != "-" {
				f, err := os.Create(cfg.Export.Output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return formats.WriteJSON(out, table, formats.JSONOptions{
				Pretty: cfg.Export.Pretty,
				Gzip:   cfg.Export.Gzip,
			})
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	cmd.Flags().IntVarP(&shards, "shards", "s", 0, "number of parallel workers (0 = CPU count)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	cmd.Flags().BoolVar(&gzipOut, "gzip", false, "gzip the output stream")
	cmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
	return cmd
}

// buildConfig merges the optional config file, the positional file
// argument and the command flags into a validated ParseConfig.
func buildConfig(configFile string, args []string, shards, preview int, logLevel string) (*config.ParseConfig, error) {
	cfg := &config.ParseConfig{}
	if configFile != "" {
		if err := config.Load(configFile, cfg); err != nil {
			return nil, err
		}
	}
	if len(args) > 0 {
		cfg.Path = args[0]
	}
	if shards > 0 {
		cfg.Shards = shards
	}
	if preview > 0 {
		cfg.Preview = preview
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseWithConfig(cfg *config.ParseConfig) (*dframe.Table, error) {
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Encoding: "console"}); err != nil {
		return nil, err
	}
	defer logger.Sync() //nolint:errcheck

	started := time.Now()
	table, err := dframe.ParseMultiThreaded(cfg.Path, cfg.Shards)
	if err != nil {
		return nil, err
	}
	logger.Info("parse finished",
		zap.String("path", cfg.Path),
		zap.Int("shards", cfg.Shards),
		zap.Int("rows", table.RowCount()),
		zap.Duration("elapsed", time.Since(started)))
	return table, nil
}

func printSummary(t *dframe.Table, preview int) {
	fmt.Printf("columns: %v\n", t.Header())
	fmt.Printf("dtypes:  %v\n", t.ColumnTypes())
	fmt.Printf("rows:    %d\n", t.RowCount())

	it := t.Rows()
	for i := 0; i < preview; i++ {
		row, ok := it.Next()
		if !ok {
			break
		}
		fmt.Printf("%v\n", row)
	}
}
