package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rxtech-lab/multiout/internal/config"
	"github.com/rxtech-lab/multiout/internal/job"
	"github.com/rxtech-lab/multiout/internal/logger"
	"github.com/rxtech-lab/multiout/internal/version"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// loadJobConfig reads the YAML job file, if any, and applies command line overrides.
func loadJobConfig(cmd *cli.Command) (config.JobConfig, error) {
	cfg := config.EmptyConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.JobConfig{}, err
		}

		cfg = loaded
	}

	if cmd.IsSet("output") {
		cfg.OutputDir = cmd.String("output")
	}

	if cmd.IsSet("format") {
		cfg.Format = config.Format(cmd.String("format"))
	}

	if cmd.IsSet("route") {
		cfg.Route = config.Route(cmd.String("route"))
	}

	if cmd.IsSet("trailing-segments") {
		cfg.TrailingSegments = int(cmd.Int("trailing-segments"))
	}

	if cmd.IsSet("no-key") {
		cfg.EmitKey = !cmd.Bool("no-key")
	}

	if cmd.IsSet("compress") {
		cfg.Compress = cmd.Bool("compress")
	}

	if err := cfg.Validate(); err != nil {
		return config.JobConfig{}, err
	}

	return cfg, nil
}

// runAction routes every input file into the configured output directory.
func runAction(ctx context.Context, cmd *cli.Command) error {
	runLog, err := logger.NewLoggerWithLevel(cmd.String("log-level"))
	if err != nil {
		return err
	}
	defer runLog.Sync()

	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	cfg, err := loadJobConfig(cmd)
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(len(inputs)), "tasks")
	onComplete := job.OnTaskCompleteCallback(func(_ int, _ string, _ int64, _ []string) {
		_ = bar.Add(1)
	})

	runner, err := job.NewRunner(cfg, runLog, job.WithCallbacks(job.Callbacks{
		OnTaskStart:    nil,
		OnTaskComplete: &onComplete,
	}))
	if err != nil {
		return err
	}

	runLog.Info("Starting job",
		zap.String("job_id", runner.JobID()),
		zap.Int("inputs", len(inputs)),
		zap.String("output_dir", cfg.OutputDir),
		zap.String("format", string(cfg.Format)),
		zap.String("route", string(cfg.Route)),
	)

	summary, err := runner.Run(ctx, inputs)
	_ = bar.Finish()

	if err != nil {
		return fmt.Errorf("job failed after %d task(s): %w", summary.Tasks, err)
	}

	fmt.Printf("Wrote %d record(s) to %d destination(s) from %d task(s)\n",
		summary.Records, len(summary.Destinations), summary.Tasks)

	return nil
}

// schemaAction prints the JSON schema of the job configuration.
func schemaAction(_ context.Context, _ *cli.Command) error {
	cfg := config.EmptyConfig()

	schemaJSON, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Println(schemaJSON)

	return nil
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "multiout",
		Usage:   "Route keyed records into multiple output files",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Run a map-only job over input files",
				ArgsUsage: "INPUT...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the YAML job configuration",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   fmt.Sprintf("Output format (%s, %s)", config.FormatText, config.FormatParquet),
					},
					&cli.StringFlag{
						Name:    "route",
						Aliases: []string{"r"},
						Usage:   fmt.Sprintf("Destination routing (%s, %s, %s)", config.RouteNone, config.RouteKeyDir, config.RouteKeyPrefix),
					},
					&cli.IntFlag{
						Name:  "trailing-segments",
						Usage: "Number of trailing input directories mirrored into destinations",
					},
					&cli.BoolFlag{
						Name:  "no-key",
						Usage: "Write values only",
					},
					&cli.BoolFlag{
						Name:  "compress",
						Usage: "Gzip text output",
					},
					&cli.StringFlag{
						Name:  "log-level",
						Usage: "Log level (debug, info, warn, error)",
						Value: "info",
					},
				},
				Action: runAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the job configuration JSON schema",
				Action: schemaAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
