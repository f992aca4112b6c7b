package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/aleister1102/reportdiff/internal/common"
	"github.com/aleister1102/reportdiff/internal/config"
	"github.com/aleister1102/reportdiff/internal/datastore"
	"github.com/aleister1102/reportdiff/internal/logger"
	"github.com/aleister1102/reportdiff/internal/orchestrator"
	"github.com/aleister1102/reportdiff/internal/reporter"
	"github.com/rs/zerolog"
)

func main() {
	flags, err := ParseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(2)
	}

	if flags.InitConfigFile != "" {
		if err := config.SaveGlobalConfig(config.NewDefaultGlobalConfig(), flags.InitConfigFile, zerolog.Nop()); err != nil {
			fmt.Fprintf(os.Stderr, "[FATAL] Could not write default config: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "[INFO] Default configuration written to %s\n", flags.InitConfigFile)
		return
	}

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] Could not load global config using path '%s': %v\n", flags.GlobalConfigFile, err)
		os.Exit(1)
	}
	applyFlagOverrides(gCfg, flags)

	if err := config.ValidateConfig(gCfg); err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}

	appLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] Could not initialize logger: %v\n", err)
		os.Exit(1)
	}
	zLogger := *appLogger.GetZerolog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	runErr := run(ctx, gCfg, flags, zLogger)
	stop()
	switch {
	case runErr == nil:
	case common.IsContextError(runErr):
		zLogger.Warn().Err(runErr).Msg("reportdiff interrupted")
	default:
		zLogger.Error().Err(runErr).Msg("reportdiff failed")
	}
	_ = appLogger.Close()
	if runErr != nil {
		os.Exit(1)
	}
}

// applyFlagOverrides lets command-line flags take precedence over the config file
func applyFlagOverrides(gCfg *config.GlobalConfig, flags AppFlags) {
	if flags.OutputFile != "" {
		gCfg.ReporterConfig.OutputPath = flags.OutputFile
	}
	if flags.FindingsFile != "" {
		gCfg.ExtractorConfig.FindingsFile = flags.FindingsFile
	}
	if flags.Granularity != "" {
		gCfg.DiffConfig.Granularity = flags.Granularity
	}
	if flags.Threshold != 0 {
		gCfg.DiffConfig.SimilarityThreshold = flags.Threshold
	}
}

func run(ctx context.Context, gCfg *config.GlobalConfig, flags AppFlags, zLogger zerolog.Logger) error {
	var store orchestrator.RunStore
	var sqliteStore *datastore.SQLiteStore
	if gCfg.StorageConfig.Enabled {
		var err error
		sqliteStore, err = datastore.NewSQLiteStore(gCfg.StorageConfig.SQLitePath, zLogger)
		if err != nil {
			return common.WrapError(err, "failed to open run history")
		}
		defer sqliteStore.Close()
		store = sqliteStore
	}

	if flags.ListRuns > 0 {
		if sqliteStore == nil {
			return common.NewValidationError("list_runs", flags.ListRuns, "run history storage is disabled")
		}
		return listRuns(ctx, sqliteStore, flags.ListRuns, os.Stdout)
	}

	input, err := readInput(flags.InputFile, gCfg.ExtractorConfig.MaxInputBytes, zLogger)
	if err != nil {
		return err
	}

	runOrchestrator, err := orchestrator.NewRunOrchestrator(gCfg, zLogger, store, datastore.NewFindingsReader(zLogger))
	if err != nil {
		return common.WrapError(err, "failed to create run orchestrator")
	}

	report, err := runOrchestrator.Run(ctx, input)
	if err != nil {
		return err
	}

	return reporter.NewJSONReporter(gCfg.ReporterConfig, zLogger).Write(report, "")
}

// readInput reads the pasted cases from a file, or from stdin for "" and "-"
func readInput(path string, maxBytes int64, zLogger zerolog.Logger) (string, error) {
	if path == "" || path == "-" {
		var reader io.Reader = os.Stdin
		if maxBytes > 0 {
			reader = io.LimitReader(os.Stdin, maxBytes+1)
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return "", common.WrapError(err, "failed to read input from stdin")
		}
		return string(data), nil
	}

	data, err := common.NewFileManager(zLogger).ReadFile(path, common.FileReadOptions{MaxSize: maxBytes})
	if err != nil {
		return "", common.WrapError(err, "failed to read input file")
	}
	return string(data), nil
}

func listRuns(ctx context.Context, store *datastore.SQLiteStore, limit int, out io.Writer) error {
	records, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tCASES\tSKIPPED\tMAJOR\tAVG CHANGE %")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%.2f\n",
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Summary.TotalCases,
			r.Summary.SkippedCases,
			r.Summary.MajorFindings,
			r.Summary.AverageChangePercentage,
		)
	}
	return w.Flush()
}
