package main

import (
	"flag"
	"fmt"
	"io"
)

// AppFlags holds command-line options. Empty values leave the config file
// settings in place.
type AppFlags struct {
	InputFile        string
	GlobalConfigFile string
	OutputFile       string
	FindingsFile     string
	Granularity      string
	Threshold        float64
	InitConfigFile   string
	ListRuns         int
}

// ParseFlags parses args (without the program name). Each long flag has a
// short alias; the long form wins when both are set.
func ParseFlags(args []string, output io.Writer) (AppFlags, error) {
	fs := flag.NewFlagSet("reportdiff", flag.ContinueOnError)
	fs.SetOutput(output)

	inputFile := fs.String("input", "", "Path to the pasted cases text or HTML. Reads stdin when empty or '-'.")
	inputFileAlias := fs.String("i", "", "Alias for -input")

	globalConfigFile := fs.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("c", "", "Alias for -config")

	outputFile := fs.String("output", "", "Path of the JSON run report; '-' writes to stdout (overrides config file if set)")
	outputFileAlias := fs.String("o", "", "Alias for -output")

	findingsFile := fs.String("findings", "", "Path to a JSON/YAML file of findings records to attach to cases")
	findingsFileAlias := fs.String("f", "", "Alias for -findings")

	granularity := fs.String("granularity", "", "Alignment granularity: paragraph or sentence (overrides config file if set)")
	granularityAlias := fs.String("g", "", "Alias for -granularity")

	threshold := fs.Float64("threshold", 0, "Similarity threshold in (0, 1] for pairing moved units (overrides config file if set)")
	thresholdAlias := fs.Float64("t", 0, "Alias for -threshold")

	initConfig := fs.String("init-config", "", "Write a default configuration file to this path and exit")
	listRuns := fs.Int("list-runs", 0, "List the N most recent stored runs and exit (requires storage_config.enabled)")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}
	if fs.NArg() > 0 {
		return AppFlags{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	flags := AppFlags{
		InputFile:        firstNonEmpty(*inputFile, *inputFileAlias),
		GlobalConfigFile: firstNonEmpty(*globalConfigFile, *globalConfigFileAlias),
		OutputFile:       firstNonEmpty(*outputFile, *outputFileAlias),
		FindingsFile:     firstNonEmpty(*findingsFile, *findingsFileAlias),
		Granularity:      firstNonEmpty(*granularity, *granularityAlias),
		Threshold:        *threshold,
		InitConfigFile:   *initConfig,
		ListRuns:         *listRuns,
	}
	if flags.Threshold == 0 {
		flags.Threshold = *thresholdAlias
	}
	if flags.ListRuns < 0 {
		return AppFlags{}, fmt.Errorf("-list-runs must not be negative, got %d", flags.ListRuns)
	}

	return flags, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
