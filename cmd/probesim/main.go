package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/probesim/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	envFile    string
	seed       int64
	frames     int
	speed      float64
	length     int
	frameRate  int
	configFile string
	preset     string
	sets       []string
	noSave     bool
	outPath    string
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	sweepSeed  int64
	// ensemble
	trials       int
	ensembleSeed int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "probesim",
		Short: "scanning probe microscopy simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return config.LoadEnv(envFile)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file")

	runCmd := &cobra.Command{
		Use:   "run [instrument]",
		Short: "scan headlessly and save the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	addScanFlags(runCmd)
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to run")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print metrics without saving")

	liveCmd := &cobra.Command{
		Use:   "live [instrument]",
		Short: "scan with the terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addScanFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVarP(&outPath, "out", "o", ".", "directory for saved svg files")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's profile and curve in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "roughness, spectrum and readout statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export recorded curve to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportHTMLCmd := &cobra.Command{
		Use:   "export-html [run_id]",
		Short: "export interactive charts",
		Args:  cobra.ExactArgs(1),
		RunE:  exportHTML,
	}
	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "export curve plot image",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export curve as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	for _, c := range []*cobra.Command{exportCSVCmd, exportJSONCmd, exportHTMLCmd, exportPNGCmd, exportSVGCmd} {
		c.Flags().StringVarP(&outPath, "out", "o", "", "output path")
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [instrument]",
		Short: "list available presets for an instrument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for instrument: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	instrumentsCmd := &cobra.Command{
		Use:   "instruments",
		Short: "list instruments",
		RunE:  listInstruments,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [instrument]",
		Short: "sweep one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter name")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per value")
	sweepCmd.Flags().Int64Var(&sweepSeed, "seed", config.DefaultSeed, "sample seed")
	_ = sweepCmd.MarkFlagRequired("param")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [instrument]",
		Short: "repeat a scan over random samples",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&trials, "trials", 20, "number of samples")
	ensembleCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per trial")
	ensembleCmd.Flags().Int64Var(&ensembleSeed, "seed", 0, "seed of the seed sequence (0 uses the clock)")
	ensembleCmd.Flags().StringSliceVar(&sets, "set", nil, "parameter override name=value")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportHTMLCmd, exportPNGCmd, exportSVGCmd,
		presetsCmd, instrumentsCmd, scenarioCmd, sweepCmd, ensembleCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "sample seed")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "speed multiplier")
	cmd.Flags().IntVar(&length, "length", 0, "profile length (0 keeps the instrument's)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringSliceVar(&sets, "set", nil, "parameter override name=value")
}

// resolveConfig layers defaults, preset, config file, environment and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, instrument string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(instrument, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(instrument))
		}
	}
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		for k, v := range cfg.Params {
			if _, ok := fileCfg.Params[k]; !ok {
				fileCfg.SetParam(k, v)
			}
		}
		cfg = fileCfg
	}
	cfg.Instrument = instrument
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	overrides, err := parseSets(sets)
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		cfg.SetParam(k, v)
	}
	return cfg, nil
}

func parseSets(items []string) (map[string]float64, error) {
	out := make(map[string]float64, len(items))
	for _, item := range items {
		name, raw, ok := strings.Cut(item, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("bad --set %q, want name=value", item)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --set %q: %w", item, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

// storeDir honours PROBESIM_DATA unless --data was given.
func storeDir(cmd *cobra.Command) string {
	if !cmd.Flags().Changed("data") {
		if v := os.Getenv(config.EnvDataDir); v != "" {
			return v
		}
	}
	return dataDir
}
