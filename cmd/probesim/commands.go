package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/probesim/internal/analysis"
	"github.com/san-kum/probesim/internal/automation"
	"github.com/san-kum/probesim/internal/instrument"
	"github.com/san-kum/probesim/internal/metrics"
	"github.com/san-kum/probesim/internal/recorder"
	"github.com/san-kum/probesim/internal/scan"
	"github.com/san-kum/probesim/internal/storage"
	"github.com/san-kum/probesim/internal/viz"
	"github.com/spf13/cobra"
)

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scanning %s (seed %d, %d frames)...\n", cfg.Instrument, cfg.Seed, cfg.Frames)
	start := time.Now()
	run, err := automation.RunOnce(ctx, instrument.NewRegistry(), cfg, cfg.Frames)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))

	if !noSave {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(run)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("records: %d\n", len(run.Records))
	printMetrics(run.Meta.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	s, err := automation.Start(instrument.NewRegistry(), cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return viz.Run(s.Engine, viz.Options{FPS: cfg.FPS, OutDir: outPath})
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(storeDir(cmd))
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tINSTRUMENT\tTIME\tSEED\tFRAMES\tRECORDS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Instrument,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Frames,
			run.Records,
		)
	}
	return w.Flush()
}

func listInstruments(cmd *cobra.Command, args []string) error {
	reg := instrument.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, name := range reg.List() {
		desc, _ := reg.Describe(name)
		fmt.Fprintf(w, "%s\t%s\n", name, desc)
	}
	return w.Flush()
}

func loadRun(cmd *cobra.Command, runID string) (*storage.RunMetadata, []recorder.Record, *scan.Profile, error) {
	st := storage.New(storeDir(cmd))
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	records, err := st.LoadRecords(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	profile, err := st.LoadProfile(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	return meta, records, profile, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, records, profile, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("instrument: %s\n\n", meta.Instrument)

	for _, c := range profile.Channels() {
		graph := asciigraph.Plot(profile.Values(c),
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(c.String()),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	for _, b := range []recorder.Branch{recorder.Forward, recorder.Backward} {
		vals := recorder.Values(recorder.Filter(records, b))
		if len(vals) < 2 {
			continue
		}
		graph := asciigraph.Plot(vals,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("recorded readout ("+b.String()+")"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, records, profile, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("instrument: %s\n\n", meta.Instrument)

	h := profile.Values(scan.Height)
	r := analysis.Roughness(h)
	fmt.Printf("roughness: Ra %.3f  Rq %.3f  Rz %.3f\n", r.Ra, r.Rq, r.Rz)

	ps := analysis.Spectrum(h)
	if len(ps) > 8 {
		graph := asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("height spectrum"),
		)
		fmt.Println(graph)
	}
	if p := analysis.DominantPeriod(h); p > 0 {
		fmt.Printf("dominant period: %.1f samples\n", p)
	}

	for _, c := range profile.Channels() {
		if c == scan.Height {
			continue
		}
		vals := profile.Values(c)
		fmt.Printf("%s: %d plateaus\n", c, len(analysis.Plateaus(vals, 1e-9)))
	}

	s := analysis.Describe(recorder.Values(records))
	fmt.Printf("\nreadout: n=%d mean=%.4f std=%.4f min=%.4f max=%.4f\n", s.N, s.Mean, s.Std, s.Min, s.Max)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(storeDir(cmd))
	if err := st.Init(); err != nil {
		return err
	}

	results, err := automation.RunScenario(cmd.Context(), sc, instrument.NewRegistry(), st)
	for _, r := range results {
		id := r.RunID
		if id == "" {
			id = "(not saved)"
		}
		fmt.Printf("step %d: %s  %s  records=%d\n", r.Step, r.Run.Meta.Instrument, id, len(r.Run.Records))
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	sw := &automation.ParameterSweep{
		Instrument: args[0],
		ParamName:  sweepParam,
		ParamMin:   sweepMin,
		ParamMax:   sweepMax,
		NumSteps:   sweepSteps,
		Frames:     frames,
		Seed:       sweepSeed,
	}
	results, err := automation.RunSweep(cmd.Context(), sw, instrument.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tN\tMEAN\tSTD\tCONTACT\n", sweepParam)
	means := make([]float64, len(results))
	for i, r := range results {
		means[i] = r.Readout.Mean
		fmt.Fprintf(w, "%.4g\t%d\t%.4f\t%.4f\t%.3f\n", r.ParamValue, r.Readout.N, r.Readout.Mean, r.Readout.Std, r.Metrics["contact_fraction"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(means) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(means, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("mean readout vs "+sweepParam)))
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	params, err := parseSets(sets)
	if err != nil {
		return err
	}
	ec := &automation.EnsembleConfig{
		Instrument: args[0],
		Params:     params,
		NumTrials:  trials,
		Frames:     frames,
		Seed:       ensembleSeed,
	}
	results, err := automation.RunEnsemble(cmd.Context(), ec, instrument.NewRegistry())
	if err != nil {
		return err
	}

	fmt.Printf("%d trials of %s\n\n", len(results), args[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTD\tMIN\tMAX")
	for _, m := range metrics.Defaults() {
		s := automation.EnsembleStats(results, m.Name())
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\n", m.Name(), s.Mean, s.Std, s.Min, s.Max)
	}
	return w.Flush()
}
