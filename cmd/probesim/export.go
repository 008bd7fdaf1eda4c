package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/probesim/internal/export"
	"github.com/san-kum/probesim/internal/recorder"
	"github.com/san-kum/probesim/internal/scan"
	"github.com/san-kum/probesim/internal/storage"
	"github.com/spf13/cobra"
)

func outputFor(runID, ext string) string {
	if outPath != "" {
		return outPath
	}
	return runID + ext
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, records, _, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	path := outputFor(args[0], ".csv")
	if err := storage.WriteRecordsCSV(path, records); err != nil {
		return err
	}
	fmt.Printf("exported %d records to %s\n", len(records), path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, records, _, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return storage.ExportJSONStdout(meta, records)
	}
	return storage.ExportJSON(outPath, meta, records)
}

func curveChart(meta *storage.RunMetadata, records []recorder.Record) export.Chart {
	axis := export.AxisFor(records)
	return export.Chart{
		Title:  meta.ID,
		XLabel: axis.Label(),
		YLabel: "readout",
		Series: export.Curves(records, axis),
	}
}

func profileChart(meta *storage.RunMetadata, p *scan.Profile) export.Chart {
	c := export.Chart{Title: meta.Instrument + " sample", XLabel: "index", YLabel: "value"}
	for _, ch := range p.Channels() {
		c.Series = append(c.Series, export.ProfileSeries(p, ch))
	}
	return c
}

func exportHTML(cmd *cobra.Command, args []string) error {
	meta, records, profile, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	path := outputFor(args[0], ".html")
	if err := export.SaveHTML(path, curveChart(meta, records), profileChart(meta, profile)); err != nil {
		return err
	}
	fmt.Printf("exported charts to %s\n", path)
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	meta, records, _, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	path := outputFor(args[0], ".png")
	if err := export.SavePNG(path, curveChart(meta, records)); err != nil {
		return err
	}
	fmt.Printf("exported plot to %s\n", path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, records, _, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	svg := export.SeriesToSVG(curveChart(meta, records).Series, 800, 400)
	if svg == "" {
		return fmt.Errorf("run %s has no recorded points", args[0])
	}
	path := outputFor(args[0], ".svg")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported svg to %s\n", path)
	return nil
}
