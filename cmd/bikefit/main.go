// Package main runs the bike-fit angle engine over a recorded keypoint
// capture and exports the classified joint angles.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/bikefit/internal/canvas"
	"github.com/banshee-data/bikefit/internal/config"
	"github.com/banshee-data/bikefit/internal/fsutil"
	"github.com/banshee-data/bikefit/internal/monitoring"
	"github.com/banshee-data/bikefit/internal/pipeline"
	"github.com/banshee-data/bikefit/internal/pose"
	"github.com/banshee-data/bikefit/internal/render"
	"github.com/banshee-data/bikefit/internal/report"
	"github.com/banshee-data/bikefit/internal/units"
	"github.com/banshee-data/bikefit/internal/version"
	"github.com/banshee-data/bikefit/internal/zones"
)

// Config holds the command line options.
type Config struct {
	Input      string
	ConfigPath string
	Bike       string
	Width      int
	Height     int
	Units      string
	HTMLOut    string
	PNGOut     string
	OverlayOut string
	CanvasIn   string
	CanvasOut  string
	Flip       bool
	Verbose    bool
	Version    bool
}

func main() {
	cfg := parseFlags()
	if cfg.Version {
		fmt.Println("bikefit", version.String())
		return
	}
	if cfg.Input == "" && cfg.CanvasIn == "" {
		log.Fatal("one of -input or -canvas is required")
	}
	if err := run(fsutil.OSFileSystem{}, cfg, os.Stdout); err != nil {
		log.Fatalf("bikefit: %v", err)
	}
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.Input, "input", "", "Path to a JSONL keypoint capture")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Path to a tuning JSON file (default: built-in defaults)")
	flag.StringVar(&cfg.Bike, "bike", "", "Bike type: road, mtb, tt (overrides config)")
	flag.IntVar(&cfg.Width, "width", 1280, "Capture width in pixels")
	flag.IntVar(&cfg.Height, "height", 720, "Capture height in pixels")
	flag.StringVar(&cfg.Units, "units", units.Degrees, "Angle units: "+units.GetValidUnitsString())
	flag.StringVar(&cfg.HTMLOut, "html", "", "Write an interactive HTML report to this path")
	flag.StringVar(&cfg.PNGOut, "png", "", "Write a PNG angle plot to this path")
	flag.StringVar(&cfg.OverlayOut, "overlay", "", "Write a PNG overlay of the last frame to this path")
	flag.StringVar(&cfg.CanvasIn, "canvas", "", "Replay a JSONL file of authoring-canvas events")
	flag.StringVar(&cfg.CanvasOut, "canvas-png", "", "Write the replayed canvas as PNG to this path")
	flag.BoolVar(&cfg.Flip, "flip", false, "Mirror the overlay horizontally (overrides config)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&cfg.Version, "version", false, "Print version and exit")

	flag.Parse()
	return cfg
}

// loadTuning reads the tuning file, if any, and applies flag overrides.
func loadTuning(fsys fsutil.FileSystem, cfg Config) (*config.TuningConfig, error) {
	tuning := config.DefaultTuningConfig()
	if cfg.ConfigPath != "" {
		f, err := fsys.Open(cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("open tuning config: %w", err)
		}
		defer f.Close()
		loaded, err := config.ReadTuningConfig(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.ConfigPath, err)
		}
		tuning = loaded
	}
	if cfg.Bike != "" {
		bike := cfg.Bike
		tuning.BikeType = &bike
	}
	if cfg.Flip {
		flip := true
		tuning.FlipHorizontal = &flip
	}
	return tuning, tuning.Validate()
}

func run(fsys fsutil.FileSystem, cfg Config, out io.Writer) error {
	monitoring.SetVerbose(cfg.Verbose)

	if !units.IsValid(cfg.Units) {
		return fmt.Errorf("invalid units %q (valid: %s)", cfg.Units, units.GetValidUnitsString())
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid capture size %dx%d", cfg.Width, cfg.Height)
	}
	tuning, err := loadTuning(fsys, cfg)
	if err != nil {
		return err
	}

	if cfg.Input != "" {
		if err := analyse(fsys, cfg, tuning, out); err != nil {
			return err
		}
	}
	if cfg.CanvasIn != "" {
		if err := author(fsys, cfg, tuning, out); err != nil {
			return err
		}
	}
	return nil
}

// analyse runs the pose pipeline over the capture and writes the reports.
func analyse(fsys fsutil.FileSystem, cfg Config, tuning *config.TuningConfig, out io.Writer) error {
	engineCfg, err := pipeline.EngineConfigFromTuning(tuning)
	if err != nil {
		return err
	}
	table := zones.DefaultTable()

	source := pose.NewSourceHandle(cfg.Input)
	if err := source.BeginLoad(); err != nil {
		return err
	}
	f, err := fsys.Open(cfg.Input)
	if err != nil {
		source.MarkFailed(err)
		return source.CheckReady()
	}
	defer f.Close()
	source.MarkReady()

	engine := pipeline.NewEngine(source, engineCfg, table)
	rec := report.NewRecorder(engineCfg.BikeType, table)
	var last pipeline.Result

	w, h := float64(cfg.Width), float64(cfg.Height)
	err = readFrames(f, func(fr frameRecord) error {
		res, err := engine.Tick(fr.Keypoints, w, h)
		if err != nil {
			return err
		}
		rec.Add(res)
		last = res
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("Processed %d frames from %s (bike=%s)", rec.Ticks(), cfg.Input, engineCfg.BikeType)

	printSummary(out, rec, last, cfg.Units)

	if cfg.HTMLOut != "" {
		if err := writeFile(fsys, cfg.HTMLOut, rec.WriteHTML); err != nil {
			return err
		}
		log.Printf("HTML report written to: %s", cfg.HTMLOut)
	}
	if cfg.PNGOut != "" {
		err := writeFile(fsys, cfg.PNGOut, func(w io.Writer) error {
			return rec.WritePNG(w, report.PlotWidth, report.PlotHeight)
		})
		if err != nil {
			return err
		}
		log.Printf("PNG plot written to: %s", cfg.PNGOut)
	}
	if cfg.OverlayOut != "" {
		if err := writeOverlay(fsys, cfg, tuning, engineCfg, last); err != nil {
			return err
		}
		log.Printf("Overlay written to: %s", cfg.OverlayOut)
	}
	return nil
}

func printSummary(out io.Writer, rec *report.Recorder, last pipeline.Result, unit string) {
	fmt.Fprintf(out, "\n=== Joint angles (%s, %d ticks, side=%s) ===\n", rec.Bike(), rec.Ticks(), last.Side)
	summary := rec.Summary()
	if len(summary) == 0 {
		fmt.Fprintln(out, "no valid joint readings")
		return
	}
	fmt.Fprintf(out, "%-10s %7s %9s %9s %9s %9s  %s\n", "joint", "samples", "mean", "sd", "min", "max", "dominant zone")
	for _, js := range summary {
		fmt.Fprintf(out, "%-10s %7d %9s %9.1f %9s %9s  %s\n",
			js.Joint, js.Count,
			units.FormatAngle(js.Mean, unit), js.StdDev,
			units.FormatAngle(js.Min, unit), units.FormatAngle(js.Max, unit),
			js.Dominant.Label())
	}
}

func writeOverlay(fsys fsutil.FileSystem, cfg Config, tuning *config.TuningConfig, engineCfg pipeline.EngineConfig, last pipeline.Result) error {
	if last.Tick == 0 {
		return errors.New("overlay: no frames processed")
	}
	im := render.NewImage(cfg.Width, cfg.Height, color.Black, render.OptionsFromTuning(tuning))
	im.DrawSkeleton(last.Keypoints, last.Side, engineCfg.ConfidenceThreshold)
	for _, s := range last.Samples {
		rd, ok := last.Readings[s.Joint]
		if !ok {
			continue
		}
		im.DrawJoint(s, rd.Zone.Color(), cfg.Units)
	}
	return writeFile(fsys, cfg.OverlayOut, im.WritePNG)
}

// author replays canvas events and reports the resulting angles.
func author(fsys fsutil.FileSystem, cfg Config, tuning *config.TuningConfig, out io.Writer) error {
	f, err := fsys.Open(cfg.CanvasIn)
	if err != nil {
		return fmt.Errorf("open canvas events: %w", err)
	}
	defer f.Close()

	s := canvas.NewSession(canvas.ConfigFromTuning(tuning))
	if err := replayCanvas(f, s); err != nil {
		return fmt.Errorf("replay %s: %w", cfg.CanvasIn, err)
	}

	angles := s.Angles()
	fmt.Fprintf(out, "\n=== Canvas angles (%d, state=%s) ===\n", len(angles), s.State())
	for i, a := range angles {
		fmt.Fprintf(out, "%2d  vertex=(%.0f,%.0f)  %s\n", i+1, a.Vertex.X, a.Vertex.Y, units.FormatAngle(a.Degrees(), cfg.Units))
	}

	if cfg.CanvasOut != "" {
		opts := render.OptionsFromTuning(tuning)
		opts.FlipHorizontal = false
		im := render.NewImage(cfg.Width, cfg.Height, color.Black, opts)
		im.DrawSession(s, cfg.Units)
		if err := writeFile(fsys, cfg.CanvasOut, im.WritePNG); err != nil {
			return err
		}
		log.Printf("Canvas written to: %s", cfg.CanvasOut)
	}
	return nil
}

// writeFile creates path, and any missing parent directories, and fills it
// with fn.
func writeFile(fsys fsutil.FileSystem, path string, fn func(io.Writer) error) error {
	if dir := filepath.Dir(path); !fsys.Exists(dir) {
		if err := fsys.MkdirAll(dir); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
