// Command shepard reproduces the consequential-region figure: it samples
// candidate regions, keeps those containing the observed stimulus, and
// plots them together with the two marginal generalization gradients.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/consequential-regions/internal/config"
	"github.com/banshee-data/consequential-regions/internal/figure"
	"github.com/banshee-data/consequential-regions/internal/fsutil"
	"github.com/banshee-data/consequential-regions/internal/monitoring"
	"github.com/banshee-data/consequential-regions/internal/simulation"
	"github.com/banshee-data/consequential-regions/internal/version"
	"gonum.org/v1/plot/vg"
)

func main() {
	if err := run(os.Args[1:], fsutil.OSFileSystem{}, os.Stdout); err != nil {
		log.Fatalf("shepard: %v", err)
	}
}

// options are the parsed command-line flags.
type options struct {
	configPath  string
	outPath     string
	htmlPath    string
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("shepard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "path to a JSON or YAML simulation config (defaults apply when empty)")
	fs.StringVar(&o.outPath, "out", "", "figure output path; the extension selects the format (overrides output_path)")
	fs.StringVar(&o.htmlPath, "html", "", "optional path for an interactive HTML companion page")
	fs.BoolVar(&o.showVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return o, nil
}

func loadConfig(path string) (*config.SimConfig, error) {
	if path == "" {
		return config.EmptySimConfig(), nil
	}
	return config.LoadSimConfig(path)
}

func run(args []string, fsys fsutil.FileSystem, stdout io.Writer) error {
	o, err := parseFlags(args, stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if o.showVersion {
		fmt.Fprintln(stdout, version.String())
		return nil
	}

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	outPath := cfg.GetOutputPath()
	if o.outPath != "" {
		outPath = o.outPath
	}

	res, err := simulation.Run(simulation.ParamsFromConfig(cfg))
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	opt := figure.DefaultOptions()
	opt.DPI = cfg.GetDPI()
	opt.Format = figure.FormatFromPath(outPath)
	done := monitoring.Stage("render")
	canvas, err := figure.Render(res, opt)
	done()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	n, err := fsutil.WriteArtifact(fsys, outPath, canvas)
	if err != nil {
		return err
	}
	w, h := canvas.Size()
	monitoring.Logf("wrote %s (%d bytes, %.3gx%.3g in, %s)", outPath, n, w/vg.Inch, h/vg.Inch, opt.Format)

	if o.htmlPath != "" {
		page, err := figure.RenderHTML(res)
		if err != nil {
			return err
		}
		n, err := fsutil.WriteArtifact(fsys, o.htmlPath, page)
		if err != nil {
			return err
		}
		monitoring.Logf("wrote %s (%d bytes)", o.htmlPath, n)
	}
	return nil
}
