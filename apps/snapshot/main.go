// Command snapshot renders the map with its markers into a PNG without opening a
// window.
package main

import (
	"fmt"
	"image"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/olablt/gio-geomarks/assets"
	"github.com/olablt/gio-geomarks/config"
	"github.com/olablt/gio-geomarks/geomarks"
	"github.com/olablt/gio-geomarks/icons"
	"github.com/olablt/gio-geomarks/logging"
	"github.com/olablt/gio-geomarks/render"
	"github.com/olablt/gio-geomarks/scene"
	"github.com/olablt/gio-geomarks/viewport"
)

type options struct {
	config   string
	assets   string
	data     string
	logLevel string

	out     string
	width   int
	height  int
	zoomIn  int
	zoomOut int
	pan     []float64
	only    []string
}

func main() {
	var o options
	cmd := &cobra.Command{
		Use:          "snapshot",
		Short:        "Render the map and its markers to a PNG",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o)
		},
	}

	cmd.Flags().StringVarP(&o.config, "config", "c", "", "Config file (defaults to ./"+config.DefaultFile+" when present)")
	cmd.Flags().StringVar(&o.assets, "assets", "", "Asset root: directory or http(s) URL")
	cmd.Flags().StringVar(&o.data, "data", "", "Dataset file")
	cmd.Flags().StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVarP(&o.out, "out", "o", "map.png", "Output PNG")
	cmd.Flags().IntVar(&o.width, "width", 1280, "Canvas width in pixels")
	cmd.Flags().IntVar(&o.height, "height", 800, "Canvas height in pixels")
	cmd.Flags().IntVar(&o.zoomIn, "zoom-in", 0, "Press zoom-in this many times")
	cmd.Flags().IntVar(&o.zoomOut, "zoom-out", 0, "Press zoom-out this many times")
	cmd.Flags().Float64SliceVar(&o.pan, "pan", nil, "Pan by dx,dy pixels")
	cmd.Flags().StringSliceVar(&o.only, "only", nil, "Only show these categories")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, o options) error {
	path, optional := o.config, false
	if path == "" {
		path, optional = config.DefaultFile, true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return err
	}
	fl := cmd.Flags()
	if fl.Changed("assets") {
		cfg.Assets = o.assets
	}
	if fl.Changed("data") {
		cfg.Data = o.data
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New("snapshot", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	loader, err := assets.Open(cfg.Assets, logger.Named("assets"))
	if err != nil {
		return err
	}
	if cfg.Loader.Placeholders {
		loader = assets.NewFallback(loader, assets.Placeholder{}, logger.Named("assets"))
	}
	ds, err := geomarks.LoadDataset(cfg.Data)
	if err != nil {
		return err
	}
	policy, err := icons.PolicyByName(cfg.Loader.IconPolicy)
	if err != nil {
		return err
	}
	background, err := cfg.BackgroundColor()
	if err != nil {
		return err
	}

	s := scene.New(scene.Options{
		Loader:      loader,
		Logger:      logger.Named("scene"),
		Workers:     cfg.Loader.Workers,
		LoadTimeout: cfg.Loader.Timeout,
		Policy:      policy,
	})
	defer s.Close()

	raster, err := snapshot(s, ds, o, logger)
	if err != nil {
		return err
	}
	raster.Background = background
	s.Render(raster)
	if err := raster.SavePNG(o.out); err != nil {
		return errors.Wrapf(err, "writing %s", o.out)
	}
	logger.Infow("snapshot written", "path", o.out, "width", o.width, "height", o.height, "scale", s.Viewport().Scale())
	return nil
}

// snapshot loads everything the frame needs and applies the requested view. The
// caller renders into the returned raster.
func snapshot(s *scene.Scene, ds geomarks.Dataset, o options, logger *zap.SugaredLogger) (*render.Raster, error) {
	if o.width <= 0 || o.height <= 0 {
		return nil, errors.Errorf("canvas size must be positive, got %dx%d", o.width, o.height)
	}
	if len(o.pan) != 0 && len(o.pan) != 2 {
		return nil, errors.Errorf("--pan takes dx,dy, got %v", o.pan)
	}

	s.SetDataset(ds)
	if len(o.only) > 0 {
		sel := geomarks.Select(o.only...)
		for _, name := range o.only {
			if !geomarks.All(ds).Has(name) {
				logger.Warnw("unknown category ignored", "category", name)
			}
		}
		s.SetSelection(sel)
	}
	s.Start()
	s.Wait()

	ctrl := s.Controller()
	for i := 0; i < o.zoomIn; i++ {
		ctrl.ZoomIn()
	}
	for i := 0; i < o.zoomOut; i++ {
		ctrl.ZoomOut()
	}
	if len(o.pan) == 2 {
		ctrl.PointerDown(viewport.Point{})
		ctrl.PointerMove(viewport.Point{X: o.pan[0], Y: o.pan[1]})
		ctrl.PointerUp()
	}

	s.Resize(image.Pt(o.width, o.height))
	return render.NewRaster(o.width, o.height), nil
}
