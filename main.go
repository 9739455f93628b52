package main

import (
	"context"
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/spf13/cobra"

	"github.com/olablt/gio-geomarks/assets"
	"github.com/olablt/gio-geomarks/config"
	"github.com/olablt/gio-geomarks/geomarks"
	"github.com/olablt/gio-geomarks/icons"
	"github.com/olablt/gio-geomarks/logging"
	"github.com/olablt/gio-geomarks/mapview"
	"github.com/olablt/gio-geomarks/scene"
	"github.com/olablt/gio-geomarks/ui"
)

type flags struct {
	config   string
	assets   string
	data     string
	lang     string
	logLevel string
	watch    bool
}

func main() {
	var f flags
	cmd := &cobra.Command{
		Use:   "geomarks",
		Short: "Interactive map with category landmarks",
		Long: `geomarks opens a window showing the map artwork with one marker per landmark.
Drag to pan, use + and - to zoom, and tick categories in the legend to filter.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&f.config, "config", "c", "", "Config file (defaults to ./"+config.DefaultFile+" when present)")
	cmd.Flags().StringVar(&f.assets, "assets", "", "Asset root: directory or http(s) URL holding map.png and markers/")
	cmd.Flags().StringVar(&f.data, "data", "", "Dataset file")
	cmd.Flags().StringVar(&f.lang, "lang", "", "UI language")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "Reload the dataset when the file changes")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	path, optional := f.config, false
	if path == "" {
		path, optional = config.DefaultFile, true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return nil, err
	}

	// flags win over the file
	fl := cmd.Flags()
	if fl.Changed("assets") {
		cfg.Assets = f.assets
	}
	if fl.Changed("data") {
		cfg.Data = f.data
	}
	if fl.Changed("lang") {
		cfg.Language = f.lang
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fl.Changed("watch") {
		cfg.Watch = f.watch
	}
	return cfg, cfg.Validate()
}

func run(cfg *config.Config) error {
	logger, err := logging.New("geomarks", cfg.LogLevel)
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
	var translations *geomarks.Translations
	if cfg.I18n != "" {
		translations, err = geomarks.LoadTranslations(cfg.I18n)
		if err != nil {
			logger.Warnw("translations unavailable, showing keys", "path", cfg.I18n, "error", err)
		}
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
	s.SetDataset(ds)
	s.Start()
	logger.Infow("dataset loaded", "path", cfg.Data, "categories", len(ds))

	refresh := make(chan struct{}, 1)
	invalidate := func() {
		select {
		case refresh <- struct{}{}:
		default:
		}
	}
	s.OnInvalidate(invalidate)

	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	view := mapview.New(s)
	view.Background = background
	viewer := ui.New(ui.Options{
		Theme:        th,
		Scene:        s,
		View:         view,
		Translations: translations,
		Language:     cfg.Language,
		Logger:       logger.Named("ui"),
		Invalidate:   invalidate,
	})

	ctx, cancel := context.WithCancel(context.Background())
	if cfg.Watch {
		go func() {
			if err := geomarks.Watch(ctx, cfg.Data, logger.Named("watch"), viewer.QueueDataset); err != nil {
				logger.Errorw("dataset watch stopped", "error", err)
			}
		}()
	}

	go func() {
		w := new(app.Window)
		w.Option(
			app.Title(viewer.Translator().T("title")),
			app.Size(unit.Dp(cfg.Window.Width), unit.Dp(cfg.Window.Height)),
		)
		go func() {
			for range refresh {
				w.Invalidate()
			}
		}()

		err := loop(w, viewer)
		cancel()
		s.Close()
		if err != nil {
			logger.Errorw("window closed", "error", err)
			logger.Sync()
			os.Exit(1)
		}
		logger.Sync()
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func loop(w *app.Window, viewer *ui.App) error {
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			viewer.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}
