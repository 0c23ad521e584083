package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/titletrunc/abbrev"
	"github.com/randalmurphal/titletrunc/batch"
	"github.com/randalmurphal/titletrunc/config"
	"github.com/randalmurphal/titletrunc/menu"
	"github.com/randalmurphal/titletrunc/normalize"
	"github.com/randalmurphal/titletrunc/selector"
	"github.com/randalmurphal/titletrunc/store"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// options holds the command line flags.
type options struct {
	configPath string
	library    string
	length     int
	force      bool
	watch      bool
	color      string
	verbose    bool
	quiet      bool
}

// app carries the streams of one invocation.
type app struct {
	in  io.ReadCloser
	out io.WriteCloser
	err io.Writer

	opts options
}

func newRootCommand(in io.ReadCloser, out io.WriteCloser, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, err: errOut}

	root := &cobra.Command{
		Use:   "titletrunc [flags] [QUERY...]",
		Short: "Pick short titles for tracks with long titles",
		Long: `titletrunc walks a track library and, for every title longer than the
length limit, offers abbreviations to choose from. The choice is stored as
the track's short title.

QUERY terms narrow the tracks: "field:value" matches artist, album, title
or id; a bare word matches artist, album or title.`,
		Version:       version,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.run(ctx, cmd, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.configPath, "config", "c", "", "config file (default: search titletrunc.yaml/.toml, ~/.config/titletrunc/)")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "verbose output (debug level)")
	flags.BoolVarP(&a.opts.quiet, "quiet", "q", false, "quiet output (errors only)")

	flags.StringVar(&a.opts.library, "library", "", "track library file")
	flags.IntVarP(&a.opts.length, "length", "l", 50, "maximum title length in characters")
	flags.BoolVarP(&a.opts.force, "force", "f", false, "also process tracks that already have a short title")
	flags.StringVar(&a.opts.color, "color", config.ColorAuto, "colour output: auto, always or never")

	root.Flags().BoolVar(&a.opts.watch, "watch", false, "keep running and process the library again when it changes")

	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(newSchemaCommand(a), newConfigCommand(a))
	return root
}

// loadConfig builds the effective configuration: file, environment, then
// the flags the user actually set.
func (a *app) loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	cfg, path, err := config.Load(a.opts.configPath)
	if err != nil {
		return config.Config{}, "", err
	}

	applyFlags(cmd, &cfg, a.opts)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, path, nil
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts options) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("library") {
		cfg.Library = opts.library
	}
	if changed("length") {
		cfg.MaxLength = opts.length
	}
	if changed("force") {
		cfg.Force = opts.force
	}
	if changed("color") {
		cfg.Color = opts.color
	}
}

func (a *app) newLogger(cfg config.Config) *slog.Logger {
	level := cfg.Level()
	switch {
	case a.opts.quiet:
		level = slog.LevelError
	case a.opts.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.err, &slog.HandlerOptions{Level: level}))
}

func (a *app) run(ctx context.Context, cmd *cobra.Command, args []string) error {
	cfg, path, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := a.newLogger(cfg)
	if path != "" {
		logger.Debug("config loaded", slog.String("path", path))
	}

	libPath, err := cfg.LibraryPath()
	if err != nil {
		return err
	}
	lib, err := store.Open(libPath)
	if err != nil {
		return err
	}

	norm := normalize.New().
		WithExtra(cfg.Replacements...).
		WithComposition(cfg.ComposeUnicode)
	gen := abbrev.NewGenerator().
		WithSeparators(cfg.SeparatorRunes()...).
		WithPrimarySeparator(cfg.Primary()).
		WithKeyRemoval(cfg.KeyRemoval)

	colorOn := cfg.Color == config.ColorAlways
	if f, ok := a.out.(*os.File); ok {
		colorOn = menu.ColorEnabled(cfg.Color, f)
	}
	term := menu.New().
		WithColor(colorOn).
		WithPageSize(cfg.PageSize).
		WithItemFormat(cfg.ItemFormat).
		WithTrackFormat(cfg.TrackFormat)
	if a.in != os.Stdin || a.out != os.Stdout {
		term.WithIO(a.in, a.out)
	}

	sel := selector.New(term).
		WithEditLimit(cfg.EditMaxLength).
		WithLogger(logger)

	driver := batch.New(lib, sel).
		WithNormalizer(norm).
		WithGenerator(gen).
		WithLogger(logger).
		WithAnnounce(term.Header)

	query := store.Query{MaxLength: cfg.MaxLength, Force: cfg.Force, Terms: args}

	if err := a.runOnce(ctx, driver, query); err != nil {
		return quitIsSuccess(err)
	}
	if !a.opts.watch {
		return nil
	}

	logger.Info("watching library", slog.String("path", libPath))
	for change := range lib.Watch(ctx, store.DefaultDebounce) {
		if change.Err != nil {
			logger.Warn("library reload failed", slog.String("path", libPath), slog.Any("error", change.Err))
			continue
		}
		if err := a.runOnce(ctx, driver, query); err != nil {
			return quitIsSuccess(err)
		}
	}
	return nil
}

func (a *app) runOnce(ctx context.Context, driver *batch.Driver, query store.Query) error {
	stats, err := driver.Run(ctx, query)
	if !a.opts.quiet {
		fmt.Fprintf(a.out, "%d seen, %d chosen, %d normalized, %d skipped\n",
			stats.Seen, stats.Chosen, stats.Normalized, stats.Skipped)
	}
	return err
}

// quitIsSuccess maps a user quit or interrupt to a clean exit.
func quitIsSuccess(err error) error {
	if errors.Is(err, batch.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
