package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/depeter/tvhero/assets/icon"
	"github.com/depeter/tvhero/internal/app"
	"github.com/depeter/tvhero/internal/cache"
	"github.com/depeter/tvhero/internal/colorcache"
	"github.com/depeter/tvhero/internal/config"
	"github.com/depeter/tvhero/internal/logging"
	"github.com/depeter/tvhero/internal/palette"
	"github.com/depeter/tvhero/internal/sample"
	"github.com/depeter/tvhero/internal/ui"
)

// textureCacheSize bounds GPU textures kept for thumbnails, blurs and gradients.
const textureCacheSize = 64

type options struct {
	configPath    string
	itemID        string
	reducedMotion bool
	logLevel      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "tvhero",
		Short:        "Parallax hero detail view demo",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tvhero/config.toml)")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.itemID, "item", "", "open this item's hero as a full page")
	cmd.Flags().BoolVar(&opts.reducedMotion, "reduced-motion", false, "shorten fades and disable zoom and slides")

	cmd.AddCommand(newColorCmd(opts))
	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("reduced-motion") {
		cfg.UI.ReducedMotion = opts.reducedMotion
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newCaches builds the image cache and the color cache on top of it.
func newCaches(cfg *config.Config) (*cache.ImageCache, *colorcache.Cache, error) {
	cacheDir := cfg.Cache.Dir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "tvhero", "images")
		if dir, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(dir, "tvhero", "images")
		}
	}

	timeout := time.Duration(cfg.Cache.LoadTimeoutMS) * time.Millisecond
	imgOpts := []cache.Option{
		cache.WithTimeout(timeout),
		cache.WithMaxDownloads(cfg.Cache.MaxDownloads),
	}
	colorOpts := []colorcache.Option{colorcache.WithLoadTimeout(timeout)}
	if cfg.Images.Origin != "" {
		origin, err := url.Parse(cfg.Images.Origin)
		if err != nil {
			return nil, nil, fmt.Errorf("images.origin: %w", err)
		}
		imgOpts = append(imgOpts, cache.WithOrigin(origin))
		colorOpts = append(colorOpts, colorcache.WithOrigin(origin))
	}

	imgCache, err := cache.NewImageCache(cacheDir, imgOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("init image cache: %w", err)
	}
	colors, err := colorcache.New(imgCache, cfg.Cache.ColorEntries, colorOpts...)
	if err != nil {
		return nil, nil, err
	}
	return imgCache, colors, nil
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logFile, err := logging.Setup(afero.NewOsFs(), cfg.Log)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if err := ui.InitFonts(goregular.TTF, gobold.TTF); err != nil {
		return fmt.Errorf("init fonts: %w", err)
	}

	imgCache, colors, err := newCaches(cfg)
	if err != nil {
		return err
	}
	defer colors.Close()

	textures := ui.NewTextureCache(textureCacheSize)
	game := app.NewGame(cfg, imgCache, colors, textures)
	sf := &screenFactory{game: game, cfg: cfg}

	if opts.itemID != "" {
		item, err := sample.ByID(opts.itemID)
		if err != nil {
			return err
		}
		sf.openPage(item)
	} else {
		sf.pushGrid()
	}

	logrus.WithFields(logrus.Fields{
		"items":          len(sample.All()),
		"reduced_motion": cfg.UI.ReducedMotion,
		"aspect":         cfg.Hero.AspectRatio,
	}).Info("starting tvhero")

	ebiten.SetWindowSize(cfg.UI.Width, cfg.UI.Height)
	ebiten.SetWindowTitle("tvhero")
	ebiten.SetWindowIcon(icon.Generate())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.UI.Fullscreen)

	return ebiten.RunGame(game)
}

func newColorCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "color <path|url>",
		Short: "Print the background color extracted from an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			c, err := extractColor(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}
			printColor(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

// extractColor reads a local file directly and fetches anything else through
// the image cache.
func extractColor(ctx context.Context, cfg *config.Config, src string) (palette.CachedColor, error) {
	if !strings.Contains(src, "://") {
		if f, err := os.Open(src); err == nil {
			defer f.Close()
			return palette.ExtractReader(f)
		}
	}

	imgCache, colors, err := newCaches(cfg)
	if err != nil {
		return palette.CachedColor{}, err
	}
	defer colors.Close()
	if ctx == nil {
		ctx = context.Background()
	}
	img, err := imgCache.LoadDecodedImage(ctx, src)
	if err != nil {
		return palette.CachedColor{}, fmt.Errorf("%w: %w", palette.ErrImageLoadFailed, err)
	}
	return palette.Extract(img)
}

func printColor(w io.Writer, c palette.CachedColor) {
	fmt.Fprintf(w, "%s\tdark=%t\n", c.Color(), c.IsDark)
}
