// Package main provides the CLI entry point for vidsink.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/vidsink/pkg/adapters/filesink"
	"github.com/user/vidsink/pkg/adapters/logger"
	"github.com/user/vidsink/pkg/adapters/nullsink"
	"github.com/user/vidsink/pkg/adapters/osfilesystem"
	"github.com/user/vidsink/pkg/adapters/softbackend"
	"github.com/user/vidsink/pkg/config"
	"github.com/user/vidsink/pkg/player"
	"github.com/user/vidsink/pkg/ports"
	"github.com/user/vidsink/pkg/summarizer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:  "vidsink",
		Usage: l10n.T("Play simulated video frames through the presentation core"),
		Commands: []*cli.Command{
			playCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: l10n.T("Run a playback session and write frames as PNG files"),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("Path to a YAML configuration file")},
			&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: l10n.T("Directory for output frames")},
			&cli.IntFlag{Name: "frames", Aliases: []string{"n"}, Usage: l10n.T("Number of frames to play")},
			&cli.Float64Flag{Name: "fps", Usage: l10n.T("Frame rate of the simulated stream")},
			&cli.IntFlag{Name: "orientation", Usage: l10n.T("Output rotation in degrees (0, 90, 180, 270)")},
			&cli.BoolFlag{Name: "realtime", Usage: l10n.T("Pace playback against the wall clock")},
			&cli.BoolFlag{Name: "preview", Usage: l10n.T("Mirror rendered frames to a debug preview surface")},
			&cli.BoolFlag{Name: "discard", Usage: l10n.T("Discard rendered frames instead of writing files")},
			&cli.StringFlag{Name: "summary", Aliases: []string{"s"}, Usage: l10n.T("Output playback summary to file (Markdown format)")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "", Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output")},
		},
		Action: runPlay,
	}
}

func runPlay(c *cli.Context) error {
	fs := osfilesystem.New()

	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path, fs)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		cfg = loaded
	}
	applyFlags(c, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	var preview ports.DebugPreviewProvider
	if c.Bool("preview") {
		preview = softbackend.NewPreview()
	}

	p := player.New(cfg.ToPlayerConfig(), softbackend.New(), preview, nil, log)
	if c.Bool("discard") {
		p.SetTextureConsumer(nullsink.New())
	} else {
		p.SetTextureConsumer(filesink.New(cfg.OutputDir, fs, log))
	}
	p.SetTransforms([]ports.Transform{
		softbackend.Scale{Width: cfg.OutputWidth, Height: cfg.OutputHeight},
	})
	if cfg.Orientation != 0 {
		p.SetOrientation(cfg.Orientation)
	}

	log.Info(l10n.F("Playing %d frames at %.1f fps...", cfg.FrameCount, cfg.FPS))
	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if !c.Bool("discard") {
		log.Info(l10n.F("Frames written to %s", cfg.OutputDir))
	}
	log.Info(l10n.F("Playback took %d ms", result.DurationMs))

	if path := c.String("summary"); path != "" {
		if err := writeSummary(path, fs, cfg, c.Bool("discard"), result); err != nil {
			log.Error(l10n.F("Failed to write summary: %s", err.Error()))
			return err
		}
		log.Info(l10n.F("Summary saved to %s", path))
	}
	return nil
}

func writeSummary(path string, fs ports.FileSystem, cfg config.Config, discard bool, result player.RunResult) error {
	target := "file"
	outputDir := cfg.OutputDir
	if discard {
		target = "null"
		outputDir = ""
	}
	var sizes []string
	for _, s := range result.SizeChanges {
		sizes = append(sizes, fmt.Sprintf("%dx%d", s.Width, s.Height))
	}

	summary := summarizer.NewBuilder().
		WithSession(outputDir, target).
		WithPlayback(summarizer.PlaybackInfo{
			FramesEmitted:  result.FramesEmitted,
			FramesRendered: result.FramesRendered,
			FramesDropped:  result.FramesDropped,
			DurationMs:     result.DurationMs,
			SizeChanges:    sizes,
		}).
		WithSettings(summarizer.Settings{
			FrameWidth:  cfg.FrameWidth,
			FrameHeight: cfg.FrameHeight,
			FrameCount:  cfg.FrameCount,
			FPS:         cfg.FPS,

			MaxPendingFrames:    cfg.MaxPendingFrames,
			TexturePoolCapacity: cfg.TexturePoolCapacity,
			Orientation:         cfg.Orientation,
			Realtime:            cfg.Realtime,
		}).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(formatter, fs).Write(path, summary)
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("frames") {
		cfg.FrameCount = c.Int("frames")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Float64("fps")
	}
	if c.IsSet("orientation") {
		cfg.Orientation = c.Int("orientation")
	}
	if c.IsSet("realtime") {
		cfg.Realtime = c.Bool("realtime")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Println(l10n.F("vidsink version %s", version))
			return nil
		},
	}
}
