package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Summary as a Markdown document with one table
// per section.
type MarkdownFormatter struct {
	translate func(key string) string
	version   string
}

// Option configures a MarkdownFormatter.
type Option func(*MarkdownFormatter)

// WithTranslator sets the function used to translate section and row labels.
func WithTranslator(translate func(key string) string) Option {
	return func(f *MarkdownFormatter) {
		f.translate = translate
	}
}

// WithVersion sets the version string shown in the footer.
func WithVersion(version string) Option {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...Option) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
		version:   "dev",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format converts the summary to Markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	t := f.translate
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", t("Playback Summary"))
	fmt.Fprintf(&sb, "%s: %s\n\n", t("Generated"), summary.GeneratedAt.Format("2006-01-02 15:04:05"))

	// Results
	fmt.Fprintf(&sb, "## %s\n\n", t("Results"))
	fmt.Fprintf(&sb, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&sb, "| %s | %d |\n", t("Frames Emitted"), summary.Playback.FramesEmitted)
	fmt.Fprintf(&sb, "| %s | %d |\n", t("Frames Rendered"), summary.Playback.FramesRendered)
	fmt.Fprintf(&sb, "| %s | %d (%s) |\n", t("Frames Dropped"), summary.Playback.FramesDropped,
		formatPercent(summary.Playback.FramesDropped, summary.Playback.FramesEmitted))
	fmt.Fprintf(&sb, "| %s | %d ms |\n", t("Playback Duration"), summary.Playback.DurationMs)
	sizes := t("None")
	if len(summary.Playback.SizeChanges) > 0 {
		sizes = strings.Join(summary.Playback.SizeChanges, ", ")
	}
	fmt.Fprintf(&sb, "| %s | %s |\n\n", t("Video Sizes"), sizes)

	// Output
	fmt.Fprintf(&sb, "## %s\n\n", t("Output"))
	fmt.Fprintf(&sb, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&sb, "| %s | %s |\n", t("Target"), summary.Session.Target)
	if summary.Session.OutputDir != "" {
		fmt.Fprintf(&sb, "| %s | %s |\n", t("Output Directory"), summary.Session.OutputDir)
	}
	sb.WriteString("\n")

	// Settings
	fmt.Fprintf(&sb, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&sb, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&sb, "| %s | %dx%d |\n", t("Frame Size"), summary.Settings.FrameWidth, summary.Settings.FrameHeight)
	fmt.Fprintf(&sb, "| %s | %d |\n", t("Frame Count"), summary.Settings.FrameCount)
	fmt.Fprintf(&sb, "| %s | %.1f fps |\n", t("Frame Rate"), summary.Settings.FPS)
	fmt.Fprintf(&sb, "| %s | %d |\n", t("Max Pending Frames"), summary.Settings.MaxPendingFrames)
	fmt.Fprintf(&sb, "| %s | %d |\n", t("Texture Pool Capacity"), summary.Settings.TexturePoolCapacity)
	if summary.Settings.Orientation != 0 {
		fmt.Fprintf(&sb, "| %s | %d° |\n", t("Orientation"), summary.Settings.Orientation)
	}
	pacing := t("As fast as possible")
	if summary.Settings.Realtime {
		pacing = t("Realtime")
	}
	fmt.Fprintf(&sb, "| %s | %s |\n\n", t("Pacing"), pacing)

	fmt.Fprintf(&sb, "%s vidsink %s\n", t("Generated by"), f.version)

	return sb.String()
}

func formatPercent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

var _ Formatter = (*MarkdownFormatter)(nil)
