// Package main provides localization for the vidsink CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Play simulated video frames through the presentation core": "シミュレートした動画フレームをプレゼンテーションコアで再生",

		// Play command
		"Run a playback session and write frames as PNG files": "再生セッションを実行し、フレームをPNGファイルとして書き出し",

		// Version command
		"Show version information": "バージョン情報を表示",
		"vidsink version %s":       "vidsink バージョン %s",

		// Flags
		"Path to a YAML configuration file":                 "YAML設定ファイルのパス",
		"Directory for output frames":                       "出力フレームのディレクトリ",
		"Number of frames to play":                          "再生するフレーム数",
		"Frame rate of the simulated stream":                "シミュレートするストリームのフレームレート",
		"Output rotation in degrees (0, 90, 180, 270)":      "出力の回転角度（0, 90, 180, 270）",
		"Pace playback against the wall clock":              "実時間に合わせて再生をペーシング",
		"Mirror rendered frames to a debug preview surface": "描画フレームをデバッグプレビューサーフェスにミラーリング",
		"Log level (debug, info, warn, error)":              "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                           "全てのログ出力を抑制",

		// Runtime messages
		"Playing %d frames at %.1f fps...": "%d フレームを %.1f fps で再生中...",
		"Playback took %d ms":              "再生に %d ms かかりました",
		"Interrupted, shutting down...":    "中断されました。シャットダウン中...",

		// Summary output flag
		"Discard rendered frames instead of writing files":  "描画フレームをファイルに書き込まず破棄",
		"Output playback summary to file (Markdown format)": "再生サマリーをファイルに出力（Markdown形式）",
		"Summary saved to %s":                               "サマリーを %s に保存しました",
		"Failed to write summary: %s":                       "サマリーの書き込みに失敗しました: %s",

		// Summary content
		"Playback Summary": "再生サマリー",
		"Generated":        "生成日時",
		"Results":          "実行結果",
		"Output":           "出力",
		"Settings":         "設定",
		"Item":             "項目",
		"Value":            "値",

		// Results section
		"Frames Emitted":    "投入フレーム数",
		"Frames Rendered":   "描画フレーム数",
		"Frames Dropped":    "ドロップフレーム数",
		"Playback Duration": "再生時間",
		"Video Sizes":       "動画サイズ",
		"None":              "なし",

		// Output section
		"Target":           "出力先",
		"Output Directory": "出力ディレクトリ",

		// Settings section
		"Frame Size":            "フレームサイズ",
		"Frame Count":           "フレーム数",
		"Frame Rate":            "フレームレート",
		"Max Pending Frames":    "最大保留フレーム数",
		"Texture Pool Capacity": "テクスチャプール容量",
		"Orientation":           "回転角度",
		"Pacing":                "ペーシング",
		"Realtime":              "実時間",
		"As fast as possible":   "最速",
		"Generated by":          "生成:",
	})
}
