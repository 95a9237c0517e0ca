package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Playback lifecycle messages (info)
		"Starting playback": "再生を開始します",
		"Playback completed: %d frames rendered, %d dropped": "再生が完了しました: %d フレーム描画, %d フレームドロップ",
		"Output surface set: %dx%d":                          "出力サーフェスを設定: %dx%d",
		"Texture consumer attached":                          "テクスチャコンシューマを接続しました",
		"Video size changed: %dx%d":                          "動画サイズが変更されました: %dx%d",
		"First frame rendered":                               "最初のフレームを描画しました",
		"End of stream reached":                              "ストリームの終端に到達しました",
		"Interrupted, shutting down...":                      "中断されました。シャットダウン中...",
		"Flushing pending frames":                            "保留中のフレームをフラッシュしています",

		// Frame sink messages
		"Frames written to %s": "フレームを %s に保存しました",
		"Wrote frame %s":       "フレーム %s を書き込みました",

		// Warnings
		"Frame dropped at %dus":                       "%dus のフレームをドロップしました",
		"Frame queue saturated, waiting for capacity": "フレームキューが飽和しています。空きを待機中",

		// Errors
		"render dispatch failed at %dus: %v": "%dus の描画ディスパッチに失敗しました: %v",
		"Failed to write frame: %s":          "フレームの書き込みに失敗しました: %s",
		"Failed to load configuration: %s":   "設定の読み込みに失敗しました: %s",
	})
}
