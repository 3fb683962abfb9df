package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Editor messages (info)
		"Loaded %.0fx%.0f image": "%.0fx%.0f の画像を読み込みました",
		"Saved %s":               "%s に保存しました",
		"Cropped to %dx%d":       "%dx%d に切り抜きました",
		"Shared image with %s":   "%s に画像を共有しました",
		"Applying %s":            "%s を適用中",
		"Replayed %d steps (%d changed, %d ignored)": "%d ステップを再生しました（変更 %d、無視 %d）",
		"Interrupted, shutting down...":              "中断されました。シャットダウン中...",

		// Preview and relay
		"Capturing preview at %dx%d": "%dx%d でプレビューを撮影中",
		"Posting %d bytes to %s":     "%d バイトを %s に送信中",

		// Warnings
		"Dropping stale image load %d":                 "古い画像読み込み %d を破棄します",
		"Font %s unavailable, using built-in font: %v": "フォント %s が使えないため内蔵フォントを使用します: %v",

		// Errors
		"Failed to share image: %v": "画像の共有に失敗しました: %v",

		// Debug
		"Added %s %s":                                       "%s %s を追加しました",
		"Added image %s":                                    "画像 %s を追加しました",
		"Clamped %s %d to %d":                               "%s を %d から %d に制限しました",
		"Clamped %s from %d to %d":                          "%s を %d から %d に制限しました",
		"Crop released, now %s":                             "切り抜き操作を終了しました（状態: %s）",
		"Crop scale %.3f, output %dx%d":                     "切り抜き倍率 %.3f、出力 %dx%d",
		"Cropping source (%.1f, %.1f) %.1fx%.1f into %dx%d": "元画像 (%.1f, %.1f) %.1fx%.1f を %dx%d に切り抜き中",
		"Drawing %d elements on %dx%d":                      "%d 個の要素を %dx%d に描画中",
		"Ignoring crop start without an image":              "画像がないため切り抜き開始を無視します",
		"Ignoring crop without a rectangle":                 "矩形がないため切り抜きを無視します",
		"Ignoring crop without an image":                    "画像がないため切り抜きを無視します",
		"Ignoring drag of unselected element %s":            "未選択の要素 %s のドラッグを無視します",
		"Ignoring unknown template %s":                      "不明なテンプレート %s を無視します",
		"Mode %s -> %s":                                     "モード %s -> %s",
		"Rendering %dx%d with %s":                           "%dx%d を %s で描画中",
		"Step %d (%s) changed nothing":                      "ステップ %d (%s) は変更なし",
	})
}
