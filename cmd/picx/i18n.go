// Package main provides localization for the picx CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Output":        "出力先",
		"Adjustments":   "補正",
		"Browser":       "ブラウザ設定",
		"Sharing":       "共有",
		"Debug":         "デバッグ",
		"Logging":       "ログ",

		// Root command
		"Adjust photos and compose posters": "写真の補正とポスターの作成",
		"picx edits a photo with brightness, contrast, saturation, rotation, filters and crop, and flattens poster documents into PNG images.": "picxは明るさ・コントラスト・彩度・回転・フィルター・切り抜きで写真を編集し、ポスター文書をPNG画像に書き出します。",

		// Commands
		"Adjust an image and export it as PNG":                "画像を補正してPNGとして書き出す",
		"Flatten a poster document into a PNG image":          "ポスター文書をPNG画像に書き出す",
		"Replay a recorded editing session":                   "記録された編集セッションを再生",
		"Render the live editor preview of an adjusted image": "補正した画像のプレビューを描画",
		"Email an image through the configured relay":         "設定されたリレー経由で画像をメール送信",
		"List the poster templates":                           "ポスターテンプレートの一覧を表示",
		"List the named filters and the effects they add":     "フィルター名と適用される効果の一覧を表示",
		"List the font families and colours offered for text": "テキスト用のフォントと色の一覧を表示",

		// Global flags
		"Path to a YAML configuration file":          "YAML設定ファイルのパス",
		"Path to a .env file with relay credentials": "リレー認証情報を含む.envファイルのパス",
		"Log level (debug, info, warn, error)":       "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                    "全てのログ出力を抑制",
		"Enable debug output":                        "デバッグ出力を有効化",
		"Directory for debug output":                 "デバッグ出力のディレクトリ",

		// Output flags
		"Output directory": "出力ディレクトリ",
		"Also write the editor view with selection and crop indicators to this path": "選択枠と切り抜き表示付きのエディタ画面もこのパスに書き出す",
		"Write the preview HTML to this path":                                        "プレビューHTMLをこのパスに書き出す",
		"Capture the preview in headless Chrome and write it to this path":           "ヘッドレスChromeでプレビューを撮影し、このパスに書き出す",
		"Render the preview without a browser and write it to this path":             "ブラウザを使わずにプレビューを描画し、このパスに書き出す",
		"Path to Chrome executable":                                                  "Chrome実行ファイルのパス",

		// Adjustment flags
		"Photo recipe YAML file":        "写真レシピのYAMLファイル",
		"Brightness in percent (0-200)": "明るさ（パーセント、0-200）",
		"Contrast in percent (0-200)":   "コントラスト（パーセント、0-200）",
		"Saturation in percent (0-200)": "彩度（パーセント、0-200）",
		"Rotation in degrees (0-360)":   "回転（度、0-360）",
		"Named filter (grayscale, sepia, blur, sharpen, vintage, cool, warm, dramatic, none)": "フィルター名（grayscale, sepia, blur, sharpen, vintage, cool, warm, dramatic, none）",
		"Crop rectangle in display pixels as x,y,width,height":                                "表示ピクセル単位の切り抜き矩形（x,y,幅,高さ）",

		// Sharing flags
		"Recipient email address":     "送信先メールアドレス",
		"Message sent with the image": "画像と一緒に送るメッセージ",

		// Errors
		"Image argument is required":    "画像引数が必要です",
		"Document argument is required": "文書引数が必要です",
		"Session argument is required":  "セッション引数が必要です",

		// Summary flag
		"Write a Markdown summary of the run to this path": "実行サマリーをMarkdown形式でこのパスに出力",

		// Summary content
		"Editing Summary": "編集サマリー",
		"Generated":       "生成日時",
		"Command":         "コマンド",
		"Item":            "項目",
		"Value":           "値",
		"None":            "なし",
		"Outputs":         "出力ファイル",
		"Photo":           "写真",
		"Source":          "元画像",
		"Image Size":      "画像サイズ",
		"Display Size":    "表示サイズ",
		"Filter":          "フィルター",
		"Rotation":        "回転",
		"Poster":          "ポスター",
		"Template":        "テンプレート",
		"Canvas Size":     "キャンバスサイズ",
		"Text Elements":   "テキスト要素",
		"Image Elements":  "画像要素",
		"Session":         "セッション",
		"Final Mode":      "最終モード",
		"Steps":           "ステップ数",
		"Changed":         "変更あり",
		"Ignored":         "無視",

		// Templates
		"Business":     "ビジネス",
		"Event":        "イベント",
		"Social Media": "ソーシャルメディア",
		"Portfolio":    "ポートフォリオ",
		"Wedding":      "ウェディング",
		"Restaurant":   "レストラン",
	})
}
