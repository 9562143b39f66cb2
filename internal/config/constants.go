// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "vocabkeep"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort          = ":8080"
	DefaultLogLevel            = "info"
	DefaultDatabaseDriver      = "postgres"
	DefaultAuthEnabled         = true
	DefaultCookieName          = "vocabkeep_token"
	DefaultTranslationProvider = "google"
	DefaultTranslationTimeout  = 5 * time.Second
	DefaultExportRenderer      = "table"
)

// Google Cloud Translation v2 の REST エンドポイント
const GoogleTranslateBaseURL = "https://translation.googleapis.com"
