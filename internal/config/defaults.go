package config

import "github.com/spf13/viper"

// Configuration keys.
const (
	KeyDatabasePath          = "database.path"
	KeyLogLevel              = "logging.level"
	KeyLogFormat             = "logging.format"
	KeyLogFile               = "logging.file"
	KeyListTimeframe         = "ui.list_timeframe"
	KeyReportTimeframe       = "ui.report_timeframe"
	KeyTheme                 = "ui.theme"
	KeyExportPath            = "export.path"
	KeyImportRules           = "import.rules"
	KeySheetsServiceAccount  = "sheets.service_account_path"
	KeySheetsClientID        = "sheets.client_id"
	KeySheetsClientSecret    = "sheets.client_secret"
	KeySheetsRefreshToken    = "sheets.refresh_token"
	KeySheetsSpreadsheetID   = "sheets.spreadsheet_id"
	KeySheetsSpreadsheetName = "sheets.spreadsheet_name"
)

// DefaultDatabasePath is relative to the working directory.
const DefaultDatabasePath = "expenses.db"

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "pennywise.log")
	v.SetDefault(KeyListTimeframe, "all")
	v.SetDefault(KeyReportTimeframe, "month")
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyExportPath, "expenses.xlsx")
}
