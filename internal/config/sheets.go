package config

import (
	"github.com/Veraticus/pennywise/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads Google Sheets configuration from Viper and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file or PENNYWISE_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if v := viper.GetString(KeySheetsServiceAccount); v != "" {
		config.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString(KeySheetsClientID); v != "" {
		config.ClientID = v
	}
	if v := viper.GetString(KeySheetsClientSecret); v != "" {
		config.ClientSecret = v
	}
	if v := viper.GetString(KeySheetsRefreshToken); v != "" {
		config.RefreshToken = v
	}
	if v := viper.GetString(KeySheetsSpreadsheetID); v != "" {
		config.SpreadsheetID = v
	}
	if v := viper.GetString(KeySheetsSpreadsheetName); v != "" {
		config.SpreadsheetName = v
	}

	config.LoadFromEnv()
	config.ServiceAccountPath = ExpandPath(config.ServiceAccountPath)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
