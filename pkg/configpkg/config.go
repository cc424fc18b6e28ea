// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"github.com/spf13/viper"
)

// Table sources supported by the loader.
const (
	TableSourcePostgres = "postgres"
	TableSourceCSV      = "csv"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver       string `mapstructure:"DB_DRIVER"`
	DBSource       string `mapstructure:"DB_SOURCE"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	Environement   string `mapstructure:"GO_ENV"`
	TableSource    string `mapstructure:"TABLE_SOURCE"`
	CSVDir         string `mapstructure:"CSV_DIR"`
	ReportTimezone string `mapstructure:"REPORT_TIMEZONE"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("TABLE_SOURCE", TableSourcePostgres)
	v.SetDefault("REPORT_TIMEZONE", "UTC")

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
