package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/operata/feedback-portal/internal/db"
)

// App holds process-level configuration.
type App struct {
	Database   db.Config
	ListenAddr string
	LogLevel   string
	// SectorConflictPolicy selects which source wins a sector disagreement:
	// "prefer_embedded" (default) or "prefer_foreign_key".
	SectorConflictPolicy string
}

// Load reads config.yaml from configPath with environment overrides
// (APP_DATABASE_HOST and friends). A missing file is not an error; defaults
// plus environment apply.
func Load(configPath string) (App, error) {
	app := App{
		Database:             db.DefaultConfig(),
		ListenAddr:           ":8080",
		LogLevel:             "info",
		SectorConflictPolicy: "prefer_embedded",
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")

	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("server.listen_addr")
	v.BindEnv("log.level")
	v.BindEnv("sector.conflict_policy")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Use defaults + env.
		fmt.Println("No config.yaml found, using defaults and env vars")
	}

	if v.IsSet("database.host") {
		app.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		app.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		app.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		app.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		app.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		app.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("server.listen_addr") {
		app.ListenAddr = v.GetString("server.listen_addr")
	}
	if v.IsSet("log.level") {
		app.LogLevel = v.GetString("log.level")
	}
	if v.IsSet("sector.conflict_policy") {
		app.SectorConflictPolicy = v.GetString("sector.conflict_policy")
	}

	return app, nil
}
