package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Report       Report
	JWTSecret    string
	GeminiApiKey string
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Report holds tuning knobs for the background aggregation jobs and the
// resolved-form cache.
type Report struct {
	BatchSize    int
	WorkerCount  int
	QueueSize    int
	CacheTTLSecs int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REPORT_BATCH_SIZE", 500)
	viper.SetDefault("REPORT_WORKER_COUNT", 2)
	viper.SetDefault("REPORT_QUEUE_SIZE", 64)
	viper.SetDefault("FORM_CACHE_TTL_SECONDS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Report.BatchSize = viper.GetInt("REPORT_BATCH_SIZE")
	config.Report.WorkerCount = viper.GetInt("REPORT_WORKER_COUNT")
	config.Report.QueueSize = viper.GetInt("REPORT_QUEUE_SIZE")
	config.Report.CacheTTLSecs = viper.GetInt("FORM_CACHE_TTL_SECONDS")

	config.JWTSecret = viper.GetString("JWT_SECRET")
	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
