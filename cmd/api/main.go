package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"finanalyst/pkg/core/agent"
	"finanalyst/pkg/core/metrics"
	"finanalyst/pkg/core/responder"
	"finanalyst/pkg/core/session"
	"finanalyst/pkg/server"
)

func main() {
	godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	viper.SetEnvPrefix("finanalyst")
	viper.AutomaticEnv()
	viper.SetDefault("addr", ":8080")
	viper.SetDefault("models_config", "config/models.yaml")

	agentCfg := loadAgentConfig(logger, viper.GetString("models_config"))
	mgr := agent.NewManager(agentCfg)
	logger.Info().Str("provider", mgr.ActiveProviderName()).Msg("completion backend configured")

	deps := server.Dependencies{
		Sessions:  session.NewManager(),
		Engine:    metrics.NewEngine(logger),
		Responder: responder.New(mgr.Active(), logger),
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            viper.GetString("addr"),
		ShutdownTimeout: 10 * time.Second,
		Dependencies:    deps,
	})

	if err := api.Start(); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func loadAgentConfig(logger zerolog.Logger, path string) agent.Config {
	var cfg agent.Config
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("provider config not found, using defaults")
		return agent.Config{ActiveProvider: "gemini"}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("provider config unreadable, using defaults")
		return agent.Config{ActiveProvider: "gemini"}
	}
	return cfg
}
