package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	RevenueTargets  RevenueTargets  `mapstructure:",squash"`
	Optimizer       Optimizer       `mapstructure:",squash"`
	RevenueMonitor  RevenueMonitor  `mapstructure:",squash"`
	MetricsSnapshot MetricsSnapshot `mapstructure:",squash"`
	Billing         Billing         `mapstructure:",squash"`
	Redis           Redis           `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// RevenueTargets define as metas fixas de receita, imutáveis após a construção
type RevenueTargets struct {
	Daily   float64 `mapstructure:"target_daily_revenue"`
	Monthly float64 `mapstructure:"target_monthly_revenue"`
	Annual  float64 `mapstructure:"target_annual_revenue"`
	Growth  float64 `mapstructure:"target_growth_rate"`
}

// Optimizer define os limiares do ciclo de otimização
type Optimizer struct {
	OptimizationThreshold float64 `mapstructure:"optimization_threshold"`
	AlertThreshold        float64 `mapstructure:"alert_threshold"`
	// Mantido para compatibilidade futura; nenhum componente lê este campo ainda
	AutoScalingEnabled bool `mapstructure:"auto_scaling_enabled"`
}

type RevenueMonitor struct {
	CronSchedule string `mapstructure:"revenue_monitor_cron"`
	Enabled      bool   `mapstructure:"revenue_monitor_enabled"`
}

type MetricsSnapshot struct {
	CronSchedule string `mapstructure:"metrics_snapshot_cron"`
	Enabled      bool   `mapstructure:"metrics_snapshot_enabled"`
}

type Billing struct {
	BaseURL        string `mapstructure:"billing_base_url"`
	SecretKey      string `mapstructure:"billing_secret_key"`
	TimeoutSeconds int    `mapstructure:"billing_timeout_seconds"`
}

type Redis struct {
	Addr    string `mapstructure:"redis_addr"`
	Channel string `mapstructure:"redis_events_channel"`
	Enabled bool   `mapstructure:"redis_events_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("TARGET_DAILY_REVENUE", 1500.0)
	viper.SetDefault("TARGET_MONTHLY_REVENUE", 45000.0)
	viper.SetDefault("TARGET_ANNUAL_REVENUE", 540000.0)
	viper.SetDefault("TARGET_GROWTH_RATE", 0.15)

	viper.SetDefault("OPTIMIZATION_THRESHOLD", 0.85)
	viper.SetDefault("ALERT_THRESHOLD", 0.9)
	viper.SetDefault("AUTO_SCALING_ENABLED", false)

	// Defaults do monitoramento de receita
	viper.SetDefault("REVENUE_MONITOR_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("REVENUE_MONITOR_ENABLED", true)

	viper.SetDefault("METRICS_SNAPSHOT_CRON", "0 * * * *") // A cada hora
	viper.SetDefault("METRICS_SNAPSHOT_ENABLED", true)

	viper.SetDefault("BILLING_BASE_URL", "https://api.stripe.com/v1")
	viper.SetDefault("BILLING_SECRET_KEY", "") // ONLY LOCAL
	viper.SetDefault("BILLING_TIMEOUT_SECONDS", 30)

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_EVENTS_CHANNEL", "revenue-engine:events")
	viper.SetDefault("REDIS_EVENTS_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	// Limiares fora de (0,1] voltam para os defaults documentados
	if config.Optimizer.OptimizationThreshold <= 0 || config.Optimizer.OptimizationThreshold > 1 {
		logrus.Warnf("OPTIMIZATION_THRESHOLD inválido (%v), usando 0.85", config.Optimizer.OptimizationThreshold)
		config.Optimizer.OptimizationThreshold = 0.85
	}
	if config.Optimizer.AlertThreshold <= 0 || config.Optimizer.AlertThreshold > 1 {
		logrus.Warnf("ALERT_THRESHOLD inválido (%v), usando 0.9", config.Optimizer.AlertThreshold)
		config.Optimizer.AlertThreshold = 0.9
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
