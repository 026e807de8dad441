package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	PortfolioScan PortfolioScan `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type PortfolioScan struct {
	CronSchedule      string `mapstructure:"portfolio_scan_cron"`
	LookbackDays      int    `mapstructure:"portfolio_scan_lookback_days"`
	RetentionDays     int    `mapstructure:"portfolio_scan_retention_days"`
	MaxConcurrentJobs int    `mapstructure:"portfolio_scan_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"portfolio_scan_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/customer_success")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	// Defaults da varredura diária do portfólio
	viper.SetDefault("PORTFOLIO_SCAN_CRON", "0 7 * * *") // Todos os dias às 7h da manhã
	viper.SetDefault("PORTFOLIO_SCAN_LOOKBACK_DAYS", 90)   // Janela de histórico analisada
	viper.SetDefault("PORTFOLIO_SCAN_RETENTION_DAYS", 365) // Snapshots mais antigos são expurgados
	viper.SetDefault("PORTFOLIO_SCAN_MAX_CONCURRENT_JOBS", 5)
	viper.SetDefault("PORTFOLIO_SCAN_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
