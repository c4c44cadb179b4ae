package config

import (
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Gateway  GatewayConfig
	Alpaca   AlpacaConfig
	Database DatabaseConfig
	Trading  TradingConfig
	Tickers  TickersConfig
	Script   ScriptConfig
	Log      LogConfig
}

type ServerConfig struct {
	Addr string
}

type GatewayConfig struct {
	BaseUrl string
	Account string
	Token   string
}

type AlpacaConfig struct {
	BaseUrl string
	ApiKey  string
	Secret  string
}

type DatabaseConfig struct {
	DSN string
}

type TradingConfig struct {
	Risk                     float64
	MaxEntryFrequencyMinutes int
	Timezone                 string
	SettleDelayMS            int
}

type TickersConfig struct {
	Path string
}

type ScriptConfig struct {
	Dir    string
	Target string
}

type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

func Load() (*Config, error) {

	cfg := &Config{}
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	viper.ReadInConfig()

	viper.SetDefault("server.addr", ":8000")
	viper.SetDefault("trading.timezone", "Europe/Helsinki")
	viper.SetDefault("trading.settle_delay_ms", 500)
	viper.SetDefault("trading.max_entry_frequency_minutes", 30)

	cfg.Server = ServerConfig{
		Addr: viper.GetString("server.addr"),
	}

	cfg.Gateway = GatewayConfig{
		BaseUrl: viper.GetString("gateway.base_url"),
		Account: viper.GetString("gateway.account"),
		Token:   envSub("gateway.token"),
	}

	cfg.Alpaca = AlpacaConfig{
		BaseUrl: viper.GetString("alpaca.base_url"),
		ApiKey:  envSub("alpaca.api_key"),
		Secret:  envSub("alpaca.secret"),
	}

	cfg.Database = DatabaseConfig{
		DSN: envSub("database.dsn"),
	}

	cfg.Trading = TradingConfig{
		Risk:                     viper.GetFloat64("trading.risk"),
		MaxEntryFrequencyMinutes: viper.GetInt("trading.max_entry_frequency_minutes"),
		Timezone:                 viper.GetString("trading.timezone"),
		SettleDelayMS:            viper.GetInt("trading.settle_delay_ms"),
	}

	cfg.Tickers = TickersConfig{
		Path: viper.GetString("tickers.path"),
	}

	cfg.Script = ScriptConfig{
		Dir:    viper.GetString("script.dir"),
		Target: viper.GetString("script.target"),
	}

	cfg.Log = LogConfig{
		Level:      viper.GetString("log.level"),
		Format:     viper.GetString("log.format"),
		File:       viper.GetString("log.file"),
		MaxSize:    viper.GetInt("log.max_size"),
		MaxBackups: viper.GetInt("log.max_backups"),
		MaxAge:     viper.GetInt("log.max_age"),
		Compress:   viper.GetBool("log.compress"),
	}

	return cfg, nil
}

func (c *TradingConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

func envSub(key string) string {
	val := viper.GetString(key)
	if val == "" {
		return ""
	}

	re := regexp.MustCompile(`\$\{(\w+)\}`)
	return re.ReplaceAllStringFunc(val, func(match string) string {
		envKey := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(envKey)
	})
}
