package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type catalog struct {
	BaseURL      string        `mapstructure:"base_url"`
	FetchLimit   int           `mapstructure:"fetch_limit"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type storage struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type ui struct {
	SliderInterval time.Duration `mapstructure:"slider_interval"`
	ToastTimeout   time.Duration `mapstructure:"toast_timeout"`
	CategoryLimit  int           `mapstructure:"category_limit"`
}

type Config struct {
	LogLevel   slog.Level    `mapstructure:"log_level"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	Catalog    catalog       `mapstructure:"catalog"`
	Storage    storage       `mapstructure:"storage"`
	UI         ui            `mapstructure:"ui"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	SessionTTL=%q

	Catalog:
	BaseURL=%q
	FetchLimit=%d
	FetchTimeout=%q

	Storage:
	Backend=%q
	Path=%q

	UI:
	SliderInterval=%q
	ToastTimeout=%q
	CategoryLimit=%d

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.SessionTTL,
		c.Catalog.BaseURL,
		c.Catalog.FetchLimit,
		c.Catalog.FetchTimeout,
		c.Storage.Backend,
		c.Storage.Path,
		c.UI.SliderInterval,
		c.UI.ToastTimeout,
		c.UI.CategoryLimit,
	)
}
