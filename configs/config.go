package configs

import (
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App      `mapstructure:"app"`
	Telegram `mapstructure:"telegram"`
	Gemini   `mapstructure:"gemini"`
	Bot      `mapstructure:"bot"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Telegram struct
type Telegram struct {
	Token string `mapstructure:"token" validate:"required"`
}

// Gemini struct
type Gemini struct {
	APIKey  string `mapstructure:"api_key" validate:"required"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // seconds, bound on each model call
}

// Bot struct
type Bot struct {
	AuthorizedUsers []int64 `mapstructure:"authorized_users" validate:"required,min=1"`
	HistoryFile     string  `mapstructure:"history_file"`
	Persona         string  `mapstructure:"persona"`
	Greeting        string  `mapstructure:"greeting"`
	Fallback        string  `mapstructure:"fallback"`
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func getConfig(path, env string) {
	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Println("Config file has changed: ", e.Name)
	})
	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatalln(err)
	}
}
