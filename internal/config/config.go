// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port         string        `mapstructure:"port"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
	} `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	CORS        CORSConfig        `mapstructure:"cors"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Translation TranslationConfig `mapstructure:"translation"`
	Export      ExportConfig      `mapstructure:"export"`
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // postgres | sqlite
	URL             string `mapstructure:"url"`
	ConnectAttempts uint   `mapstructure:"connect_attempts"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AuthConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	JWTSecret  string `mapstructure:"jwt_secret"`
	CookieName string `mapstructure:"cookie_name"`
}

type TranslationConfig struct {
	Provider   string        `mapstructure:"provider"` // google | openai | none
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Model      string        `mapstructure:"model"`
	SourceLang string        `mapstructure:"source_lang"`
	TargetLang string        `mapstructure:"target_lang"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Breaker    struct {
		MaxFailures uint32        `mapstructure:"max_failures"`
		OpenTimeout time.Duration `mapstructure:"open_timeout"`
	} `mapstructure:"breaker"`
}

type ExportConfig struct {
	Renderer string `mapstructure:"renderer"` // table | markdown
	FontPath string `mapstructure:"font_path"`
}

var Cfg Config

func LoadConfig(path string) error {
	// .env があれば環境変数として読み込む (なくてもよい)
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// APP_DATABASE_URL のように接頭辞をつけて上書きできる
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnvs(v, envAliases); err != nil {
		log.Printf("Error binding environment variables: %s\n", err)
		return err
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using defaults and environment variables.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if cfg.Auth.Enabled && cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required when auth is enabled")
	}

	Cfg = cfg
	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Database Driver: %s", Cfg.Database.Driver)
	log.Printf("Translation Provider: %s", Cfg.Translation.Provider)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)
	return nil
}

// envAliases lets secrets also come from unprefixed variables.
var envAliases = map[string][]string{
	"auth.jwt_secret":     {"APP_AUTH_JWT_SECRET", "JWT_SECRET"},
	"translation.api_key": {"APP_TRANSLATION_API_KEY", "TRANSLATION_API_KEY"},
}

func bindEnvs(v *viper.Viper, aliases map[string][]string) error {
	for key, envs := range aliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("database.driver", DefaultDatabaseDriver)
	v.SetDefault("database.connect_attempts", 5)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST"})
	v.SetDefault("cors.max_age", 300)
	v.SetDefault("auth.enabled", DefaultAuthEnabled)
	v.SetDefault("auth.cookie_name", DefaultCookieName)
	v.SetDefault("translation.provider", DefaultTranslationProvider)
	v.SetDefault("translation.source_lang", "zh-CN")
	v.SetDefault("translation.target_lang", "en")
	v.SetDefault("translation.model", "gpt-4o-mini")
	v.SetDefault("translation.timeout", DefaultTranslationTimeout)
	v.SetDefault("translation.breaker.max_failures", 5)
	v.SetDefault("translation.breaker.open_timeout", 30*time.Second)
	v.SetDefault("export.renderer", DefaultExportRenderer)
}
