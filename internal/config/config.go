package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

type ServerConfig struct {
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	StaticDir       string        `mapstructure:"static_dir"`
}

// Store drivers accepted by mongo.driver.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type MongoConfig struct {
	Driver   string `mapstructure:"driver"`
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type OTPConfig struct {
	TTL               time.Duration `mapstructure:"ttl"`
	ResetTokenTTL     time.Duration `mapstructure:"reset_token_ttl"`
	RequireResetToken bool          `mapstructure:"require_reset_token"`
}

// SMTPConfig is left empty to fall back to the log-only mailer.
type SMTPConfig struct {
	Server   string `mapstructure:"server"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

func (c SMTPConfig) Configured() bool {
	return c.Server != "" && c.User != "" && c.Password != ""
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type UploadConfig struct {
	MaxBytes    int64 `mapstructure:"max_bytes"`
	RequireAuth bool  `mapstructure:"require_auth"`
}

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	OTP    OTPConfig    `mapstructure:"otp"`
	SMTP   SMTPConfig   `mapstructure:"smtp"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Upload UploadConfig `mapstructure:"upload"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "production")
	v.SetDefault("app.port", "10000")

	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("server.static_dir", "")

	v.SetDefault("mongo.driver", DriverMongo)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "patentq")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 2*time.Hour)

	v.SetDefault("otp.ttl", 120*time.Second)
	v.SetDefault("otp.reset_token_ttl", 10*time.Minute)
	v.SetDefault("otp.require_reset_token", false)

	v.SetDefault("smtp.server", "")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")

	v.SetDefault("cors.allowed_origins", []string{"https://uspatentq.com", "http://localhost:5173"})

	v.SetDefault("upload.max_bytes", int64(32<<20))
	v.SetDefault("upload.require_auth", false)
}

// Load reads configuration from path (or ./config.yaml when path is empty
// and the file exists), a .env file if present, and the environment.
// Environment keys are the upper-cased config keys with dots replaced by
// underscores, e.g. MONGO_URI or OTP_TTL.
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// legacy names used by earlier deployments
	_ = v.BindEnv("app.port", "APP_PORT", "PORT")
	_ = v.BindEnv("mongo.database", "MONGO_DATABASE", "MONGO_DB")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required keys and value ranges.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret (JWT_SECRET) is required")
	}
	switch c.Mongo.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			return errors.New("mongo.uri (MONGO_URI) is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown mongo.driver %q", c.Mongo.Driver)
	}
	if c.OTP.TTL <= 0 {
		return errors.New("otp.ttl must be positive")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("jwt.ttl must be positive")
	}
	if c.Upload.MaxBytes <= 0 {
		return errors.New("upload.max_bytes must be positive")
	}
	return nil
}
