package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	Redis       RedisConfig
	JWT         JWTConfig
	GoogleOAuth GoogleOAuthConfig
	Logger      LoggerConfig
	Quota       QuotaConfig
	Translator  TranslatorConfig
	Cache       CacheConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type LoggerConfig struct {
	Level string
	Env   string
}

// PlanQuota holds the per-day caps for one plan tier. -1 means unbounded.
type PlanQuota struct {
	QuizPerDay       int
	AskTeacherPerDay int
}

// QuotaConfig holds the static per-plan quota table.
type QuotaConfig struct {
	Free    PlanQuota
	Basic   PlanQuota
	Premium PlanQuota
}

type TranslatorConfig struct {
	ServerURL string
	Model     string
}

type CacheConfig struct {
	QuestionTTL time.Duration
	SessionTTL  time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	setQuotaDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey:       viper.GetString("jwt.secret_key"),
			AccessTokenTTL:  viper.GetDuration("jwt.access_token_ttl"),
			RefreshTokenTTL: viper.GetDuration("jwt.refresh_token_ttl"),
		},
		GoogleOAuth: GoogleOAuthConfig{
			ClientID:     viper.GetString("google_oauth.client_id"),
			ClientSecret: viper.GetString("google_oauth.client_secret"),
			RedirectURL:  viper.GetString("google_oauth.redirect_url"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Quota: QuotaConfig{
			Free: PlanQuota{
				QuizPerDay:       viper.GetInt("quota.free.quiz_per_day"),
				AskTeacherPerDay: viper.GetInt("quota.free.ask_teacher_per_day"),
			},
			Basic: PlanQuota{
				QuizPerDay:       viper.GetInt("quota.basic.quiz_per_day"),
				AskTeacherPerDay: viper.GetInt("quota.basic.ask_teacher_per_day"),
			},
			Premium: PlanQuota{
				QuizPerDay:       viper.GetInt("quota.premium.quiz_per_day"),
				AskTeacherPerDay: viper.GetInt("quota.premium.ask_teacher_per_day"),
			},
		},
		Translator: TranslatorConfig{
			ServerURL: viper.GetString("translator.server_url"),
			Model:     viper.GetString("translator.model"),
		},
		Cache: CacheConfig{
			QuestionTTL: viper.GetDuration("cache.question_ttl"),
			SessionTTL:  viper.GetDuration("cache.session_ttl"),
		},
	}

	// Environment overrides for deployment
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}

	if config.Cache.QuestionTTL == 0 {
		config.Cache.QuestionTTL = 10 * time.Minute
	}
	if config.Cache.SessionTTL == 0 {
		config.Cache.SessionTTL = 2 * time.Hour
	}

	return config, nil
}

// setQuotaDefaults installs the shipped quota table. Config files only need
// to override the tiers they change.
func setQuotaDefaults() {
	viper.SetDefault("quota.free.quiz_per_day", 3)
	viper.SetDefault("quota.free.ask_teacher_per_day", 0)
	viper.SetDefault("quota.basic.quiz_per_day", 10)
	viper.SetDefault("quota.basic.ask_teacher_per_day", 2)
	viper.SetDefault("quota.premium.quiz_per_day", -1)
	viper.SetDefault("quota.premium.ask_teacher_per_day", 5)
}

func (c *Config) GetDSN() string {
	sslmode := c.DB.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		sslmode,
	)
}

// LimitsFor resolves the quota table for a plan tier given as a string
// ("free", "basic", "premium"). Unknown plans get the free tier.
func (q QuotaConfig) LimitsFor(plan string) PlanQuota {
	switch plan {
	case "basic":
		return q.Basic
	case "premium":
		return q.Premium
	default:
		return q.Free
	}
}
