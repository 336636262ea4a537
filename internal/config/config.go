package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverBolt     = "bolt"
)

type HTTPConfig struct {
	Host               string
	Port               int
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

type DBConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
	BoltPath        string
}

type AuthConfig struct {
	AccessSecret string
}

type PricingConfig struct {
	NearbyRadiusKm float64
}

// CompanyConfig is printed as the "Invoice To" block of subcontractor agreements.
type CompanyConfig struct {
	Name    string
	Address []string
	Email   string
	Phone   string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Pricing     PricingConfig
	Company     CompanyConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:               v.GetString("HTTP_HOST"),
			Port:               v.GetInt("HTTP_PORT"),
			CORSAllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
			RateLimitRPS:       v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
		},
		DB: DBConfig{
			Driver:          strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
			BoltPath:        v.GetString("BOLT_PATH"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Pricing: PricingConfig{
			NearbyRadiusKm: v.GetFloat64("NEARBY_RADIUS_KM"),
		},
		Company: CompanyConfig{
			Name:    v.GetString("COMPANY_NAME"),
			Address: parseList(v.GetString("COMPANY_ADDRESS")),
			Email:   v.GetString("COMPANY_EMAIL"),
			Phone:   v.GetString("COMPANY_PHONE"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.CORSAllowedOrigins) == 0 {
		cfg.HTTP.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.HTTP.RateLimitRPS == 0 {
		cfg.HTTP.RateLimitRPS = 20
	}
	if cfg.HTTP.RateLimitBurst == 0 {
		cfg.HTTP.RateLimitBurst = 40
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = StorageDriverPostgres
	}
	if cfg.DB.BoltPath == "" {
		cfg.DB.BoltPath = "wastecrm.db"
	}
	if cfg.Pricing.NearbyRadiusKm == 0 {
		cfg.Pricing.NearbyRadiusKm = 50
	}
	if cfg.Company.Name == "" {
		cfg.Company.Name = "Mr. Waste Inc."
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.DB.Driver {
	case StorageDriverPostgres:
		if cfg.DB.DSN == "" {
			return fmt.Errorf("DB_DSN is required")
		}
	case StorageDriverBolt:
		if cfg.DB.BoltPath == "" {
			return fmt.Errorf("BOLT_PATH is required")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.DB.Driver)
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Pricing.NearbyRadiusKm < 0 {
		return fmt.Errorf("NEARBY_RADIUS_KM must be positive")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
