package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// UserSeed is one credential-table entry as configured. Secrets arrive in
// plain text from the config source and are hashed before use; they are
// never compared directly.
type UserSeed struct {
	Email    string `mapstructure:"email"`
	Secret   string `mapstructure:"secret"`
	Role     string `mapstructure:"role"`
	Tenant   string `mapstructure:"tenant"`
	TeamLead string `mapstructure:"team_lead"`
}

type Config struct {
	Port        string        `mapstructure:"port"`
	DatasetCSV  string        `mapstructure:"dataset_csv"`
	DatasetDB   string        `mapstructure:"dataset_db"`
	ModelPath   string        `mapstructure:"model_path"`
	LogoPath    string        `mapstructure:"logo_path"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	Users       []UserSeed    `mapstructure:"users"`
	LogLevel    slog.Level    `mapstructure:"-"`
}

// Load reads insight.yaml (from path if given, else the working directory or
// /etc/insight) plus INSIGHT_* environment overrides. A missing config file
// is not an error; every field has a default or env fallback.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("dataset_csv", "campaigns.csv")
	v.SetDefault("model_path", "roi_model.json")
	v.SetDefault("http_timeout", 15*time.Second)

	v.SetEnvPrefix("INSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only surfaces env values for keys viper already knows
	// about, so keys without defaults must be bound explicitly or their
	// INSIGHT_* overrides are dropped.
	for _, key := range []string{"port", "dataset_csv", "dataset_db", "model_path", "logo_path", "http_timeout", "log_level"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	} else {
		v.SetConfigName("insight")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/insight")
		var nf viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &nf) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.LogLevel = slog.LevelInfo
	if strings.EqualFold(v.GetString("log_level"), "debug") {
		cfg.LogLevel = slog.LevelDebug
	}
	if len(cfg.Users) == 0 {
		cfg.Users = DefaultUsers()
	}
	return cfg, nil
}

// DefaultUsers is the demo credential table used when no users are configured.
// A deployment replaces it via insight.yaml.
func DefaultUsers() []UserSeed {
	return []UserSeed{
		{Email: "admin@abc.com", Secret: "admin123", Role: "Admin", Tenant: "ABC Pvt Ltd", TeamLead: "A. Rao"},
		{Email: "manager@abc.com", Secret: "manager123", Role: "Manager", Tenant: "ABC Pvt Ltd", TeamLead: "A. Rao"},
		{Email: "admin@xyz.com", Secret: "admin123", Role: "Admin", Tenant: "XYZ Marketing", TeamLead: "J. Mehta"},
	}
}
