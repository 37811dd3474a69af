package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Server struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

type DB struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Pass       string
	Name       string
	SQLitePath string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Session struct {
	Secret       string
	Issuer       string
	CookieSecure bool
}

// ErrWeakSecret is returned by Session.Validate for a missing or
// placeholder signing secret.
var ErrWeakSecret = errors.New("session.secret is empty or a placeholder; set BUGTRACKER_SESSION_SECRET")

var placeholderSecrets = map[string]bool{
	"change-me":  true,
	"changeme":   true,
	"dev-secret": true,
	"secret":     true,
}

// Validate rejects an empty or well-known signing secret.
func (s Session) Validate() error {
	secret := strings.TrimSpace(s.Secret)
	if secret == "" || placeholderSecrets[strings.ToLower(secret)] {
		return ErrWeakSecret
	}
	return nil
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	Server  Server
	DB      DB
	Redis   Redis
	Session Session
	Log     Log
	Web     struct {
		TemplatesDir string
	}
}

// Load reads path as YAML on top of the defaults. A missing file is not
// an error. BUGTRACKER_* environment variables override both, e.g.
// BUGTRACKER_DB_DRIVER=sqlite.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("bugtracker")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "bugtracker")
	v.SetDefault("db.sqlite_path", "bugtracker.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.issuer", "bugtracker")
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("web.templates_dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: Server{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		DB: DB{
			Driver:     v.GetString("db.driver"),
			Host:       v.GetString("db.host"),
			Port:       v.GetInt("db.port"),
			User:       v.GetString("db.user"),
			Pass:       v.GetString("db.pass"),
			Name:       v.GetString("db.name"),
			SQLitePath: v.GetString("db.sqlite_path"),
		},
		Redis: Redis{Addr: v.GetString("redis.addr"), Password: v.GetString("redis.password"), DB: v.GetInt("redis.db")},
		Session: Session{
			Secret:       v.GetString("session.secret"),
			Issuer:       v.GetString("session.issuer"),
			CookieSecure: v.GetBool("session.cookie_secure"),
		},
		Log: Log{Level: v.GetString("log.level"), Format: v.GetString("log.format")},
	}
	cfg.Web.TemplatesDir = v.GetString("web.templates_dir")
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	return cfg, nil
}
