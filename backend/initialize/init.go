package initialize

import (
	"context"
	"fmt"
	"net/http"

	"bugtracker/backend/app/controllers"
	"bugtracker/backend/app/db"
	jwtutil "bugtracker/backend/app/jwt"
	"bugtracker/backend/app/middleware"
	"bugtracker/backend/app/repo"
	"bugtracker/backend/app/services"
	"bugtracker/backend/app/views"
	"bugtracker/backend/config"
	"bugtracker/backend/global"
	"bugtracker/backend/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg    config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router http.Handler
	Users  *services.UserService
	Bugs   *services.BugService
	Views  *views.Renderer
}

// Build wires the application. It fails on a weak session secret and
// when the database, or redis if configured, cannot be reached.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Session.Validate(); err != nil {
		return nil, err
	}

	// Connect DB
	gdb, err := db.Connect(ctx, DBConfig(cfg.DB))
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	// Migrate
	if err := db.Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var revoked repo.RevocationStore = repo.NewMemoryRevocationStore()
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		revoked = repo.NewRedisRevocationStore(rdb)
	} else {
		global.Logger.Warn().Msg("redis.addr not set, logouts are tracked in memory")
	}

	renderer, err := views.New(cfg.Web.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	if cfg.Web.TemplatesDir != "" {
		if err := renderer.Watch(ctx, cfg.Web.TemplatesDir); err != nil {
			return nil, fmt.Errorf("watch templates: %w", err)
		}
	}

	// Services
	signer := &jwtutil.Signer{Secret: []byte(cfg.Session.Secret), Issuer: cfg.Session.Issuer}
	userSvc := services.NewUserService(repo.NewUserRepository(gdb), signer, revoked)
	bugSvc := services.NewBugService(repo.NewBugRepository(gdb))

	// Controllers
	mw := &middleware.Auth{Users: userSvc, CookieSecure: cfg.Session.CookieSecure}
	checks := []controllers.Check{
		{Name: "db", Ping: func(ctx context.Context) error { return db.Ping(ctx, gdb) }},
	}
	if rdb != nil {
		checks = append(checks, controllers.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }})
	}
	ctrls := router.Controllers{
		Home:  controllers.NewHomeController(renderer, checks...),
		Auth:  controllers.NewAuthController(renderer, userSvc, mw),
		Bugs:  controllers.NewBugController(renderer, bugSvc, userSvc),
		Admin: controllers.NewAdminController(renderer, userSvc),
	}

	// Router
	h := router.NewRouter(ctrls, mw)
	// Wrap with logging middleware
	h = middleware.Logging(h)

	return &App{Cfg: *cfg, DB: gdb, Redis: rdb, Router: h, Users: userSvc, Bugs: bugSvc, Views: renderer}, nil
}

// Close releases the store connections.
func (a *App) Close() error {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DBConfig maps the db section of the configuration to connection settings.
func DBConfig(c config.DB) db.Config {
	return db.Config{Driver: c.Driver, Host: c.Host, Port: c.Port, User: c.User, Password: c.Pass, DBName: c.Name, SQLitePath: c.SQLitePath}
}
