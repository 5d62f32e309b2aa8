package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/heart0018/OriginalProduct/internal/auth"
	"github.com/heart0018/OriginalProduct/internal/db"
	"github.com/heart0018/OriginalProduct/internal/domain/storage"
	"github.com/heart0018/OriginalProduct/internal/logging"
	"github.com/heart0018/OriginalProduct/internal/ratelimiter"
	"github.com/joho/godotenv"
)

var version = "1.0.0"

//	@title			Swipe Cards API
//	@description	Recommended spots served as swipeable cards, with Google sign-in.

//	@contact.name	API Support

//	@BasePath	/api/v1

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.logLevel)
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	// Database
	pool, err := db.New(cfg.db.addr, int32(cfg.db.maxOpenConns), cfg.db.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	store := storage.NewContainer(pool)

	// Sessions: redis records are optional, the signed cookie works alone.
	var sessionStore auth.SessionStore
	if cfg.redis.addr != "" {
		rdb, err := db.NewRedis(cfg.redis.addr, cfg.redis.password, cfg.redis.db)
		if err != nil {
			logger.Fatal(err)
		}
		defer rdb.Close()
		sessionStore = auth.NewRedisSessionStore(rdb)
		logger.Infow("redis session store enabled", "addr", cfg.redis.addr)
	}
	if cfg.session.secret == "" {
		logger.Warn("SESSION_SECRET is not set, sign-in will not establish sessions")
	}
	sessions := auth.NewSessionManager(cfg.session.secret, cfg.session.iss, cfg.session.ttl, sessionStore)

	// Google sign-in
	if len(cfg.auth.googleClientIDs) == 0 {
		logger.Warn("GOOGLE_CLIENT_ID is not set, sign-in will report server_misconfigured")
	}
	verifier, err := auth.NewGoogleVerifier(context.Background(), cfg.auth.googleClientIDs)
	if err != nil {
		logger.Fatal(err)
	}

	// Rate limiter
	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)
	stop := make(chan struct{})
	defer close(stop)
	go rateLimiter.Run(stop)

	app := &application{
		config:      cfg,
		logger:      logger,
		store:       store,
		login:       auth.NewLoginService(verifier, store.Users),
		sessions:    sessions,
		rateLimiter: rateLimiter,
	}

	//Metrics collected http://localhost:3000/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		st := pool.Stat()
		return map[string]int32{
			"total_conns":    st.TotalConns(),
			"idle_conns":     st.IdleConns(),
			"acquired_conns": st.AcquiredConns(),
			"max_conns":      st.MaxConns(),
		}
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
