package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"scoreservice/internal/api/handler"
	"scoreservice/internal/datastore"
	"scoreservice/internal/interfaces"
	"scoreservice/internal/pkg/caching"
	"scoreservice/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/hiendaovinh/toolkit/pkg/limiter"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

type Options struct {
	Addr               string
	Mode               string
	Origins            []string
	ScoresFile         string
	ScoresDSN          string
	ScoresDBPassword   string
	NormalizeStored    bool
	RedisCache         string
	ClusterRedisCache  string
	RedisLimiter       string
	RateLimitPerMinute int
}

func main() {
	app := &cli.App{
		Name:  "api",
		Usage: "read-only score query service",
		Commands: []*cli.Command{
			commandServer(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandServer() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "start the web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   "127.0.0.1:5001",
				Usage:   "serve address",
				EnvVars: []string{"API_ADDR"},
			},
			&cli.StringFlag{
				Name:    "mode",
				Value:   services.SERVER_MODE_PRODUCTION,
				Usage:   "production or debug",
				EnvVars: []string{"API_MODE"},
			},
			&cli.StringFlag{
				Name:    "origins",
				Value:   "*",
				Usage:   "comma separated CORS origins",
				EnvVars: []string{"API_ORIGINS"},
			},
			&cli.StringFlag{
				Name:    "data",
				Value:   services.DEFAULT_SCORES_FILE,
				Usage:   "JSON file holding the scores",
				EnvVars: []string{"SCORES_FILE"},
			},
			&cli.StringFlag{
				Name:    "dsn",
				Usage:   "load scores from this postgres DSN instead of the JSON file",
				EnvVars: []string{"SCORES_DSN"},
			},
			&cli.StringFlag{
				Name:    "db-password",
				Usage:   "postgres password, overrides the one in --dsn",
				EnvVars: []string{"DB_PASSWORD"},
			},
			&cli.BoolFlag{
				Name:    "normalize-stored",
				Usage:   "rewrite stored modes such as \"easy\" to their canonical value at startup",
				EnvVars: []string{"SCORES_NORMALIZE_STORED"},
			},
			&cli.StringFlag{
				Name:    "redis-cache",
				Usage:   "redis URL for the shared result cache",
				EnvVars: []string{"REDIS_CACHE"},
			},
			&cli.StringFlag{
				Name:    "cluster-redis-cache",
				Usage:   "redis cluster URL for the shared result cache, wins over --redis-cache",
				EnvVars: []string{"CLUSTER_REDIS_CACHE"},
			},
			&cli.StringFlag{
				Name:    "redis-limiter",
				Usage:   "redis URL for rate limiting, disabled when empty",
				EnvVars: []string{"REDIS_LIMITER"},
			},
			&cli.IntFlag{
				Name:    "rate-limit",
				Value:   services.DEFAULT_RATE_LIMIT_PER_MINUTE,
				Usage:   "requests per minute per client IP",
				EnvVars: []string{"RATE_LIMIT_PER_MINUTE"},
			},
		},
		Action: func(c *cli.Context) error {
			opts := &Options{
				Addr:               c.String("addr"),
				Mode:               c.String("mode"),
				ScoresFile:         c.String("data"),
				ScoresDSN:          c.String("dsn"),
				ScoresDBPassword:   c.String("db-password"),
				NormalizeStored:    c.Bool("normalize-stored"),
				RedisCache:         c.String("redis-cache"),
				ClusterRedisCache:  c.String("cluster-redis-cache"),
				RedisLimiter:       c.String("redis-limiter"),
				RateLimitPerMinute: c.Int("rate-limit"),
				Origins:            parseOrigins(c.String("origins")),
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			container := NewContainer(ctx, opts)
			defer container.Shutdown() //nolint:errcheck

			// load once before serving
			if _, err := do.Invoke[*datastore.ScoreCollection](container); err != nil {
				return err
			}

			router, err := handler.New(&handler.Config{
				Container:          container,
				Mode:               opts.Mode,
				Origins:            opts.Origins,
				RateLimitPerMinute: opts.RateLimitPerMinute,
			})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:    opts.Addr,
				Handler: router,
			}

			errWg, errCtx := errgroup.WithContext(ctx)

			errWg.Go(func() error {
				log.Printf("ListenAndServe: %s (%s)\n", opts.Addr, opts.Mode)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			})

			errWg.Go(func() error {
				<-errCtx.Done()
				return srv.Shutdown(context.TODO())
			})

			return errWg.Wait()
		},
	}
}

func NewContainer(ctx context.Context, opts *Options) *do.Injector {
	injector := do.New()

	do.Provide(injector, func(i *do.Injector) (*datastore.ScoreCollection, error) {
		var scores *datastore.ScoreCollection
		if opts.ScoresDSN != "" {
			pg := datastore.OpenPostgres(opts.ScoresDSN, opts.ScoresDBPassword)
			defer pg.Close()

			scores = datastore.LoadScoresPostgres(ctx, pg)
		} else {
			scores = datastore.LoadScoresFile(opts.ScoresFile)
		}

		if opts.NormalizeStored {
			scores = scores.WithNormalizedModes()
		}
		return scores, nil
	})

	if opts.RedisCache != "" || opts.ClusterRedisCache != "" {
		do.ProvideNamed(injector, "redis-cache", func(i *do.Injector) (redis.UniversalClient, error) {
			return newRedisCacheClient(opts)
		})
	}

	if opts.RedisLimiter != "" {
		do.ProvideNamed(injector, "redis-limiter", func(i *do.Injector) (*redis.Client, error) {
			return db.InitRedis(&db.RedisConfig{
				URL: opts.RedisLimiter,
			})
		})

		do.Provide(injector, func(i *do.Injector) (interfaces.Limiter, error) {
			dbRedis, err := do.InvokeNamed[*redis.Client](i, "redis-limiter")
			if err != nil {
				return nil, err
			}

			return limiter.NewLimiter(dbRedis)
		})
	}

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		// without redis the cache stays in process
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-cache")
		if err != nil {
			if opts.RedisCache != "" || opts.ClusterRedisCache != "" {
				log.Printf("[cache] redis unavailable: %v (using local cache only)\n", err)
			}
			return caching.NewCacheRedis(nil, true)
		}

		return caching.NewCacheRedis(dbRedis, true)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceScore, error) {
		return services.NewServiceScore(i)
	})

	return injector
}

func newRedisCacheClient(opts *Options) (redis.UniversalClient, error) {
	if opts.ClusterRedisCache != "" {
		clusterOpts, err := redis.ParseClusterURL(opts.ClusterRedisCache)
		if err != nil {
			return nil, err
		}
		return redis.NewClusterClient(clusterOpts), nil
	}

	client, err := db.InitRedis(&db.RedisConfig{
		URL: opts.RedisCache,
	})
	if err != nil {
		if client != nil {
			//nolint:errcheck
			client.Close()
		}
		return nil, err
	}
	return client, nil
}

func parseOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{"*"}
	}
	return strings.Split(raw, ",")
}
