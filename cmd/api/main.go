package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/booking"
	server "hotel_booking/internal/adapters/http_server"
	memcachead "hotel_booking/internal/adapters/memcache"
	"hotel_booking/internal/adapters/observability"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	observability.Serve(cfg.MetricsAddr)

	// deps
	client, err := booking.New(cfg.BookingBase, cfg.BookingToken, cfg.BookingRPS, cfg.BookingTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize booking client")
	}
	cache, closeCache := openCache(ctx, cfg)
	defer closeCache()

	q := app.NewQueryService(client, cache, cfg.CacheTTL)
	p := app.NewPipeline(q)

	// http
	srv := server.New(cfg.CORSOrigins)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Pipeline:     p,
		Home:         app.NewHomeService(p),
		Detail:       app.NewDetailService(q),
		Reviews:      app.NewReviewService(client, q),
		Registration: app.NewRegistrationService(client),
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("backend", cfg.BookingBase).
		Str("cache", cfg.CacheBackend).
		Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

// openCache picks the shared cache tier. An unreachable cache is not fatal:
// the gateway falls back to calling the backend directly.
func openCache(ctx context.Context, cfg shared.Config) (domain.Cache, func()) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	switch cfg.CacheBackend {
	case "redis":
		c := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB).WithLocal(cfg.LocalCacheSize)
		if err := c.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, caching disabled")
			_ = c.Close()
			return nil, func() {}
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache ok")
		return c, func() { _ = c.Close() }
	case "memcached":
		c := memcachead.New(cfg.MemcachedAddrs...).WithLocal(cfg.LocalCacheSize)
		if err := c.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Strs("addrs", cfg.MemcachedAddrs).Msg("memcached unreachable, caching disabled")
			_ = c.Close()
			return nil, func() {}
		}
		log.Info().Strs("addrs", cfg.MemcachedAddrs).Msg("memcached cache ok")
		return c, func() { _ = c.Close() }
	}
	return nil, func() {}
}
