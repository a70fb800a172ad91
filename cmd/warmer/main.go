package main

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_booking/internal/adapters/booking"
	memcachead "hotel_booking/internal/adapters/memcache"
	"hotel_booking/internal/adapters/observability"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("base", cfg.BookingBase).
		Str("cache", cfg.CacheBackend).
		Int("workers", cfg.Workers).
		Msg("warmer starting")

	var cache domain.Cache
	switch cfg.CacheBackend {
	case "redis":
		c := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := c.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("redis ping failed")
		}
		defer c.Close()
		cache = c
	case "memcached":
		c := memcachead.New(cfg.MemcachedAddrs...)
		if err := c.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("memcached ping failed")
		}
		cache = c
	default:
		log.Fatal().Msg("warmer needs CACHE_BACKEND=redis or memcached")
	}
	log.Info().Msg("cache ping ok")

	client, err := booking.New(cfg.BookingBase, cfg.BookingToken, cfg.BookingRPS, cfg.BookingTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize booking client")
	}
	// nobody waits on the warmer, so transient backend errors are worth retrying
	warm := app.NewWarmService(app.NewQueryService(client.WithRetries(3), cache, cfg.CacheTTL))

	hotels, err := warm.Hotels(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list hotels failed")
	}

	sem := semaphore.NewWeighted(int64(max(1, cfg.Workers)))
	var (
		wg     sync.WaitGroup
		failed atomic.Int64
	)
	for _, h := range hotels {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(h domain.HotelRecord) {
			defer wg.Done()
			defer sem.Release(1)

			if err := warm.WarmHotel(ctx, h); err != nil {
				failed.Add(1)
				log.Warn().Int64("id", h.HotelID).Err(err).Msg("warm failed")
				return
			}
			log.Debug().Int64("id", h.HotelID).Msg("warm ok")
		}(h)
	}

	wg.Wait()
	log.Info().
		Int("hotels", len(hotels)).
		Int64("failed", failed.Load()).
		Msg("warm-up completed")
}
