package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fonovalabs/fonova-web/config"
	"github.com/fonovalabs/fonova-web/internal/bootstrap"
	"github.com/fonovalabs/fonova-web/internal/cms/client"
	"github.com/fonovalabs/fonova-web/internal/cms/domain"
	"github.com/fonovalabs/fonova-web/internal/site/content"
	"github.com/fonovalabs/fonova-web/internal/site/feed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	doc, err := content.Load(cfg.Site.Brand, cfg.Site.ContentFile)
	if err != nil {
		log.Fatalf("Failed to load site content: %v", err)
	}

	var cache feed.Cache = feed.NewMemoryCache()
	if cfg.Redis.Enabled() {
		rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("Warning: Redis unavailable, caching feed in memory: %v", err)
		} else {
			defer rdb.Close()
			cache = feed.NewRedisCache(rdb)
			log.Printf("Feed cache: redis at %s", cfg.Redis.Addr)
		}
	}

	api := client.New(cfg.CMS.APIBaseURL, cfg.CMS.HTTPTimeout)
	f := feed.New(
		client.NewResource[domain.Testimonial](api, client.TestimonialsPath),
		client.NewResource[domain.Project](api, client.ProjectsPath),
		cache, doc.PublishedTestimonials(), feed.DefaultTTL)

	scheduler, err := feed.NewScheduler(f, cfg.Site.FeedCron)
	if err != nil {
		log.Fatalf("Invalid FEED_REFRESH_CRON %q: %v", cfg.Site.FeedCron, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "fonova-site",
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Content:        doc,
		Feed:           f,
		Quotes:         api,
		QuotePerMin:    cfg.Quote.RatePerMinute,
		MaxUploadMB:    cfg.Quote.MaxUploadMB,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Site API (%s) listening on :%s, backend %s", doc.Brand, cfg.Server.Port, api.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
