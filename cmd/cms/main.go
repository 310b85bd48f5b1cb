package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fonovalabs/fonova-web/config"
	"github.com/fonovalabs/fonova-web/internal/bootstrap"
	"github.com/fonovalabs/fonova-web/internal/cms/client"
	"github.com/fonovalabs/fonova-web/internal/cms/console"
	"github.com/fonovalabs/fonova-web/internal/cms/session"
	"golang.org/x/term"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// keep backend call logs out of the interactive output unless asked for
	if cfg.App.LogLevel != "debug" {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "session store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	api := client.New(cfg.CMS.APIBaseURL, cfg.CMS.HTTPTimeout)
	sess := session.NewController(api, store, session.Options{ConfirmDelay: cfg.CMS.ConfirmDelay})
	if err := sess.Restore(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "could not restore session: %v\n", err)
	}

	dash := console.NewDashboard(sess, api)

	var opts []console.Option
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		opts = append(opts, console.WithPasswordReader(func() (string, error) {
			pw, err := term.ReadPassword(fd)
			fmt.Println()
			return string(pw), err
		}))
	}

	fmt.Printf("Fonova CMS (%s), type help for commands\n", api.BaseURL())
	con := console.New(sess, dash, os.Stdin, os.Stdout, opts...)
	if err := con.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "console: %v\n", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	switch cfg.CMS.SessionStore {
	case config.SessionStoreMemory:
		return session.NewMemoryStore(), func() {}, nil
	case config.SessionStoreRedis:
		rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(rdb, ""), func() { _ = rdb.Close() }, nil
	default:
		return session.NewFileStore(cfg.CMS.SessionFile), func() {}, nil
	}
}
