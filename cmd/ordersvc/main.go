package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ahinestrog/bookorders/api/handlers"
	"github.com/ahinestrog/bookorders/internal/cart"
	"github.com/ahinestrog/bookorders/internal/catalog"
	"github.com/ahinestrog/bookorders/internal/checkout"
	"github.com/ahinestrog/bookorders/internal/config"
	"github.com/ahinestrog/bookorders/internal/events"
	"github.com/ahinestrog/bookorders/internal/order"
	"github.com/ahinestrog/bookorders/internal/store"
	"github.com/ahinestrog/bookorders/internal/user"
)

const shutdownGrace = 5 * time.Second

func main() {
	// Logger
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := config.Load()
	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("db", cfg.DBPath).
		Str("rabbit", cfg.RabbitURL).
		Msg("starting order service")

	db, err := store.Open(cfg.DBPath)
	must(err)
	defer db.Close()
	must(store.Migrate(context.Background(), db))
	if cfg.SeedOnStart {
		must(store.Seed(context.Background(), db))
		log.Info().Msg("seeded catalog")
	}

	// Rabbit is optional: without a broker the service still takes orders,
	// it just publishes nothing.
	var pub events.Publisher
	if cfg.RabbitURL != "" {
		rabbit, err := events.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			log.Warn().Err(err).Msg("rabbit unavailable, events disabled")
		} else {
			defer rabbit.Close()
			pub = rabbit
		}
	}

	books, err := catalog.NewCachedRepo(catalog.NewSQLiteRepo(db), 256)
	must(err)
	carts := cart.NewService(cart.NewSQLiteRepo(db), books)
	users := user.NewService(user.NewRepository(db), pub)
	orders := order.NewSQLiteRepo(db)
	coordinator := checkout.NewCoordinator(carts, users, orders, pub, log.Logger)

	router := handlers.NewRouter(
		users,
		handlers.NewUserHandler(users),
		handlers.NewCatalogHandler(books),
		handlers.NewCartHandler(carts),
		handlers.NewOrderHandler(coordinator),
	)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: cors.Default().Handler(router),
	}

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Warn().Msg("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Info().Msg("HTTP listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("serve")
	}
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}
