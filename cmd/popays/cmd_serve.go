package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/popays/backend/app/bot"
	"github.com/popays/backend/app/catalog"
	"github.com/popays/backend/app/controllers"
	"github.com/popays/backend/app/repositories"
	"github.com/popays/backend/app/routes"
	"github.com/popays/backend/app/services"
	"github.com/popays/backend/config"
	"github.com/popays/backend/pkg/database"
	"github.com/popays/backend/pkg/logger"
	"github.com/popays/backend/pkg/migration"
	"github.com/popays/backend/pkg/router"
	"github.com/popays/backend/pkg/storage"
	"github.com/popays/backend/pkg/telegram"
)

// popays serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook receiver, catalogue API and admin bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// popays route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger.Setup(cfg.AppEnv, nil)

		r := router.New()
		routes.Register(r, cfg,
			controllers.NewWebhookController(nil, cfg.MaxBodyBytes),
			controllers.NewCatalogController(nil),
		)

		table := r.Routes()
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tPATH")
		for _, name := range names {
			fmt.Fprintf(w, "%s\t%s\n", name, table[name])
		}
		return w.Flush()
	},
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Optional MongoDB log sink, fanned out next to stdout.
	var sinkCloser func()
	if cfg.LogMongoURI != "" {
		sink, err := logger.NewMongoSink(cfg.LogMongoURI, cfg.LogMongoDB, cfg.LogMongoCollection)
		if err != nil {
			return err
		}
		sinkCloser = sink.Close
		logger.Setup(cfg.AppEnv, sink)
	} else {
		logger.Setup(cfg.AppEnv, nil)
	}
	if sinkCloser != nil {
		defer sinkCloser()
	}

	db, err := database.Connect(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	if err := migration.New(db).Run(); err != nil {
		return err
	}

	disks, err := storage.NewManager(storage.Options{
		Default:    cfg.StorageDisk,
		LocalRoot:  cfg.StorageLocalRoot,
		LocalURL:   cfg.StorageURL,
		S3Bucket:   cfg.S3Bucket,
		S3Region:   cfg.S3Region,
		S3Key:      cfg.S3Key,
		S3Secret:   cfg.S3Secret,
		S3Endpoint: cfg.S3Endpoint,
		S3URL:      cfg.S3URL,
	})
	if err != nil {
		return err
	}

	orders := repositories.NewOrderRepository(db)
	messages := repositories.NewMessageRepository(db)
	products := repositories.NewProductRepository(db)
	categories := repositories.NewCategoryRepository(db)

	var cat catalog.Catalog
	switch cfg.CatalogBackend {
	case "file":
		cat = catalog.NewFile(disks.Default(), cfg.ProductsFile, cfg.CategoriesFile)
	case "db", "":
		cat = catalog.NewDB(products, categories)
	default:
		return fmt.Errorf("unknown CATALOG_BACKEND %q", cfg.CatalogBackend)
	}

	stats := services.NewStatsService(orders, messages, cat)

	// The bot is optional: without a token the receiver still persists
	// everything, records just stay unnotified.
	var notifier services.Notifier
	var adminBot *bot.Bot
	if cfg.BotToken != "" && cfg.AdminChatID != "" {
		client := telegram.NewClient(cfg.BotToken, cfg.TelegramAPIURL)
		adminBot, err = bot.New(cfg, client, stats, cat)
		if err != nil {
			return err
		}
		notifier = adminBot
	} else {
		logger.Warn("bot disabled: BOT_TOKEN or ADMIN_CHAT_ID not set")
	}

	intake := services.NewIntakeService(cfg, orders, messages, notifier)

	r := router.New()
	routes.Register(r, cfg,
		controllers.NewWebhookController(intake, cfg.MaxBodyBytes),
		controllers.NewCatalogController(cat),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      r.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if adminBot != nil {
		poller := telegram.NewPoller(telegram.NewClient(cfg.BotToken, cfg.TelegramAPIURL), adminBot)
		g.Go(func() error {
			if err := poller.Run(gctx); errors.Is(err, context.Canceled) {
				return nil
			} else if err != nil {
				return err
			}
			return nil
		})

		// Drain alerts that never went out before the last shutdown.
		g.Go(func() error {
			if err := intake.NotifyUnnotified(gctx); err != nil {
				logger.Warn("reconciliation failed", "error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
