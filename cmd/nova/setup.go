package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/novabrowser/nova"
	"github.com/novabrowser/nova/internal/adapters/filestore"
	"github.com/novabrowser/nova/internal/adapters/memory"
	"github.com/novabrowser/nova/internal/adapters/rediscache"
	"github.com/novabrowser/nova/internal/adapters/sqlstore"
	"github.com/novabrowser/nova/internal/config"
	"github.com/novabrowser/nova/internal/logging"
)

// loadConfig reads the config file (flag path or ~/.nova/config.yaml) and
// applies the persistent flag overrides on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return config.Default(), err
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if name, _ := cmd.Flags().GetString("theme"); name != "" {
		cfg.Theme = name
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

// buildBrowser wires a Browser from the configuration. The returned cleanup
// releases the browser and any resource it does not own itself.
func buildBrowser(cfg config.Config, logger *slog.Logger) (*nova.Browser, func(), error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		dataDir = dir
	}

	opts := []nova.Option{
		nova.WithLogger(logger),
		nova.WithTheme(cfg.Theme),
		nova.WithHome(cfg.Home),
		nova.WithSearchURL(cfg.SearchURL),
		nova.WithCacheTTL(cfg.CacheTTLDuration()),
	}
	if cfg.LibraryDir != "" {
		opts = append(opts, nova.WithLibraryDir(cfg.LibraryDir))
	}
	if cfg.Redis.Addr != "" {
		opts = append(opts, nova.WithCache(
			rediscache.New(cfg.Redis.Addr, "", cfg.Redis.DB, rediscache.WithPrefix(cfg.Redis.Prefix)),
		))
	}

	var db *sql.DB
	switch cfg.Storage {
	case "file":
		history, err := filestore.NewHistory(dataDir)
		if err != nil {
			return nil, nil, err
		}
		bookmarks, err := filestore.NewBookmarks(dataDir)
		if err != nil {
			return nil, nil, err
		}
		kv, err := filestore.NewKV(dataDir)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, nova.WithHistory(history), nova.WithBookmarks(bookmarks), nova.WithKV(kv))

	case "sqlite":
		var err error
		db, err = sqlstore.Open(dataDir)
		if err != nil {
			return nil, nil, err
		}
		history, err := sqlstore.NewHistory(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		bookmarks, err := sqlstore.NewBookmarks(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		// Stored values stay in the JSON filestore; only history and
		// bookmarks outgrow it.
		kv, err := filestore.NewKV(dataDir)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		opts = append(opts, nova.WithHistory(history), nova.WithBookmarks(bookmarks), nova.WithKV(kv))

	case "memory":
		opts = append(opts,
			nova.WithHistory(memory.NewHistory()),
			nova.WithBookmarks(memory.NewBookmarks()),
			nova.WithKV(memory.NewKV()),
		)

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q (file, sqlite or memory)", cfg.Storage)
	}

	b, err := nova.New(opts...)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		if err := b.Close(); err != nil {
			logger.Warn("close browser", "err", err)
		}
		if db != nil {
			_ = db.Close()
		}
	}
	return b, cleanup, nil
}

// mustBrowser builds the browser for a command, exiting on any setup error.
func mustBrowser(cmd *cobra.Command) (*nova.Browser, func()) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	b, cleanup, err := buildBrowser(cfg, logger)
	if err != nil {
		fmt.Printf("Error initializing nova: %v\n", err)
		os.Exit(1)
	}
	return b, cleanup
}
