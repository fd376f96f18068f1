// Description: This is the main file of the ftp server
// It loads the configuration, builds the user directory and starts the ftp
// server, with the optional sftp frontend and the admin http server next to
// it. SIGINT shuts everything down.

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lmittmann/tint"
	"github.com/telebroad/ftpd/config"
	"github.com/telebroad/ftpd/ftp"
	"github.com/telebroad/ftpd/httphandler"
	"github.com/telebroad/ftpd/sftp"
	"github.com/telebroad/ftpd/users"
)

func main() {
	configPath := flag.String("config", os.Getenv("FTPD_CONFIG"), "path to the TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading configuration:", err)
		os.Exit(1)
	}

	// setting up the slog logger
	logger := setupLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	u := GetUsers(logger, cfg)

	// ftp server
	ftpServer, err := ftp.NewServer(cfg.FTPAddr(), u)
	if err != nil {
		logger.Error("error creating ftp server", "error", err)
		os.Exit(1)
	}
	ftpServer.SetLogger(logger.With("module", "ftp-server"))
	ftpServer.ControlTimeout = cfg.ControlTimeout()
	ftpServer.DataTimeout = cfg.DataTimeout()

	err = ftpServer.TryListenAndServe(time.Second)
	if err != nil {
		logger.Error("error starting ftp server", "error", err)
		os.Exit(1)
	}
	logger.Info("FTP server started", "addr", cfg.FTPAddr())

	// sftp server
	var sftpServer *sftp.Server
	if cfg.Server.SFTPAddr != "" {
		sftpServer = sftp.NewSFTPServer(cfg.Server.SFTPAddr, u)
		sftpServer.SetLogger(logger.With("module", "sftp-server"))
		err = sftpServer.TryListenAndServe(time.Second)
		if err != nil {
			logger.Error("error starting sftp server", "error", err)
			os.Exit(1)
		}
		logger.Info("SFTP server started", "addr", cfg.Server.SFTPAddr)
	}

	// admin http server, metrics and health
	if cfg.Server.MetricsAddr != "" {
		adminServer := httphandler.NewAdminServer(cfg.Server.MetricsAddr)
		err = adminServer.TryListenAndServe(time.Second)
		if err != nil {
			logger.Error("error starting admin server", "error", err)
			os.Exit(1)
		}
		logger.Info("admin server started", "addr", cfg.Server.MetricsAddr)
	}

	// graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt)

	<-stopChan
	ftpServer.Close(fmt.Errorf("ftp server closed by signal"))
	if sftpServer != nil {
		sftpServer.Close()
	}
}

func setupLogger(level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "DEBUG", "debug":
		logLevel = slog.LevelDebug
	case "INFO", "info":
		logLevel = slog.LevelInfo
	case "WARN", "warn":
		logLevel = slog.LevelWarn
	case "ERROR", "error":
		logLevel = slog.LevelError
	}

	handlerOptions := &tint.Options{
		AddSource: true,
		Level:     logLevel,
	}

	handler := tint.NewHandler(os.Stdout, handlerOptions)

	logger := slog.New(handler).With("app", "ftpd")
	logger.Info("Logger initialized", "level", logLevel)

	return logger
}

// GetUsers builds the user directory from the configuration.
func GetUsers(logger *slog.Logger, cfg *config.Config) users.Users {
	store := users.NewLocalUsers()
	for name, user := range cfg.Users {
		store.Add(name, user.Password, user.Directory)
		logger.Info("registered user", "username", name, "root", user.Directory)
	}
	return store
}
