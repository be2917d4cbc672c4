package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"holdem-server/internal/config"
	"holdem-server/internal/mux"
	"holdem-server/pkg/actionlog"
	"holdem-server/pkg/db"
	"holdem-server/pkg/room"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	recorder, stop := setupActionLog(cfg)
	defer stop()

	dealer, err := room.NewDealer(logrus.WithField("component", "dealer"), cfg.TableOptions(), recorder)
	if err != nil {
		logrus.WithError(err).Fatal("could not create table")
	}

	dealer.StartShift()
	defer dealer.EndShift()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, dealer))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil {
		logrus.WithError(err).Error("server stopped")
	}
}

// setupActionLog returns the recorder for applied actions
// Without a configured database, actions are not persisted.
func setupActionLog(cfg config.Config) (actionlog.Recorder, func()) {
	if cfg.PGDSN == "" {
		logrus.Warn("no database configured, the action log is disabled")
		return actionlog.Discard{}, func() {}
	}

	dbh := db.Instance()
	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	w := actionlog.NewWriter(logrus.WithField("component", "actionlog"), actionlog.NewStore(dbh), cfg.ActionLog.BufferSize)
	w.Start()

	return w, w.Stop
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
