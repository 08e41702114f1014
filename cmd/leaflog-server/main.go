// Command leaflog-server is the main server process that answers all client
// requests and sequences new leaf insertions into the accumulator.
package main

import (
	"flag"
	"net/http"
	"runtime"
	"time"

	"github.com/Bren2010/leaflog/db"
	"github.com/Bren2010/leaflog/tree/accumulator"
	"github.com/sirupsen/logrus"
)

var (
	// Version is set at build time with -ldflags.
	Version   = "dev"
	GoVersion = runtime.Version()

	configFile = flag.String("config", "", "Location of config file.")
)

func main() {
	flag.Parse()

	// Load config from disk.
	if *configFile == "" {
		logrus.Fatal("No config file provided, see --help.")
	}
	config, err := ReadConfig(*configFile)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config file.")
	}
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to parse log level.")
	}
	logrus.SetLevel(level)

	// Open the database and the accumulator in it.
	tx, err := db.NewLDBAccumulatorStore(config.DatabaseFile)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database.")
	}
	log, err := accumulator.Open(config.TreeName, tx)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open accumulator.")
	}
	read, err := accumulator.Open(config.TreeName, tx.Clone())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open accumulator.")
	}

	// Start the inserter thread and the metrics server.
	ch := make(chan InsertRequest)
	go inserter(log, logrus.WithField("tree", config.TreeName), ch)
	if config.MetricsAddr != "" {
		go metrics(config.MetricsAddr)
	}

	// Setup handler for the API server.
	h := &Handler{read: read, ch: ch, logger: logrus.WithField("tree", config.TreeName)}
	r := newRouter(h)

	// Setup the API server.
	srv := &http.Server{
		Addr:    config.ServerAddr,
		Handler: r,

		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	logrus.WithField("addr", config.ServerAddr).Info("Starting API server.")
	logrus.Fatal(srv.ListenAndServe())
}
