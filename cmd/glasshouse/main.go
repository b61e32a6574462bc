package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/glasshouse/internal/cli"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {

	logger := log.NewWithOptions(&lumberjack.Logger{
		Filename: "logs/glasshouse.log",
		MaxAge:   3,
	}, log.Options{
		Level:      log.InfoLevel,
		TimeFormat: "2006/01/02 15:04:05",
	})
	logger.Info("glasshouse starting")

	app := cli.NewApp(logger)
	defer func() { _ = app.Close() }()

	if err := app.Execute(); err != nil {
		logger.Error(err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		app.Close()
		os.Exit(1)
	}
}
