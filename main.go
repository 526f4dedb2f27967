package main

import (
	"os"

	_ "ovnup/cmd"
	"ovnup/cmd/root"
	"ovnup/internal/config"
	"ovnup/internal/logger"
)

func main() {
	// server mode additionally logs to the console
	isServerMode := len(os.Args) > 1 && os.Args[1] == "server"

	if isServerMode {
		logger.InitLoggerWithMode(&config.Config.Log, true)
	} else {
		logger.InitLoggerWithMode(&config.Config.Log, false)
	}

	if err := root.RootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
	os.Exit(0)
}
