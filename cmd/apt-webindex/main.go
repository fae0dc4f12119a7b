package main

import (
	"os"

	"github.com/debamax/apt-webindex/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	// Setup logging format; logs go to stderr, never into the page.
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
