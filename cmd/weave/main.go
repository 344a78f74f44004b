package main

import (
	"os"

	"github.com/calebnewtonusc/webcalhacks25/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
