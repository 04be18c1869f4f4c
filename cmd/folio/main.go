package main

import (
	_ "github.com/joho/godotenv/autoload"
	"go.seanlatimer.dev/folio/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}
