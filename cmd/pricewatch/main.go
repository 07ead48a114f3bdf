package main

import (
	"os"

	"pricewatch/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
