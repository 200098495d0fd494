package main

import (
	"os"

	"github.com/formflow-io/formflow/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
