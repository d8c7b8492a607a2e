package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/dendrascience/assetmin/internal/cmd"
	"github.com/dendrascience/assetmin/version"
)

func main() {
	if err := fang.Execute(context.Background(), cmd.NewRootCmd(), fang.WithVersion(version.GetFullVersion())); err != nil {
		os.Exit(1)
	}
}
