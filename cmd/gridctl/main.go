package main

import (
	"context"
	"fmt"
	"os"

	"grid-supply/internal/adapters/cli"
	"grid-supply/internal/bootstrap"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	rt, err := bootstrap.Open(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	return cli.NewRootCmd(rt.Service).ExecuteContext(ctx)
}
