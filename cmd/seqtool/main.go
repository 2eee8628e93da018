package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	uuid "github.com/satori/go.uuid"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/seqkit/internal/seqtool"
)

type Config struct {
	LogLevel logging.Level `env:"SEQTOOL_LOG_LEVEL" default:"info"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var cfg Config
	if err := env.Load(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(cli.ExitCodeBadRequest)
	}

	logger := &logging.Logger{Out: os.Stderr, Level: cfg.LogLevel}
	ctx = logging.ContextWith(ctx, logging.Field("run_id", uuid.NewV4().String()))

	cli.Main(ctx, seqtool.Command{Logger: logger})
}
