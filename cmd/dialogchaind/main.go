package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dialogchain-go/dialogchain/internal/connector"
	"github.com/dialogchain-go/dialogchain/internal/infra/events"
	"github.com/dialogchain-go/dialogchain/internal/infra/logging"
	"github.com/dialogchain-go/dialogchain/internal/processor"
)

func main() {
	appLogger, err := logging.New(logging.Options{
		Level:     "info",
		Component: "dialogchaind",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create application logger: %v\n", err)
		os.Exit(1)
	}

	correlationID := logging.GenerateCorrelationID()
	ctx := logging.WithCorrelationID(context.Background(), correlationID)

	eventPublisher := events.NewLoggingPublisher(appLogger.With("component", "event_publisher"))

	connMgr := connector.NewManager()
	connector.RegisterBuiltins(connMgr, appLogger.With("component", "connector"))
	procFactory := processor.NewFactory(appLogger.With("component", "processor"))

	app := &AppContext{
		Logger:      appLogger,
		Events:      eventPublisher,
		ConnMgr:     connMgr,
		ProcFactory: procFactory,
	}

	rootCmd := newRootCmd(app)
	appLogger.Info(ctx, "starting dialogchaind", "pid", os.Getpid())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
