// Command tcprobots is the process entry point: it binds a TCP listening
// socket, announces the chosen port, and pilots every connecting robot to
// the origin of the grid. There are no flags and no environment variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rifett/tcprobots/internal/protocol"
	"github.com/rifett/tcprobots/internal/server"
)

// startPort is the first port the server attempts to bind.
const startPort = 6666

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "tcprobots",
		Short:         "Pilot robot clients to the grid origin and collect their messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
}

func run(ctx context.Context) error {
	log := logrus.New()

	ln, port, err := server.Listen(startPort)
	if err != nil {
		return err
	}
	fmt.Printf("Started server on port %d\n", port)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(log, protocol.NewWriterSink(os.Stdout))
	return srv.Serve(ctx, ln)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
