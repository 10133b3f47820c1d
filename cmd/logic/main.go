// Command logic controls the Saleae Logic software over its scripting
// socket.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logic "github.com/storborg/gologic"
)

var cmd = &cobra.Command{
	Use:           "logic",
	Short:         "Control the Saleae Logic software over its scripting socket",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cmd.PersistentFlags().String("addr", logic.DefaultAddr, "Scripting socket address")
	cmd.PersistentFlags().Duration("timeout", time.Minute, "Timeout for a single invocation")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// newLogger builds the logger for a single invocation. Debug logging of
// socket traffic is only enabled with --verbose.
func newLogger(cmd *cobra.Command) *zap.Logger {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		panic(err)
	}
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}

// dial connects to the software using the persistent flags. The returned
// done function closes the connection and releases the invocation context.
func dial(cmd *cobra.Command) (cli *logic.Client, ctx context.Context, done func(), err error) {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		panic(err)
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		panic(err)
	}

	ctx = context.Background()
	cancel := func() {}
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}

	cli, err = logic.DialContext(ctx, addr, logic.WithLogger(newLogger(cmd).Named("client")))
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return cli, ctx, func() {
		_ = cli.Close()
		cancel()
	}, nil
}

// run wraps a subcommand body with the shared exit handling.
func run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := fn(cmd, args); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
