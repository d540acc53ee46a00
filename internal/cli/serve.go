package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/internal/server"
	"github.com/yaklabco/gomdparse/pkg/config"
)

type serveFlags struct {
	addr         string
	maxBodyBytes int64
}

func newServeCommand(globals *globalFlags) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Long: `Start an HTTP server exposing the parser:

  GET  /health        liveness check
  GET  /v1/parsers    block and inline parser order
  POST /v1/parse      Markdown body in, JSON document out
  POST /v1/render     Markdown body in, ?format=html|text|markdown|json out

The server stops cleanly on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default "+config.DefaultServeAddr+")")
	cmd.Flags().Int64Var(&flags.maxBodyBytes, "max-body-bytes", 0, "largest accepted request body in bytes")

	return cmd
}

func runServe(cmd *cobra.Command, globals *globalFlags, flags *serveFlags) error {
	overrides := &config.Config{}
	if cmd.Flags().Changed("addr") {
		overrides.Serve.Addr = flags.addr
	}
	if cmd.Flags().Changed("max-body-bytes") {
		if flags.maxBodyBytes <= 0 {
			return fmt.Errorf("%w: --max-body-bytes must be positive", ErrInvalidUsage)
		}
		overrides.Serve.MaxBodyBytes = flags.maxBodyBytes
	}

	sess, err := newSession(cmd, globals, overrides)
	if err != nil {
		return err
	}

	p, err := sess.parser()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(sess.ctx)
	defer stop()

	sess.logger.Info("starting server", logging.FieldAddr, sess.cfg.Serve.Addr)

	err = server.Run(ctx, server.Options{
		Addr:         sess.cfg.Serve.Addr,
		MaxBodyBytes: sess.cfg.Serve.MaxBodyBytes,
		Parser:       p,
		HTML:         sess.htmlOptions(),
		Logger:       sess.logger,
	}, nil)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	sess.logger.Info("server stopped")
	return nil
}
