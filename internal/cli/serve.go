package cli

import (
	"github.com/spf13/cobra"

	"github.com/lexcloud/lexcloud/internal/server"
	"github.com/lexcloud/lexcloud/pkg/pipeline"
)

// newServeCmd creates the serve command for running the HTTP API.
func newServeCmd(cfg *Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the lexcloud HTTP API",
		Long:  `Serve runs the HTTP API: POST /v1/clouds computes a cloud from inline text and GET /v1/clouds/{id}.{format} re-renders it. Layouts are stored in the configured cache backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if addr == "" {
				addr = cfg.Server.Addr
			}

			store, err := openCache(ctx, cfg)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, nil, logger)
			defer runner.Close()

			srv := server.New(runner, store, logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then :8080)")
	return cmd
}
