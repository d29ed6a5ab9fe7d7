package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jverel/darkroom/internal/server"
	"github.com/jverel/darkroom/pkg/studio"
)

// serveCommand creates the HTTP workspace server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		imports []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP workspace API",
		Long: `Run a darkroom workspace as an HTTP API.

The server owns one in-memory workspace: import images, crop, mark,
undo/redo, and call the edit service over HTTP. State lives for the
lifetime of the process. Use --import to preload images at startup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			registry := studio.NewRegistry()
			if len(imports) > 0 {
				assets, errs := registry.ImportFiles(ctx, imports)
				for _, err := range errs {
					c.Logger.Warn("skipped import", "err", err)
				}
				c.Logger.Info("preloaded workspace", "assets", len(assets))
			}

			var editor server.Editor
			if c.Config.Service.URL != "" {
				client, err := c.newEditClient(ctx, noCache)
				if err != nil {
					c.Logger.Warn("edit service disabled", "err", err)
				} else {
					editor = client
				}
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(registry, editor, c.Logger).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			c.Logger.Info("listening", "addr", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:8470", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the edit result cache")
	cmd.Flags().StringArrayVar(&imports, "import", nil, "image to preload (repeatable)")

	return cmd
}
