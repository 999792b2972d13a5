package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ByLCY/tuckbox/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <box-file>",
		Short: "Serve live PNG/PDF previews of a box description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(args[0], logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				<-ctx.Done()
				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdown)
			}()

			logger.Info("serving", "addr", addr, "file", args[0])
			printKeyValue(cmd.OutOrStdout(), "preview", "http://localhost"+addr+"/preview.png")
			printKeyValue(cmd.OutOrStdout(), "pdf", "http://localhost"+addr+"/box.pdf")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
