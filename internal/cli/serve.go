// internal/cli/serve.go
package snrplot

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/snrplot/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd runs the HTTP viewer until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive plot over HTTP with a live selection channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		r, err := loadRenderer(cfg)
		if err != nil {
			return err
		}
		srv, err := server.New(r, server.Options{Sync: cfg.Sync})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := cfg.ListenAddr()
		cmd.Printf("Viewer at http://%s/\n", displayAddr(addr))
		return srv.Run(ctx, addr, cfg.ShutdownTimeoutDuration())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Bool("sync", false, "broadcast every selection to all connected viewers")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("sync", serveCmd.Flags().Lookup("sync"))
}

// displayAddr turns a bare ":port" listen address into something clickable.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
