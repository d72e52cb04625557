package cmd

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swaptrade/swaptrade/x/swap/keeper"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve Prometheus metrics and a read-only state summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, err := homeDir(cmd)
			if err != nil {
				return err
			}

			logger := newLogger()
			k, closer, err := openKeeper(home, logger)
			if err != nil {
				return err
			}
			defer closer()

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/state", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if err := json.NewEncoder(w).Encode(k.ExportGenesis()); err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
				}
			})
			mux.HandleFunc("/invariants", func(w http.ResponseWriter, _ *http.Request) {
				diag, broken := keeper.AllInvariants(k.Snapshot())
				w.Header().Set("Content-Type", "application/json")
				if broken {
					w.WriteHeader(http.StatusServiceUnavailable)
				}
				json.NewEncoder(w).Encode(map[string]any{
					"broken":     broken,
					"diagnostic": diag,
				})
			})

			addr := cast.ToString(viper.Get("listen_addr"))
			server := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}
			logger.Info("serving metrics and state summary", "addr", addr)
			return server.ListenAndServe()
		},
	}
}
