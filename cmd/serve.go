package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveWeb  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard locally",
	Long: `Serves the static frontend and the generated data directory over HTTP
for local preview. Production deployments publish the same files as a
static site; this server adds nothing beyond file serving.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8000", "listen address")
	serveCmd.Flags().StringVar(&serveWeb, "web", "web", "path to the frontend directory")
}

func runServe(cmd *cobra.Command, args []string) error {
	r := mux.NewRouter()
	r.PathPrefix("/data/").Handler(
		http.StripPrefix("/data/", http.FileServer(http.Dir(dataDir))))
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(serveWeb)))

	srv := &http.Server{
		Addr:         serveAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	fmt.Printf("Serving %s and %s on http://localhost%s\n", serveWeb, dataDir, serveAddr)
	return srv.ListenAndServe()
}
