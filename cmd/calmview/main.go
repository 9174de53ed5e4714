package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/calmview/calmview/internal/api"
	"github.com/calmview/calmview/internal/clock"
	"github.com/calmview/calmview/internal/face"
	"github.com/calmview/calmview/internal/version"
)

var (
	listen      = flag.String("listen", ":8080", "Listen address")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("calmview %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		os.Exit(0)
	}

	clk := clock.Real{}
	analyzer := face.NewAnalyzer(clk)
	server := api.NewServer(analyzer, clk)

	log.Printf("calmview %s listening on %s", version.Version, *listen)
	if err := http.ListenAndServe(*listen, api.LoggingMiddleware(server.ServeMux())); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
