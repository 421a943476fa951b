// Fixture site server
//
// Serves the small one-purpose pages used to exercise the browser harness
// (dialogs, frames, delayed removal, hover reveal, tables, status codes).
//
// Usage:
//
//	go run ./cmd/fixture-site -addr :7080
//	INTERNET_BASE_URL=http://localhost:7080 go test -tags=e2e ./e2e/...
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/thesyncim/theinternet/cmd/fixture-site/server"
)

func main() {
	addr := flag.String("addr", ":7080", "Listen address")
	flag.Parse()

	cfg := server.DefaultConfig()
	cfg.Addr = *addr
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	listening, err := srv.Start()
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	paths := make([]string, 0, len(server.Pages))
	for p := range server.Pages {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	fmt.Printf("Fixture Site\n")
	fmt.Printf("============\n")
	for _, p := range paths {
		fmt.Printf("  %s%s\n", srv.URL(), p)
	}
	fmt.Printf("  %s/status/{code}\n\n", srv.URL())
	log.Printf("Listening on %s", listening)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
