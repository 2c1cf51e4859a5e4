package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokeapi"
	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokecache"
	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokedex"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	upstream := flag.String("upstream", pokeapi.DefaultBaseURL, "PokeAPI base URL")
	ttl := flag.Duration("ttl", pokecache.DefaultTTL, "Cache entry time-to-live")
	maxEntries := flag.Int("max-entries", pokecache.DefaultMaxEntries, "Cache capacity in entries")
	fetchTimeout := flag.Duration("fetch-timeout", 10*time.Second, "Upstream request timeout")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cache := pokecache.New[pokedex.Pokemon](pokecache.Config{
		TTL:        *ttl,
		MaxEntries: *maxEntries,
	})

	client := pokeapi.NewClient(*upstream, &http.Client{Timeout: *fetchTimeout})
	service := pokedex.NewService(client, cache, logger)

	api := &apiServer{service: service, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pokemon/{name}", api.handlePokemon)
	mux.HandleFunc("GET /api/cache", api.handleCacheStats)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h2s := &http2.Server{}
	server := &http.Server{
		Addr:         *addr,
		Handler:      h2c.NewHandler(requestLogging(logger, mux), h2s),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		logger.Info("pokedexd listening", "addr", server.Addr, "upstream", *upstream,
			"ttl", ttl.String(), "max_entries", *maxEntries)
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve error", "err", err)
		}
	}()

	waitForShutdown(server, cache, 5*time.Second)
}
