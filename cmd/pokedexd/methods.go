package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokeapi"
	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokecache"
	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokedex"
)

type apiServer struct {
	service *pokedex.Service
	logger  *slog.Logger
}

type pokemonResponse struct {
	Cached bool            `json:"cached"`
	Data   pokedex.Pokemon `json:"data"`
}

type cacheResponse struct {
	Size  int             `json:"size"`
	Stats pokecache.Stats `json:"stats"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *apiServer) handlePokemon(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	res, err := s.service.Lookup(r.Context(), name)
	switch {
	case errors.Is(err, pokedex.ErrInvalidName):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "pokemon name required"})
		return
	case errors.Is(err, pokeapi.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "pokemon not found"})
		return
	case err != nil:
		s.logger.Error("lookup failed", "name", name, "err", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream fetch failed"})
		return
	}

	writeJSON(w, http.StatusOK, pokemonResponse{Cached: res.Cached, Data: res.Pokemon})
}

func (s *apiServer) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cacheResponse{
		Size:  s.service.CacheSize(),
		Stats: s.service.CacheStats(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// waitForShutdown blocks until SIGINT/SIGTERM, drains the HTTP server and
// stops the cache's background sweep.
func waitForShutdown(s *http.Server, cache *pokecache.Cache[pokedex.Pokemon], timeout time.Duration) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_ = s.Shutdown(ctx)

	cache.Close()
}
