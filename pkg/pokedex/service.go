// Package pokedex looks Pokémon up through a bounded TTL cache, fetching
// misses from PokeAPI and reshaping them into a client-facing view model.
package pokedex

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokeapi"
	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokecache"
)

// Service answers lookups from the cache first and coalesces concurrent
// fetches for the same key so a burst of identical misses costs one
// upstream round trip.
type Service struct {
	client *pokeapi.Client
	cache  *pokecache.Cache[Pokemon]
	sf     singleflight.Group
	logger *slog.Logger
}

// Result carries the view model plus whether it was served from cache.
type Result struct {
	Pokemon Pokemon
	Cached  bool
}

func NewService(client *pokeapi.Client, cache *pokecache.Cache[Pokemon], logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// Lookup resolves name to a Pokemon, serving from cache when a live entry
// exists. On a miss it fetches the pokemon and species records
// concurrently, builds the view model and stores it under the normalized
// key. A species that the upstream does not know is tolerated; the
// description is simply empty.
func (s *Service) Lookup(ctx context.Context, name string) (Result, error) {
	key := pokecache.Normalize(name)
	if key == "" {
		return Result{}, ErrInvalidName
	}

	if p, ok := s.cache.Get(key); ok {
		return Result{Pokemon: p, Cached: true}, nil
	}

	v, err, shared := s.sf.Do(key, func() (any, error) {
		// Re-check inside the flight: a previous flight for this key may
		// have populated the cache between our miss and this call.
		if p, ok := s.cache.Get(key); ok {
			return p, nil
		}
		return s.fetch(ctx, key)
	})
	if err != nil {
		return Result{}, err
	}

	if shared {
		s.logger.Debug("coalesced upstream fetch", "key", key)
	}

	return Result{Pokemon: v.(Pokemon)}, nil
}

// CacheSize reports the current entry count for health/observability.
func (s *Service) CacheSize() int {
	return s.cache.Len()
}

// CacheStats returns the cache's monotonic counters.
func (s *Service) CacheStats() pokecache.Stats {
	return s.cache.Stats()
}

func (s *Service) fetch(ctx context.Context, key string) (Pokemon, error) {
	var (
		pokemon *pokeapi.Pokemon
		species *pokeapi.Species
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.client.Pokemon(gctx, key)
		if err != nil {
			return err
		}
		pokemon = p
		return nil
	})

	g.Go(func() error {
		sp, err := s.client.Species(gctx, key)
		if err != nil {
			// Some forms have no species record of their own.
			if errors.Is(err, pokeapi.ErrNotFound) {
				s.logger.Warn("species missing upstream", "key", key)
				return nil
			}
			return err
		}
		species = sp
		return nil
	})

	if err := g.Wait(); err != nil {
		return Pokemon{}, err
	}

	view := buildView(pokemon, species)
	s.cache.Set(key, view)

	return view, nil
}
