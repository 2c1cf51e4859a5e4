package pokedex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokeapi"
	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokecache"
)

const pikachuJSON = `{
	"id": 25,
	"name": "pikachu",
	"height": 4,
	"weight": 60,
	"types": [{"slot": 1, "type": {"name": "electric", "url": ""}}],
	"stats": [
		{"base_stat": 35, "effort": 0, "stat": {"name": "hp", "url": ""}},
		{"base_stat": 55, "effort": 0, "stat": {"name": "attack", "url": ""}},
		{"base_stat": 90, "effort": 2, "stat": {"name": "speed", "url": ""}}
	],
	"abilities": [
		{"ability": {"name": "static", "url": ""}, "is_hidden": false, "slot": 1},
		{"ability": {"name": "lightning-rod", "url": ""}, "is_hidden": true, "slot": 3}
	],
	"sprites": {"front_default": "https://img/pikachu.png", "other": {"official-artwork": {"front_default": "https://img/pikachu-hd.png"}}}
}`

const pikachuSpeciesJSON = `{
	"flavor_text_entries": [
		{"flavor_text": "When several of\nthese POKeMON\fgather, their\nelectricity could\nbuild and cause\nlightning storms.", "language": {"name": "en", "url": ""}, "version": {"name": "red", "url": ""}}
	]
}`

// fakeUpstream serves pikachu fixtures and counts hits per path.
type fakeUpstream struct {
	srv *httptest.Server

	mu   sync.Mutex
	hits map[string]int

	speciesMissing bool
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()

	f := &fakeUpstream{hits: make(map[string]int)}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		f.mu.Unlock()

		switch r.URL.Path {
		case "/pokemon/pikachu":
			w.Write([]byte(pikachuJSON))
		case "/pokemon-species/pikachu":
			if f.speciesMissing {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte(pikachuSpeciesJSON))
		default:
			http.NotFound(w, r)
		}
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)

	return f
}

func (f *fakeUpstream) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func newTestService(t *testing.T, upstream *fakeUpstream) *Service {
	t.Helper()

	cache := pokecache.New[Pokemon](pokecache.Config{TTL: time.Minute, MaxEntries: 10})
	t.Cleanup(cache.Close)

	client := pokeapi.NewClient(upstream.srv.URL, upstream.srv.Client())

	return NewService(client, cache, nil)
}

func TestLookupFetchesAndCaches(t *testing.T) {
	upstream := newFakeUpstream(t)
	svc := newTestService(t, upstream)
	ctx := context.Background()

	res, err := svc.Lookup(ctx, "pikachu")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if res.Cached {
		t.Fatalf("first lookup must be a miss")
	}

	p := res.Pokemon
	if p.Name != "Pikachu" {
		t.Fatalf("expected capitalized name, got %q", p.Name)
	}
	if p.Stats["speed"] != 90 || p.Stats["hp"] != 35 {
		t.Fatalf("unexpected stats map: %v", p.Stats)
	}
	if len(p.Abilities) != 2 || p.Abilities[1].Name != "lightning-rod" || !p.Abilities[1].Hidden {
		t.Fatalf("unexpected abilities: %+v", p.Abilities)
	}
	want := "When several of these POKeMON gather, their electricity could build and cause lightning storms."
	if p.Description != want {
		t.Fatalf("flavor text mismatch:\n got=%q\nwant=%q", p.Description, want)
	}
	if p.Sprite != "https://img/pikachu-hd.png" {
		t.Fatalf("unexpected sprite: %q", p.Sprite)
	}

	res, err = svc.Lookup(ctx, "pikachu")
	if err != nil {
		t.Fatalf("second Lookup error: %v", err)
	}
	if !res.Cached {
		t.Fatalf("second lookup must be served from cache")
	}

	if n := upstream.hitCount("/pokemon/pikachu"); n != 1 {
		t.Fatalf("upstream pokemon hits: got=%d want=1", n)
	}
	if n := upstream.hitCount("/pokemon-species/pikachu"); n != 1 {
		t.Fatalf("upstream species hits: got=%d want=1", n)
	}
}

func TestLookupNormalizesName(t *testing.T) {
	upstream := newFakeUpstream(t)
	svc := newTestService(t, upstream)
	ctx := context.Background()

	if _, err := svc.Lookup(ctx, "Pikachu"); err != nil {
		t.Fatalf("Lookup error: %v", err)
	}

	res, err := svc.Lookup(ctx, "  PIKACHU  ")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if !res.Cached {
		t.Fatalf("differently-cased lookup must hit the same cache slot")
	}

	if n := upstream.hitCount("/pokemon/pikachu"); n != 1 {
		t.Fatalf("upstream hits: got=%d want=1", n)
	}
}

func TestLookupInvalidName(t *testing.T) {
	upstream := newFakeUpstream(t)
	svc := newTestService(t, upstream)

	for _, name := range []string{"", "   ", "\t"} {
		if _, err := svc.Lookup(context.Background(), name); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("Lookup(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestLookupUnknownPokemon(t *testing.T) {
	upstream := newFakeUpstream(t)
	svc := newTestService(t, upstream)

	_, err := svc.Lookup(context.Background(), "missingno")
	if !errors.Is(err, pokeapi.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if svc.CacheSize() != 0 {
		t.Fatalf("failed lookups must not populate the cache")
	}
}

func TestLookupToleratesMissingSpecies(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.speciesMissing = true
	svc := newTestService(t, upstream)

	res, err := svc.Lookup(context.Background(), "pikachu")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}

	if res.Pokemon.Description != "" {
		t.Fatalf("expected empty description, got %q", res.Pokemon.Description)
	}
	if res.Pokemon.Name != "Pikachu" {
		t.Fatalf("pokemon data must survive a missing species: %+v", res.Pokemon)
	}
}

func TestLookupCoalescesConcurrentMisses(t *testing.T) {
	upstream := newFakeUpstream(t)
	svc := newTestService(t, upstream)

	const n = 8

	var wg sync.WaitGroup
	wg.Add(n)

	start := make(chan struct{})
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.Lookup(context.Background(), "pikachu")
		}(i)
	}

	close(start)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("goroutine %d: %v", i, err)
		}
	}

	// Every goroutine either hit the cache or shared the single flight.
	if n := upstream.hitCount("/pokemon/pikachu"); n != 1 {
		t.Fatalf("upstream pokemon hits: got=%d want=1", n)
	}
}
