package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokecache"
	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokedex"
)

type Handler struct {
	client *http.Client
	addr   string
	out    io.Writer
	err    io.Writer
}

type lookupResponse struct {
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

func (h *Handler) Lookup(name string) error {
	var res lookupResponse
	if err := h.getJSON("/api/pokemon/"+name, &res); err != nil {
		fmt.Fprintln(h.err, "Lookup error:", err)
		return err
	}

	p := res.Data

	tw := tabwriter.NewWriter(h.out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\t%s (#%d)\n", p.Name, p.ID)
	fmt.Fprintf(tw, "Types\t%s\n", strings.Join(p.Types, ", "))
	fmt.Fprintf(tw, "Height\t%d\n", p.Height)
	fmt.Fprintf(tw, "Weight\t%d\n", p.Weight)

	abilities := make([]string, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		if a.Hidden {
			abilities = append(abilities, a.Name+" (hidden)")
			continue
		}
		abilities = append(abilities, a.Name)
	}
	fmt.Fprintf(tw, "Abilities\t%s\n", strings.Join(abilities, ", "))

	stats := make([]string, 0, len(p.Stats))
	for name := range p.Stats {
		stats = append(stats, name)
	}
	sort.Strings(stats)
	for _, name := range stats {
		fmt.Fprintf(tw, "%s\t%d\n", name, p.Stats[name])
	}

	if p.Description != "" {
		fmt.Fprintf(tw, "About\t%s\n", p.Description)
	}
	fmt.Fprintf(tw, "Cached\t%v\n", res.Cached)
	tw.Flush()

	return nil
}

func (h *Handler) Stats() error {
	var res cacheResponse
	if err := h.getJSON("/api/cache", &res); err != nil {
		fmt.Fprintln(h.err, "Stats error:", err)
		return err
	}

	tw := tabwriter.NewWriter(h.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SIZE\tHITS\tMISSES\tEVICTIONS\tEXPIRATIONS")
	fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\n",
		res.Size, res.Stats.Hits, res.Stats.Misses, res.Stats.Evictions, res.Stats.Expirations)
	tw.Flush()

	return nil
}

func (h *Handler) getJSON(path string, out any) error {
	res, err := h.client.Get(h.addr + path)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (status %d)", apiErr.Error, res.StatusCode)
		}
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
