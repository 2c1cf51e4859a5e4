package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "Daemon base URL")
	name := flag.String("name", "", "Pokemon to look up")
	stats := flag.Bool("stats", false, "Show cache statistics")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  pokedex -name <pokemon> [-addr <url>]\n")
		fmt.Fprintf(os.Stderr, "  pokedex -stats [-addr <url>]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	nActions := 0
	if *name != "" {
		nActions++
	}
	if *stats {
		nActions++
	}

	if nActions != 1 {
		flag.Usage()
		os.Exit(2)
	}

	h := Handler{
		client: &http.Client{Timeout: time.Second * 15},
		addr:   *addr,
		out:    os.Stdout,
		err:    os.Stderr,
	}

	switch {
	case *stats:
		if err := h.Stats(); err != nil {
			os.Exit(1)
		}

	case *name != "":
		if err := h.Lookup(*name); err != nil {
			os.Exit(1)
		}
	}
}
