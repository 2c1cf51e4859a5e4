package pokedex

import (
	"testing"

	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokeapi"
)

func TestBuildViewNameCasing(t *testing.T) {
	for raw, want := range map[string]string{
		"pikachu": "Pikachu",
		"mr-mime": "Mr-Mime",
		"ho-oh":   "Ho-Oh",
	} {
		view := buildView(&pokeapi.Pokemon{Name: raw}, nil)
		if view.Name != want {
			t.Fatalf("name casing: got=%q want=%q", view.Name, want)
		}
	}
}

func TestBuildViewSpriteFallback(t *testing.T) {
	p := &pokeapi.Pokemon{Name: "ditto"}
	p.Sprites.FrontDefault = "https://img/ditto.png"

	view := buildView(p, nil)
	if view.Sprite != "https://img/ditto.png" {
		t.Fatalf("expected fallback to front_default, got %q", view.Sprite)
	}
}

func TestEnglishFlavorTextPicksFirstEnglish(t *testing.T) {
	s := &pokeapi.Species{
		FlavorTextEntries: []pokeapi.FlavorText{
			{FlavorText: "Je parle français.", Language: pokeapi.NamedResource{Name: "fr"}},
			{FlavorText: "First\nenglish\fentry.", Language: pokeapi.NamedResource{Name: "en"}},
			{FlavorText: "Second english entry.", Language: pokeapi.NamedResource{Name: "en"}},
		},
	}

	if got, want := englishFlavorText(s), "First english entry."; got != want {
		t.Fatalf("flavor text: got=%q want=%q", got, want)
	}
}

func TestEnglishFlavorTextNoEnglish(t *testing.T) {
	s := &pokeapi.Species{
		FlavorTextEntries: []pokeapi.FlavorText{
			{FlavorText: "何匹かあつまっていると そこから もうれつな電気が", Language: pokeapi.NamedResource{Name: "ja"}},
		},
	}

	if got := englishFlavorText(s); got != "" {
		t.Fatalf("expected empty description, got %q", got)
	}
}
