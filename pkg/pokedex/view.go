package pokedex

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ADITYA-KHADE/Project-pokemon/pkg/pokeapi"
)

// Pokemon is the view model served to clients: the upstream payload
// flattened into display-ready fields.
type Pokemon struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Height      int            `json:"height"`
	Weight      int            `json:"weight"`
	Types       []string       `json:"types"`
	Abilities   []Ability      `json:"abilities"`
	Stats       map[string]int `json:"stats"`
	Description string         `json:"description"`
	Sprite      string         `json:"sprite"`
}

type Ability struct {
	Name   string `json:"name"`
	Hidden bool   `json:"hidden"`
}

var titleCaser = cases.Title(language.English)

// buildView flattens the raw upstream shapes into a Pokemon. species may
// be nil; the description is then left empty.
func buildView(p *pokeapi.Pokemon, s *pokeapi.Species) Pokemon {
	view := Pokemon{
		ID:     p.ID,
		Name:   titleCaser.String(p.Name),
		Height: p.Height,
		Weight: p.Weight,
		Types:  make([]string, 0, len(p.Types)),
		Stats:  make(map[string]int, len(p.Stats)),
		Sprite: p.Sprites.Other.OfficialArtwork.FrontDefault,
	}

	if view.Sprite == "" {
		view.Sprite = p.Sprites.FrontDefault
	}

	for _, t := range p.Types {
		view.Types = append(view.Types, t.Type.Name)
	}

	for _, st := range p.Stats {
		view.Stats[st.Stat.Name] = st.BaseStat
	}

	for _, a := range p.Abilities {
		view.Abilities = append(view.Abilities, Ability{
			Name:   a.Ability.Name,
			Hidden: a.IsHidden,
		})
	}

	if s != nil {
		view.Description = englishFlavorText(s)
	}

	return view
}

// englishFlavorText picks the first English entry and collapses the
// hard-wrapped game text (embedded \n and \f page breaks) into one line.
func englishFlavorText(s *pokeapi.Species) string {
	for _, entry := range s.FlavorTextEntries {
		if entry.Language.Name != "en" {
			continue
		}

		return strings.Join(strings.Fields(entry.FlavorText), " ")
	}

	return ""
}
