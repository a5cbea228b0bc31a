// Package roster provides the static superteam and opponent reference lists.
// The built-in lists can be replaced by a YAML file (ROSTER_FILE).
package roster

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/albapepper/comeback-scout/internal/model"
)

// Roster is the fixed set of monitored superteams and their possible opponents.
type Roster struct {
	Superteams []model.SuperteamProfile `json:"superteams" yaml:"superteams"`
	Opponents  []model.Opponent         `json:"opponents" yaml:"opponents"`
}

// Default returns the built-in roster.
func Default() *Roster {
	return &Roster{
		Superteams: []model.SuperteamProfile{
			{Name: "Real Madrid", Logo: "https://media.api-sports.io/football/teams/541.png", ComebackRate: 0.75},
			{Name: "Manchester City", Logo: "https://media.api-sports.io/football/teams/50.png", ComebackRate: 0.78},
			{Name: "Bayern Munich", Logo: "https://media.api-sports.io/football/teams/157.png", ComebackRate: 0.72},
			{Name: "PSG", Logo: "https://media.api-sports.io/football/teams/85.png", ComebackRate: 0.68},
			{Name: "Barcelona", Logo: "https://media.api-sports.io/football/teams/529.png", ComebackRate: 0.71},
			{Name: "Liverpool", Logo: "https://media.api-sports.io/football/teams/40.png", ComebackRate: 0.74},
		},
		Opponents: []model.Opponent{
			{Name: "Atletico Madrid", Logo: "https://media.api-sports.io/football/teams/530.png"},
			{Name: "Sevilla", Logo: "https://media.api-sports.io/football/teams/536.png"},
			{Name: "Napoli", Logo: "https://media.api-sports.io/football/teams/489.png"},
			{Name: "Arsenal", Logo: "https://media.api-sports.io/football/teams/42.png"},
			{Name: "Inter Milan", Logo: "https://media.api-sports.io/football/teams/505.png"},
		},
	}
}

// Load returns the built-in roster when path is empty, otherwise the roster
// decoded from the YAML file at path.
func Load(path string) (*Roster, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML roster document.
func Parse(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks the roster is usable by the simulator.
func (r *Roster) Validate() error {
	if len(r.Superteams) == 0 {
		return errors.New("roster: at least one superteam is required")
	}
	if len(r.Opponents) == 0 {
		return errors.New("roster: at least one opponent is required")
	}
	seen := make(map[string]bool, len(r.Superteams))
	for _, s := range r.Superteams {
		if s.Name == "" {
			return errors.New("roster: superteam name is empty")
		}
		if seen[s.Name] {
			return fmt.Errorf("roster: duplicate superteam %q", s.Name)
		}
		seen[s.Name] = true
		if s.ComebackRate < 0 || s.ComebackRate > 1 {
			return fmt.Errorf("roster: %s comeback_rate %.2f outside [0,1]", s.Name, s.ComebackRate)
		}
	}
	for _, o := range r.Opponents {
		if o.Name == "" {
			return errors.New("roster: opponent name is empty")
		}
		if seen[o.Name] {
			return fmt.Errorf("roster: %q listed as both superteam and opponent", o.Name)
		}
	}
	return nil
}

// Superteam looks up a superteam profile by name.
func (r *Roster) Superteam(name string) (model.SuperteamProfile, bool) {
	for _, s := range r.Superteams {
		if s.Name == name {
			return s, true
		}
	}
	return model.SuperteamProfile{}, false
}
