package ai

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile holds the tunable coefficients behind a difficulty level.
// Aggression scales raise frequencies and sizings, BluffFrequency gates
// bluff-raises with weak holdings, CallLooseness widens calling ranges.
type Profile struct {
	Aggression     float64 `yaml:"aggression"`
	BluffFrequency float64 `yaml:"bluff_frequency"`
	CallLooseness  float64 `yaml:"call_looseness"`
}

// DefaultProfiles mirrors easy < medium < hard on aggression and bluffing;
// medium is the loosest caller.
var DefaultProfiles = map[string]Profile{
	"easy":   {Aggression: 0.3, BluffFrequency: 0.1, CallLooseness: 0.4},
	"medium": {Aggression: 0.5, BluffFrequency: 0.2, CallLooseness: 0.5},
	"hard":   {Aggression: 0.7, BluffFrequency: 0.3, CallLooseness: 0.3},
}

// ProfileFor returns the profile for a difficulty, defaulting to medium for
// anything unrecognized.
func ProfileFor(difficulty string) Profile {
	if p, ok := DefaultProfiles[difficulty]; ok {
		return p
	}
	return DefaultProfiles["medium"]
}

// LoadProfiles reads difficulty profiles from a YAML file, e.g.
//
//	hard:
//	  aggression: 0.8
//	  bluff_frequency: 0.35
//	  call_looseness: 0.25
//
// Missing difficulties keep their defaults.
func LoadProfiles(path string) (map[string]Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	loaded := map[string]Profile{}
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := map[string]Profile{}
	for k, v := range DefaultProfiles {
		out[k] = v
	}
	for k, v := range loaded {
		out[k] = v
	}
	return out, nil
}
