package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"autosuggest/internal/validation"
)

// SeedFile represents the structure of the term seed file.
// Term records are created out of band; this is how they get into a store.
type SeedFile struct {
	Terms []SeedTerm `yaml:"terms"`
}

// SeedTerm defines one term record in the seed file.
type SeedTerm struct {
	Term        string `yaml:"term"`
	Popularity  int64  `yaml:"popularity"`
	Description string `yaml:"description,omitempty"`
	ImageRef    string `yaml:"image_ref,omitempty"`
}

// LoadSeedFile loads and validates the seed file at path.
// Returns nil without error if the file doesn't exist.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Seed file is optional
			return nil, nil
		}
		return nil, err
	}

	return ParseSeed(data)
}

// ParseSeed decodes seed YAML and validates every entry.
func ParseSeed(data []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for i, t := range seed.Terms {
		if ok, msg := validation.ValidateTerm(t.Term); !ok {
			return nil, fmt.Errorf("seed term %d: %s", i, msg)
		}
		if t.Popularity < 0 {
			return nil, fmt.Errorf("seed term %q: popularity must not be negative", t.Term)
		}
		if ok, msg := validation.ValidateImageRef(t.ImageRef); !ok {
			return nil, fmt.Errorf("seed term %q: %s", t.Term, msg)
		}
		seed.Terms[i].Term = validation.NormalizeTerm(t.Term)
	}

	return &seed, nil
}

// Len returns the number of seeded terms. Safe on a nil receiver.
func (s *SeedFile) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Terms)
}
