package db

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Seed is the first-run configuration. It is read from an optional YAML file and
// MESHGATE_* environment variables, and only consulted while the database is empty.
type Seed struct {
	Profile  string      `yaml:"profile"`
	Timezone string      `yaml:"timezone"`
	API      APISeed     `yaml:"api"`
	Gateway  GatewaySeed `yaml:"gateway"`
}

type APISeed struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type GatewaySeed struct {
	RootAddress    string `yaml:"root_address"`
	StreamURL      string `yaml:"stream_url"`
	Token          string `yaml:"token"`
	MatchBy        string `yaml:"match_by"`
	ReconnectDelay string `yaml:"reconnect_delay"`
}

// DefaultSeed returns the seed used when no file is given. Timezone is left empty
// so Bootstrap detects the host zone.
func DefaultSeed() *Seed {
	return &Seed{
		Profile: "default",
		API: APISeed{
			Host: "0.0.0.0",
			Port: DefaultAPIPort,
		},
		Gateway: GatewaySeed{
			MatchBy:        MatchByNode,
			ReconnectDelay: DefaultReconnectDelay.String(),
		},
	}
}

// LoadSeed reads path (if non-empty) over the defaults, then applies environment overrides.
func LoadSeed(path string) (*Seed, error) {
	seed := DefaultSeed()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading seed file: %w", err)
		}
		if err := yaml.Unmarshal(data, seed); err != nil {
			return nil, fmt.Errorf("parsing seed file: %w", err)
		}
	}

	if err := applyEnvOverrides(seed); err != nil {
		return nil, err
	}

	if _, err := seed.gateway(0); err != nil {
		return nil, fmt.Errorf("validating seed: %w", err)
	}

	return seed, nil
}

// applyEnvOverrides follows the MESHGATE_<KEY> pattern.
func applyEnvOverrides(seed *Seed) error {
	if v := os.Getenv("MESHGATE_ROOT_ADDRESS"); v != "" {
		seed.Gateway.RootAddress = v
	}
	if v := os.Getenv("MESHGATE_STREAM_URL"); v != "" {
		seed.Gateway.StreamURL = v
	}
	if v := os.Getenv("MESHGATE_TOKEN"); v != "" {
		seed.Gateway.Token = v
	}
	if v := os.Getenv("MESHGATE_MATCH_BY"); v != "" {
		seed.Gateway.MatchBy = v
	}
	if v := os.Getenv("MESHGATE_TIMEZONE"); v != "" {
		seed.Timezone = v
	}
	if v := os.Getenv("MESHGATE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("MESHGATE_PORT: invalid port %q", v)
		}
		seed.API.Port = port
	}
	return nil
}

func (s *Seed) gateway(profileID int64) (*Gateway, error) {
	g := &Gateway{
		ProfileID:   profileID,
		RootAddress: s.Gateway.RootAddress,
		StreamURL:   s.Gateway.StreamURL,
		Token:       s.Gateway.Token,
		MatchBy:     s.Gateway.MatchBy,
	}
	if g.MatchBy == "" {
		g.MatchBy = MatchByNode
	}

	g.ReconnectDelay = DefaultReconnectDelay
	if s.Gateway.ReconnectDelay != "" {
		d, err := time.ParseDuration(s.Gateway.ReconnectDelay)
		if err != nil {
			return nil, fmt.Errorf("reconnect_delay: %w", err)
		}
		g.ReconnectDelay = d
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
