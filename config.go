package pocketplus

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tanagraspace/pocket-plus/bitvector"
)

// SessionConfig describes a compression or decompression session, loadable
// from a YAML manifest alongside command-line flags. Flags set on the CLI
// always take precedence over a loaded manifest's values; see cmd/pocket.
type SessionConfig struct {
	PacketSizeBits int    `yaml:"packet_size_bits"`
	Robustness     int    `yaml:"robustness"`
	PtLimit        int    `yaml:"pt_limit"`
	FtLimit        int    `yaml:"ft_limit"`
	RtLimit        int    `yaml:"rt_limit"`
	// InitialMask is the hex-encoded M0, MSB-first, ceil(PacketSizeBits/8)
	// bytes long. Empty means an all-zero initial mask.
	InitialMask string `yaml:"initial_mask"`
}

// DefaultSessionConfig returns the conventional starting point for
// automatic parameter management, matching the values the reference
// implementation's own command-line tool defaults to.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		PacketSizeBits: 64,
		Robustness:     1,
		PtLimit:        10,
		FtLimit:        20,
		RtLimit:        50,
	}
}

// LoadSessionConfig reads a YAML session manifest from path.
func LoadSessionConfig(path string) (SessionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SessionConfig{}, fmt.Errorf("pocketplus: reading config %s: %w", path, err)
	}
	cfg := DefaultSessionConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SessionConfig{}, fmt.Errorf("pocketplus: parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// InitialMaskVector decodes InitialMask into a BitVector of length
// PacketSizeBits, or returns nil if InitialMask is empty.
func (c SessionConfig) InitialMaskVector() (*bitvector.Vector, error) {
	if c.InitialMask == "" {
		return nil, nil
	}
	raw, err := hex.DecodeString(c.InitialMask)
	if err != nil {
		return nil, fmt.Errorf("pocketplus: initial_mask: %w", err)
	}
	v := bitvector.New(c.PacketSizeBits)
	if err := v.FromBytes(raw); err != nil {
		return nil, fmt.Errorf("pocketplus: initial_mask: %w", err)
	}
	return v, nil
}
