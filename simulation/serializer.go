package simulation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// Result artifacts come in pairs sharing a base name: the aggregated
// arrays as an lz4-compressed msgpack container, and the run
// configuration as readable JSON next to it.
const (
	dataSuffix   = ".msgpack.lz4"
	configSuffix = "_config.json"
)

// SaveAggregate writes <base>.msgpack.lz4 and <base>_config.json,
// creating parent directories as needed.
func SaveAggregate(base string, cfg Config, agg *Aggregate) error {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("simulation: creating result dir: %w", err)
		}
	}

	raw, err := msgpack.Marshal(agg)
	if err != nil {
		return fmt.Errorf("simulation: marshaling results: %w", err)
	}

	var compressed bytes.Buffer
	w := lz4.NewWriter(&compressed)
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("simulation: compressing results: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("simulation: compressing results: %w", err)
	}
	if err := os.WriteFile(base+dataSuffix, compressed.Bytes(), 0644); err != nil {
		return fmt.Errorf("simulation: writing results: %w", err)
	}

	cfgJSON, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("simulation: marshaling config: %w", err)
	}
	if err := os.WriteFile(base+configSuffix, cfgJSON, 0644); err != nil {
		return fmt.Errorf("simulation: writing config: %w", err)
	}

	return nil
}

// LoadAggregate reads back a result pair written by SaveAggregate.
func LoadAggregate(base string) (*Aggregate, Config, error) {
	raw, err := os.ReadFile(base + dataSuffix)
	if err != nil {
		return nil, Config{}, fmt.Errorf("simulation: reading results: %w", err)
	}

	var decompressed bytes.Buffer
	if _, err := io.Copy(&decompressed, lz4.NewReader(bytes.NewReader(raw))); err != nil {
		return nil, Config{}, fmt.Errorf("simulation: decompressing results: %w", err)
	}

	var agg Aggregate
	if err := msgpack.Unmarshal(decompressed.Bytes(), &agg); err != nil {
		return nil, Config{}, fmt.Errorf("simulation: unmarshaling results: %w", err)
	}

	cfgJSON, err := os.ReadFile(base + configSuffix)
	if err != nil {
		return nil, Config{}, fmt.Errorf("simulation: reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(cfgJSON, &cfg); err != nil {
		return nil, Config{}, fmt.Errorf("simulation: parsing config: %w", err)
	}

	return &agg, cfg, nil
}
