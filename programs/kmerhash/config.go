package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Altius/fastxgz"
	"github.com/kelseyhightower/envconfig"
)

const (
	emitLines  = "lines"
	emitReads  = "reads"
	emitKmers  = "kmers"
	emitHashes = "hashes"
	emitCount  = "count"
)

// Config is a specification of input files -> output files
type Config struct {
	Inputs          []string          `json:"inputs"`       // A list of file strings
	Destinations    map[string]string `json:"destinations"` // Map of input files to output filenames
	Output          string            `json:"output"`       // Used for inputs without a destination
	Format          string            `json:"format"`
	K               int               `json:"k"`
	Emit            string            `json:"emit"`
	Hash            string            `json:"hash"`
	Threads         int               `json:"threads"`
	DropFinalWindow bool              `json:"drop_final_window"`
}

// envSettings are read from KMERHASH_* variables and win over the config.
type envSettings struct {
	Threads  int    `envconfig:"THREADS"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev   bool   `envconfig:"LOG_DEV" default:"false"`
}

func defaultConfig() Config {
	return Config{
		Output:  "-",
		Format:  fastxgz.FASTA.String(),
		K:       31,
		Emit:    emitHashes,
		Hash:    "xxh3",
		Threads: 1,
	}
}

func readConfigFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return configFromJSON(data)
}

func configFromJSON(data []byte) (*Config, error) {
	c := defaultConfig()
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

func loadEnv() (envSettings, error) {
	var s envSettings
	if err := envconfig.Process("kmerhash", &s); err != nil {
		return s, fmt.Errorf("read environment: %w", err)
	}
	return s, nil
}

func (c *Config) applyEnv(env envSettings) {
	if env.Threads > 0 {
		c.Threads = env.Threads
	}
}

// destination returns where records read from input are written.
func (c *Config) destination(input string) string {
	if dest, ok := c.Destinations[input]; ok && dest != "" {
		return dest
	}
	if c.Output == "" {
		return "-"
	}
	return c.Output
}

func (c *Config) validate() error {
	if len(c.Inputs) == 0 {
		return errors.New("no inputs given")
	}
	if _, err := fastxgz.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := fastxgz.ParseHashFunc(c.Hash); err != nil {
		return err
	}
	switch c.Emit {
	case emitLines, emitReads:
	case emitKmers, emitHashes, emitCount:
		if c.K < 1 {
			return fmt.Errorf("k must be at least 1, got %d", c.K)
		}
	default:
		return fmt.Errorf("unknown emit mode %q", c.Emit)
	}
	if c.Threads < 1 {
		c.Threads = 1
	}
	return nil
}
