package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML form of the settings. Absent keys leave the
// corresponding value untouched.
type FileConfig struct {
	N           *uint64 `yaml:"n"`
	Seq         *uint64 `yaml:"seq"`
	Algo        *string `yaml:"algo"`
	Timeout     *string `yaml:"timeout"`
	Verbose     *bool   `yaml:"verbose"`
	Details     *bool   `yaml:"details"`
	Quiet       *bool   `yaml:"quiet"`
	Calculate   *bool   `yaml:"calculate"`
	Plain       *bool   `yaml:"plain"`
	NoColor     *bool   `yaml:"no_color"`
	Output      *string `yaml:"output"`
	MemoryLimit *string `yaml:"memory_limit"`
	MaxGroups   *int    `yaml:"max_groups"`
	GC          *string `yaml:"gc"`
	LastDigits  *int    `yaml:"last_digits"`
	Verify      *bool   `yaml:"verify"`
	MetricsAddr *string `yaml:"metrics_addr"`

	timeout time.Duration
}

// LoadFile reads and decodes a YAML config file. Unknown keys are rejected.
func LoadFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	defer f.Close()

	var fc FileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("config file %s: timeout: %w", path, err)
		}
		fc.timeout = d
	}
	return &fc, nil
}

// apply copies the file values into cfg for every flag not given on the
// command line.
func (fc *FileConfig) apply(cfg *AppConfig, fs *flag.FlagSet) {
	set := func(names ...string) bool { return isFlagSetAny(fs, names...) }

	if fc.N != nil && !set("n") {
		cfg.N = *fc.N
	}
	if fc.Seq != nil && !set("seq") {
		cfg.Count = *fc.Seq
	}
	if fc.Algo != nil && !set("algo") {
		cfg.Algo = *fc.Algo
	}
	if fc.Timeout != nil && !set("timeout") {
		cfg.Timeout = fc.timeout
	}
	if fc.Verbose != nil && !set("v", "verbose") {
		cfg.Verbose = *fc.Verbose
	}
	if fc.Details != nil && !set("d", "details") {
		cfg.Details = *fc.Details
	}
	if fc.Quiet != nil && !set("q", "quiet") {
		cfg.Quiet = *fc.Quiet
	}
	if fc.Calculate != nil && !set("c", "calculate") {
		cfg.ShowValue = *fc.Calculate
	}
	if fc.Plain != nil && !set("plain") {
		cfg.Plain = *fc.Plain
	}
	if fc.NoColor != nil && !set("no-color") {
		cfg.NoColor = *fc.NoColor
	}
	if fc.Output != nil && !set("o", "output") {
		cfg.OutputFile = *fc.Output
	}
	if fc.MemoryLimit != nil && !set("memory-limit") {
		cfg.MemoryLimit = *fc.MemoryLimit
	}
	if fc.MaxGroups != nil && !set("max-groups") {
		cfg.MaxGroups = *fc.MaxGroups
	}
	if fc.GC != nil && !set("gc") {
		cfg.GCMode = *fc.GC
	}
	if fc.LastDigits != nil && !set("last-digits") {
		cfg.LastDigits = *fc.LastDigits
	}
	if fc.Verify != nil && !set("verify") {
		cfg.Verify = *fc.Verify
	}
	if fc.MetricsAddr != nil && !set("metrics-addr") {
		cfg.MetricsAddr = *fc.MetricsAddr
	}
}
