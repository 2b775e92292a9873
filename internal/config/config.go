package config

import "github.com/caarlos0/env/v11"

// Config carries the pipeline's environment-level settings. Command-line
// flags override whatever is loaded here.
type Config struct {
	// Contract is the path of the contract document. It must already exist;
	// exporting it is the backend's responsibility.
	Contract string `env:"LOCKSTEP_CONTRACT" envDefault:"openapi.json"`
	// OutDir receives the generated artifacts and is fully overwritten on
	// each successful run.
	OutDir string `env:"LOCKSTEP_OUT_DIR" envDefault:"gen/api"`
	// Package is the Go package name of the generated artifacts.
	Package string `env:"LOCKSTEP_PACKAGE" envDefault:"api"`
	// Overrides is the optional message override catalog. Empty skips the
	// layer.
	Overrides string `env:"LOCKSTEP_OVERRIDES"`
	// Lang selects the default issue message language ("en"/"ja").
	Lang string `env:"LOCKSTEP_LANG" envDefault:"en"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
