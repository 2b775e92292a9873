package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hmizuno/lockstep/contract"
	"github.com/hmizuno/lockstep/internal/gen"
	"github.com/hmizuno/lockstep/openapi"
	"github.com/hmizuno/lockstep/overrides"
	"github.com/hmizuno/lockstep/reinforce"
)

// generateCmd runs the full pipeline end to end. Any stage failure aborts
// the run with a non-zero exit and no artifacts written; prior artifacts on
// disk stay untouched until a run succeeds.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile the contract into typed declarations, validators and the endpoint table",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, diag, err := contract.LoadFile(cfg.Contract)
		if err != nil {
			return err
		}
		logWarnings(diag)

		set, cdiag, err := openapi.Compile(doc, openapi.Options{})
		if err != nil {
			return err
		}
		logWarnings(cdiag)

		changes := reinforce.Apply(set)
		for _, ch := range changes {
			logger.Debug("reinforced required property",
				zap.String("schema", ch.Schema), zap.String("property", ch.Property))
		}

		if cfg.Overrides != "" {
			cat, err := overrides.LoadFile(cfg.Overrides)
			if err != nil {
				return err
			}
			if err := cat.Apply(set); err != nil {
				return err
			}
		}

		res, err := gen.Render(cfg.Package, set)
		if err != nil {
			return err
		}
		if err := gen.WriteAll(cfg.OutDir, res); err != nil {
			return err
		}

		logger.Info("generated",
			zap.String("out", cfg.OutDir),
			zap.Int("validators", len(set.Validators)),
			zap.Int("endpoints", len(set.Operations)),
			zap.Int("reinforced", len(changes)))
		return nil
	},
}

func logWarnings(d contract.Diag) {
	if d == nil || !d.HasWarnings() {
		return
	}
	for _, w := range d.Warnings() {
		logger.Warn(fmt.Sprintf("contract: %s", w))
	}
}
