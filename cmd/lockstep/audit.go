package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hmizuno/lockstep/audit"
	"github.com/hmizuno/lockstep/contract"
	"github.com/hmizuno/lockstep/internal/gen"
)

var checkAliases []string

// auditCmd reconciles contract and generated client endpoint sets. It is
// diagnostic-only: findings and even failures print to the console, and the
// exit code stays zero. Re-running generate is the remediation.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report drift between the contract and the generated client (advisory)",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, diag, err := contract.LoadFile(cfg.Contract)
		if err != nil {
			logger.Warn(err.Error())
			return nil
		}
		logWarnings(diag)

		report, err := audit.Run(doc, filepath.Join(cfg.OutDir, gen.ClientFile))
		if err != nil {
			logger.Warn(err.Error())
			return nil
		}
		report.Write(os.Stdout, checkAliases)
		return nil
	},
}

func init() {
	auditCmd.Flags().StringSliceVar(&checkAliases, "check", nil,
		"alias names whose presence in the generated client is asserted in the report")
}
