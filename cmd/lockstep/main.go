package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hmizuno/lockstep/i18n"
	"github.com/hmizuno/lockstep/internal/config"
)

var (
	// Global flags; unset flags fall back to the environment config.
	contractPath string
	outDir       string
	pkgName      string
	overridesCat string
	lang         string
	verbose      bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lockstep",
	Short: "lockstep - keep client validation in lockstep with the API contract",
	Long: `lockstep compiles a server-exported OpenAPI contract into typed
declarations, runtime validators and an endpoint table, reinforcing
"required" into "required and non-empty" for form fields, and layering
hand-authored validation messages on top.

The contract document must already exist at the configured path; exporting
it is the backend's responsibility.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Assigned in init to avoid an initialization cycle: the closure calls
// applyFlagOverrides, which reads rootCmd's flags.
func rootPersistentPreRunE(cmd *cobra.Command, args []string) error {
	// .env is optional; absence is not an error
	_ = godotenv.Load()

	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var err error
	logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides()
	i18n.SetLanguage(cfg.Lang)
	return nil
}

// applyFlagOverrides copies explicitly set flags over the environment config.
func applyFlagOverrides() {
	pf := rootCmd.PersistentFlags()
	if pf.Changed("contract") {
		cfg.Contract = contractPath
	}
	if pf.Changed("out") {
		cfg.OutDir = outDir
	}
	if pf.Changed("package") {
		cfg.Package = pkgName
	}
	if pf.Changed("overrides") {
		cfg.Overrides = overridesCat
	}
	if pf.Changed("lang") {
		cfg.Lang = lang
	}
}

func init() {
	rootCmd.PersistentPreRunE = rootPersistentPreRunE
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&contractPath, "contract", "", "path of the contract document (default $LOCKSTEP_CONTRACT or openapi.json)")
	pf.StringVar(&outDir, "out", "", "output directory for generated artifacts (default $LOCKSTEP_OUT_DIR or gen/api)")
	pf.StringVar(&pkgName, "package", "", "package name of the generated artifacts (default $LOCKSTEP_PACKAGE or api)")
	pf.StringVar(&overridesCat, "overrides", "", "message override catalog (YAML); empty skips the layer")
	pf.StringVar(&lang, "lang", "", "default issue message language: en or ja")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(auditCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
