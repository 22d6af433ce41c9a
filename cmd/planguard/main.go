// planguard is the CI gate for cluster change documents.
//
// Usage:
//
//	planguard check -f plan.json
//	planguard check -f plan.json -o json --silence spot-capacity-advisory
//	planguard rules
//
// check exits non-zero when the document is denied admission, so it can gate
// a pull-request pipeline directly. Advisory findings are printed but never
// affect the exit status.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	version   = "dev"
	outputFmt string
	verbose   bool
)

// errDenied marks a completed evaluation that denied admission. It carries
// no message of its own; the report rendering already said everything.
var errDenied = errors.New("admission denied")

func main() {
	rootCmd := &cobra.Command{
		Use:   "planguard",
		Short: "Evaluate cluster change documents against the guardrail catalog",
		Long: `planguard evaluates a provisioning-plan export or a serialized workload
specification against the platform's governance rules and reports blocking
violations and advisory warnings.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log rule evaluation details to stderr")

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(rulesCmd())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDenied) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newLogger builds the CLI logger: development output under --verbose,
// silent otherwise (CI logs belong to the report, not the engine).
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// loadConfig reads the optional .planguard.yaml from the working directory.
// It carries presentation defaults only: silenced rule IDs and the output
// format. A missing file is not an error.
func loadConfig() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(".planguard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
