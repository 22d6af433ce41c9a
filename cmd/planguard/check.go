package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/report"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/rules"
)

var (
	checkFile    string
	silenceRules []string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a change document and gate on blocking violations",
		Long: `Evaluate a change document against the guardrail catalog.

Examples:
  # Gate a provisioning plan export
  planguard check -f plan.json

  # Emit the report as JSON and silence an advisory rule
  planguard check -f plan.json -o json --silence spot-capacity-advisory

Exits 1 when any blocking violation remains after silencing.`,
		RunE: runCheck,
	}

	cmd.Flags().StringVarP(&checkFile, "filename", "f", "", "Change document to evaluate (required)")
	cmd.Flags().StringSliceVar(&silenceRules, "silence", nil, "Rule IDs whose findings are dropped from the report")
	cmd.MarkFlagRequired("filename")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	silenced := append(cfg.GetStringSlice("silence"), silenceRules...)
	if cfg.IsSet("output") && !cmd.Flags().Changed("output") {
		outputFmt = cfg.GetString("output")
	}

	catalog := rules.Default()
	for _, id := range silenced {
		if catalog.ForID(id) == nil {
			return fmt.Errorf("unknown rule id %q in silence list", id)
		}
	}

	doc, err := plan.LoadFile(checkFile)
	if err != nil {
		return err
	}

	evaluator := rules.NewEvaluator(catalog, newLogger())
	findings := report.Silence(evaluator.Evaluate(doc), silenced)
	rep := report.Decide(findings)

	result := CheckResult{
		Admitted: rep.Admitted(),
		Blocking: toFindingInfos(rep.Blocking),
		Advisory: toFindingInfos(rep.Advisory),
		Document: DocumentInfo{
			Path:      checkFile,
			Resources: len(doc.ResourceChanges),
		},
	}
	if err := outputResult(result, outputFmt); err != nil {
		return err
	}

	if !rep.Admitted() {
		return errDenied
	}
	return nil
}
