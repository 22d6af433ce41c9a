package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"sigs.k8s.io/yaml"

	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/types"
)

// CheckResult is the rendered outcome of a check command.
type CheckResult struct {
	Admitted bool          `json:"admitted"`
	Blocking []FindingInfo `json:"blocking,omitempty"`
	Advisory []FindingInfo `json:"advisory,omitempty"`
	Document DocumentInfo  `json:"document"`
}

// FindingInfo is one finding in rendered output.
type FindingInfo struct {
	RuleID  string `json:"ruleId"`
	Address string `json:"address,omitempty"`
	Message string `json:"message"`
}

// DocumentInfo describes the evaluated document.
type DocumentInfo struct {
	Path      string `json:"path"`
	Resources int    `json:"resources"`
}

// RulesResult is the rendered catalog listing.
type RulesResult struct {
	Rules []RuleInfo `json:"rules"`
	Total int        `json:"total"`
}

// RuleInfo is one catalog entry in rendered output.
type RuleInfo struct {
	ID          string `json:"id"`
	Subsystem   string `json:"subsystem"`
	Description string `json:"description"`
}

func toFindingInfos(findings []types.Finding) []FindingInfo {
	out := make([]FindingInfo, 0, len(findings))
	for _, f := range findings {
		out = append(out, FindingInfo{
			RuleID:  f.RuleID,
			Address: f.Address,
			Message: f.Message,
		})
	}
	return out
}

// outputResult renders the result in the requested format to stdout.
func outputResult(result interface{}, format string) error {
	switch format {
	case "json":
		return outputJSON(os.Stdout, result)
	case "yaml":
		return outputYAML(os.Stdout, result)
	default:
		return outputTable(os.Stdout, result)
	}
}

func outputJSON(w io.Writer, result interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputYAML(w io.Writer, result interface{}) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func outputTable(w io.Writer, result interface{}) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	switch r := result.(type) {
	case CheckResult:
		return outputCheckTable(tw, r)
	case RulesResult:
		return outputRulesTable(tw, r)
	default:
		return outputJSON(w, result)
	}
}

func outputCheckTable(w *tabwriter.Writer, r CheckResult) error {
	verdict := "ADMITTED"
	if !r.Admitted {
		verdict = "DENIED"
	}
	fmt.Fprintf(w, "DOCUMENT\t%s (%d resources)\n", r.Document.Path, r.Document.Resources)
	fmt.Fprintf(w, "VERDICT\t%s\n", verdict)

	if len(r.Blocking) > 0 {
		fmt.Fprintf(w, "\nBLOCKING (%d):\n", len(r.Blocking))
		fmt.Fprintln(w, "RULE\tRESOURCE\tMESSAGE")
		for _, f := range r.Blocking {
			fmt.Fprintf(w, "%s\t%s\t%s\n", f.RuleID, orDash(f.Address), f.Message)
		}
	}

	if len(r.Advisory) > 0 {
		fmt.Fprintf(w, "\nADVISORY (%d):\n", len(r.Advisory))
		fmt.Fprintln(w, "RULE\tRESOURCE\tMESSAGE")
		for _, f := range r.Advisory {
			fmt.Fprintf(w, "%s\t%s\t%s\n", f.RuleID, orDash(f.Address), f.Message)
		}
	}

	return nil
}

func outputRulesTable(w *tabwriter.Writer, r RulesResult) error {
	fmt.Fprintf(w, "TOTAL\t%d\n\n", r.Total)
	fmt.Fprintln(w, "ID\tSUBSYSTEM\tDESCRIPTION")
	for _, rule := range r.Rules {
		fmt.Fprintf(w, "%s\t%s\t%s\n", rule.ID, rule.Subsystem, rule.Description)
	}
	return nil
}

// orDash keeps the table grid readable for document-wide findings.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
