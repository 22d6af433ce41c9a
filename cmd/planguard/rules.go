package main

import (
	"github.com/spf13/cobra"

	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/rules"
)

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the guardrail catalog",
		Long: `List every rule in the built-in catalog with its subsystem and
description. Rule IDs are what --silence and .planguard.yaml refer to.`,
		RunE: runRules,
	}
}

func runRules(cmd *cobra.Command, args []string) error {
	registry := rules.Default()

	var infos []RuleInfo
	for _, rule := range registry.All() {
		subsystem, _ := registry.SubsystemOf(rule.ID())
		infos = append(infos, RuleInfo{
			ID:          rule.ID(),
			Subsystem:   string(subsystem),
			Description: rule.Description(),
		})
	}

	return outputResult(RulesResult{Rules: infos, Total: len(infos)}, outputFmt)
}
