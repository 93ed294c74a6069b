package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/document"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/reconcile"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/store"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Admin back office over persisted leads",
}

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		leads, err := env.Store.ListLeads(cmd.Context(), store.LeadFilter{})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, l := range leads {
			tier := "-"
			savings := "-"
			if l.CalculatorResults != nil {
				tier = document.TierName(l.CalculatorResults.TierKey)
				savings = document.Money(l.CalculatorResults.MonthlySavings) + "/mo"
			}
			fmt.Fprintf(out, "%s  %-24s %-24s %-14s %s\n", l.ID, l.Name, l.CompanyName, tier, savings)
		}
		return nil
	},
}

var leadsShowCmd = &cobra.Command{
	Use:   "show <lead-id>",
	Short: "Print one lead as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		lead, err := env.Store.GetLead(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(lead)
	},
}

var reconcileAll bool

var leadsReconcileCmd = &cobra.Command{
	Use:   "reconcile [lead-id]",
	Short: "Make drifted voice-minute fields agree and persist the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		if !reconcileAll {
			if len(args) != 1 {
				return fmt.Errorf("pass a lead id or --all")
			}
			lead, err := env.Store.GetLead(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return persistReconciled(cmd, env, *lead)
		}

		leads, err := env.Store.ListLeads(cmd.Context(), store.LeadFilter{Limit: 10000})
		if err != nil {
			return err
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(8)
		for _, lead := range leads {
			g.Go(func() error {
				fixed := reconcile.Lead(lead)
				if leadsEqualVoice(lead, fixed) {
					return nil
				}
				if err := env.Store.UpdateLead(ctx, fixed); err != nil {
					return err
				}
				zap.L().Info("reconciled lead", zap.String("lead_id", lead.ID))
				return nil
			})
		}
		return g.Wait()
	},
}

func persistReconciled(cmd *cobra.Command, env *appEnv, lead model.Lead) error {
	fixed := reconcile.Lead(lead)
	if err := env.Store.UpdateLead(cmd.Context(), fixed); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "reconciled %s: %d voice minutes\n",
		fixed.ID, fixed.CalculatorInputs.CallVolume.Int())
	return nil
}

// leadsEqualVoice reports whether reconciliation changed anything worth
// writing back.
func leadsEqualVoice(a, b model.Lead) bool {
	if a.CalculatorInputs.CallVolume != b.CalculatorInputs.CallVolume {
		return false
	}
	ar, br := a.CalculatorResults, b.CalculatorResults
	if (ar == nil) != (br == nil) {
		return false
	}
	if ar == nil {
		return true
	}
	return ar.AdditionalVoiceMinutes == br.AdditionalVoiceMinutes &&
		ar.AICostMonthly.Total == br.AICostMonthly.Total
}

func init() {
	leadsReconcileCmd.Flags().BoolVar(&reconcileAll, "all", false, "reconcile every lead")
	leadsCmd.AddCommand(leadsListCmd, leadsShowCmd, leadsReconcileCmd)
	rootCmd.AddCommand(leadsCmd)
}
