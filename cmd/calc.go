package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/document"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/engine"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
)

var calcFlags struct {
	tier       string
	aiType     string
	role       string
	employees  int
	callVolume int
	ratesFile  string
}

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Run one calculation and print the savings summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := calcRates()
		if err != nil {
			return err
		}
		rates, err := provider.Rates(context.Background())
		if err != nil {
			return err
		}

		in := engine.Validate(model.CalculatorInputs{
			AITier:       model.AITier(calcFlags.tier),
			AIType:       model.AIType(calcFlags.aiType),
			Role:         model.Role(calcFlags.role),
			NumEmployees: model.FlexInt(calcFlags.employees),
			CallVolume:   model.FlexInt(calcFlags.callVolume),
		}, rates)
		res := engine.Calculate(in, rates)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Plan:              %s (%s)\n", document.TierName(res.TierKey), document.AITypeName(res.AIType))
		fmt.Fprintf(out, "Human cost:        %s/mo\n", document.Money(res.HumanCostMonthly))
		fmt.Fprintf(out, "AI chatbot cost:   %s/mo\n", document.Money(res.AICostMonthly.Chatbot))
		fmt.Fprintf(out, "AI voice cost:     %s/mo (%d additional minutes)\n", document.Money(res.AICostMonthly.Voice), res.AdditionalVoiceMinutes)
		fmt.Fprintf(out, "AI total:          %s/mo\n", document.Money(res.AICostMonthly.Total))
		fmt.Fprintf(out, "Setup fee:         %s\n", document.Money(res.AICostMonthly.SetupFee))
		fmt.Fprintf(out, "Monthly savings:   %s (%s)\n", document.Money(res.MonthlySavings), document.Percent(res.SavingsPercentage))
		fmt.Fprintf(out, "Yearly savings:    %s\n", document.Money(res.YearlySavings))
		fmt.Fprintf(out, "Annual plan:       %s\n", document.Money(res.AnnualPlan))
		return nil
	},
}

// calcRates loads rates without touching the store: the calc command is a
// pure, offline path.
func calcRates() (pricing.Provider, error) {
	if calcFlags.ratesFile != "" {
		rates, err := pricing.LoadRatesFile(calcFlags.ratesFile)
		if err != nil {
			return nil, err
		}
		return pricing.NewStaticProvider(rates), nil
	}
	return pricing.NewStaticProvider(nil), nil
}

func init() {
	calcCmd.Flags().StringVar(&calcFlags.tier, "tier", "growth", "AI tier (starter|growth|premium)")
	calcCmd.Flags().StringVar(&calcFlags.aiType, "type", "chatbot", "AI type (chatbot|voice|both|conversationalVoice|both-premium)")
	calcCmd.Flags().StringVar(&calcFlags.role, "role", "customerService", "human role compared against")
	calcCmd.Flags().IntVar(&calcFlags.employees, "employees", 1, "number of employees")
	calcCmd.Flags().IntVar(&calcFlags.callVolume, "minutes", 0, "additional voice minutes beyond the included allotment")
	calcCmd.Flags().StringVar(&calcFlags.ratesFile, "rates", "", "YAML rate override file")
	rootCmd.AddCommand(calcCmd)
}
