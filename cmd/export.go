package main

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/document"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/store"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all leads to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		leads, err := env.Store.ListLeads(cmd.Context(), store.LeadFilter{Limit: 10000})
		if err != nil {
			return err
		}

		if err := writeLeadsXLSX(exportOutput, leads); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d leads to %s\n", len(leads), exportOutput)
		return nil
	},
}

var exportHeader = []string{
	"ID", "Name", "Company", "Email", "Phone", "Industry", "Employees",
	"Plan", "AI Type", "Voice Minutes", "Monthly AI Cost", "Monthly Savings",
	"Yearly Savings", "Proposal Sent", "Created At",
}

func writeLeadsXLSX(path string, leads []model.Lead) error {
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range exportHeader {
		header.AddCell().SetString(h)
	}

	for _, l := range leads {
		row := sheet.AddRow()
		row.AddCell().SetString(l.ID)
		row.AddCell().SetString(l.Name)
		row.AddCell().SetString(l.CompanyName)
		row.AddCell().SetString(l.Email)
		row.AddCell().SetString(l.PhoneNumber)
		row.AddCell().SetString(l.Industry)
		row.AddCell().SetString(strconv.Itoa(l.EmployeeCount))

		if res := l.CalculatorResults; res != nil {
			row.AddCell().SetString(document.TierName(res.TierKey))
			row.AddCell().SetString(document.AITypeName(res.AIType))
			row.AddCell().SetString(strconv.Itoa(res.AdditionalVoiceMinutes))
			row.AddCell().SetString(document.Money(res.AICostMonthly.Total))
			row.AddCell().SetString(document.Money(res.MonthlySavings))
			row.AddCell().SetString(document.Money(res.YearlySavings))
		} else {
			for range 6 {
				row.AddCell().SetString("")
			}
		}

		row.AddCell().SetString(strconv.FormatBool(l.ProposalSent))
		row.AddCell().SetString(l.CreatedAt.Format("2006-01-02 15:04"))
	}

	return eris.Wrapf(wb.Save(path), "export: save %s", path)
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "leads.xlsx", "output file")
	rootCmd.AddCommand(exportCmd)
}
