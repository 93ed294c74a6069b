package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/document"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/generator"
)

var reportFlags struct {
	output  string
	preview bool
}

var reportCmd = &cobra.Command{
	Use:   "report <lead-id>",
	Short: "Generate the prospect-facing ROI report PDF for a lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateToFile(cmd, args[0], document.KindROIReport)
	},
}

var proposalCmd = &cobra.Command{
	Use:   "proposal <lead-id>",
	Short: "Generate the sales proposal PDF for a lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateToFile(cmd, args[0], document.KindProposal)
	},
}

func generateToFile(cmd *cobra.Command, leadID string, kind document.Kind) error {
	env, err := initEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	mode := generator.ModeFinal
	if reportFlags.preview {
		mode = generator.ModePreview
	}

	out, err := env.Generator.GenerateByID(cmd.Context(), leadID, kind, mode)
	if err != nil {
		return err
	}

	path := reportFlags.output
	if path == "" {
		name := fmt.Sprintf("%s-%s.pdf", kind, leadID)
		path = filepath.Join(cfg.Document.OutputDir, name)
	}

	if err := os.WriteFile(path, out.PDF, 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(out.PDF))
	if out.Snapshot != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "recorded snapshot version %d\n", out.Snapshot.Version)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{reportCmd, proposalCmd} {
		c.Flags().StringVarP(&reportFlags.output, "output", "o", "", "output file (default <kind>-<lead-id>.pdf)")
		c.Flags().BoolVar(&reportFlags.preview, "preview", false, "skip the version snapshot")
	}
	rootCmd.AddCommand(reportCmd, proposalCmd)
}
