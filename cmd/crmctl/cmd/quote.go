package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/pricing"
)

var quoteCmd = &cobra.Command{
	Use:   "quote [file|-]",
	Short: "Validate a rate structure and print its cost breakdown",
	Long: `Reads a rate structure JSON document from a file, or from stdin when the
argument is "-" or missing, validates it and prints the itemised total.

Percentage costs are taken of base plus rental, never of a running total.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuote,
}

func runQuote(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}

	var rs model.RateStructure
	if err := json.NewDecoder(in).Decode(&rs); err != nil {
		return fmt.Errorf("decode rate structure: %w", err)
	}

	structure, err := pricing.Parse(rs)
	if err != nil {
		var verr *pricing.ValidationError
		if errors.As(err, &verr) {
			for _, v := range verr.Violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", v.Field, v.Message)
			}
		}
		return err
	}

	return printBreakdown(cmd.OutOrStdout(), structure.Breakdown())
}

func printBreakdown(out io.Writer, b pricing.Breakdown) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Base\t%s\t\n", pricing.FormatCurrency(b.Base))
	fmt.Fprintf(w, "Rental\t%s\t\n", pricing.FormatCurrency(b.Rental))
	fmt.Fprintf(w, "Subtotal\t%s\t\n", pricing.FormatCurrency(b.Subtotal))
	for _, line := range b.AdditionalCosts {
		label := line.Name
		if line.IsPercentage {
			label = fmt.Sprintf("%s (%s)", line.Name, pricing.FormatPercent(line.Rate))
		}
		fmt.Fprintf(w, "%s\t%s\t\n", label, pricing.FormatCurrency(line.Amount))
	}
	fmt.Fprintf(w, "Total\t%s\t\n", pricing.FormatCurrency(b.Total))
	return w.Flush()
}
