package main

import (
	"fmt"

	"github.com/DjordjeVuckovic/semsim/internal/bench/corpus"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [corpus]",
	Short: "Check a run spec and its corpus without calling the provider",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSpec(cmd, args)
		if err != nil {
			return err
		}

		c, err := corpus.LoadFromFile(s.Corpus.Path, s.CorpusOptions())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "records: %d  samples: %d  chars: %d  format errors: %d\n",
			c.Len(), c.Samples, c.Chars, len(c.FormatErrors))
		for _, fe := range c.FormatErrors {
			fmt.Fprintf(out, "  %s\n", fe.Error())
		}
		return nil
	},
}

func init() {
	// same flags as run, so an invocation can be checked before it is run
	addRunFlags(validateCmd)
}
