package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/semsim/internal/bench/corpus"
	"github.com/DjordjeVuckovic/semsim/internal/bench/report"
	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
	"github.com/DjordjeVuckovic/semsim/internal/bench/spec"
	"github.com/DjordjeVuckovic/semsim/internal/provider"
	"github.com/DjordjeVuckovic/semsim/internal/storage"
	"github.com/DjordjeVuckovic/semsim/internal/storage/factory"
	"github.com/spf13/cobra"
)

const providerURLEnv = "SEMSIM_PROVIDER_URL"

var runCmd = &cobra.Command{
	Use:   "run [corpus]",
	Short: "Send a corpus to the provider and report how well it classifies",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBatch,
}

func init() {
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("spec", "", "Path to a YAML run spec")
	f.String("provider-url", "", "Provider endpoint (overrides "+providerURLEnv+")")
	f.Int("max-lines", 0, "Maximum records to load, negative for no limit")
	f.Bool("table", false, "Print the per-case table")
	f.Bool("strip", false, "Print one outcome character per case")
	f.Bool("quiet", false, "Print only the summary")
	f.Bool("texts", false, "Show texts in the per-case table")
	f.Bool("fingerprints", false, "Show fingerprints in the per-case table")
	f.Bool("no-color", false, "Disable colored output")
	f.String("output", "", "Write the JSON report to this path, - for stdout")
	f.String("failures", report.DefaultFailuresPath, "Write misclassified cases to this path, empty to disable")
	f.String("log", report.DefaultRunLogPath, "Append the run to this log file, empty to disable")
	cmd.MarkFlagsMutuallyExclusive("table", "strip", "quiet")
}

// loadSpec builds the run spec. Flags win over the spec file, which wins over
// the environment.
func loadSpec(cmd *cobra.Command, args []string) (*spec.RunSpec, error) {
	var s *spec.RunSpec
	if path, _ := cmd.Flags().GetString("spec"); path != "" {
		loaded, err := spec.ReadFile(path)
		if err != nil {
			return nil, err
		}
		s = loaded
	} else {
		s = &spec.RunSpec{}
	}
	if s.Provider.URL == "" {
		s.Provider.URL = os.Getenv(providerURLEnv)
	}

	if len(args) == 1 {
		s.Corpus.Path = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("provider-url") {
		s.Provider.URL, _ = flags.GetString("provider-url")
	}
	if flags.Changed("max-lines") {
		s.Corpus.MaxLines, _ = flags.GetInt("max-lines")
	}
	for flag, mode := range map[string]report.Mode{
		"table": report.ModeTable,
		"strip": report.ModeStrip,
		"quiet": report.ModeQuiet,
	} {
		if on, _ := flags.GetBool(flag); on {
			s.Output.Mode = string(mode)
		}
	}
	if on, _ := flags.GetBool("texts"); on {
		s.Output.ShowTexts = true
	}
	if on, _ := flags.GetBool("fingerprints"); on {
		s.Output.ShowFingerprints = true
	}
	if on, _ := flags.GetBool("no-color"); on {
		s.Output.NoColor = true
	}
	for flag, dst := range map[string]*string{
		"output":   &s.Output.JSON,
		"failures": &s.Output.Failures,
		"log":      &s.Output.Log,
	} {
		if flags.Changed(flag) || *dst == "" {
			*dst, _ = flags.GetString(flag)
		}
	}

	factory.ApplyEnv(&s.Sinks)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run spec: %w", err)
	}
	return s, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := loadSpec(cmd, args)
	if err != nil {
		return err
	}

	c, err := corpus.LoadFromFile(s.Corpus.Path, s.CorpusOptions())
	if err != nil {
		return err
	}

	client, err := provider.NewHTTPClient(s.Provider.URL, provider.WithTimeout(s.Provider.Timeout))
	if err != nil {
		return err
	}

	res := runner.New(client, runner.Config{Options: s.Provider.Options}).Run(ctx, c)

	report.NewConsole(cmd.OutOrStdout(), s.ConsoleOptions()).Render(res)

	if err := writeOutputs(s.Output, res); err != nil {
		return err
	}
	if res.Failed() {
		return res.Err
	}

	return storeRun(ctx, s.Sinks, res)
}

func writeOutputs(out spec.OutputConfig, res *runner.Result) error {
	if out.Log != "" {
		if err := report.AppendRunLog(res, out.Log); err != nil {
			return err
		}
	}
	if res.Failed() {
		return nil
	}

	if out.Failures != "" {
		n, err := report.WriteFailuresFile(res, out.Failures)
		if err != nil {
			return err
		}
		slog.Info("Failures written", "path", out.Failures, "cases", n)
	}
	if out.JSON != "" {
		if err := report.WriteJSON(report.Generate(res), out.JSON); err != nil {
			return err
		}
	}
	return nil
}

func storeRun(ctx context.Context, sinks spec.SinksConfig, res *runner.Result) error {
	storers, closeAll, err := factory.NewStorers(ctx, sinks)
	defer closeAll()
	if err != nil {
		return err
	}
	if len(storers) == 0 {
		return nil
	}

	if err := storage.StoreAll(ctx, res, storers...); err != nil {
		return fmt.Errorf("store run: %w", err)
	}
	return nil
}
