package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gqlcpp/gql/internal/analysiscache"
	"github.com/gqlcpp/gql/internal/analyzer"
	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/dialect"
	"github.com/gqlcpp/gql/internal/featuregate"
	"github.com/gqlcpp/gql/internal/gqlerr"
	"github.com/gqlcpp/gql/internal/output"
	"github.com/gqlcpp/gql/internal/patternctx"
)

// AnalyzeOptions holds the analyze subcommand's own flags.
type AnalyzeOptions struct {
	Fixture    string
	DialectPath string
	CachePath  string
}

// NewAnalyzeCommand builds `gqlanalyze analyze`, which runs the rewrite and
// semantic analysis pipeline over a named fixture and reports either the
// resulting variable table or the first diagnostic raised.
func NewAnalyzeCommand(root *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "run the analyzer over a named fixture graph pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Fixture, "fixture", "chain", fmt.Sprintf("fixture to analyze, one of %v", FixtureNames()))
	cmd.Flags().StringVar(&opts.DialectPath, "dialect", "", "path to a .cue or .yaml dialect document (default: all features enabled)")
	cmd.Flags().StringVar(&opts.CachePath, "cache", "", "path to a sqlite analysis cache; when set, a hit short-circuits analysis and a miss is recorded")

	return cmd
}

func runAnalyze(cmd *cobra.Command, root *RootOptions, opts *AnalyzeOptions) error {
	gate := featuregate.Gate(featuregate.NewStatic())
	cfg := patternctx.Config{}

	if opts.DialectPath != "" {
		dcfg, err := dialect.Load(opts.DialectPath)
		if err != nil {
			return err
		}
		gate = dcfg.Gate()
		cfg.DifferentEdgesMatchMode = dcfg.DifferentEdgesMatchMode
	}

	var cache *analysiscache.Cache
	var cacheKey string
	if opts.CachePath != "" {
		c, err := analysiscache.Open(opts.CachePath)
		if err != nil {
			slog.Warn("analysis cache unavailable, continuing without it", "path", opts.CachePath, "err", err)
		} else {
			defer c.Close()
			cache = c
			cacheKey = analysiscache.Key(opts.Fixture, opts.DialectPath)

			if outcome, hit, err := cache.Get(cmd.Context(), cacheKey); err != nil {
				slog.Warn("analysis cache read failed, analyzing without it", "key", cacheKey, "err", err)
			} else if hit {
				slog.Debug("analysis cache hit", "key", cacheKey)
				printOutcome(cmd, root, outcome)
				return outcomeError(outcome)
			} else {
				slog.Debug("analysis cache miss", "key", cacheKey)
			}
		}
	}

	gp, err := LoadFixture(opts.Fixture)
	if err != nil {
		return err
	}

	analysisErr := analyzer.Analyze(gp, gate, cfg)

	outcome := analysiscache.Outcome{}
	if analysisErr == nil {
		outcome.OK = true
		outcome.Variables = gp.AuxData.Variables
		outcome.Joinable = joinableNames(gp)
	} else {
		var ae *gqlerr.AnalysisError
		if !errors.As(analysisErr, &ae) {
			return analysisErr
		}
		outcome.Err = ae
	}

	if cache != nil {
		if err := cache.Put(context.Background(), cacheKey, outcome); err != nil {
			slog.Warn("analysis cache write failed", "key", cacheKey, "err", err)
		}
	}

	printOutcome(cmd, root, outcome)
	return outcomeError(outcome)
}

// joinableNames flattens the per-PathPattern joinable-variable sets the
// analyzer attached into one sorted list. A graph pattern with more than
// one path pattern has one such set per pattern; none of the built-in
// fixtures exercise that case yet, so this simply unions them.
func joinableNames(gp *ast.GraphPattern) []string {
	seen := map[string]struct{}{}
	for _, pp := range gp.Patterns {
		if pp.AuxData == nil {
			continue
		}
		for name := range pp.AuxData.JoinableVariables {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printOutcome(cmd *cobra.Command, root *RootOptions, outcome analysiscache.Outcome) {
	if root.Format == "json" {
		_ = json.NewEncoder(cmd.OutOrStdout()).Encode(outcome)
		return
	}

	if !outcome.OK {
		if outcome.Err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), output.FormatError(outcome.Err))
		}
		return
	}

	names := make([]string, 0, len(outcome.Variables))
	for name := range outcome.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := outcome.Variables[name]
		fmt.Fprintf(cmd.OutOrStdout(), "%s: kind=%s degree=%s temp=%v\n", name, v.Kind, v.Degree, v.IsTemp)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "joinable: %v\n", outcome.Joinable)
}

func outcomeError(outcome analysiscache.Outcome) error {
	if outcome.OK {
		return nil
	}
	return outcome.Err
}
