package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/store"
)

func newInferCmd(c *cli) *cobra.Command {
	var inputs string

	cmd := &cobra.Command{
		Use:   "infer",
		Short: "Evaluate the system for one set of crisp inputs",
		Example: `  fuzzyctl infer -c tipping.yaml --input 6.5,9.8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseFloats(inputs)
			if err != nil {
				return err
			}

			sys, _, cleanup, err := c.buildSystem(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := sys.Infer(cmd.Context(), values...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "output:   %g\n", res.Output)
			fmt.Fprintf(out, "strength: %g\n", res.Strength)
			for i, s := range res.Fired {
				fmt.Fprintf(out, "  rule %d: %g\n", i+1, s)
			}
			if res.RunID != "" {
				fmt.Fprintf(out, "run:      %s\n", res.RunID)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputs, "input", "i", "", "Comma separated crisp inputs, one per input variable")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// surfaceOutput is the JSON document written by the surface command.
type surfaceOutput struct {
	Run    string    `json:"run,omitempty"`
	Kind   string    `json:"kind"`
	Axes   []string  `json:"axes"`
	Shape  []int     `json:"shape"`
	Values []float64 `json:"values"`
}

func newSurfaceCmd(c *cli) *cobra.Command {
	var control bool

	cmd := &cobra.Command{
		Use:   "surface",
		Short: "Sweep the system over every input grid point and print JSON",
		Long: `surface evaluates the system at every point of the cartesian product of
the input variable ranges. By default each point is a full inference over the
output universe. With --control the aggregate of the composed rule base is
sampled at the strongest firing strength instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, def, cleanup, err := c.buildSystem(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			ranges := def.Ranges()
			doc := surfaceOutput{Kind: string(store.KindInferenceSurface)}
			if control {
				doc.Kind = string(store.KindControlSurface)
				res, err := sys.ControlSurface(cmd.Context(), ranges)
				if err != nil {
					return err
				}
				doc.Run, doc.Shape, doc.Values = res.RunID, res.Surface.Shape(), res.Surface.Values()
			} else {
				res, err := sys.InferenceSurface(cmd.Context(), ranges)
				if err != nil {
					return err
				}
				doc.Run, doc.Shape, doc.Values = res.RunID, res.Surface.Shape(), res.Surface.Values()
			}
			for _, in := range def.Inputs {
				doc.Axes = append(doc.Axes, in.Name)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
	cmd.Flags().BoolVar(&control, "control", false, "Compute the control surface instead of the inference surface")
	return cmd
}

func newRunsCmd(c *cli) *cobra.Command {
	var (
		limit int
		kind  string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List journaled runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.dbPath == "" {
				return errors.WithHint(
					errors.Wrap(internalerr.ErrInvalidInput, "runs: no journal"),
					"pass --db with the SQLite file used by infer and surface")
			}
			k, err := parseKind(kind)
			if err != nil {
				return err
			}

			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), store.ListOptions{Kind: k, Limit: limit})
			if err != nil {
				return err
			}
			return writeRuns(cmd.OutOrStdout(), runs)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultLimit, "Maximum runs to list")
	cmd.Flags().StringVar(&kind, "kind", "", "Only list runs of this kind (inference, control_surface, inference_surface)")
	return cmd
}

func newValidateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a system definition without evaluating it",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, def, cleanup, err := c.buildSystem(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d inputs, %d sets, %d rules, %s)\n",
				c.configPath, len(def.Inputs), len(def.Sets), len(def.Rules), def.Defuzz)
			return nil
		},
	}
}

// parseFloats splits a comma separated list of numbers.
func parseFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(internalerr.ErrInvalidInput, "no inputs given")
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "input %d", i+1), internalerr.ErrInvalidInput)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseKind(s string) (store.Kind, error) {
	switch k := store.Kind(strings.TrimSpace(s)); k {
	case "", store.KindInference, store.KindControlSurface, store.KindInferenceSurface:
		return k, nil
	}
	return "", errors.Wrapf(internalerr.ErrInvalidInput, "unknown run kind %q", s)
}

func writeRuns(w io.Writer, runs []store.Run) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tSOURCE\tMETHOD\tCREATED\tRESULT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Kind, r.Source, r.Method,
			r.CreatedAt.Format("2006-01-02 15:04:05"), summarize(r))
	}
	return tw.Flush()
}

func summarize(r store.Run) string {
	if r.Kind == store.KindInference {
		return fmt.Sprintf("%v -> %g", r.Inputs, r.Output)
	}
	return fmt.Sprintf("shape %v", r.Shape)
}

// writeMetrics prints every counter in reg as "name value".
func writeMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			fmt.Fprintf(w, "%s %g\n", mf.GetName(), m.GetCounter().GetValue())
		}
	}
	return nil
}
