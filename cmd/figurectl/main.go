package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inamate/ellipse/internal/figure"
	"github.com/inamate/ellipse/internal/script"
	"github.com/inamate/ellipse/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "figurectl",
		Short:         "Tools for the ellipse editor state engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newReplayCmd())
	return root
}

type replayOptions struct {
	asJSON       bool
	showSteps    bool
	showHistory  bool
	canvasWidth  float64
	canvasHeight float64
}

func newReplayCmd() *cobra.Command {
	opts := replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Run a YAML action script through the reducer and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := script.Load(args[0])
			if err != nil {
				return err
			}
			res := s.Run(figure.Canvas{Width: opts.canvasWidth, Height: opts.canvasHeight})
			return printResult(cmd.OutOrStdout(), res, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVar(&opts.showSteps, "steps", false, "print the view after every action")
	cmd.Flags().BoolVar(&opts.showHistory, "history", false, "print the committed history")
	cmd.Flags().Float64Var(&opts.canvasWidth, "canvas-width", figure.DefaultCanvasWidth, "canvas width when the script sets none")
	cmd.Flags().Float64Var(&opts.canvasHeight, "canvas-height", figure.DefaultCanvasHeight, "canvas height when the script sets none")

	return cmd
}

func printResult(out io.Writer, res script.Result, opts replayOptions) error {
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if opts.showSteps {
		fmt.Fprintln(tw, "STEP\tACTION\tCX\tCY\tWIDTH\tHEIGHT\tHISTORY\tCURSOR")
		for _, st := range res.Steps {
			f := st.View.Figure
			fmt.Fprintf(tw, "%d\t%s\t%g\t%g\t%g\t%g\t%d\t%s\n",
				st.Index, st.Action.Type, f.CX, f.CY, f.Width, f.Height, st.View.HistoryLength, cursorString(st.View.Cursor))
		}
		fmt.Fprintln(tw)
	}

	f := res.Final.Figure
	fmt.Fprintf(tw, "figure\tcx=%g cy=%g width=%g height=%g\n", f.CX, f.CY, f.Width, f.Height)
	fmt.Fprintf(tw, "history\t%d entries, cursor %s\n", res.Final.HistoryLength, cursorString(res.Final.Cursor))
	fmt.Fprintf(tw, "undo/redo\t%s/%s\n", enabled(res.Final.CanUndo), enabled(res.Final.CanRedo))
	fmt.Fprintf(tw, "boundaries\t%s\n", enabled(res.Final.Boundaries))

	if opts.showHistory {
		fmt.Fprintln(tw)
		printHistory(tw, res.History)
	}
	return tw.Flush()
}

func printHistory(w io.Writer, hv store.HistoryView) {
	fmt.Fprintln(w, "#\tCX\tCY\tWIDTH\tHEIGHT\t")
	for i, f := range hv.Entries {
		marker := ""
		if hv.Cursor != nil && *hv.Cursor == i {
			marker = "<"
		}
		fmt.Fprintf(w, "%d\t%g\t%g\t%g\t%g\t%s\n", i, f.CX, f.CY, f.Width, f.Height, marker)
	}
}

func cursorString(c *int) string {
	if c == nil {
		return "live"
	}
	return fmt.Sprintf("%d", *c)
}

func enabled(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
