// Command stagectl inspects stage windows and replays drags without opening
// a window.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/milk9111/folio/prefabs"
	"github.com/milk9111/folio/rotation"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var prefabsDir string
	cmd := &cobra.Command{
		Use:          "stagectl",
		Short:        "Inspect island stage windows",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			prefabs.SetDir(prefabsDir)
		},
	}
	cmd.PersistentFlags().StringVar(&prefabsDir, "prefabs", "prefabs", "directory whose prefab files override the embedded ones")
	cmd.AddCommand(newClassifyCmd(), newWindowsCmd(), newSimulateCmd())
	return cmd
}

func loadIsland() (*prefabs.IslandSpec, rotation.Config, error) {
	spec, err := prefabs.LoadIslandSpec()
	if err != nil {
		return nil, rotation.Config{}, err
	}
	cfg, err := spec.RotationConfig()
	if err != nil {
		return nil, rotation.Config{}, err
	}
	return spec, cfg, nil
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify YAW...",
		Short: "Print the stage for each yaw in radians",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadIsland()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "YAW\tNORMALIZED\tSTAGE")
			for _, arg := range args {
				yaw, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("stagectl: yaw %q: %w", arg, err)
				}
				n := rotation.Normalize(yaw)
				fmt.Fprintf(tw, "%s\t%.4f\t%s\n", arg, n, rotation.Classify(n, cfg.Windows))
			}
			return tw.Flush()
		},
	}
}

func newWindowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "List the configured stage windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadIsland()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STAGE\tMIN\tMAX")
			for _, w := range cfg.Windows {
				fmt.Fprintf(tw, "%s\t%.2f\t%.2f\n", w.Stage, w.Min, w.Max)
			}
			return tw.Flush()
		},
	}
}

type simulateOptions struct {
	drags  []float64
	width  float64
	frames int
	yaw    float64
}

func newSimulateCmd() *cobra.Command {
	opts := simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a drag and the momentum that follows it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, cfg, err := loadIsland()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("yaw") {
				opts.yaw = spec.Placement(int(opts.width)).Yaw
			}
			return simulate(cmd.OutOrStdout(), cfg, opts)
		},
	}
	cmd.Flags().Float64SliceVar(&opts.drags, "drag", nil, "pointer deltas in pixels, one move per value")
	cmd.Flags().Float64Var(&opts.width, "width", 1280, "viewport width in pixels")
	cmd.Flags().IntVar(&opts.frames, "frames", 120, "frames to run after release")
	cmd.Flags().Float64Var(&opts.yaw, "yaw", 0, "starting yaw in radians (default from island.yaml)")
	return cmd
}

type yawValue struct {
	yaw float64
}

func (y *yawValue) GetYaw() float64  { return y.yaw }
func (y *yawValue) SetYaw(v float64) { y.yaw = v }

// simulate drags with one tick per move, releases, then ticks until the
// island rests or the frame budget runs out.
func simulate(out io.Writer, cfg rotation.Config, opts simulateOptions) error {
	target := &yawValue{yaw: opts.yaw}
	c := rotation.NewController(target, cfg)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	c.OnStageChange(func(s rotation.Stage) {
		fmt.Fprintf(tw, "\t\t\t%s\n", s)
	})

	fmt.Fprintln(tw, "FRAME\tYAW\tVELOCITY\tSTAGE")
	x := 0.0
	c.PointerDown(x)
	frame := 0
	for _, dx := range opts.drags {
		x += dx
		c.PointerMove(x, opts.width)
		c.Tick()
		frame++
		fmt.Fprintf(tw, "%d\t%.4f\t%.5f\t\n", frame, rotation.Normalize(target.yaw), c.State().AngularVelocity)
	}
	c.PointerUp()

	for i := 0; i < opts.frames && c.State().AngularVelocity != 0; i++ {
		c.Tick()
		frame++
		fmt.Fprintf(tw, "%d\t%.4f\t%.5f\t\n", frame, rotation.Normalize(target.yaw), c.State().AngularVelocity)
	}
	final := rotation.Normalize(target.yaw)
	fmt.Fprintf(tw, "rest\t%.4f\t%.5f\t%s\n", final, c.State().AngularVelocity, rotation.Classify(final, cfg.Windows))
	return tw.Flush()
}
