package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcus/tvnav/internal/events"
	"github.com/marcus/tvnav/internal/focus"
	"github.com/marcus/tvnav/internal/models"
	"github.com/marcus/tvnav/internal/output"
	"github.com/marcus/tvnav/internal/region"
)

// defaultRegions approximates the Home screen with partly loaded grids
const defaultRegions = "tabs:strip:5,hero:single:1,grid-0:grid:23:5,grid-1:grid:10:5"

// replayResult is what `replay --json` prints
type replayResult struct {
	Initial models.FocusState `json:"initial"`
	Final   models.FocusState `json:"final"`
	Steps   []focus.Step      `json:"steps"`
	Effects []models.Effect   `json:"effects,omitempty"`
}

// regionList is a --regions flag value, parsed when the flag is set
type regionList struct {
	raw     string
	regions []models.Region
}

var _ pflag.Value = (*regionList)(nil)

func (l *regionList) String() string { return l.raw }
func (l *regionList) Type() string   { return "regions" }

func (l *regionList) Set(s string) error {
	regions, err := region.Parse(s)
	if err != nil {
		return err
	}
	l.raw, l.regions = s, regions
	return nil
}

// newRegionList parses a built-in layout
func newRegionList(s string) *regionList {
	l := &regionList{}
	if err := l.Set(s); err != nil {
		panic(err)
	}
	return l
}

var replayRegions = newRegionList(defaultRegions)

type replayOptions struct {
	regions   []models.Region
	preferred string
	threshold float64
	rowUp     bool
}

// replay runs script against a fixed set of regions. Page requests are
// reported but never answered, so grids keep the counts they were given.
func replay(script string, opts replayOptions) (replayResult, []models.Region, error) {
	reg, err := region.FromRegions(opts.regions...)
	if err != nil {
		return replayResult{}, nil, err
	}
	evs, err := events.ParseScript(script)
	if err != nil {
		return replayResult{}, nil, err
	}

	ctrl := focus.New(focus.WithThreshold(opts.threshold), focus.WithRowUp(opts.rowUp))
	initial := focus.Initial(reg, opts.preferred)
	final, steps := ctrl.Replay(evs, initial, reg)
	return replayResult{
		Initial: initial,
		Final:   final,
		Steps:   steps,
		Effects: focus.Effects(steps),
	}, reg.Regions(), nil
}

var replayCmd = &cobra.Command{
	Use:   "replay [events...]",
	Short: "Replay remote presses against a region layout",
	Long: `Replay a sequence of remote presses and print where focus went.

Events are up, down, left, right, select and back (also h/j/k/l, ok, esc),
separated by spaces or commas. Regions are given as id:kind:count[:columns][:off].`,
	Example: `  tvnav replay down down right right
  tvnav replay --regions "row:strip:4,grid:grid:12:4" j,j,l,ok --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := replayOptions{regions: replayRegions.regions}
		opts.preferred, _ = cmd.Flags().GetString("preferred")
		opts.threshold, _ = cmd.Flags().GetFloat64("threshold")
		opts.rowUp, _ = cmd.Flags().GetBool("row-up")

		res, regions, err := replay(strings.Join(args, " "), opts)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(res)
		}

		fmt.Fprintf(output.Stdout, "start %s\n", output.FormatPosition(res.Initial))
		for _, line := range output.FormatTrace(res.Steps) {
			fmt.Fprintln(output.Stdout, line)
		}
		fmt.Fprintln(output.Stdout)
		fmt.Fprint(output.Stdout, output.RenderRegions(regions, res.Final, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().Var(replayRegions, "regions", "Region layout as id:kind:count[:columns][:off], comma separated")
	replayCmd.Flags().String("preferred", "", "Region focused first (default: first navigable)")
	replayCmd.Flags().Float64("threshold", focus.DefaultThreshold, "Rows from the end of a grid that trigger a page request (negative disables)")
	replayCmd.Flags().Bool("row-up", false, "Up moves between grid rows instead of leaving the grid")
	replayCmd.Flags().Bool("json", false, "Output JSON")
}
