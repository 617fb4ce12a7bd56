package cmd

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/gridops/switchsched/infra/instance"
)

var generateFlags struct {
	output      string
	switches    int
	teams       int
	seed        int64
	remoteShare float64
	density     float64
	pMin, pMax  float64
	sMin, sMax  float64
	triangular  bool
	integerOnly bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random maneuver scheduling instance",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateFlags.output, "output", "o", "", "file the instance is written to (required)")
	f.IntVar(&generateFlags.switches, "switches", 50, "number of switches")
	f.IntVar(&generateFlags.teams, "teams", 3, "number of teams")
	f.Int64Var(&generateFlags.seed, "seed", 0, "random number generator seed")
	f.Float64Var(&generateFlags.remoteShare, "remote-share", 0.10, "proportion of remotely maneuverable switches")
	f.Float64Var(&generateFlags.density, "density", 0.25, "order strength of the precedence graph")
	f.Float64Var(&generateFlags.pMin, "p-min", 1, "minimum maneuver time")
	f.Float64Var(&generateFlags.pMax, "p-max", 3, "maximum maneuver time")
	f.Float64Var(&generateFlags.sMin, "s-min", 5, "minimum travel time")
	f.Float64Var(&generateFlags.sMax, "s-max", 10, "maximum travel time")
	f.BoolVar(&generateFlags.triangular, "triangular", true, "enforce the triangle inequality on travel times")
	f.BoolVar(&generateFlags.integerOnly, "integer-only", true, "restrict generated times to integers")
	if err := generateCmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	params := instance.Params{
		Switches:      generateFlags.switches,
		Teams:         generateFlags.teams,
		RemoteShare:   generateFlags.remoteShare,
		Density:       generateFlags.density,
		ProcessingMin: generateFlags.pMin,
		ProcessingMax: generateFlags.pMax,
		TravelMin:     generateFlags.sMin,
		TravelMax:     generateFlags.sMax,
		Triangular:    generateFlags.triangular,
		IntegerOnly:   generateFlags.integerOnly,
	}

	p, err := instance.Generate(params, rand.New(rand.NewSource(generateFlags.seed)))
	if err != nil {
		return err
	}
	if err := instance.WriteFile(generateFlags.output, p); err != nil {
		return err
	}
	fmt.Printf("instance with %d switches and %d teams written to %s (density %.3f)\n",
		p.N, p.M, generateFlags.output, instance.Density(p))
	return nil
}
