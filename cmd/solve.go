package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridops/switchsched/core/metrics"
	"github.com/gridops/switchsched/core/solver"
	"github.com/gridops/switchsched/infra/instance"
	"github.com/gridops/switchsched/infra/logger"
)

var solveFlags struct {
	file              string
	algorithm         string
	seed              int64
	verbose           bool
	timeLimit         float64
	iterationsLimit   int64
	perturbationLimit int
	localSearch       string
	details           int
	solution          bool
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a maneuver scheduling instance",
	RunE:  runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.StringVarP(&solveFlags.file, "file", "f", "", "instance file (required)")
	f.StringVarP(&solveFlags.algorithm, "algorithm", "a", "", "algorithm: greedy, neh or ils")
	f.Int64Var(&solveFlags.seed, "seed", 0, "random number generator seed")
	f.BoolVarP(&solveFlags.verbose, "verbose", "v", false, "log the optimization progress")
	f.Float64Var(&solveFlags.timeLimit, "time-limit", 0, "wall time limit in seconds (0 = unlimited)")
	f.Int64Var(&solveFlags.iterationsLimit, "iterations-limit", 0, "iterations limit (0 = unlimited)")
	f.IntVar(&solveFlags.perturbationLimit, "perturbation-passes-limit", 0, "highest perturbation strength tried")
	f.StringVar(&solveFlags.localSearch, "local-search", "", "local search method: vnd or rvnd")
	f.IntVarP(&solveFlags.details, "details", "d", 1, "details level at the end of the run (0 to 3)")
	f.BoolVarP(&solveFlags.solution, "solution", "s", false, "print the best schedule found")
	if err := solveCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.NewWithLevel("solve", cfg.Logging.Level)

	sink, err := setupMetrics(ctx, cfg, log)
	if err != nil {
		return err
	}

	p, err := instance.LoadFile(solveFlags.file)
	if err != nil {
		return fmt.Errorf("load instance: %w", err)
	}

	name := cfg.Solver.Algorithm
	if cmd.Flags().Changed("algorithm") {
		name = solveFlags.algorithm
	}
	opts := cfg.Solver.Options(solveFlags.verbose)
	if cmd.Flags().Changed("seed") {
		opts.Seed = solveFlags.seed
	}
	if cmd.Flags().Changed("time-limit") {
		opts.TimeLimit = time.Duration(solveFlags.timeLimit * float64(time.Second))
	}
	if cmd.Flags().Changed("iterations-limit") {
		opts.IterationsLimit = solveFlags.iterationsLimit
	}
	if cmd.Flags().Changed("perturbation-passes-limit") {
		opts.PerturbationPassesLimit = solveFlags.perturbationLimit
	}
	if cmd.Flags().Changed("local-search") {
		opts.LocalSearchMethod = solveFlags.localSearch
	}

	algo, err := solver.New(name, opts, log)
	if err != nil {
		return err
	}

	began := time.Now()
	res, solveErr := algo.Solve(ctx, p)
	elapsed := time.Since(began)

	feasible, feasibilityMsg := p.IsFeasible(res.Schedule)

	status := "SUBOPTIMAL"
	switch {
	case solveErr != nil:
		status = "ERROR"
	case !feasible:
		status = "INFEASIBLE"
	}

	if err := sink.RecordSolve(metrics.SolveRecord{
		Algorithm:  name,
		Instance:   solveFlags.file,
		RunID:      res.Report.RunID,
		Seed:       opts.Seed,
		Makespan:   res.Makespan,
		Feasible:   feasible,
		Iterations: res.Report.Iterations,
		Runtime:    elapsed,
	}); err != nil {
		log.Warnf("metrics sink: %v", err)
	}

	printSolveOutput(res, status, feasible, feasibilityMsg, solveErr, elapsed)
	return nil
}

func printSolveOutput(res solver.Result, status string, feasible bool, feasibilityMsg string, solveErr error, elapsed time.Duration) {
	makespan := "?"
	if feasible {
		makespan = fmt.Sprintf("%.6f", res.Makespan)
	}

	switch solveFlags.details {
	case 0:
		// Quiet.
	case 1:
		fmt.Printf("%s %s\n", status, makespan)
	case 2:
		fmt.Printf("%s %s %.4f %d\n", status, makespan, elapsed.Seconds(), res.Report.Iterations)
	default:
		banner := strings.Repeat("=", 70)
		fmt.Println()
		fmt.Println(banner)
		fmt.Println("SUMMARY")
		fmt.Println(banner)
		fmt.Printf("Makespan:         %s\n", makespan)
		fmt.Printf("Status:           %s\n", status)
		if !feasible {
			fmt.Printf("Infeasibility:    %s\n", feasibilityMsg)
		}
		if solveErr != nil {
			fmt.Printf("Error details:     - %v\n", solveErr)
		}
		fmt.Printf("Elapsed time (s): %.4f\n\n", elapsed.Seconds())
		fmt.Println("Additional Information:")
		fields := res.Report.Fields()
		if len(fields) == 0 {
			fmt.Println(" * No additional information to show.")
		}
		for _, f := range fields {
			fmt.Printf(" * %s: %v\n", f.Key, f.Value)
		}
	}

	if solveFlags.solution {
		banner := strings.Repeat("=", 70)
		fmt.Println()
		fmt.Println(banner)
		fmt.Println("SOLUTION")
		fmt.Println(banner)
		// At the highest details level each operation carries its start
		// moment from the timing simulation.
		if solveFlags.details >= 3 && feasible && len(res.StartTimes) > 0 {
			fmt.Print(res.Schedule.Annotate(res.StartTimes))
		} else {
			fmt.Print(res.Schedule.String())
		}
	}
}
