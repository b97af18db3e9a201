package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	espgo "github.com/ivangzz/espgo"
	"github.com/ivangzz/espgo/internal/config"
	"github.com/ivangzz/espgo/internal/store"
	"github.com/ivangzz/espgo/internal/telemetry"
)

var (
	maxGenerations int
	dumpOut        string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run drives one evolution to its configured budget",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&maxGenerations, "max-generations", 0, "stop after this many generations even if budget remains (0 = no limit)")
	runCmd.Flags().StringVar(&dumpOut, "dump", "", "path to write the final champion's weight dump (optional)")
}

func buildTask(name string) espgo.Task {
	switch name {
	case "constant":
		return &espgo.ConstantTask{Value: 7.0, NumInputs: 1, NumOutputs: 1}
	case "incremental-parity":
		return espgo.NewIncrementalXORTask()
	default:
		return espgo.NewIdentityTask()
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if seedFlag != 0 {
		cfg.Seed = seedFlag
	}

	task := buildTask(cfg.TaskName)
	var variant espgo.Variant = espgo.FeedForwardVariant{}
	if cfg.Recurrent {
		variant = espgo.RecurrentVariant{}
	}

	controller := espgo.NewController(espgo.ControllerConfig{
		HiddenUnits:    cfg.HiddenUnits,
		PoolSize:       cfg.SubPopulationSize,
		NumInputs:      task.InputDimension(),
		NumOutputs:     task.OutputDimension(),
		Variant:        variant,
		Task:           task,
		Minimize:       cfg.Minimize,
		MutationRate:   cfg.MutationRate,
		BurstThreshold: cfg.BurstThreshold,
		Budget:         cfg.EvaluationBudget,
		NumWorkers:     cfg.NumWorkers,
		Seed:           cfg.Seed,
	})

	gl, err := telemetry.NewGenerationLogger(cfg.LogDir)
	if err != nil {
		return err
	}
	rs, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	defer rs.Close()

	generation := 0
	for !controller.Done() {
		if maxGenerations > 0 && generation >= maxGenerations {
			break
		}
		bestRaw, taskErr := controller.RunGeneration(cfg.TrialsPerGeneration)
		if taskErr != nil {
			gl.Warnf("generation %d: %v", generation, taskErr)
		}

		mean := 0.0
		stale := 0
		for _, p := range controller.SubPopulations {
			mean += p.AverageFitness()
			stale += p.StaleCount()
		}
		if n := len(controller.SubPopulations); n > 0 {
			mean /= float64(n)
		}
		cpuPct, memPct := telemetry.SampleHostStats(gl)

		if err := gl.Log(telemetry.GenerationRecord{
			Generation:  generation,
			BestFitness: bestRaw,
			MeanFitness: mean,
			Evaluations: controller.Evaluations.Load(),
			Stagnation:  controller.StagnationCounter,
			StaleCount:  stale,
			CPUPercent:  cpuPct,
			MemPercent:  memPct,
		}); err != nil {
			gl.Warnf("generation %d: %v", generation, err)
		}
		if err := rs.RecordGeneration(generation, bestRaw, mean, controller.Evaluations.Load(), controller.StagnationCounter, stale); err != nil {
			gl.Warnf("generation %d: %v", generation, err)
		}
		generation++
	}

	if controller.BestEver != nil {
		var sb strings.Builder
		if err := espgo.DumpNetwork(&sb, controller.BestEver); err != nil {
			gl.Warnf("dump champion: %v", err)
		} else if err := rs.RecordChampion(generation, controller.BestEverFitness, sb.String()); err != nil {
			gl.Warnf("record champion: %v", err)
		}
		if dumpOut != "" {
			if err := os.WriteFile(dumpOut, []byte(sb.String()), 0644); err != nil {
				gl.Warnf("write dump file: %v", err)
			}
		}
	}

	fmt.Printf("espctl: ran %d generations, %d evaluations, best fitness %.6f\n",
		generation, controller.Evaluations.Load(), controller.BestEverFitness)
	return nil
}
