// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/lightcone/pkg/logging"
	"github.com/AleutianAI/lightcone/services/estimator"
	"github.com/AleutianAI/lightcone/services/estimator/circuit"
	"github.com/AleutianAI/lightcone/services/estimator/tensornet"
)

// --- Global Command Variables ---
var (
	rows       int
	cols       int
	theta      float64
	planOnly   bool
	logLevel   string
	configPath string

	estimatorCfg = estimator.DefaultConfig()

	rootCmd = &cobra.Command{
		Use:   "lightcone",
		Short: "Tensor-network expectation values for shallow circuits",
		Long: `Lightcone computes the expectation value of a low-weight observable
after a shallow circuit on a planar qubit grid, by cancelling everything
outside the observable's causal cone and contracting the remainder as a
tensor network.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if _, err := os.Stat(configPath); err == nil {
				cfg, err := estimator.LoadConfig(configPath)
				if err != nil {
					log.Fatalf("Error loading %s: %v", configPath, err)
				}
				estimatorCfg = cfg
			}
		},
	}

	estimateCmd = &cobra.Command{
		Use:   "estimate",
		Short: "Estimate ZZ on the two central qubits of a grid circuit",
		Run:   runEstimate,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	estimateCmd.Flags().IntVar(&rows, "rows", 3, "Grid rows")
	estimateCmd.Flags().IntVar(&cols, "cols", 4, "Grid columns")
	estimateCmd.Flags().Float64Var(&theta, "theta", 0.456, "Final X-rotation angle in radians")
	estimateCmd.Flags().BoolVar(&planOnly, "plan-only", false, "Report contraction cost without contracting")

	rootCmd.AddCommand(estimateCmd)
}

// runEstimate builds the reference grid circuit, measures ZZ on two
// adjacent central qubits, and prints the value and the cost report.
func runEstimate(cmd *cobra.Command, args []string) {
	if rows < 1 || cols < 2 {
		log.Fatalf("grid must be at least 1x2, got %dx%d", rows, cols)
	}

	logger, err := logging.New(logging.Config{
		Level:   logging.ParseLevel(logLevel),
		Service: "lightcone",
	})
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Close()

	u := circuit.Grid(rows, cols, circuit.GridOptions{
		EdgeWeight:    edgeWeight,
		FinalRotation: theta,
	})
	a := circuit.Qubit{Row: rows / 2, Col: (cols - 1) / 2}
	b := circuit.Qubit{Row: rows / 2, Col: (cols-1)/2 + 1}
	obs := circuit.PauliString{a: circuit.PauliZ, b: circuit.PauliZ}

	est, err := estimator.New(estimatorCfg, logger.Logger)
	if err != nil {
		log.Fatalf("Error creating estimator: %v", err)
	}

	ctx := context.Background()
	if planOnly {
		cost, err := est.Plan(ctx, u, obs)
		if err != nil {
			log.Fatalf("Planning failed: %v", err)
		}
		fmt.Printf("observable:           %s\n", obs)
		fmt.Printf("opt_cost:             %.0f\n", cost.OpCost)
		fmt.Printf("largest_intermediate: %d elements (%d bytes)\n",
			cost.LargestIntermediate, cost.LargestIntermediate*tensornet.BytesPerElement)
		return
	}

	res, err := est.Estimate(ctx, u, obs)
	if err != nil {
		log.Fatalf("Estimation failed: %v", err)
	}
	fmt.Printf("observable:           %s\n", obs)
	fmt.Printf("expectation value:    %v\n", res.Value)
	fmt.Printf("opt_cost:             %.0f\n", res.Cost.OpCost)
	fmt.Printf("largest_intermediate: %d elements\n", res.Cost.LargestIntermediate)
	fmt.Printf("operations:           %d -> %d\n", res.Operations, res.SimplifiedOperations)
	fmt.Printf("live qubits:          %d\n", res.LiveQubits)
	fmt.Printf("elapsed:              %s\n", res.Elapsed)
}

// edgeWeight cycles deterministic weights over the grid edges so the
// entangling layer is not uniform.
func edgeWeight(a, b circuit.Qubit) float64 {
	weights := []float64{0.25, 0.5, 0.75, 1.0}
	return weights[(a.Row+a.Col+b.Row+b.Col)%len(weights)]
}
