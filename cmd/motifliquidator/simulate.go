package main

import (
	"errors"
	"log"

	"github.com/spf13/cobra"

	"motifliquidator/internal/reads"
	"motifliquidator/internal/sim"
)

func newSimulateCmd() *cobra.Command {
	var (
		out    string
		format string
		opt    sim.Options
	)
	cmd := &cobra.Command{
		Use:   "simulate --out PATH [flags]",
		Short: "Write a synthetic read dataset with planted motifs",
		Example: `  motifliquidator simulate --out bg.bam --reads 10000 --len 50 --seed 1
  motifliquidator simulate --out tg.sam.gz --plant AGGG --plant-rate 0.3`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return usageError{errors.New("flag --out is required")}
			}
			fm, err := reads.ParseFormat(format)
			if err != nil {
				return usageError{err}
			}
			rs, err := sim.Reads(opt)
			if err != nil {
				return usageError{err}
			}
			if err := sim.WriteFile(out, fm, rs); err != nil {
				return err
			}
			log.Printf("wrote %d reads to %s", len(rs), out)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&out, "out", "o", "", "output dataset (path or '-' for stdout) (required)")
	fl.StringVarP(&format, "format", "f", string(reads.Auto), "output format: auto, bam, sam or fasta")
	fl.IntVarP(&opt.Reads, "reads", "n", 1000, "number of reads")
	fl.IntVar(&opt.Length, "len", 50, "read length (bp)")
	fl.IntVar(&opt.Jitter, "len-jitter", 0, "read length varies by up to this many bp")
	fl.Float64Var(&opt.GC, "gc", 0.5, "GC fraction")
	fl.Float64Var(&opt.NRate, "n-rate", 0, "fraction of reads carrying one N")
	fl.StringSliceVar(&opt.Plant, "plant", nil, "motif(s) to plant, comma-separated or repeated")
	fl.Float64Var(&opt.PlantRate, "plant-rate", 0.1, "per-read probability of planting each motif")
	fl.Int64Var(&opt.Seed, "seed", 0, "RNG seed (0 = time-based)")
	return cmd
}
