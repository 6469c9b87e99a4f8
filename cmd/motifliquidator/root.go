package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"motifliquidator/internal/liquidate"
	"motifliquidator/internal/reads"
	"motifliquidator/internal/report"
)

type rootFlags struct {
	format   string
	matcher  string
	out      string
	jsonPath string
	progress bool
	profile  string
	verbose  bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:   "motifliquidator [flags] BACKGROUND TARGET MOTIF...",
		Short: "Compare motif frequencies between a background and a target read dataset",
		Long: `motifliquidator counts, for every motif, the reads of each dataset that contain
the motif or its reverse complement. Reads with an N are ignored. Counts are
reported raw and per million usable reads.`,
		Example: `  # BAM background vs target, two motifs
  motifliquidator background.bam input.bam TGGGAA AGGG
  # gzipped SAM input, k-mer matcher, JSON summary
  motifliquidator --matcher kmer --json run.json bg.sam.gz tg.sam.gz TGGGAA`,
		Version: fmt.Sprintf("%s (commit %s, %s)", version, commit, date),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 3 {
				return usageError{fmt.Errorf("need BACKGROUND, TARGET and at least one MOTIF, got %d argument(s)", len(args))}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLiquidate(f, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	fl := cmd.Flags()
	fl.StringVarP(&f.format, "format", "f", string(reads.Auto), "dataset format: auto, bam, sam or fasta")
	fl.StringVarP(&f.matcher, "matcher", "m", string(liquidate.Scan), "motif matcher: scan or kmer")
	fl.StringVarP(&f.out, "out", "o", "", "write the table here instead of stdout")
	fl.StringVar(&f.jsonPath, "json", "", "optional: write run summary JSON here")
	fl.BoolVar(&f.progress, "progress", false, "show a progress bar per dataset on stderr")
	fl.StringVar(&f.profile, "profile", "", "(dev) enable profiling one of `cpu|mem|block`")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "verbose progress to stderr")

	// BACKGROUND may be any path, so only simulate is a subcommand.
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.AddCommand(newSimulateCmd())
	return cmd
}

func runLiquidate(f rootFlags, args []string, stdout, stderr io.Writer) error {
	format, err := reads.ParseFormat(f.format)
	if err != nil {
		return usageError{err}
	}
	matcher, err := liquidate.ParseMatcher(f.matcher)
	if err != nil {
		return usageError{err}
	}
	plan, err := liquidate.NewPlan(args[2:], liquidate.Options{Matcher: matcher})
	if err != nil {
		return usageError{err}
	}
	if f.verbose {
		log.Printf("scanning %d motif(s) with the %s matcher", len(plan.Motifs()), matcher)
	}
	prof, err := startProfile(f.profile)
	if err != nil {
		return err
	}
	if prof != nil {
		defer prof.Stop()
	}

	ro := reads.Options{Format: format}
	if f.progress {
		ro.Progress = stderr
	}
	bgPath, tgPath := args[0], args[1]
	bg, err := liquidate.File(bgPath, plan, ro)
	if err != nil {
		return err
	}
	logResult(f.verbose, "background", bgPath, bg)
	tg, err := liquidate.File(tgPath, plan, ro)
	if err != nil {
		return err
	}
	logResult(f.verbose, "target", tgPath, tg)

	rep, err := report.New(bg, tg)
	if err != nil {
		return err
	}
	if rep.Degenerate() {
		log.Printf("warning: a dataset has no usable reads; its rates are not finite")
	}

	if f.out == "" {
		err = rep.WriteTable(stdout)
	} else {
		err = rep.WriteTableFile(f.out)
	}
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	if f.jsonPath != "" {
		meta := report.Meta{Background: bgPath, Target: tgPath, Matcher: string(matcher), Version: version}
		if err := rep.WriteJSONFile(f.jsonPath, meta); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}
	return nil
}

func logResult(verbose bool, role, path string, r liquidate.Result) {
	if verbose {
		log.Printf("%s %s: %d usable reads, %d skipped for N", role, path, r.Reads, r.Skipped)
	}
}

func startProfile(mode string) (interface{ Stop() }, error) {
	var opt func(*profile.Profile)
	switch strings.ToLower(mode) {
	case "":
		return nil, nil
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	case "block":
		opt = profile.BlockProfile
	default:
		return nil, usageError{fmt.Errorf("invalid profile %q (want cpu, mem or block)", mode)}
	}
	return profile.Start(opt, profile.ProfilePath("."), profile.Quiet, profile.NoShutdownHook), nil
}
