package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/treasurehunt/experiment"
	"github.com/samuelfneumann/treasurehunt/experiment/tracker"
	"github.com/samuelfneumann/treasurehunt/render"
	"github.com/samuelfneumann/treasurehunt/report"
	ts "github.com/samuelfneumann/treasurehunt/timestep"
	"github.com/samuelfneumann/treasurehunt/utils/progressbar"
	"github.com/spf13/cobra"
)

// progressWidth is the width of the training progress bar in characters
const progressWidth = 40

// TrainCommand returns the command which trains an agent, prints its
// progress and greedy path, and optionally saves the results
func TrainCommand() *cobra.Command {
	var flags configFlags
	var saveDir string
	var checkpointEvery int
	var noColor, quiet bool

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train an agent and show its greedy path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.config(cmd)
			if err != nil {
				return err
			}
			s, err := experiment.NewSession(c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			term := render.NewTerminal(out, !noColor)
			g := s.Environment()
			log.Printf("session %s: %dx%d grid, treasure at %d, traps %v",
				s.ID(), g.Size(), g.Size(), s.Treasure(), s.Traps())

			if !quiet {
				bar := progressbar.NewManualProgressBar(out, progressWidth,
					c.Episodes)
				s.Register(&progress{bar})
				s.OnReport(func(r experiment.Report) {
					bar.Clear()
					if err := term.Report(r); err != nil {
						log.Printf("warning: could not print report: %v", err)
					}
				})
			}

			if saveDir != "" {
				if err := os.MkdirAll(saveDir, 0o755); err != nil {
					return fmt.Errorf("could not create save directory: %w",
						err)
				}
				s.Register(tracker.NewReturn(filepath.Join(saveDir,
					"returns.bin")))
				s.Register(tracker.NewEpisodeLength(filepath.Join(saveDir,
					"lengths.bin")))
				if checkpointEvery > 0 {
					s.CheckpointEvery(checkpointEvery, saveDir, "qtable_")
				}
			}

			stats, err := s.Train()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, stats)

			path := s.GreedyPath()
			if err := showPath(term, s, path); err != nil {
				return err
			}
			if err := term.Values(g, s.QTable()); err != nil {
				return err
			}

			if saveDir != "" {
				if err := save(saveDir, s, path); err != nil {
					return err
				}
				log.Printf("session %s: saved results to %s", s.ID(), saveDir)
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&saveDir, "save-dir", "",
		"Directory in which to save data, plots and the trained Q-table")
	cmd.Flags().IntVar(&checkpointEvery, "checkpoint-every", 0,
		"Save the Q-table to --save-dir every this many episodes")
	cmd.Flags().BoolVar(&noColor, "no-color", false,
		"Do not colour terminal output")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"Do not print progress while training")

	return cmd
}

// PathCommand returns the command which trains an agent without
// printing progress and shows only its greedy path
func PathCommand() *cobra.Command {
	var flags configFlags
	var image string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Train an agent and print only its greedy path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.config(cmd)
			if err != nil {
				return err
			}
			s, err := experiment.NewSession(c)
			if err != nil {
				return err
			}
			if _, err := s.Train(); err != nil {
				return err
			}

			path := s.GreedyPath()
			term := render.NewTerminal(cmd.OutOrStdout(), !noColor)
			if err := showPath(term, s, path); err != nil {
				return err
			}

			if image != "" {
				err := render.SaveImage(image, s.Environment(), s.QTable(), path)
				if err != nil {
					return err
				}
				log.Printf("session %s: saved greedy path to %s", s.ID(), image)
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&image, "image", "",
		"Also draw the grid and greedy path to this PNG file")
	cmd.Flags().BoolVar(&noColor, "no-color", false,
		"Do not colour terminal output")

	return cmd
}

// ConfigCommand returns the command which prints the configuration
// described by the flags and config file as JSON, with the traps placed
// by the seed filled in
func ConfigCommand() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.config(cmd)
			if err != nil {
				return err
			}
			s, err := experiment.NewSession(c)
			if err != nil {
				return err
			}
			return writeConfig(cmd.OutOrStdout(), s.Config())
		},
	}
	flags.bind(cmd)

	return cmd
}

// progress is a tracker.Tracker which advances a progress bar at the
// end of each episode
type progress struct {
	bar *progressbar.ManualProgressBar
}

func (p *progress) Track(t ts.TimeStep) {
	if t.Last() {
		p.bar.Increment()
		p.bar.Display()
	}
}

func (p *progress) Save() error {
	p.bar.Done()
	return nil
}

func showPath(term *render.Terminal, s *experiment.Session,
	path experiment.Path) error {
	if err := term.Grid(s.Environment(), path); err != nil {
		return err
	}
	return term.Path(s.Environment(), path)
}

// save writes the configuration, final Q-table, grid image, learning
// curves and HTML report of a trained session to dir
func save(dir string, s *experiment.Session, path experiment.Path) error {
	c := s.Config()
	stats := s.Statistics()

	file, err := os.Create(filepath.Join(dir, "config.json"))
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := writeConfig(file, c); err != nil {
		file.Close()
		return fmt.Errorf("save: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	if err := s.QTable().Save(filepath.Join(dir, "qtable.gob")); err != nil {
		return err
	}
	err = render.SaveImage(filepath.Join(dir, "grid.png"), s.Environment(),
		s.QTable(), path)
	if err != nil {
		return err
	}
	_, err = report.SaveCurves(filepath.Join(dir, "curves"), stats,
		c.ReportInterval)
	if err != nil {
		return err
	}
	return report.SaveHTML(filepath.Join(dir, "report.html"),
		"Treasure Hunt "+s.ID(), stats, c.ReportInterval)
}

func writeConfig(w io.Writer, c experiment.Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("writeConfig: %w", err)
	}
	return nil
}
