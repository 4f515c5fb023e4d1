// Command treasurehunt trains a tabular Q-learning agent to find the
// treasure in a square gridworld full of traps
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "treasurehunt",
		Short: "Train a Q-learning agent to hunt for treasure in a gridworld",
		Long: "treasurehunt trains a tabular Q-learning agent to move from " +
			"the top-left cell of a square grid to the treasure in the " +
			"bottom-right cell while stepping around traps.",
		SilenceUsage: true,
	}
	root.AddCommand(TrainCommand(), PathCommand(), ConfigCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
