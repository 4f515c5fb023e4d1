package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/treasurehunt/agent/tabular"
	"github.com/samuelfneumann/treasurehunt/environment/gridworld"
	"github.com/samuelfneumann/treasurehunt/experiment"
)

// Terminal prints gridworlds, value tables and training reports to a
// terminal, optionally in colour
type Terminal struct {
	out io.Writer
	au  aurora.Aurora
}

// NewTerminal returns a Terminal printing to out. Colour escape codes
// are only written if colors is true.
func NewTerminal(out io.Writer, colors bool) *Terminal {
	return &Terminal{out: out, au: aurora.NewAurora(colors)}
}

// Grid prints the gridworld one row per line. The start is S, the
// treasure T and each trap X. Cells on the path show the direction the
// greedy policy moves in.
func (t *Terminal) Grid(g *gridworld.GridWorld, path experiment.Path) error {
	moves := arrows(g, path)

	var b strings.Builder
	for row := 0; row < g.Size(); row++ {
		for col := 0; col < g.Size(); col++ {
			state := g.Index(row, col)
			b.WriteString(" ")
			switch a, onPath := moves[state]; {
			case g.IsTerminal(state):
				fmt.Fprint(&b, t.au.Bold(t.au.Yellow("T")))
			case g.IsTrap(state) && onPath:
				fmt.Fprint(&b, t.au.Red(Arrow(a)))
			case g.IsTrap(state):
				fmt.Fprint(&b, t.au.Red("X"))
			case onPath:
				fmt.Fprint(&b, t.au.Green(Arrow(a)))
			case state == g.Start():
				fmt.Fprint(&b, t.au.Cyan("S"))
			default:
				b.WriteString(".")
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(t.out, b.String())
	return err
}

// Values prints the greedy value of each state of q laid out on the
// grid. Positive values are green and negative values red.
func (t *Terminal) Values(g *gridworld.GridWorld, q *tabular.QTable) error {
	q.MustMatch(g.States(), gridworld.NumActions)
	values := q.StateValues()

	var b strings.Builder
	for row := 0; row < g.Size(); row++ {
		for col := 0; col < g.Size(); col++ {
			v := values[g.Index(row, col)]
			cell := fmt.Sprintf("%7.2f ", v)
			switch {
			case v > 0:
				fmt.Fprint(&b, t.au.Green(cell))
			case v < 0:
				fmt.Fprint(&b, t.au.Red(cell))
			default:
				b.WriteString(cell)
			}
			fmt.Fprint(&b, t.au.White("|"))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(t.out, b.String())
	return err
}

// Report prints a training report on one line, highlighting the
// success rate
func (t *Terminal) Report(r experiment.Report) error {
	_, err := fmt.Fprintf(t.out, "Episode %d/%d | Success Rate: %s | "+
		"Trap Rate: %s | Avg Reward: %.1f | Avg Steps: %.1f\n",
		r.Episode, r.Episodes,
		t.au.Green(fmt.Sprintf("%.1f%%", r.SuccessRate)),
		t.au.Red(fmt.Sprintf("%.1f%%", r.TrapRate)),
		r.MeanReward, r.MeanSteps)
	return err
}

// Path prints the states and moves of a greedy path
func (t *Terminal) Path(g *gridworld.GridWorld, path experiment.Path) error {
	moves := make([]string, 0, path.Len())
	for _, a := range path.Actions(g.Size()) {
		moves = append(moves, a.String())
	}

	status := t.au.Red("did not reach the treasure")
	if path.Reached {
		status = t.au.Green("reached the treasure")
	}
	_, err := fmt.Fprintf(t.out, "Greedy path %v (%d steps) %s\nMoves: %s\n",
		path.States, path.Len()-1, status, strings.Join(moves, " "))
	return err
}
