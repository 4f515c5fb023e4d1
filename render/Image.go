package render

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/samuelfneumann/treasurehunt/agent/tabular"
	"github.com/samuelfneumann/treasurehunt/environment/gridworld"
	"github.com/samuelfneumann/treasurehunt/experiment"
	"gonum.org/v1/gonum/floats"
)

// CellSize is the width and height in pixels of one grid cell
const CellSize = 80

// Image draws the gridworld with its traps, treasure and the greedy
// path. If q is not nil, each empty cell is shaded by its greedy state
// value, from white for the lowest value to light green for the
// highest.
func Image(g *gridworld.GridWorld, q *tabular.QTable,
	path experiment.Path) image.Image {
	size := g.Size() * CellSize
	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	var values []float64
	var lo, hi float64
	if q != nil {
		q.MustMatch(g.States(), gridworld.NumActions)
		values = q.StateValues()
		lo, hi = floats.Min(values), floats.Max(values)
	}

	// Cells
	for state := 0; state < g.States(); state++ {
		x, y := cellOrigin(g, state)
		dc.DrawRectangle(x, y, CellSize, CellSize)
		switch {
		case g.IsTerminal(state):
			dc.SetRGB(1, 0.84, 0)
		case g.IsTrap(state):
			dc.SetRGB(0.9, 0.3, 0.3)
		case state == g.Start():
			dc.SetRGB(0.6, 0.8, 1)
		case values != nil && hi > lo:
			shade := (values[state] - lo) / (hi - lo)
			dc.SetRGB(1-0.4*shade, 1, 1-0.4*shade)
		default:
			dc.SetRGB(1, 1, 1)
		}
		dc.Fill()
	}

	// Grid lines
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(2)
	for i := 0; i <= g.Size(); i++ {
		p := float64(i * CellSize)
		dc.DrawLine(p, 0, p, float64(size))
		dc.DrawLine(0, p, float64(size), p)
	}
	dc.Stroke()

	// Labels
	dc.SetRGB(0, 0, 0)
	for state := 0; state < g.States(); state++ {
		x, y := cellOrigin(g, state)
		label := ""
		switch {
		case g.IsTerminal(state):
			label = "T"
		case g.IsTrap(state):
			label = "X"
		case state == g.Start():
			label = "S"
		}
		if label != "" {
			dc.DrawStringAnchored(label, x+8, y+8, 0, 1)
		}
		if values != nil {
			dc.DrawStringAnchored(fmt.Sprintf("%.1f", values[state]),
				x+CellSize-6, y+CellSize-6, 1, 0)
		}
	}

	// Path
	dc.SetRGB(0.1, 0.3, 0.8)
	dc.SetLineWidth(4)
	for state, a := range arrows(g, path) {
		drawArrow(dc, g, state, a)
	}

	return dc.Image()
}

// SaveImage draws the gridworld as in Image and saves it as a PNG file
func SaveImage(filename string, g *gridworld.GridWorld, q *tabular.QTable,
	path experiment.Path) error {
	dc := gg.NewContextForImage(Image(g, q, path))
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("saveImage: %w", err)
	}
	return nil
}

// cellOrigin returns the pixel coordinates of the top-left corner of
// the cell of state
func cellOrigin(g *gridworld.GridWorld, state int) (x, y float64) {
	row, col := g.Coordinates(state)
	return float64(col * CellSize), float64(row * CellSize)
}

// drawArrow draws an arrow from the centre of the cell of state towards
// the neighbouring cell in the direction of a
func drawArrow(dc *gg.Context, g *gridworld.GridWorld, state int,
	a gridworld.Action) {
	x, y := cellOrigin(g, state)
	cx, cy := x+CellSize/2, y+CellSize/2

	var angle float64
	switch a {
	case gridworld.Up:
		angle = -math.Pi / 2
	case gridworld.Down:
		angle = math.Pi / 2
	case gridworld.Left:
		angle = math.Pi
	case gridworld.Right:
		angle = 0
	}

	length := 0.8 * CellSize
	tx, ty := cx+length*math.Cos(angle), cy+length*math.Sin(angle)
	dc.DrawLine(cx, cy, tx, ty)
	dc.Stroke()

	// Head
	const head = 12.0
	for _, side := range []float64{-1, 1} {
		hx := tx - head*math.Cos(angle+side*math.Pi/6)
		hy := ty - head*math.Sin(angle+side*math.Pi/6)
		dc.DrawLine(tx, ty, hx, hy)
	}
	dc.Stroke()
}
