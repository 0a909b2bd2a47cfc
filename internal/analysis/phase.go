package analysis

import "strings"

type Point struct {
	X, Y float64
}

// PhasePortrait pairs two series sample by sample, for example kinetic
// energy against spread.
type PhasePortrait struct {
	XName, YName string
	Points       []Point
}

// NewPhasePortrait truncates to the shorter series.
func NewPhasePortrait(xName string, xs []float64, yName string, ys []float64) *PhasePortrait {
	n := min(len(xs), len(ys))
	p := &PhasePortrait{XName: xName, YName: yName, Points: make([]Point, n)}
	for i := range n {
		p.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return p
}

// span is a padded closed interval mapped onto cells cells.
type span struct {
	lo, hi float64
	cells  int
}

func newSpan(values func(Point) float64, points []Point, cells int) span {
	lo, hi := values(points[0]), values(points[0])
	for _, p := range points[1:] {
		lo = min(lo, values(p))
		hi = max(hi, values(p))
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 0.5
	}
	return span{lo: lo - pad, hi: hi + pad, cells: cells}
}

func (s span) cell(v float64) int {
	return int((v - s.lo) / (s.hi - s.lo) * float64(s.cells-1))
}

func (s span) contains(v float64) bool { return s.lo <= v && v <= s.hi }

// density glyphs by number of samples landing in a cell
var glyphs = []rune{'•', '●', '◉'}

// ASCII renders the portrait on a width x height character grid. Cells hit by
// more samples get heavier glyphs; axes are drawn where zero is in range.
func (portrait *PhasePortrait) ASCII(width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	xs := newSpan(func(p Point) float64 { return p.X }, portrait.Points, width)
	ys := newSpan(func(p Point) float64 { return p.Y }, portrait.Points, height)

	hits := make([][]int, height)
	for i := range hits {
		hits[i] = make([]int, width)
	}
	for _, p := range portrait.Points {
		col, row := xs.cell(p.X), height-1-ys.cell(p.Y)
		if row >= 0 && row < height && col >= 0 && col < width {
			hits[row][col]++
		}
	}

	axisCol, axisRow := -1, -1
	if xs.contains(0) {
		axisCol = xs.cell(0)
	}
	if ys.contains(0) {
		axisRow = height - 1 - ys.cell(0)
	}

	var sb strings.Builder
	for row := range height {
		for col := range width {
			switch n := hits[row][col]; {
			case n > 0:
				sb.WriteRune(glyphs[min(n, len(glyphs))-1])
			case row == axisRow && col == axisCol:
				sb.WriteRune('┼')
			case col == axisCol:
				sb.WriteRune('│')
			case row == axisRow:
				sb.WriteRune('─')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
