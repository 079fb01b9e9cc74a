// Package profile counts the instructions a program executes, so hot
// paths can be spotted without single stepping through a trace.
package profile

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"

	"github.com/thelolagemann/kemu/internal/cpu"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrEmpty is returned when plotting a profile that has not traced
// anything.
var ErrEmpty = errors.New("profile: no instructions traced")

// Count is the number of times an instruction was executed, along with
// the machine cycles it took.
type Count struct {
	Name   string
	Count  uint64
	Cycles uint64
}

// Profile is a cpu.Tracer counting executed instructions by mnemonic.
// Operands are not resolved, so LD A, $01 and LD A, $02 are counted as
// the same instruction.
type Profile struct {
	mu     sync.Mutex
	counts map[string]*Count
	total  uint64
}

// New returns an empty Profile.
func New() *Profile {
	return &Profile{counts: make(map[string]*Count)}
}

var _ cpu.Tracer = (*Profile)(nil)

func (p *Profile) Trace(e cpu.Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.counts[e.Name]
	if !ok {
		c = &Count{Name: e.Name}
		p.counts[e.Name] = c
	}
	c.Count++
	c.Cycles += uint64(e.Cycles)
	p.total++
}

// Total returns the number of instructions traced.
func (p *Profile) Total() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Top returns the n most executed instructions, most executed first. Ties
// are ordered by name. n <= 0 returns every instruction.
func (p *Profile) Top(n int) []Count {
	p.mu.Lock()
	counts := make([]Count, 0, len(p.counts))
	for _, c := range p.counts {
		counts = append(counts, *c)
	}
	p.mu.Unlock()

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	if n > 0 && n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

// Report writes a table of the n most executed instructions to w.
func (p *Profile) Report(w io.Writer, n int) error {
	total := p.Total()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "instruction\tcount\t%%\tcycles\t\n")
	for _, c := range p.Top(n) {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%d\t\n", c.Name, c.Count, 100*float64(c.Count)/float64(total), c.Cycles)
	}
	fmt.Fprintf(tw, "total\t%d\t\t\t\n", total)
	return tw.Flush()
}

// Plot returns a bar chart of the n most executed instructions.
func (p *Profile) Plot(n int) (*plot.Plot, error) {
	top := p.Top(n)
	if len(top) == 0 {
		return nil, ErrEmpty
	}

	values := make(plotter.Values, len(top))
	names := make([]string, len(top))
	for i, c := range top {
		values[i] = float64(c.Count)
		names[i] = c.Name
	}

	pl := plot.New()
	pl.Title.Text = "Instruction Mix"
	pl.Y.Label.Text = "Executions"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return nil, err
	}
	bars.Color = plotter.DefaultLineStyle.Color
	pl.Add(bars)
	pl.NominalX(names...)
	pl.X.Tick.Label.Rotation = 1.2
	pl.X.Tick.Label.XAlign = draw.XRight

	return pl, nil
}

// WritePNG renders the bar chart of the n most executed instructions to w
// as a PNG image of the given size.
func (p *Profile) WritePNG(w io.Writer, n int, width, height vg.Length) error {
	pl, err := p.Plot(n)
	if err != nil {
		return err
	}

	c := vgimg.New(width, height)
	pl.Draw(draw.New(c))
	_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}
