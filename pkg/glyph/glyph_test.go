package glyph

import (
	"math"
	"testing"

	"github.com/charlie0129/batticon/pkg/pathdesc"
)

func TestBolt(t *testing.T) {
	p, err := Bolt()
	if err != nil {
		t.Fatalf("Bolt() error = %v", err)
	}
	want := []pathdesc.NodeType{
		pathdesc.MoveTo,
		pathdesc.LineTo, pathdesc.LineTo, pathdesc.LineTo, pathdesc.LineTo, pathdesc.LineTo, pathdesc.LineTo,
		pathdesc.Close,
	}
	if len(p) != len(want) {
		t.Fatalf("len(Bolt()) = %d, want %d", len(p), len(want))
	}
	for i, n := range p {
		if n.Type != want[i] {
			t.Errorf("Bolt()[%d].Type = %v, want %v", i, n.Type, want[i])
		}
		for _, pt := range n.Points {
			if pt.X < 0 || pt.X > Size || pt.Y < 0 || pt.Y > Size {
				t.Errorf("Bolt()[%d] point %v outside the unit square", i, pt)
			}
		}
	}
}

func near(a, b pathdesc.Point) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestPlumpBoltSymmetry(t *testing.T) {
	tests := []struct {
		name  string
		size  float64
		angle float64
	}{
		{name: "default", size: Size, angle: DefaultDiagonalAngle},
		{name: "small steep", size: 64, angle: 75 * math.Pi / 180},
		{name: "shallow", size: 1000, angle: 60 * math.Pi / 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PlumpBolt(tt.size, tt.angle)
			if p[0].Type != pathdesc.MoveTo || p[len(p)-1].Type != pathdesc.Close {
				t.Fatalf("PlumpBolt() is not a single closed subpath: %v", p)
			}

			// Undo the centering: (x+size/2, -y+size/2).
			var pts []pathdesc.Point
			for _, n := range p {
				for _, pt := range n.Points {
					if math.IsNaN(pt.X) || math.IsNaN(pt.Y) {
						t.Fatalf("PlumpBolt() contains NaN: %v", p)
					}
					pts = append(pts, pathdesc.Point{X: pt.X - tt.size/2, Y: -(pt.Y - tt.size/2)})
				}
			}
			for _, pt := range pts {
				mirrored := pathdesc.Point{X: -pt.X, Y: -pt.Y}
				found := false
				for _, q := range pts {
					if near(q, mirrored) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("point %v has no mirrored counterpart", pt)
				}
			}
		})
	}
}

func TestPlumpBoltShape(t *testing.T) {
	p := PlumpBolt(Size, DefaultDiagonalAngle)
	var curves, lines int
	for _, n := range p {
		switch n.Type {
		case pathdesc.CurveTo:
			curves++
		case pathdesc.LineTo:
			lines++
		}
	}
	if curves != 4 || lines != 5 {
		t.Errorf("PlumpBolt() has %d curves and %d lines, want 4 and 5", curves, lines)
	}

	// The first point lies on the body circle at the diagonal angle.
	first := p[0].Points[0]
	r := 0.1 * Size
	want := pathdesc.Point{X: r*math.Cos(DefaultDiagonalAngle) + Size/2, Y: -r*math.Sin(DefaultDiagonalAngle) + Size/2}
	if !near(first, want) {
		t.Errorf("PlumpBolt()[0] = %v, want %v", first, want)
	}
}

type arc struct {
	xc, yc, r, a1, a2 float64
}

type arcRecorder struct {
	subPaths, closes int
	arcs             []arc
}

func (a *arcRecorder) NewSubPath() { a.subPaths++ }
func (a *arcRecorder) Arc(xc, yc, radius, angle1, angle2 float64) {
	a.arcs = append(a.arcs, arc{xc, yc, radius, angle1, angle2})
}
func (a *arcRecorder) ClosePath() { a.closes++ }

func TestRoundedRect(t *testing.T) {
	tests := []struct {
		name       string
		w, h, r    float64
		wantArcs   int
		wantRadius []float64
	}{
		{name: "regular", w: 20, h: 10, r: 2, wantArcs: 4, wantRadius: []float64{2, 2, 2, 2}},
		{name: "radius over half width", w: 6, h: 30, r: 4, wantArcs: 4, wantRadius: []float64{2, 2, 4, 4}},
		{name: "width below radius", w: 3, h: 30, r: 4, wantArcs: 2},
		{name: "height below radius", w: 30, h: 3, r: 4, wantArcs: 2},
		{name: "both below radius", w: 3, h: 3, r: 4, wantArcs: 1},
		{name: "zero height", w: 10, h: 0, r: 2, wantArcs: 2},
		{name: "zero radius", w: 10, h: 10, r: 0, wantArcs: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &arcRecorder{}
			RoundedRect(rec, 1, 2, tt.w, tt.h, tt.r)
			if rec.subPaths != 1 || rec.closes != 1 {
				t.Errorf("RoundedRect() subpaths = %d, closes = %d, want 1 and 1", rec.subPaths, rec.closes)
			}
			if len(rec.arcs) != tt.wantArcs {
				t.Fatalf("RoundedRect() arcs = %d, want %d", len(rec.arcs), tt.wantArcs)
			}
			for i, a := range rec.arcs {
				for _, v := range []float64{a.xc, a.yc, a.r, a.a1, a.a2} {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						t.Fatalf("arc %d = %+v has invalid values", i, a)
					}
				}
				if a.r < 0 {
					t.Errorf("arc %d has negative radius %v", i, a.r)
				}
				if tt.wantRadius != nil && a.r != tt.wantRadius[i] {
					t.Errorf("arc %d radius = %v, want %v", i, a.r, tt.wantRadius[i])
				}
			}
		})
	}
}
