// Package pathdesc implements a small vector path description language.
//
// A description is a whitespace separated sequence of one-character opcodes,
// each followed by the coordinate pairs it takes:
//
//	M x y             move to
//	L x y             line to
//	C x1 y1 x2 y2 x y cubic Bezier curve to
//	Z (or z)          close the current subpath
//
// For example, "M 0 0 L 10 0 L 10 10 z" describes a closed triangle.
package pathdesc

import (
	"strconv"
	"strings"
)

// NodeType is the kind of a path node.
type NodeType int

const (
	Close NodeType = iota
	CurveTo
	LineTo
	MoveTo
)

// Arity returns the number of points a node of this type carries.
func (t NodeType) Arity() int {
	switch t {
	case CurveTo:
		return 3
	case LineTo, MoveTo:
		return 1
	default:
		return 0
	}
}

func (t NodeType) String() string {
	switch t {
	case Close:
		return "Z"
	case CurveTo:
		return "C"
	case LineTo:
		return "L"
	case MoveTo:
		return "M"
	}
	return "NodeType(" + strconv.Itoa(int(t)) + ")"
}

// Point is a coordinate pair.
type Point struct {
	X, Y float64
}

// Node is a single path instruction. len(Points) == Type.Arity().
type Node struct {
	Type   NodeType
	Points []Point
}

// Builder receives path construction calls. *gg.Context and the canvas
// surfaces satisfy it, as does *Path itself.
type Builder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

// Path is an immutable-by-convention sequence of nodes.
type Path []Node

var _ Builder = &Path{}

// MoveTo appends a MoveTo node.
func (p *Path) MoveTo(x, y float64) {
	*p = append(*p, Node{Type: MoveTo, Points: []Point{{x, y}}})
}

// LineTo appends a LineTo node.
func (p *Path) LineTo(x, y float64) {
	*p = append(*p, Node{Type: LineTo, Points: []Point{{x, y}}})
}

// CubicTo appends a CurveTo node.
func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	*p = append(*p, Node{Type: CurveTo, Points: []Point{{x1, y1}, {x2, y2}, {x3, y3}}})
}

// ClosePath appends a Close node.
func (p *Path) ClosePath() {
	*p = append(*p, Node{Type: Close})
}

// Replay executes every node of the path against b, in order.
func Replay(p Path, b Builder) {
	for _, n := range p {
		switch n.Type {
		case Close:
			b.ClosePath()
		case CurveTo:
			b.CubicTo(n.Points[0].X, n.Points[0].Y, n.Points[1].X, n.Points[1].Y, n.Points[2].X, n.Points[2].Y)
		case LineTo:
			b.LineTo(n.Points[0].X, n.Points[0].Y)
		case MoveTo:
			b.MoveTo(n.Points[0].X, n.Points[0].Y)
		}
	}
}

// Clone returns a deep copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	for i, n := range p {
		out[i] = Node{Type: n.Type, Points: append([]Point(nil), n.Points...)}
	}
	return out
}

// Transform returns a copy of the path with f applied to every point.
func (p Path) Transform(f func(Point) Point) Path {
	out := p.Clone()
	for _, n := range out {
		for i := range n.Points {
			n.Points[i] = f(n.Points[i])
		}
	}
	return out
}

// String renders the path back into its description form. Parse(p.String())
// yields a path equal to p.
func (p Path) String() string {
	var sb strings.Builder
	for i, n := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(n.Type.String())
		for _, pt := range n.Points {
			sb.WriteByte(' ')
			sb.WriteString(strconv.FormatFloat(pt.X, 'g', -1, 64))
			sb.WriteByte(' ')
			sb.WriteString(strconv.FormatFloat(pt.Y, 'g', -1, 64))
		}
	}
	return sb.String()
}
