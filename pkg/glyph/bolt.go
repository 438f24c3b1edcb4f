// Package glyph builds the vector outlines used by the battery icon: the
// charging bolts and the rounded battery body.
package glyph

import (
	"math"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/batticon/pkg/pathdesc"
)

// Size is the edge of the unit square every bolt outline is drawn in.
const Size = 1000.0

// BoltDescription is the sharp charging bolt in a Size x Size square.
// The shape follows the AOSP battery meter bolt.
const BoltDescription = "M 165 0 L 887 0 L 455 368 L 1000 368 L 9 1000 L 355 475 L 0 475 z"

// DefaultDiagonalAngle is the slant of the plump bolt.
const DefaultDiagonalAngle = 70 * math.Pi / 180

// Bolt parses BoltDescription.
func Bolt() (pathdesc.Path, error) {
	p, err := pathdesc.Parse(BoltDescription)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to parse bolt description")
	}
	return p, nil
}

func polar(radius, angle float64) pathdesc.Point {
	return pathdesc.Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}

func add(a, b pathdesc.Point) pathdesc.Point {
	return pathdesc.Point{X: a.X + b.X, Y: a.Y + b.Y}
}

func neg(a pathdesc.Point) pathdesc.Point {
	return pathdesc.Point{X: -a.X, Y: -a.Y}
}

// PlumpBolt constructs a rounded bolt inside a size x size square. The outline
// is point symmetric around the square's center: one half is built around the
// origin, the other half is its negation, and both are flipped vertically
// into the square.
func PlumpBolt(size, diagonalAngle float64) pathdesc.Path {
	size2 := size / 2
	bodyRadius := 0.1 * size
	bezierRadius := bodyRadius * 0.9
	bezierRadius2 := bezierRadius * 0.618

	// Top left corner
	b := polar(bodyRadius, diagonalAngle)
	// Radius from the center to the border of the square
	borderDist := size2 / (b.Y / bodyRadius)
	b2 := polar(borderDist-bezierRadius*2, diagonalAngle)
	b3 := polar(borderDist-bezierRadius2*2, diagonalAngle)

	cornerAngle := 2*diagonalAngle - math.Pi/2
	pxy := polar(2*bodyRadius, 2*diagonalAngle)
	borderDist2 := math.Sin(diagonalAngle) * borderDist
	// Reach the cusp from pxy
	topCusp := add(pxy, polar(borderDist2-bezierRadius*2, cornerAngle))
	topCusp2 := add(pxy, polar(borderDist2-bezierRadius2*2, cornerAngle))
	// Reach the valley from pxy
	valleyDist := (pxy.Y + b.Y) / math.Sin(cornerAngle)
	leftValley := add(pxy, polar(-valleyDist+bezierRadius, cornerAngle))
	leftValley2 := add(pxy, polar(-valleyDist+bezierRadius2, cornerAngle))
	deepLeftCorner := add(pxy, polar(-valleyDist, cornerAngle))
	leftCorner := add(pathdesc.Point{X: bezierRadius}, deepLeftCorner)
	leftCorner2 := add(pathdesc.Point{X: bezierRadius2}, deepLeftCorner)

	center := func(p pathdesc.Point) (float64, float64) {
		return p.X + size2, -p.Y + size2
	}
	curve := func(p *pathdesc.Path, c1, c2, to pathdesc.Point) {
		x1, y1 := center(c1)
		x2, y2 := center(c2)
		x3, y3 := center(to)
		p.CubicTo(x1, y1, x2, y2, x3, y3)
	}

	var p pathdesc.Path
	half := func(f func(pathdesc.Point) pathdesc.Point, start func(x, y float64)) {
		start(center(f(b)))
		p.LineTo(center(f(b2)))
		curve(&p, f(b3), f(topCusp2), f(topCusp))
		p.LineTo(center(f(leftValley)))
		curve(&p, f(leftValley2), f(leftCorner2), f(leftCorner))
	}
	half(func(q pathdesc.Point) pathdesc.Point { return q }, p.MoveTo)
	half(neg, p.LineTo)
	p.ClosePath()

	return p
}
