package pathdesc

import (
	"fmt"
	"strconv"
	"strings"
)

var opcodes = map[string]NodeType{
	"Z": Close,
	"z": Close,
	"C": CurveTo,
	"L": LineTo,
	"M": MoveTo,
}

// ParseError reports the token a description could not be parsed at.
type ParseError struct {
	// Index is the position of Token among the whitespace separated tokens.
	Index int
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pathdesc: %s: token %d %q", e.Msg, e.Index, e.Token)
}

// Parse turns a description into a path. Tokens are consumed strictly left to
// right; on any error no partial path is returned.
func Parse(description string) (Path, error) {
	tokens := strings.Fields(description)
	var path Path

	for i := 0; i < len(tokens); {
		tok := tokens[i]
		typ, ok := opcodes[tok]
		if !ok {
			return nil, &ParseError{Index: i, Token: tok, Msg: "unknown opcode"}
		}
		i++

		n := typ.Arity()
		node := Node{Type: typ}
		if n > 0 {
			node.Points = make([]Point, n)
		}
		for j := 0; j < n; j++ {
			if i+1 >= len(tokens) {
				return nil, &ParseError{Index: i, Token: tok, Msg: "missing coordinates for opcode"}
			}
			x, err := strconv.ParseFloat(tokens[i], 64)
			if err != nil {
				return nil, &ParseError{Index: i, Token: tokens[i], Msg: "invalid coordinate"}
			}
			y, err := strconv.ParseFloat(tokens[i+1], 64)
			if err != nil {
				return nil, &ParseError{Index: i + 1, Token: tokens[i+1], Msg: "invalid coordinate"}
			}
			node.Points[j] = Point{x, y}
			i += 2
		}
		path = append(path, node)
	}

	return path, nil
}
