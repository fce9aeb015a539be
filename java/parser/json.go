package parser

import "encoding/json"

type jsonNode struct {
	ID       NodeID      `json:"id"`
	Kind     string      `json:"kind"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Token    string      `json:"token,omitempty"`
	Op       string      `json:"op,omitempty"`
	Flags    string      `json:"flags,omitempty"`
	Dims     int         `json:"dims,omitempty"`
	Value    *string     `json:"value,omitempty"`
	Error    *jsonError  `json:"error,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition  `json:"start"`
	End   *jsonPosition `json:"end,omitempty"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonError struct {
	Key      string   `json:"key"`
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Got      string   `json:"got,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		ID:    n.ID,
		Kind:  n.Kind.String(),
		Flags: n.Flags.String(),
		Dims:  n.Dims,
	}

	if n.Span.Start.IsValid() {
		jn.Span = &jsonSpan{Start: toJSONPosition(n.Span.Start)}
		if n.Span.End.IsValid() {
			end := toJSONPosition(n.Span.End)
			jn.Span.End = &end
		}
	}
	if n.Token != nil {
		jn.Token = n.Token.Literal
	}
	if n.Op != TokenEOF {
		jn.Op = n.Op.String()
	}
	if n.Kind == KindLiteral {
		v := n.Value
		jn.Value = &v
	}

	if n.Error != nil {
		jn.Error = &jsonError{
			Key:     n.Error.Key,
			Message: n.Error.Message,
		}
		for _, exp := range n.Error.Expected {
			jn.Error.Expected = append(jn.Error.Expected, exp.Display())
		}
		if n.Error.Got != nil {
			jn.Error.Got = n.Error.Got.Literal
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}

func toJSONPosition(p Position) jsonPosition {
	return jsonPosition{Offset: p.Offset, Line: p.Line, Column: p.Column}
}
