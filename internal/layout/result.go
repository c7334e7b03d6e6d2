package layout

import (
	"encoding/json"
	"fmt"
)

// Point is a coordinate in layout space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeBox is the placed bounding box of a node, centred on (X, Y).
type NodeBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// EdgeRoute is the polyline an edge is drawn along.
type EdgeRoute struct {
	V      string  `json:"v"`
	W      string  `json:"w"`
	Name   string  `json:"name,omitempty"`
	Points []Point `json:"points"`
}

// Result is a positioned graph as returned by the layout service.
type Result struct {
	Nodes map[string]NodeBox `json:"nodes"`
	Edges []EdgeRoute        `json:"edges"`
}

// DecodeResult converts the first argument of a layoutResult event into a
// Result. The argument arrives as generic JSON data, so it is re-encoded
// and decoded into the typed form.
func DecodeResult(data any) (*Result, error) {
	if data == nil {
		return nil, fmt.Errorf("layout result is empty")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("re-encoding layout result: %w", err)
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decoding layout result: %w", err)
	}
	if res.Nodes == nil {
		return nil, fmt.Errorf("layout result has no nodes")
	}
	return &res, nil
}
