package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/bikefit/internal/canvas"
	"github.com/banshee-data/bikefit/internal/geom"
)

// canvasEvent is one recorded pointer or settings action on the authoring
// canvas.
type canvasEvent struct {
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Modifier bool    `json:"mod,omitempty"`
	Value    string  `json:"value,omitempty"`
}

// replayCanvas applies JSONL canvas events to s in order.
func replayCanvas(r io.Reader, s *canvas.Session) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var ev canvasEvent
		if err := json.Unmarshal([]byte(text), &ev); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := applyEvent(s, ev); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func applyEvent(s *canvas.Session, ev canvasEvent) error {
	p := geom.Pt(ev.X, ev.Y)
	switch ev.Type {
	case "down":
		s.PointerDown(p, ev.Modifier)
	case "move":
		s.PointerMove(p, ev.Modifier)
	case "up":
		s.PointerUp(p, ev.Modifier)
	case "click":
		s.Click(p, ev.Modifier)
	case "cancel":
		s.Cancel()
	case "delete-last":
		angles := s.Angles()
		if len(angles) == 0 {
			return nil
		}
		return s.DeleteAngle(angles[len(angles)-1].ID)
	case "clear":
		s.ClearAngles()
	case "grid":
		s.SetGridEnabled(ev.Value != "off")
	case "grid-drag":
		s.SetDragGridMode(ev.Value != "off")
	case "grid-color":
		return s.SetGridColor(ev.Value)
	case "grid-line":
		return s.SetGridLineType(canvas.LineType(ev.Value))
	case "grid-angle":
		s.SetGridAngle(ev.X)
	default:
		return fmt.Errorf("unknown canvas event %q", ev.Type)
	}
	return nil
}
