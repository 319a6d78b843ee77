package playpen

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a session script.
type scriptStep struct {
	Action  string       `json:"action"`
	Region  string       `json:"region,omitempty"`
	Color   *Color       `json:"color,omitempty"`
	Points  [][2]float64 `json:"points,omitempty"`
	Seconds float32      `json:"seconds,omitempty"`
	Label   string       `json:"label,omitempty"`
}

type sessionScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a JSON script of strokes and paint drags against a
// Session and/or Painter, one step at a time. Used for integration tests
// and for reproducing player reports.
//
// Supported actions:
//
//	stroke   lasso stroke through points (pointer down, moves, up)
//	paint    paint drag through points on region in color
//	erase    erase drag through points on region
//	flush    judge region immediately
//	wait     advance timers by seconds
//	snapshot write region's raster to SnapshotDir
type ScriptRunner struct {
	steps   []scriptStep
	cursor  int
	session *Session
	painter *Painter

	// SnapshotDir is where snapshot steps write PNGs. Default "snapshots".
	SnapshotDir string
	// Results collects the outcome of every stroke step in order.
	Results []Result
	// Verdicts collects the last verdict of every paint, erase and flush step.
	Verdicts []Verdict
}

// LoadScript parses a JSON script. session or painter may be nil if the
// script does not use the matching actions.
func LoadScript(jsonData []byte, session *Session, painter *Painter) (*ScriptRunner, error) {
	var script sessionScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("playpen: parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("playpen: parse script: no steps")
	}
	return &ScriptRunner{
		steps:       script.Steps,
		session:     session,
		painter:     painter,
		SnapshotDir: "snapshots",
	}, nil
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool { return r.cursor >= len(r.steps) }

// Run executes all remaining steps, stopping at the first error.
func (r *ScriptRunner) Run() error {
	for !r.Done() {
		if err := r.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes the next step.
func (r *ScriptRunner) Step() error {
	if r.Done() {
		return nil
	}
	st := r.steps[r.cursor]
	r.cursor++

	pts := make([]Vec2, len(st.Points))
	for i, p := range st.Points {
		pts[i] = Vec2{p[0], p[1]}
	}

	switch st.Action {
	case "stroke":
		if r.session == nil {
			return fmt.Errorf("playpen: step %d: stroke needs a session", r.cursor)
		}
		if len(pts) == 0 {
			return fmt.Errorf("playpen: step %d: stroke has no points", r.cursor)
		}
		r.session.PointerDown(pts[0])
		for i := 1; i < len(pts)-1; i++ {
			r.session.PointerMove(pts[i])
		}
		res, _ := r.session.PointerUp(pts[len(pts)-1])
		r.Results = append(r.Results, res)
	case "paint", "erase":
		if r.painter == nil {
			return fmt.Errorf("playpen: step %d: %s needs a painter", r.cursor, st.Action)
		}
		if st.Action == "paint" && st.Color == nil {
			return fmt.Errorf("playpen: step %d: paint has no color", r.cursor)
		}
		v := VerdictPending
		for i := 1; i < len(pts); i++ {
			var err error
			if st.Action == "paint" {
				v, err = r.painter.Paint(st.Region, pts[i-1], pts[i], *st.Color)
			} else {
				v, err = r.painter.Erase(st.Region, pts[i-1], pts[i])
			}
			if err != nil {
				return fmt.Errorf("playpen: step %d: %w", r.cursor, err)
			}
		}
		r.Verdicts = append(r.Verdicts, v)
	case "flush":
		if r.painter == nil {
			return fmt.Errorf("playpen: step %d: flush needs a painter", r.cursor)
		}
		v, err := r.painter.Flush(st.Region)
		if err != nil {
			return fmt.Errorf("playpen: step %d: %w", r.cursor, err)
		}
		r.Verdicts = append(r.Verdicts, v)
	case "wait":
		if r.session != nil {
			r.session.Update(st.Seconds)
		}
	case "snapshot":
		if r.painter == nil {
			return fmt.Errorf("playpen: step %d: snapshot needs a painter", r.cursor)
		}
		reg := r.painter.Region(st.Region)
		if reg == nil {
			return fmt.Errorf("playpen: step %d: %w: %q", r.cursor, ErrUnknownRegion, st.Region)
		}
		if _, err := WriteRegionPNG(reg, r.SnapshotDir, st.Label); err != nil {
			return fmt.Errorf("playpen: step %d: %w", r.cursor, err)
		}
	default:
		return fmt.Errorf("playpen: step %d: unknown action %q", r.cursor, st.Action)
	}
	return nil
}
