package playpen

import (
	"errors"
	"testing"
)

// exactPainter samples every pixel so ratios are exact.
func exactPainter(sink EventSink) *Painter {
	return NewPainter(PaintConfig{Coverage: CoverageConfig{SampleScale: 1}}, sink)
}

func addSolid(t *testing.T, p *Painter, id string, origin Vec2, w, h int, expected Color) *Region {
	t.Helper()
	r := NewRegion(id, origin, NewSolidMask(w, h), expected)
	if err := p.AddRegion(r); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestPainterScenarioFinishes(t *testing.T) {
	log := &eventLog{}
	p := exactPainter(log)
	c := RGB(200, 40, 40)
	r := addSolid(t, p, "r", Vec2{}, 10, 10, c)

	if err := p.Activate("r"); err != nil {
		t.Fatal(err)
	}
	fillPixels(r.mutable(), 95, c.NRGBA())
	r.colors.Add(c)

	cov, err := p.CheckCoverage("r")
	if err != nil {
		t.Fatal(err)
	}
	if cov.Painted != 0.95 || cov.Wrong != 0 {
		t.Fatalf("coverage = %+v, want painted 0.95 wrong 0", cov)
	}
	if r.Finished() {
		t.Fatal("CheckCoverage changed region state")
	}

	v, err := p.Flush("r")
	if err != nil {
		t.Fatal(err)
	}
	if v != VerdictFinished || !r.Finished() {
		t.Fatalf("Flush = %v, finished %v", v, r.Finished())
	}
	// Single color used: the remaining pixels are auto-filled.
	if a := r.mutable().NRGBAAt(9, 9).A; a != 255 {
		t.Errorf("unpainted pixel alpha after fill = %d, want 255", a)
	}

	want := []EventType{EventRegionFinished, EventLevelComplete}
	got := log.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if e := log.events[0]; e.RegionID != "r" || len(e.Colors) != 1 || e.Coverage.Painted != 0.95 {
		t.Errorf("finished event = %+v", e)
	}

	// Finishing is one-way and the level completes once.
	if v, _ := p.Flush("r"); v != VerdictSkipped {
		t.Errorf("second Flush = %v, want skipped", v)
	}
	if v, err := p.Paint("r", Vec2{1, 1}, Vec2{5, 5}, RGB(0, 0, 255)); v != VerdictSkipped || err != nil {
		t.Errorf("Paint on finished region = %v, %v", v, err)
	}
	if log.count(EventLevelComplete) != 1 {
		t.Errorf("level complete events = %d, want 1", log.count(EventLevelComplete))
	}
}

func TestPainterScenarioWrongColorResets(t *testing.T) {
	log := &eventLog{}
	p := exactPainter(log)
	c := RGB(200, 40, 40)
	other := RGB(40, 40, 200)
	r := addSolid(t, p, "r", Vec2{}, 10, 10, c)

	p.Activate("r")
	raster := r.mutable()
	fillPixels(raster, 100, other.NRGBA())
	fillPixels(raster, 50, c.NRGBA())
	r.colors.Add(c)
	r.colors.Add(other)

	cov, _ := p.CheckCoverage("r")
	if cov.Wrong != 0.5 || cov.Painted != 1 {
		t.Fatalf("coverage = %+v, want painted 1 wrong 0.5", cov)
	}

	v, err := p.Flush("r")
	if err != nil {
		t.Fatal(err)
	}
	if v != VerdictWrong || r.Finished() {
		t.Fatalf("Flush = %v, finished %v; want wrong, unfinished", v, r.Finished())
	}
	if !isClear(r.mutable()) {
		t.Error("region not wiped")
	}
	if len(r.Colors()) != 0 {
		t.Errorf("Colors() = %v, want empty", r.Colors())
	}
	if log.count(EventRegionWrong) != 1 || log.events[0].RegionID != "r" {
		t.Errorf("events = %v", log.types())
	}
}

func TestPainterWrongTolerance(t *testing.T) {
	p := NewPainter(PaintConfig{WrongTolerance: 0.6, Coverage: CoverageConfig{SampleScale: 1}}, nil)
	c := RGB(200, 40, 40)
	r := addSolid(t, p, "r", Vec2{}, 10, 10, c)
	p.Activate("r")
	fillPixels(r.mutable(), 100, RGB(40, 40, 200).NRGBA())
	fillPixels(r.mutable(), 50, c.NRGBA())
	r.colors.Add(c)
	r.colors.Add(RGB(40, 40, 200))

	if v, _ := p.Flush("r"); v != VerdictFinished {
		t.Errorf("Flush = %v, want finished within tolerance", v)
	}
	// Two colors: no auto-fill, the blue half stays.
	if got := r.mutable().NRGBAAt(9, 9); got != RGB(40, 40, 200).NRGBA() {
		t.Errorf("pixel after finish = %v, want untouched blue", got)
	}
}

func TestPainterAutoFillDisabled(t *testing.T) {
	p := NewPainter(PaintConfig{DisableAutoFill: true, Coverage: CoverageConfig{SampleScale: 1}}, nil)
	c := RGB(10, 200, 10)
	r := addSolid(t, p, "r", Vec2{}, 10, 10, c)
	p.Activate("r")
	fillPixels(r.mutable(), 95, c.NRGBA())
	r.colors.Add(c)
	p.Flush("r")
	if a := r.mutable().NRGBAAt(9, 9).A; a != 0 {
		t.Errorf("pixel alpha = %d, want 0 with auto-fill disabled", a)
	}
}

func TestPainterThrottle(t *testing.T) {
	p := NewPainter(PaintConfig{BrushRadius: 30}, nil)
	c := RGB(255, 200, 0)
	r := addSolid(t, p, "r", Vec2{}, 40, 40, c)

	for i := 0; i < 7; i++ {
		from, to := Vec2{0, 20}, Vec2{40, 20}
		if i%2 == 1 {
			from, to = to, from
		}
		v, err := p.Paint("r", from, to, c)
		if err != nil {
			t.Fatal(err)
		}
		if v != VerdictPending {
			t.Fatalf("Paint %d = %v, want pending below check distance", i, v)
		}
	}
	if d := r.StrokeDistance(); d != 280 {
		t.Errorf("StrokeDistance() = %v, want 280", d)
	}
	v, _ := p.Paint("r", Vec2{40, 20}, Vec2{0, 20}, c)
	if v != VerdictFinished {
		t.Errorf("Paint crossing check distance = %v, want finished", v)
	}
	if r.StrokeDistance() != 0 {
		t.Errorf("StrokeDistance() after check = %v, want 0", r.StrokeDistance())
	}
}

func TestPainterActivateSwitchesRegions(t *testing.T) {
	p := NewPainter(PaintConfig{}, nil)
	c := RGB(255, 0, 0)
	a := addSolid(t, p, "a", Vec2{0, 0}, 20, 20, c)
	b := addSolid(t, p, "b", Vec2{100, 0}, 20, 20, c)

	p.Paint("a", Vec2{10, 10}, Vec2{12, 10}, c)
	if p.Active() != a || a.Frozen() || !b.Frozen() {
		t.Fatal("painting a should make it the only mutable region")
	}
	before, _ := a.Raster()

	p.Paint("b", Vec2{110, 10}, Vec2{112, 10}, c)
	if p.Active() != b || !a.Frozen() || b.Frozen() {
		t.Fatal("painting b should freeze a")
	}
	after, _ := a.Raster()
	for i := range before.Pix {
		if before.Pix[i] != after.Pix[i] {
			t.Fatal("a's paint changed across freeze")
		}
	}

	if err := p.Activate("missing"); !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("Activate(missing) = %v, want ErrUnknownRegion", err)
	}
	if _, err := p.Paint("missing", Vec2{}, Vec2{}, c); !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("Paint(missing) = %v, want ErrUnknownRegion", err)
	}
	if _, err := p.CheckCoverage("missing"); !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("CheckCoverage(missing) = %v, want ErrUnknownRegion", err)
	}
}

func TestPainterErase(t *testing.T) {
	p := exactPainter(nil)
	c := RGB(0, 0, 255)
	addSolid(t, p, "r", Vec2{}, 20, 20, c)

	for i := 0; i < 4; i++ {
		p.Paint("r", Vec2{0, 10}, Vec2{20, 10}, c)
	}
	painted, _ := p.CheckCoverage("r")
	for i := 0; i < 4; i++ {
		p.Erase("r", Vec2{0, 10}, Vec2{20, 10})
	}
	erased, _ := p.CheckCoverage("r")
	if erased.Painted >= painted.Painted {
		t.Errorf("painted %v after erase, was %v", erased.Painted, painted.Painted)
	}
}

func TestPainterRegionAt(t *testing.T) {
	p := NewPainter(PaintConfig{}, nil)
	bottom := addSolid(t, p, "bottom", Vec2{0, 0}, 50, 50, ColorWhite)
	top := addSolid(t, p, "top", Vec2{25, 25}, 50, 50, ColorWhite)

	tests := []struct {
		p    Vec2
		want *Region
	}{
		{Vec2{10, 10}, bottom},
		{Vec2{30, 30}, top},
		{Vec2{70, 70}, top},
		{Vec2{90, 10}, nil},
	}
	for _, tt := range tests {
		if got := p.RegionAt(tt.p); got != tt.want {
			t.Errorf("RegionAt(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if rs := p.Regions(); len(rs) != 2 || rs[0] != bottom {
		t.Errorf("Regions() order wrong")
	}
}

func TestPainterLoad(t *testing.T) {
	level, err := LoadLevel([]byte(`{"id": "pic", "kind": "coloring", "coloring": {"regions": [
		{"id": "tri", "expected": "#00ff00", "width": 20, "height": 20, "outline": [[0,0],[20,0],[0,20]]},
		{"id": "sun", "expected": "#ffff00", "x": 50, "mask": "sun"},
		{"id": "lost", "expected": "#000000", "mask": "missing"},
		{"id": "flat", "expected": "#000000", "width": 10, "height": 10, "outline": [[0,0],[1,1]]}
	]}}`))
	if err != nil {
		t.Fatal(err)
	}
	log := &eventLog{}
	p := NewPainter(PaintConfig{}, log)
	n := p.Load(level, map[string]*Mask{"sun": NewSolidMask(8, 8)})
	if n != 2 {
		t.Fatalf("Load() = %d, want 2", n)
	}
	if p.Region("tri") == nil || p.Region("sun") == nil || p.Region("lost") != nil {
		t.Error("wrong regions loaded")
	}
	if p.Region("sun").Origin != (Vec2{50, 0}) {
		t.Errorf("sun origin = %v", p.Region("sun").Origin)
	}
	if log.count(EventLevelStalled) != 0 {
		t.Error("stalled emitted for a playable level")
	}

	if n := p.Load(LevelConfig{ID: "x", Kind: LevelKindLasso}, nil); n != 0 {
		t.Errorf("Load(lasso) = %d, want 0", n)
	}
	if log.count(EventLevelStalled) != 1 {
		t.Errorf("stalled events = %d, want 1", log.count(EventLevelStalled))
	}
	if p.Complete() {
		t.Error("empty painter reports complete")
	}
}

func TestPainterAddRegionValidation(t *testing.T) {
	p := NewPainter(PaintConfig{}, nil)
	if err := p.AddRegion(nil); err == nil {
		t.Error("AddRegion(nil) succeeded")
	}
	if err := p.AddRegion(NewRegion("x", Vec2{}, NewMask(0, 0), ColorWhite)); err == nil {
		t.Error("AddRegion with empty mask succeeded")
	}
	addSolid(t, p, "dup", Vec2{}, 4, 4, ColorWhite)
	addSolid(t, p, "dup", Vec2{}, 8, 8, ColorWhite)
	if len(p.Regions()) != 1 || p.Region("dup").Mask().Width() != 8 {
		t.Error("duplicate ID should replace the region")
	}
}

func TestScriptRunnerPaint(t *testing.T) {
	p := exactPainter(nil)
	addSolid(t, p, "box", Vec2{}, 20, 20, RGB(255, 0, 0))

	r, err := LoadScript([]byte(`{"steps": [
		{"action": "paint", "region": "box", "color": "#ff0000", "points": [[0,5],[20,5],[20,15],[0,15]]},
		{"action": "flush", "region": "box"},
		{"action": "snapshot", "region": "box", "label": "done"}
	]}`), nil, p)
	if err != nil {
		t.Fatal(err)
	}
	r.SnapshotDir = t.TempDir()
	if err := r.Run(); err != nil {
		t.Fatal(err)
	}
	if len(r.Verdicts) != 2 || r.Verdicts[1] != VerdictFinished {
		t.Errorf("Verdicts = %v, want [pending finished]", r.Verdicts)
	}
}

func TestScriptRunnerErrors(t *testing.T) {
	tests := []struct {
		name, script string
	}{
		{"unknown action", `{"steps": [{"action": "dance"}]}`},
		{"stroke without session", `{"steps": [{"action": "stroke", "points": [[0,0]]}]}`},
		{"paint without color", `{"steps": [{"action": "paint", "region": "box", "points": [[0,0],[1,1]]}]}`},
		{"unknown region", `{"steps": [{"action": "flush", "region": "nope"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPainter(PaintConfig{}, nil)
			addSolid(t, p, "box", Vec2{}, 4, 4, ColorWhite)
			r, err := LoadScript([]byte(tt.script), nil, p)
			if err != nil {
				t.Fatal(err)
			}
			if err := r.Run(); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadScript([]byte(`not json`), nil, nil); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := LoadScript([]byte(`{"steps": []}`), nil, nil); err == nil {
		t.Error("expected error for empty steps")
	}
}
