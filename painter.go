package playpen

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownRegion is returned for operations on a region ID that was never
// added.
var ErrUnknownRegion = errors.New("playpen: unknown region")

const (
	defaultCheckDistance = 300.0 // pixels of stroke movement between checks
	defaultWinThreshold  = 0.90
)

// PaintConfig tunes a Painter. Zero values select defaults.
type PaintConfig struct {
	// BrushRadius is the soft brush radius in pixels. Default 24.
	BrushRadius float64
	// StampSpacing is the distance between stamps as a fraction of the
	// brush diameter. Default 0.65.
	StampSpacing float64
	// MaxStampsPerSegment caps stamps per Paint/Erase call. Default 50.
	MaxStampsPerSegment int
	// CheckDistance is the accumulated stroke distance per region between
	// coverage checks. Default 300px.
	CheckDistance float64
	// WinThreshold is the painted fraction a region must exceed to finish.
	// Default 0.90.
	WinThreshold float64
	// WrongTolerance is the wrong fraction a region may reach before it is
	// wiped. Default 0: any wrong sample wipes the region.
	WrongTolerance float64
	// DisableAutoFill stops finished single-color regions from being
	// filled solid.
	DisableAutoFill bool
	// Coverage tunes the sampling itself.
	Coverage CoverageConfig
}

func (c PaintConfig) withDefaults() PaintConfig {
	if c.BrushRadius <= 0 {
		c.BrushRadius = defaultBrushRadius
	}
	if c.StampSpacing <= 0 {
		c.StampSpacing = defaultStampSpacing
	}
	if c.MaxStampsPerSegment <= 0 {
		c.MaxStampsPerSegment = defaultMaxStampsPerSeg
	}
	if c.CheckDistance <= 0 {
		c.CheckDistance = defaultCheckDistance
	}
	if c.WinThreshold <= 0 {
		c.WinThreshold = defaultWinThreshold
	}
	if c.WrongTolerance < 0 {
		c.WrongTolerance = 0
	}
	c.Coverage = c.Coverage.withDefaults()
	return c
}

// Verdict is the outcome of judging a region.
type Verdict uint8

const (
	VerdictPending  Verdict = iota // not yet covered enough
	VerdictFinished                // region finished by this check
	VerdictWrong                   // region wiped for a wrong color
	VerdictSkipped                 // region already finished
)

// Painter owns the paintable regions of a coloring level. At most one
// region is mutable at a time; painting another region switches it.
type Painter struct {
	cfg      PaintConfig
	brush    *Brush
	regions  map[string]*Region
	order    []string
	active   *Region
	sink     EventSink
	levelID  string
	complete bool
}

// NewPainter creates an empty painter. sink may be nil.
func NewPainter(cfg PaintConfig, sink EventSink) *Painter {
	cfg = cfg.withDefaults()
	return &Painter{
		cfg:     cfg,
		brush:   NewBrush(cfg.BrushRadius),
		regions: make(map[string]*Region),
		sink:    sink,
	}
}

// Config returns the effective configuration.
func (p *Painter) Config() PaintConfig { return p.cfg }

// Brush returns the painter's brush.
func (p *Painter) Brush() *Brush { return p.brush }

// AddRegion registers r. A region with a duplicate ID replaces the old one.
func (p *Painter) AddRegion(r *Region) error {
	if r == nil || r.mask == nil || r.mask.Bounds().Empty() {
		return fmt.Errorf("playpen: region has no mask")
	}
	if old, ok := p.regions[r.ID]; ok {
		if p.active == old {
			p.active = nil
		}
	} else {
		p.order = append(p.order, r.ID)
	}
	p.regions[r.ID] = r
	p.complete = false
	return nil
}

// Load replaces all regions with those of a coloring level. Masks come from
// assets (by RegionConfig.MaskKey) or are rasterized from the outline.
// Regions that cannot be built are logged and skipped. Returns the number
// of regions loaded; zero emits EventLevelStalled.
func (p *Painter) Load(cfg LevelConfig, assets map[string]*Mask) int {
	p.Reset()
	p.levelID = cfg.ID
	if cfg.Kind != LevelKindColoring || cfg.Coloring == nil {
		Logger().Warn("playpen: load skipped, not a coloring level",
			slog.String("level", cfg.ID), slog.String("kind", string(cfg.Kind)))
		emit(p.sink, Event{Type: EventLevelStalled, LevelID: cfg.ID})
		return 0
	}
	for _, rc := range cfg.Coloring.Regions {
		mask, err := regionMask(rc, assets)
		if err == nil {
			err = p.AddRegion(NewRegion(rc.ID, Vec2{rc.X, rc.Y}, mask, rc.Expected))
		}
		if err != nil {
			Logger().Warn("playpen: skipping region",
				slog.String("level", cfg.ID), slog.String("region", rc.ID), slog.Any("err", err))
		}
	}
	if len(p.regions) == 0 {
		emit(p.sink, Event{Type: EventLevelStalled, LevelID: cfg.ID})
	}
	return len(p.regions)
}

func regionMask(rc RegionConfig, assets map[string]*Mask) (*Mask, error) {
	if rc.ID == "" {
		return nil, fmt.Errorf("playpen: region has no id")
	}
	if rc.MaskKey != "" {
		m, ok := assets[rc.MaskKey]
		if !ok || m == nil {
			return nil, fmt.Errorf("playpen: mask asset %q not found", rc.MaskKey)
		}
		return m, nil
	}
	outline := make([]Vec2, len(rc.Outline))
	for i, pt := range rc.Outline {
		outline[i] = Vec2{pt[0], pt[1]}
	}
	return MaskFromPolygon(rc.Width, rc.Height, outline)
}

// Reset removes every region.
func (p *Painter) Reset() {
	clear(p.regions)
	p.order = p.order[:0]
	p.active = nil
	p.complete = false
}

// Region returns the region with the given ID, or nil.
func (p *Painter) Region(id string) *Region { return p.regions[id] }

// Regions returns all regions in insertion order.
func (p *Painter) Regions() []*Region {
	out := make([]*Region, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.regions[id])
	}
	return out
}

// RegionAt returns the topmost (last added) region whose mask covers the
// scene point pt, or nil.
func (p *Painter) RegionAt(pt Vec2) *Region {
	for i := len(p.order) - 1; i >= 0; i-- {
		if r := p.regions[p.order[i]]; r.Contains(pt) {
			return r
		}
	}
	return nil
}

// Active returns the mutable region, or nil.
func (p *Painter) Active() *Region { return p.active }

// Activate makes region id mutable, freezing the previously active region.
func (p *Painter) Activate(id string) error {
	r, ok := p.regions[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRegion, id)
	}
	if p.active == r {
		return nil
	}
	if p.active != nil {
		if err := p.active.Freeze(); err != nil {
			return err
		}
	}
	if err := r.Thaw(); err != nil {
		return err
	}
	p.active = r
	return nil
}

// Paint stamps the brush in color c from from to to (scene coordinates)
// onto region id, activating it if needed. Finished regions are left
// untouched. The region is judged once its accumulated stroke distance
// reaches CheckDistance.
func (p *Painter) Paint(id string, from, to Vec2, c Color) (Verdict, error) {
	r, err := p.prepare(id)
	if err != nil || r == nil {
		return VerdictSkipped, err
	}
	for _, pt := range stampPositions(from, to, p.cfg.StampSpacing*p.brush.Diameter(), p.cfg.MaxStampsPerSegment) {
		r.stamp(p.brush, pt, c)
	}
	r.colors.Add(c)
	return p.accumulate(r, from.Dist(to)), nil
}

// Erase removes coverage along the segment on region id.
func (p *Painter) Erase(id string, from, to Vec2) (Verdict, error) {
	r, err := p.prepare(id)
	if err != nil || r == nil {
		return VerdictSkipped, err
	}
	for _, pt := range stampPositions(from, to, p.cfg.StampSpacing*p.brush.Diameter(), p.cfg.MaxStampsPerSegment) {
		r.erase(p.brush, pt)
	}
	return p.accumulate(r, from.Dist(to)), nil
}

// prepare resolves and activates region id. A nil region with a nil error
// means the region is finished.
func (p *Painter) prepare(id string) (*Region, error) {
	r, ok := p.regions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, id)
	}
	if r.finished {
		return nil, nil
	}
	if err := p.Activate(id); err != nil {
		return nil, err
	}
	return r, nil
}

func (p *Painter) accumulate(r *Region, d float64) Verdict {
	r.strokeDist += d
	if r.strokeDist < p.cfg.CheckDistance {
		return VerdictPending
	}
	return p.judge(r)
}

// CheckCoverage measures region id without changing it. Calling it twice on
// an unchanged raster returns identical results.
func (p *Painter) CheckCoverage(id string) (Coverage, error) {
	r, ok := p.regions[id]
	if !ok {
		return Coverage{}, fmt.Errorf("%w: %q", ErrUnknownRegion, id)
	}
	return p.measure(r)
}

func (p *Painter) measure(r *Region) (Coverage, error) {
	start := time.Now()
	raster := r.mutable()
	if raster == nil {
		var err error
		if raster, err = r.Raster(); err != nil {
			return Coverage{}, err
		}
	}
	cov := measureCoverage(raster, r.mask, r.Expected, p.cfg.Coverage)
	debugLogCoverage(r.ID, cov, time.Since(start))
	return cov, nil
}

// Flush judges region id immediately, regardless of stroke distance. Call
// it when the pointer is released.
func (p *Painter) Flush(id string) (Verdict, error) {
	r, ok := p.regions[id]
	if !ok {
		return VerdictSkipped, fmt.Errorf("%w: %q", ErrUnknownRegion, id)
	}
	if r.finished {
		return VerdictSkipped, nil
	}
	return p.judge(r), nil
}

// judge applies the completion rule: a wrong color wipes the region; enough
// coverage finishes it exactly once.
func (p *Painter) judge(r *Region) Verdict {
	r.strokeDist = 0
	if r.finished {
		return VerdictSkipped
	}
	cov, err := p.measure(r)
	if err != nil {
		Logger().Warn("playpen: coverage check failed", slog.String("region", r.ID), slog.Any("err", err))
		return VerdictPending
	}

	if cov.Wrong > p.cfg.WrongTolerance {
		r.Clear()
		emit(p.sink, Event{
			Type: EventRegionWrong, AttemptID: uuid.New(), LevelID: p.levelID,
			RegionID: r.ID, Coverage: cov,
		})
		return VerdictWrong
	}
	if cov.Painted <= p.cfg.WinThreshold {
		return VerdictPending
	}

	r.finished = true
	colors := r.colors.Colors()
	if !p.cfg.DisableAutoFill && len(colors) == 1 {
		r.fill(colors[0])
	}
	Logger().Info("playpen: region finished",
		slog.String("level", p.levelID), slog.String("region", r.ID),
		slog.Float64("painted", cov.Painted), slog.Int("colors", len(colors)))
	emit(p.sink, Event{
		Type: EventRegionFinished, AttemptID: uuid.New(), LevelID: p.levelID,
		RegionID: r.ID, Colors: colors, Coverage: cov,
	})

	if p.Complete() && !p.complete {
		p.complete = true
		emit(p.sink, Event{Type: EventLevelComplete, LevelID: p.levelID, Found: len(p.order), Total: len(p.order)})
	}
	return VerdictFinished
}

// Complete reports whether every region is finished.
func (p *Painter) Complete() bool {
	if len(p.order) == 0 {
		return false
	}
	for _, id := range p.order {
		if !p.regions[id].finished {
			return false
		}
	}
	return true
}
