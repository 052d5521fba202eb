package recycler

type progressStep uint8

const (
	stepIdle progressStep = iota
	stepUpdate
	stepFinal
)

// renderAheadTarget is the part of a ListView progressive growth drives.
type renderAheadTarget interface {
	UpdateRenderAheadOffset(offset float64) bool
	CurrentRenderAheadOffset() float64
	ContentDimension() Dimension
	IsHorizontal() bool
}

// progressive grows the render-ahead margin one step per Tick so a list
// can show its first screen before materializing everything around it.
type progressive struct {
	step      float64
	maxOffset float64
	final     float64

	firstLayoutComplete bool

	next  progressStep
	value float64
}

func newProgressive(step, maxOffset, final float64) *progressive {
	return &progressive{step: step, maxOffset: maxOffset, final: final}
}

// schedule applies v on the next tick.
func (p *progressive) schedule(v float64) {
	p.next = stepUpdate
	p.value = v
}

func (p *progressive) tick(t renderAheadTarget) {
	switch p.next {
	case stepUpdate:
		// Tracking has not started yet; retry next tick.
		if !t.UpdateRenderAheadOffset(p.value) {
			return
		}
		p.next = stepIdle
		p.increment(t)
	case stepFinal:
		p.next = stepIdle
		if p.final >= 0 {
			t.UpdateRenderAheadOffset(p.final)
		}
	}
}

func (p *progressive) increment(t renderAheadTarget) {
	current := t.CurrentRenderAheadOffset()
	content := t.ContentDimension().Primary(t.IsHorizontal())
	if current < content && current < p.maxOffset {
		p.schedule(current + p.step)
		return
	}
	p.next = stepFinal
}
