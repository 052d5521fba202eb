package recycler

import (
	"fmt"
	"math"

	"github.com/grindlemire/go-recycler/internal/debug"
)

// Option is a functional option for configuring a ListView.
type Option func(*config) error

// config holds everything options can set. Zero values are not the
// defaults; see defaultConfig.
type config struct {
	renderAheadOffset  float64
	renderAheadSet     bool
	renderBehindOffset float64
	horizontal         bool
	initialOffset      float64
	initialRenderIndex int
	recycling          bool
	nonDeterministic   bool

	layoutSize          *Dimension
	canChangeSize       bool
	suppressBoundedSize bool
	extendedState       any
	surface             ScrollSurface

	correction   WindowCorrectionConfig
	correctionFn func(offsetX, offsetY float64, wc *WindowCorrection)

	progressive *progressive

	endReachedThreshold         float64
	endReachedThresholdRelative float64

	store        ContextStore
	uniqueKey    string
	ownsDebugLog bool

	onEndReached            func()
	onVisibleIndicesChanged RangeFunc
	onRecreate              func(lastOffset float64)
	onItemLayout            func(index int)
	onScroll                func(offsetX, offsetY float64)
	onRenderStackChanged    func(RenderStack)
}

const defaultRenderAheadOffset = 250

func defaultConfig() config {
	return config{
		renderAheadOffset:  defaultRenderAheadOffset,
		renderBehindOffset: -1,
		recycling:          true,
	}
}

// ScrollSurface moves the host's scroll position. After scrolling it must
// report the new position through ListView.OnScroll. Without a surface the
// list view applies programmatic scrolls to itself immediately.
type ScrollSurface interface {
	ScrollTo(x, y float64, animate bool)
}

// ScrollSurfaceFunc adapts a function to ScrollSurface.
type ScrollSurfaceFunc func(x, y float64, animate bool)

// ScrollTo calls f.
func (f ScrollSurfaceFunc) ScrollTo(x, y float64, animate bool) { f(x, y, animate) }

// WindowCorrectionConfig sets a static window correction and where it
// applies besides viewability tracking.
type WindowCorrectionConfig struct {
	Value                WindowCorrection
	ApplyToInitialOffset bool
	ApplyToItemScroll    bool
}

// WithRenderAheadOffset sets how far beyond the viewport items stay
// materialized. Default is 250. Must not be negative.
func WithRenderAheadOffset(offset float64) Option {
	return func(c *config) error {
		if offset < 0 {
			return fmt.Errorf("render ahead offset cannot be negative")
		}
		c.renderAheadOffset = offset
		c.renderAheadSet = true
		return nil
	}
}

// WithRenderBehindOffset sets the margin kept behind the scroll direction.
// By default it equals the render-ahead offset.
func WithRenderBehindOffset(offset float64) Option {
	return func(c *config) error {
		if offset < 0 {
			return fmt.Errorf("render behind offset cannot be negative")
		}
		c.renderBehindOffset = offset
		return nil
	}
}

// WithHorizontal scrolls along the x axis.
func WithHorizontal() Option {
	return func(c *config) error {
		c.horizontal = true
		return nil
	}
}

// WithInitialOffset starts the list scrolled to offset.
func WithInitialOffset(offset float64) Option {
	return func(c *config) error {
		if offset < 0 {
			return fmt.Errorf("initial offset cannot be negative")
		}
		c.initialOffset = offset
		return nil
	}
}

// WithInitialRenderIndex starts the list scrolled to the item at index.
// It takes precedence over WithInitialOffset.
func WithInitialRenderIndex(index int) Option {
	return func(c *config) error {
		if index < 0 {
			return fmt.Errorf("initial render index cannot be negative")
		}
		c.initialRenderIndex = index
		return nil
	}
}

// WithoutRecycling keeps a slot per materialized item instead of reusing
// slots of items that left the engaged range.
func WithoutRecycling() Option {
	return func(c *config) error {
		c.recycling = false
		return nil
	}
}

// WithNonDeterministicRendering treats layout provider sizes as estimates.
// Real sizes arrive through ReportItemSize and trigger incremental relayout.
func WithNonDeterministicRendering() Option {
	return func(c *config) error {
		c.nonDeterministic = true
		return nil
	}
}

// WithLayoutSize initializes the list with a known viewport size. Later
// SetSize calls are ignored unless WithCanChangeSize is also given.
func WithLayoutSize(size Dimension) Option {
	return func(c *config) error {
		if size.Width <= 0 || size.Height <= 0 {
			return fmt.Errorf("layout size must be positive, got %vx%v", size.Width, size.Height)
		}
		c.layoutSize = &size
		return nil
	}
}

// WithCanChangeSize lets SetSize override a size given by WithLayoutSize.
func WithCanChangeSize() Option {
	return func(c *config) error {
		c.canChangeSize = true
		return nil
	}
}

// WithSuppressBoundedSizeError makes SetSize ignore a zero width or height
// instead of failing.
func WithSuppressBoundedSizeError() Option {
	return func(c *config) error {
		c.suppressBoundedSize = true
		return nil
	}
}

// WithExtendedState passes v to every rendered Row.
func WithExtendedState(v any) Option {
	return func(c *config) error {
		c.extendedState = v
		return nil
	}
}

// WithScrollSurface routes programmatic scrolls through s.
func WithScrollSurface(s ScrollSurface) Option {
	return func(c *config) error {
		if s == nil {
			return fmt.Errorf("scroll surface cannot be nil")
		}
		c.surface = s
		return nil
	}
}

// WithWindowCorrection applies a static window correction.
func WithWindowCorrection(cfg WindowCorrectionConfig) Option {
	return func(c *config) error {
		c.correction = cfg
		return nil
	}
}

// WithWindowCorrectionFunc adjusts the window correction on every scroll.
// fn may modify wc in place; changes persist.
func WithWindowCorrectionFunc(fn func(offsetX, offsetY float64, wc *WindowCorrection)) Option {
	return func(c *config) error {
		c.correctionFn = fn
		return nil
	}
}

// WithProgressiveRenderAhead starts with no render-ahead margin and grows it
// by step every Tick until it covers the content or reaches maxOffset. The
// margin is then set to final; a negative final keeps the grown margin.
func WithProgressiveRenderAhead(step, maxOffset, final float64) Option {
	return func(c *config) error {
		if step <= 0 {
			return fmt.Errorf("render ahead step must be positive")
		}
		if maxOffset <= 0 {
			maxOffset = math.MaxFloat64
		}
		c.progressive = newProgressive(step, maxOffset, final)
		return nil
	}
}

// WithEndReachedThreshold fires OnEndReached when the distance to the end
// drops to threshold or less.
func WithEndReachedThreshold(threshold float64) Option {
	return func(c *config) error {
		c.endReachedThreshold = threshold
		return nil
	}
}

// WithEndReachedThresholdRelative is WithEndReachedThreshold measured in
// viewport lengths.
func WithEndReachedThresholdRelative(fraction float64) Option {
	return func(c *config) error {
		if fraction < 0 {
			return fmt.Errorf("relative end reached threshold cannot be negative")
		}
		c.endReachedThresholdRelative = fraction
		return nil
	}
}

// WithContextStore persists the scroll offset (and, with non-deterministic
// rendering, the measured layouts) under uniqueKey when the list view is
// closed, and restores them when a list view with the same key is created.
func WithContextStore(store ContextStore, uniqueKey string) Option {
	return func(c *config) error {
		if store == nil {
			return fmt.Errorf("context store cannot be nil")
		}
		if uniqueKey == "" {
			return fmt.Errorf("context store requires a unique key")
		}
		c.store = store
		c.uniqueKey = uniqueKey
		return nil
	}
}

// WithDebugLog writes engine diagnostics to the file at path.
func WithDebugLog(path string) Option {
	return func(c *config) error {
		if err := debug.Init(path); err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		c.ownsDebugLog = true
		return nil
	}
}

// WithOnEndReached calls fn once each time the end of the content comes
// within the end reached threshold.
func WithOnEndReached(fn func()) Option {
	return func(c *config) error {
		c.onEndReached = fn
		return nil
	}
}

// WithOnVisibleIndicesChanged reports changes of the visible index range.
func WithOnVisibleIndicesChanged(fn RangeFunc) Option {
	return func(c *config) error {
		c.onVisibleIndicesChanged = fn
		return nil
	}
}

// WithOnRecreate is called during construction with the offset restored
// from the context store.
func WithOnRecreate(fn func(lastOffset float64)) Option {
	return func(c *config) error {
		c.onRecreate = fn
		return nil
	}
}

// WithOnItemLayout is called for every ReportItemSize.
func WithOnItemLayout(fn func(index int)) Option {
	return func(c *config) error {
		c.onItemLayout = fn
		return nil
	}
}

// WithOnScroll is called for every OnScroll after the engine has processed it.
func WithOnScroll(fn func(offsetX, offsetY float64)) Option {
	return func(c *config) error {
		c.onScroll = fn
		return nil
	}
}

// WithOnRenderStackChanged is called once per batch of render stack changes.
func WithOnRenderStackChanged(fn func(RenderStack)) Option {
	return func(c *config) error {
		c.onRenderStackChanged = fn
		return nil
	}
}
