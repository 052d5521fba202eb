package recycler

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/grindlemire/go-recycler/internal/errs"
)

// Context key suffixes appended to a list view's unique key.
const (
	OffsetKeySuffix = "_offset"
	LayoutKeySuffix = "_layouts"
)

// ContextStore persists list state across list view instances. Get reports
// false for a missing key. See package store for implementations.
type ContextStore interface {
	Save(key string, value []byte) error
	Get(key string) ([]byte, bool, error)
	Remove(key string) error
}

type savedLayouts struct {
	Layouts []Layout `msgpack:"layouts"`
}

func encodeContextValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	enc.Reset(&buf)
	err := enc.Encode(v)
	msgpack.PutEncoder(enc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T using msgpack: %w", v, err)
	}
	return buf.Bytes(), nil
}

func decodeContextValue(raw []byte, v any) error {
	dec := msgpack.GetDecoder()
	dec.Reset(bytes.NewReader(raw))
	err := dec.Decode(v)
	msgpack.PutDecoder(dec)
	if err != nil {
		return fmt.Errorf("failed to decode msgpack into %T: %w", v, err)
	}
	return nil
}

// restoredContext is what a list view recovers from its store on creation.
type restoredContext struct {
	offset  float64
	layouts []Layout
}

// loadContext reads and consumes the saved offset and, when withLayouts is
// set, the saved layouts. Consumed keys are removed from the store.
func loadContext(store ContextStore, uniqueKey string, withLayouts bool) (restoredContext, error) {
	var rc restoredContext
	if store == nil || uniqueKey == "" {
		return rc, nil
	}

	key := uniqueKey + OffsetKeySuffix
	raw, ok, err := store.Get(key)
	if err != nil {
		return rc, errs.Wrap(errs.KindContextStore, err, "get %q", key)
	}
	if ok {
		var offset float64
		if err := decodeContextValue(raw, &offset); err != nil {
			return rc, errs.Wrap(errs.KindContextStore, err, "read %q", key)
		}
		if offset > 0 {
			rc.offset = offset
			if err := store.Remove(key); err != nil {
				return rc, errs.Wrap(errs.KindContextStore, err, "remove %q", key)
			}
		}
	}

	if !withLayouts {
		return rc, nil
	}
	key = uniqueKey + LayoutKeySuffix
	raw, ok, err = store.Get(key)
	if err != nil {
		return rc, errs.Wrap(errs.KindContextStore, err, "get %q", key)
	}
	if ok {
		var saved savedLayouts
		if err := decodeContextValue(raw, &saved); err != nil {
			return rc, errs.Wrap(errs.KindContextStore, err, "read %q", key)
		}
		rc.layouts = saved.Layouts
		if err := store.Remove(key); err != nil {
			return rc, errs.Wrap(errs.KindContextStore, err, "remove %q", key)
		}
	}
	return rc, nil
}

// saveContext writes the scroll offset and, if layouts is non-nil, the
// layout list.
func saveContext(store ContextStore, uniqueKey string, offset float64, layouts []Layout) error {
	if store == nil || uniqueKey == "" {
		return nil
	}
	raw, err := encodeContextValue(offset)
	if err != nil {
		return errs.Wrap(errs.KindContextStore, err, "encode offset")
	}
	if err := store.Save(uniqueKey+OffsetKeySuffix, raw); err != nil {
		return errs.Wrap(errs.KindContextStore, err, "save %q", uniqueKey+OffsetKeySuffix)
	}
	if layouts == nil {
		return nil
	}
	raw, err = encodeContextValue(savedLayouts{Layouts: layouts})
	if err != nil {
		return errs.Wrap(errs.KindContextStore, err, "encode layouts")
	}
	if err := store.Save(uniqueKey+LayoutKeySuffix, raw); err != nil {
		return errs.Wrap(errs.KindContextStore, err, "save %q", uniqueKey+LayoutKeySuffix)
	}
	return nil
}
