package rendering

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ColSpanKind tags the normalized shape of a slot's column span.
type ColSpanKind int

const (
	// ColSpanDefault means no span was authored; the slot takes the
	// full grid width.
	ColSpanDefault ColSpanKind = iota
	// ColSpanFixed is the legacy plain-number format.
	ColSpanFixed
	// ColSpanPerView maps view-mode names to per-mode values.
	ColSpanPerView
)

// ColSpanValue is one resolved span for a view mode: either a column
// count or a passthrough CSS class string.
type ColSpanValue struct {
	Cols  int    `json:"cols,omitempty"`
	Class string `json:"class,omitempty"`
}

// ColSpan is the tagged, load-time-normalized form of the editor's
// polymorphic colSpan field. Three slot-format generations are
// accepted: a plain number, a per-view-mode map of numbers or CSS
// class strings, and a per-view-mode map of legacy breakpoint objects.
// Normalization happens once here so the renderer never re-resolves
// shapes per render.
type ColSpan struct {
	Kind    ColSpanKind             `json:"kind"`
	Fixed   int                     `json:"fixed,omitempty"`
	PerView map[string]ColSpanValue `json:"perView,omitempty"`
}

// UnmarshalJSON normalizes the polymorphic editor payload.
func (cs *ColSpan) UnmarshalJSON(data []byte) error {
	*cs = ColSpan{}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	// Legacy format: plain number.
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		cs.Kind = ColSpanFixed
		cs.Fixed = int(n)
		return nil
	}

	// Per-view-mode map.
	var byMode map[string]json.RawMessage
	if err := json.Unmarshal(data, &byMode); err != nil {
		return fmt.Errorf("unsupported colSpan shape: %s", trimmed)
	}

	cs.Kind = ColSpanPerView
	cs.PerView = make(map[string]ColSpanValue, len(byMode))
	for mode, raw := range byMode {
		value, err := parseColSpanValue(raw)
		if err != nil {
			return fmt.Errorf("colSpan for view mode %q: %w", mode, err)
		}
		cs.PerView[mode] = value
	}
	return nil
}

func parseColSpanValue(raw json.RawMessage) (ColSpanValue, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return ColSpanValue{Cols: int(n)}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ColSpanValue{Class: s}, nil
	}

	// Legacy nested breakpoint object, e.g. {"sm": 2, "md": 3}. These
	// are flattened into a responsive class string once at load time.
	var breakpoints map[string]float64
	if err := json.Unmarshal(raw, &breakpoints); err == nil {
		return ColSpanValue{Class: breakpointClasses(breakpoints)}, nil
	}

	return ColSpanValue{}, fmt.Errorf("unsupported value %s", string(raw))
}

// breakpointOrder fixes the emission order of legacy breakpoint keys.
var breakpointOrder = map[string]int{"xs": 0, "sm": 1, "md": 2, "lg": 3, "xl": 4}

func breakpointClasses(breakpoints map[string]float64) string {
	keys := make([]string, 0, len(breakpoints))
	for k := range breakpoints {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := breakpointOrder[keys[i]]
		oj, jok := breakpointOrder[keys[j]]
		if iok && jok {
			return oi < oj
		}
		if iok != jok {
			return iok
		}
		return keys[i] < keys[j]
	})

	var classes []string
	for _, k := range keys {
		cols := int(breakpoints[k])
		if k == "xs" {
			classes = append(classes, fmt.Sprintf("col-span-%d", cols))
			continue
		}
		classes = append(classes, fmt.Sprintf("%s:col-span-%d", k, cols))
	}
	return strings.Join(classes, " ")
}

// MarshalJSON emits the editor-compatible shape so stored layouts
// survive a decode/encode cycle: numbers for column counts, strings
// for class values.
func (cs ColSpan) MarshalJSON() ([]byte, error) {
	switch cs.Kind {
	case ColSpanFixed:
		return json.Marshal(cs.Fixed)
	case ColSpanPerView:
		byMode := make(map[string]any, len(cs.PerView))
		for mode, value := range cs.PerView {
			if value.Cols > 0 {
				byMode[mode] = value.Cols
				continue
			}
			byMode[mode] = value.Class
		}
		return json.Marshal(byMode)
	default:
		return []byte("null"), nil
	}
}

// Resolve returns the effective span for a view mode. Precedence:
// fixed number, per-view-mode column count, per-view-mode class
// string, then the full-width default. A non-empty class takes the
// place of a column count for that mode.
func (cs ColSpan) Resolve(viewMode string, defaultCols int) (int, string) {
	switch cs.Kind {
	case ColSpanFixed:
		if cs.Fixed > 0 {
			return cs.Fixed, ""
		}
	case ColSpanPerView:
		if value, ok := cs.PerView[viewMode]; ok {
			if value.Cols > 0 {
				return value.Cols, ""
			}
			if value.Class != "" {
				return 0, value.Class
			}
		}
	}
	return defaultCols, ""
}
