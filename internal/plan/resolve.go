package plan

import (
	"fmt"
	"strings"
)

// Lookup resolves an attribute of an already-provisioned descriptor.
// The second return value reports whether the attribute was found.
type Lookup func(descriptor, attribute string) (string, bool)

// ResolveRefs returns a copy of props with every ref://<descriptor>/<attr>
// string replaced by the value the lookup yields. The input map is never
// mutated; descriptors stay immutable after planning. An unresolvable
// reference is an error: it means execution order and the dependency graph
// disagree.
func ResolveRefs(props map[string]any, lookup Lookup) (map[string]any, error) {
	resolved, err := resolveValue(props, lookup)
	if err != nil {
		return nil, err
	}
	m, ok := resolved.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("resolved properties are not a map")
	}
	return m, nil
}

func resolveValue(v any, lookup Lookup) (any, error) {
	switch val := v.(type) {
	case string:
		if !strings.HasPrefix(val, "ref://") {
			return val, nil
		}
		target, attr := refTarget(val), refAttribute(val)
		if target == "" || attr == "" {
			return nil, fmt.Errorf("malformed reference %q", val)
		}
		out, ok := lookup(target, attr)
		if !ok {
			return nil, fmt.Errorf("reference %q cannot be resolved: descriptor %q has no attribute %q", val, target, attr)
		}
		return out, nil
	case map[string]any:
		newMap := make(map[string]any, len(val))
		for k, v := range val {
			rv, err := resolveValue(v, lookup)
			if err != nil {
				return nil, err
			}
			newMap[k] = rv
		}
		return newMap, nil
	case []any:
		newSlice := make([]any, len(val))
		for i, v := range val {
			rv, err := resolveValue(v, lookup)
			if err != nil {
				return nil, err
			}
			newSlice[i] = rv
		}
		return newSlice, nil
	default:
		return val, nil
	}
}
