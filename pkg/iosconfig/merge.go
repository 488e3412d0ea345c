package iosconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/honeybbq/iosconfig/pkg/nxerrors"
)

// DefaultIdentifiers are the keys used to recognise "the same" element when
// two layers both carry a list of objects: interfaces by name, routes by
// destination, anything else by id.
var DefaultIdentifiers = []string{"name", "destination", "id"}

// MergeJSON layers NetJSON documents, later layers overriding earlier ones
// (site template → region → device).
//
//   - scalars: the later value wins
//   - objects: merged key by key
//   - lists of objects: elements sharing an identifier are merged, the rest
//     are appended; exact duplicates are dropped
func MergeJSON(layers [][]byte, identifiers []string) ([]byte, error) {
	if len(layers) == 0 {
		return nil, nxerrors.New(nxerrors.KindValidation, errors.New("no layers to merge"))
	}
	if identifiers == nil {
		identifiers = DefaultIdentifiers
	}
	m := merger{identifiers: identifiers}

	var result map[string]any
	for i, layer := range layers {
		var doc map[string]any
		if err := json.Unmarshal(layer, &doc); err != nil {
			return nil, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("layer %d: %w", i, err))
		}
		result = m.mergeMaps(result, doc)
	}
	return json.Marshal(result)
}

type merger struct {
	identifiers []string
}

func (m merger) mergeMaps(base, override map[string]any) map[string]any {
	result, _ := clone(base).(map[string]any)
	if result == nil {
		result = make(map[string]any, len(override))
	}
	for key, value := range override {
		existing, ok := result[key]
		if !ok {
			result[key] = clone(value)
			continue
		}
		result[key] = m.mergeValue(existing, value)
	}
	return result
}

func (m merger) mergeValue(base, override any) any {
	switch over := override.(type) {
	case map[string]any:
		if baseMap, ok := base.(map[string]any); ok {
			return m.mergeMaps(baseMap, over)
		}
	case []any:
		if baseList, ok := base.([]any); ok {
			return m.mergeLists(baseList, over)
		}
	}
	return clone(override)
}

// mergeLists 按标识符合并对象数组，未匹配的元素追加到末尾。
func (m merger) mergeLists(base, override []any) []any {
	result, _ := clone(base).([]any)
	index := make(map[any]int)
	for i, el := range result {
		if id := m.identify(el); id != nil {
			index[id] = i
		}
	}
	for _, el := range override {
		if containsEqual(result, el) {
			continue
		}
		if id := m.identify(el); id != nil {
			if idx, ok := index[id]; ok {
				result[idx] = m.mergeValue(result[idx], el)
				continue
			}
			index[id] = len(result)
		}
		result = append(result, clone(el))
	}
	return result
}

// identify 返回第一个非空的标量标识符。
func (m merger) identify(el any) any {
	obj, ok := el.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range m.identifiers {
		switch val := obj[key].(type) {
		case string:
			if val != "" {
				return val
			}
		case float64, bool:
			return val
		}
	}
	return nil
}

func containsEqual(list []any, el any) bool {
	for _, item := range list {
		if reflect.DeepEqual(item, el) {
			return true
		}
	}
	return false
}

// clone deep-copies decoded JSON values.
func clone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		if val == nil {
			return nil
		}
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = clone(item)
		}
		return out
	case []any:
		if val == nil {
			return nil
		}
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = clone(item)
		}
		return out
	default:
		return val
	}
}
