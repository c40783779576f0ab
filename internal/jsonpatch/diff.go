// Package jsonpatch computes RFC 6902 patches between two JSON documents.
package jsonpatch

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/elcukro/home-budget-sub000/internal/model"
)

// Between encodes before and after as JSON and diffs the results.
func Between(before, after interface{}) ([]model.PatchOp, error) {
	a, err := json.Marshal(before)
	if err != nil {
		return nil, fmt.Errorf("encode before: %w", err)
	}
	b, err := json.Marshal(after)
	if err != nil {
		return nil, fmt.Errorf("encode after: %w", err)
	}
	return DiffJSON(a, b)
}

// DiffJSON diffs two encoded JSON documents.
func DiffJSON(before, after []byte) ([]model.PatchOp, error) {
	var a, b interface{}
	if err := json.Unmarshal(before, &a); err != nil {
		return nil, fmt.Errorf("decode before: %w", err)
	}
	if err := json.Unmarshal(after, &b); err != nil {
		return nil, fmt.Errorf("decode after: %w", err)
	}
	return Diff(a, b, ""), nil
}

// Diff computes an RFC 6902 JSON Patch that transforms a into b.
// Both a and b should be the result of json.Unmarshal into interface{}.
// Object keys are visited in sorted order so the output is stable.
// Path should be "" for the root document.
func Diff(a, b interface{}, path string) []model.PatchOp {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []model.PatchOp{replaceOp(path, b)}
	}

	aMap, aIsMap := a.(map[string]interface{})
	bMap, bIsMap := b.(map[string]interface{})
	if aIsMap && bIsMap {
		return diffObjects(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]interface{})
	bArr, bIsArr := b.([]interface{})
	if aIsArr && bIsArr {
		return diffArrays(aArr, bArr, path)
	}

	if aIsMap || bIsMap || aIsArr || bIsArr || a != b {
		return []model.PatchOp{replaceOp(path, b)}
	}
	return nil
}

func diffObjects(a, b map[string]interface{}, path string) []model.PatchOp {
	var ops []model.PatchOp

	for _, k := range sortedKeys(a) {
		if _, ok := b[k]; !ok {
			ops = append(ops, removeOp(path+"/"+escapeKey(k)))
		}
	}

	for _, k := range sortedKeys(b) {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			ops = append(ops, addOp(childPath, b[k]))
			continue
		}
		ops = append(ops, Diff(av, b[k], childPath)...)
	}

	return ops
}

func diffArrays(a, b []interface{}, path string) []model.PatchOp {
	var ops []model.PatchOp

	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	for i := 0; i < minLen; i++ {
		ops = append(ops, Diff(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}

	// Removed from the end first so indices stay valid.
	for i := len(a) - 1; i >= minLen; i-- {
		ops = append(ops, removeOp(path+"/"+strconv.Itoa(i)))
	}

	for i := minLen; i < len(b); i++ {
		ops = append(ops, addOp(path+"/"+strconv.Itoa(i), b[i]))
	}

	return ops
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func replaceOp(path string, value interface{}) model.PatchOp {
	return model.PatchOp{Op: "replace", Path: path, Value: value}
}

func addOp(path string, value interface{}) model.PatchOp {
	return model.PatchOp{Op: "add", Path: path, Value: value}
}

func removeOp(path string) model.PatchOp {
	return model.PatchOp{Op: "remove", Path: path}
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
