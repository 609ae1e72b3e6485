package util

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// GetKeys returns the keys of m in ascending order.
func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Max[A constraints.Ordered](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}

func Sum[A constraints.Integer | constraints.Float](nums []A) A {
	var total A
	for _, v := range nums {
		total += v
	}
	return total
}

// ParseIndexList reads "0, 2,3" into [0 2 3]. Empty input is an empty list.
func ParseIndexList(s string) ([]int, error) {
	var res []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i, err := strconv.Atoi(part)
		if err != nil || i < 0 {
			return nil, fmt.Errorf("bad index %q", part)
		}
		res = append(res, i)
	}
	return res, nil
}

// FlagsAt turns indices into n booleans; indices past n are ignored.
func FlagsAt[A constraints.Integer](indices []A, n int) []bool {
	flags := make([]bool, Max(n, 0))
	for _, i := range indices {
		if i >= 0 && int(i) < n {
			flags[int(i)] = true
		}
	}
	return flags
}

// GatherAllMidiPaths lists the .mid and .midi files under path, at most
// maxNum of them when maxNum is positive.
func GatherAllMidiPaths(path string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(s))
		if ext == ".mid" || ext == ".midi" {
			if maxNum <= 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	if err := filepath.WalkDir(path, walk); err != nil {
		return nil, fmt.Errorf("error walking %v: %w", path, err)
	}
	return res, nil
}
