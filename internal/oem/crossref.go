package oem

import (
	"runtime"
	"strings"
	"sync"

	"stockfeed/internal/model"
)

// CrossCodes computes, for every article, the codes of the other articles
// tied to the same OE references. Two passes:
//
//  1. Articles citing the exact same joined reference string are grouped;
//     each member's cross list is the other members' codes.
//  2. Articles left with the Unknown OE sentinel get a second chance:
//     their own code is searched as a whole space-delimited token inside
//     every resolved reference string, and the owners of the matching
//     references become the cross list.
//
// Articles with an ignored brand contribute nothing and receive nothing.
func CrossCodes(codes, oems []string, ignored []bool) []string {
	n := len(codes)
	out := make([]string, n)

	resolved := make([]bool, n)
	for i := range codes {
		resolved[i] = !ignored[i] && oems[i] != "" && oems[i] != model.UnknownOE
	}

	// Pass 1: identical reference strings.
	groups := make(map[string][]int)
	for i := range codes {
		if resolved[i] {
			groups[oems[i]] = append(groups[oems[i]], i)
		}
	}
	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		for _, i := range members {
			others := make([]string, 0, len(members)-1)
			for _, j := range members {
				if codes[j] != codes[i] {
					others = append(others, codes[j])
				}
			}
			out[i] = strings.Join(others, joinSep)
		}
	}

	// Pass 2: token scan for the Unknown OE rows, split across workers.
	// Padding both sides makes the contains check match whole codes only.
	padded := make([]string, n)
	for i := range oems {
		padded[i] = " " + strings.TrimSpace(oems[i]) + " "
	}

	var pending []int
	for i := range codes {
		if !ignored[i] && oems[i] == model.UnknownOE {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return out
	}

	workers := runtime.NumCPU()
	if workers > len(pending) {
		workers = len(pending)
	}
	chunk := (len(pending) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(pending) {
			hi = len(pending)
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(rows []int) {
			defer wg.Done()
			for _, i := range rows {
				out[i] = scanReferences(i, codes, padded, resolved)
			}
		}(pending[lo:hi])
	}
	wg.Wait()

	return out
}

// scanReferences collects the codes of every resolved article whose
// reference string mentions article i's code.
func scanReferences(i int, codes, padded []string, resolved []bool) string {
	needle := " " + codes[i] + " "
	var (
		hits []string
		seen map[string]struct{}
	)
	for j := range codes {
		if !resolved[j] {
			continue
		}
		if !strings.Contains(padded[j], needle) {
			continue
		}
		if seen == nil {
			seen = make(map[string]struct{})
		}
		if _, dup := seen[codes[j]]; dup {
			continue
		}
		seen[codes[j]] = struct{}{}
		hits = append(hits, codes[j])
	}
	return strings.Join(hits, joinSep)
}
