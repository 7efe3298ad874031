// Package planner implements the plan derivation core: task code
// allocation, dependency validation, lifecycle guarding, patch
// normalization, phase grouping and Gantt timeline projection. Everything
// in this package is a pure function over snapshots handed to it; nothing
// here touches storage.
package planner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var taskCodeRe = regexp.MustCompile(`^T(\d+)$`)

// NextTaskCode allocates the next task code ("T001", "T002", ...) for a
// project given every code currently present. Allocation is based on the
// historical maximum numeric suffix, not on row count: deleting the
// highest-numbered task and creating a new one yields a strictly greater
// code, never a reused one. Codes that do not match T<digits> are ignored
// for numbering.
func NextTaskCode(existing []string) string {
	maxN := 0
	taken := make(map[string]struct{}, len(existing))
	for _, code := range existing {
		norm := strings.ToUpper(strings.TrimSpace(code))
		taken[norm] = struct{}{}
		m := taskCodeRe.FindStringSubmatch(norm)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxN {
			maxN = n
		}
	}

	// The max scan makes a collision impossible in practice, but guard
	// anyway rather than hand out a duplicate.
	for n := maxN + 1; ; n++ {
		code := fmt.Sprintf("T%03d", n)
		if _, ok := taken[code]; !ok {
			return code
		}
	}
}

// codeNumber parses the numeric suffix of a T### task code.
func codeNumber(code string) (int, bool) {
	m := taskCodeRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(code)))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SplitDependencyCodes splits a comma-separated dependency field into
// trimmed, uppercased codes. Empty tokens are dropped.
func SplitDependencyCodes(dependency string) []string {
	if strings.TrimSpace(dependency) == "" {
		return nil
	}
	parts := strings.Split(dependency, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		c := strings.ToUpper(strings.TrimSpace(p))
		if c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}
