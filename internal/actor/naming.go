package actor

import "fmt"

// nextFreeName returns base if unused, otherwise the first free "base.NNN".
func nextFreeName(taken map[string]struct{}, base string) string {
	if _, ok := taken[base]; !ok {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%03d", base, i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
