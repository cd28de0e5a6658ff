package league

import "strings"

// DefaultCandidates is returned when no team fragment matches. MLS is not part
// of the fallback set; soccer teams must be named explicitly to be probed.
var DefaultCandidates = []string{NBA, MLB, NFL, NHL}

// DetectLeagues maps free text to candidate league ids, most likely first.
// The result is never empty.
func DetectLeagues(searchTerm string) []string {
	term := strings.ToLower(searchTerm)

	var out []string
	for _, id := range order {
		for _, team := range byID[id].Teams {
			if strings.Contains(term, team) {
				out = append(out, id)
				break
			}
		}
	}

	if len(out) == 0 {
		return append([]string(nil), DefaultCandidates...)
	}
	return out
}

// Prioritize moves preferred to the front of candidates, adding it when absent.
func Prioritize(candidates []string, preferred string) []string {
	preferred = strings.ToLower(strings.TrimSpace(preferred))
	if _, ok := byID[preferred]; !ok {
		return candidates
	}

	out := make([]string, 0, len(candidates)+1)
	out = append(out, preferred)
	for _, id := range candidates {
		if id != preferred {
			out = append(out, id)
		}
	}
	return out
}
