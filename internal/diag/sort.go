package diag

import "sort"

// SortVerdicts orders verdicts by file, then by primary span start/end,
// then by severity (errors before warnings), then by rule identity, for
// stable and deterministic rendering.
func SortVerdicts(verdicts []Verdict) {
	sort.SliceStable(verdicts, func(i, j int) bool {
		a, b := verdicts[i], verdicts[j]
		if a.Primary.File != b.Primary.File {
			return a.Primary.File < b.Primary.File
		}
		if a.Primary.Start != b.Primary.Start {
			return a.Primary.Start < b.Primary.Start
		}
		if a.Primary.End != b.Primary.End {
			return a.Primary.End < b.Primary.End
		}
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		return a.Identity() < b.Identity()
	})
}
