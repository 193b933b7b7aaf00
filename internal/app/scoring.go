package app

// AnswersMatch reports whether the selected option indices are exactly the
// correct set. No partial credit: a multi-select question counts only when
// every correct option is picked and no others. Order and duplicates in the
// input are irrelevant.
func AnswersMatch(selected, correct []int) bool {
	sel := toSet(selected)
	cor := toSet(correct)
	if len(sel) != len(cor) {
		return false
	}
	for idx := range cor {
		if _, ok := sel[idx]; !ok {
			return false
		}
	}
	return true
}

// Percentage converts a score into a percent of total, returning 0 for an
// empty quiz rather than dividing by zero.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}

func toSet(indices []int) map[int]struct{} {
	set := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		set[idx] = struct{}{}
	}
	return set
}
