package scoring

// ScoreRubric clamps every criterion score into [0, max_score] in place and
// returns the attained and possible totals.
func ScoreRubric(per []Criterion) Totals {
	var t Totals
	for i := range per {
		v := per[i].Score
		if v < 0 {
			v = 0
		}
		if v > per[i].MaxScore {
			v = per[i].MaxScore
		}
		per[i].Score = v
		t.Attained += v
		t.Possible += per[i].MaxScore
	}
	t.Attained = round(t.Attained, 3)
	return t
}
