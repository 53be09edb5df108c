package extract

import "github.com/joseph-ayodele/bloodwork-analyzer/constants"

// arbitrate folds per-strategy candidate lists into one value per nutrient.
// A candidate wins only with strictly higher confidence; on a tie the
// incumbent from the earlier strategy pass stays, so the pass ordering in
// Extract doubles as the tie-break order.
func arbitrate(passes ...[]Candidate) Result {
	res := newResult()
	for _, pass := range passes {
		for _, c := range pass {
			cur, ok := res.Confidence[c.Key]
			if ok {
				if c.Confidence < cur {
					continue
				}
				if c.Confidence == cur {
					if constants.StrategyPriority[c.Strategy] >= constants.StrategyPriority[res.Sources[c.Key]] {
						continue
					}
				}
			}
			res.Values[c.Key] = c.Value
			res.Confidence[c.Key] = c.Confidence
			res.Sources[c.Key] = c.Strategy
		}
	}
	return res
}
