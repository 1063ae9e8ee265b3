package normalize

import (
	"trendlens/internal/domain/content"
)

// engagementCap bounds a single record's influence on aggregate rankings
// so one viral outlier cannot fully determine cross-platform results.
const engagementCap = 1000

// EngagementScore folds a record's raw counters into one comparable
// number. Per-unit weights favor comments over likes over shares over
// views, since raw view counts dominate numerically otherwise. Nil
// counters count as zero; the result is clamped to [0, 1000].
func EngagementScore(rec content.ContentRecord) float64 {
	views := counterValue(rec.ViewCount)
	likes := counterValue(rec.LikeCount)
	comments := counterValue(rec.CommentCount)
	shares := counterValue(rec.ShareCount)

	score := views*0.1 + likes*0.3 + comments*0.4 + shares*0.2
	if score > engagementCap {
		return engagementCap
	}
	return score
}

func counterValue(n *int64) float64 {
	if n == nil {
		return 0
	}
	return float64(*n)
}
