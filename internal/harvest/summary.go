package harvest

import "time"

// Summary reports the outcome of one sweep run.
type Summary struct {
	Attempted     int
	Succeeded     int
	Failed        int
	SingleEpisode int
	MultiEpisode  int
	Elapsed       time.Duration
}

func summarize(records []SeriesRecord, failures *FailureSet, attempted int, elapsed time.Duration) Summary {
	summary := Summary{
		Attempted: attempted,
		Succeeded: len(records),
		Failed:    failures.Len(),
		Elapsed:   elapsed,
	}
	for _, record := range records {
		if record.IsSingleEpisode() {
			summary.SingleEpisode++
		} else {
			summary.MultiEpisode++
		}
	}
	return summary
}
