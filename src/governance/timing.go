package governance

import (
	"fmt"
	"time"
)

// VotingEndDate computes when voting closes for a proposal submitted at
// now with the given duration. Durations are whole days.
func VotingEndDate(now time.Time, days int) time.Time {
	return now.Add(time.Duration(days) * 24 * time.Hour)
}

// TimeLeftLabel renders the remaining voting window as the platform's
// countdown label. Partial days round up, so anything past the end reads
// "Ended" and anything within the final 24 hours reads "1 day left".
func TimeLeftLabel(now, end time.Time) string {
	remaining := end.Sub(now)
	if remaining <= 0 {
		return "Ended"
	}
	const day = 24 * time.Hour
	days := int((remaining + day - 1) / day)
	if days == 1 {
		return "1 day left"
	}
	return fmt.Sprintf("%d days left", days)
}
