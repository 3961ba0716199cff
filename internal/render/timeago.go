package render

import (
	"time"

	"github.com/dustin/go-humanize"
)

// TimeAgo formats then relative to now, e.g. "3 days ago".
func TimeAgo(then, now time.Time) string {
	return humanize.RelTime(then, now, "ago", "from now")
}
