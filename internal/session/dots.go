package session

import (
	"context"
	"strings"
	"time"
)

// DotsInterval is how often the loading indicator advances.
const DotsInterval = 500 * time.Millisecond

// Dots returns the loading indicator for frame: ".", "..", "...", repeating.
func Dots(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return strings.Repeat(".", frame%3+1)
}

// LoadingDots calls fn with the next indicator every interval, starting
// immediately, until ctx is done.
func LoadingDots(ctx context.Context, interval time.Duration, fn func(dots string)) {
	if interval <= 0 {
		interval = DotsInterval
	}

	fn(Dots(0))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for frame := 1; ; frame++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(Dots(frame))
		}
	}
}
