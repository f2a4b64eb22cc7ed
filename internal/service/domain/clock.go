package domain

import "time"

// Clock returns the current time; services compare show start times against it.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return utcNow
	}
	return c
}
