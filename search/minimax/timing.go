package minimax

import "time"

// TimeBudget is how long to think about one move given the time left on the
// clock. The fewer empty squares remain, the larger the share of the clock
// each move may use; a budget never exceeds timeLeft.
func TimeBudget(timeLeft time.Duration, empties int) time.Duration {
	if timeLeft <= 0 {
		return 0
	}
	if empties < 1 {
		empties = 1
	}
	return min(timeLeft*2/time.Duration(empties), timeLeft)
}
