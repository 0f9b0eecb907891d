// Package check classifies roll totals against difficulty thresholds.
package check

// MeetsDifficulty returns true if total >= difficulty.
func MeetsDifficulty(total, difficulty int) bool {
	return total >= difficulty
}

// Band returns 1 plus the number of ascending thresholds total meets.
// With thresholds 12 and 17 a total of 11 is band 1, 12 is band 2 and 17 is
// band 3.
func Band(total int, thresholds ...int) int {
	band := 1
	for _, threshold := range thresholds {
		if !MeetsDifficulty(total, threshold) {
			break
		}
		band++
	}
	return band
}

// ShiftBand moves band by shift and clamps the result to [1, bands].
func ShiftBand(band, shift, bands int) int {
	return min(max(band+shift, 1), max(bands, 1))
}
