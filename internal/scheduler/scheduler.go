// Package scheduler holds the spaced-repetition math: review intervals,
// the mastery moving average and the mastery-achieved trigger. Everything
// here is pure; persistence lives with the callers.
package scheduler

import "time"

// Interval brackets in days. Boundary values belong to the higher bracket.
const (
	intervalMastered  = 7.0
	intervalGood      = 3.0
	intervalRegular   = 1.0
	intervalStruggled = 0.25 // six hours

	// masteryThreshold is where a topic counts as dominated.
	masteryThreshold = 0.8

	// Weights of the exponential moving average over quiz scores.
	previousWeight = 0.7
	quizWeight     = 0.3
)

// NextReviewInterval returns how many days until the topic should be
// reviewed again, as a step function of the mastery score.
func NextReviewInterval(masteryScore float64) float64 {
	switch {
	case masteryScore >= 0.9:
		return intervalMastered
	case masteryScore >= 0.7:
		return intervalGood
	case masteryScore >= 0.5:
		return intervalRegular
	default:
		return intervalStruggled
	}
}

// UpdateMastery blends the previous mastery score with a new quiz score:
// 70% history, 30% latest result. Inputs in [0,1] keep the output in [0,1].
func UpdateMastery(previousScore, quizScore float64) float64 {
	return previousScore*previousWeight + quizScore*quizWeight
}

// MasteryAchieved fires exactly on the crossing of the threshold, so a
// topic is counted as mastered once, not on every submission above 0.8.
func MasteryAchieved(previousScore, newScore float64) bool {
	return newScore >= masteryThreshold && previousScore < masteryThreshold
}

// NextReviewAt converts a fractional day interval into a timestamp.
func NextReviewAt(now time.Time, days float64) time.Time {
	return now.Add(time.Duration(days * 24 * float64(time.Hour)))
}
