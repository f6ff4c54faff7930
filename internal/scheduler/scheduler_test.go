package scheduler

import (
	"math"
	"testing"
	"time"
)

func TestNextReviewInterval_Brackets(t *testing.T) {
	tests := []struct {
		mastery float64
		want    float64
	}{
		{1.0, 7},
		{0.95, 7},
		{0.9, 7}, // boundary belongs to the higher bracket
		{0.89, 3},
		{0.7, 3},
		{0.69, 1},
		{0.5, 1},
		{0.49, 0.25},
		{0.1, 0.25},
		{0.0, 0.25},
	}
	for _, tt := range tests {
		if got := NextReviewInterval(tt.mastery); got != tt.want {
			t.Errorf("NextReviewInterval(%v) = %v, want %v", tt.mastery, got, tt.want)
		}
	}
}

func TestNextReviewInterval_NonIncreasing(t *testing.T) {
	// Higher mastery never means a shorter interval.
	for m := 0.0; m < 1.0; m += 0.01 {
		if NextReviewInterval(m) > NextReviewInterval(m+0.01) {
			t.Fatalf("interval decreased between %v and %v", m, m+0.01)
		}
	}
}

func TestUpdateMastery(t *testing.T) {
	tests := []struct {
		previous, quiz, want float64
	}{
		{0.0, 0.0, 0.0},
		{0.0, 1.0, 0.3},
		{1.0, 1.0, 1.0},
		{0.75, 1.0, 0.825},
		{0.5, 0.8, 0.59},
	}
	for _, tt := range tests {
		got := UpdateMastery(tt.previous, tt.quiz)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("UpdateMastery(%v, %v) = %v, want %v", tt.previous, tt.quiz, got, tt.want)
		}
		if got < 0 || got > 1 {
			t.Errorf("UpdateMastery(%v, %v) = %v, outside [0,1]", tt.previous, tt.quiz, got)
		}
	}
}

func TestMasteryAchieved_EdgeTriggered(t *testing.T) {
	// Crossing the threshold fires once.
	if !MasteryAchieved(0.75, UpdateMastery(0.75, 1.0)) {
		t.Error("expected mastery achieved when crossing 0.8 from below")
	}
	// Already above: staying above does not re-trigger.
	if MasteryAchieved(0.85, UpdateMastery(0.85, 0.9)) {
		t.Error("did not expect mastery achieved when already above 0.8")
	}
	// Exactly at the threshold counts as already mastered.
	if MasteryAchieved(0.8, 0.9) {
		t.Error("previous score of exactly 0.8 must not re-trigger")
	}
	// Dropping below and climbing back fires again.
	if !MasteryAchieved(0.79, 0.8) {
		t.Error("expected trigger when landing exactly on 0.8")
	}
}

func TestNextReviewAt(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	if got := NextReviewAt(now, 7); !got.Equal(now.Add(7 * 24 * time.Hour)) {
		t.Errorf("NextReviewAt(7 days) = %v", got)
	}
	// Fractional intervals stay fractional: 0.25 days is six hours.
	if got := NextReviewAt(now, 0.25); !got.Equal(now.Add(6 * time.Hour)) {
		t.Errorf("NextReviewAt(0.25 days) = %v, want +6h", got)
	}
	// next_review_at never precedes last_reviewed_at.
	if NextReviewAt(now, 0.25).Before(now) {
		t.Error("next review must not precede the review itself")
	}
}
