package model_test

import (
	"testing"
	"time"

	"github.com/Kashh99/closet-backend/model"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to model.BookingStatus }{
		{model.BookingRequested, model.BookingApproved},
		{model.BookingRequested, model.BookingRejected},
		{model.BookingRequested, model.BookingCancelled},
		{model.BookingApproved, model.BookingCompleted},
		{model.BookingApproved, model.BookingCancelled},
	}
	for _, tc := range allowed {
		if !model.CanTransition(tc.from, tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to model.BookingStatus }{
		{model.BookingRequested, model.BookingCompleted},
		{model.BookingApproved, model.BookingRequested},
		{model.BookingApproved, model.BookingRejected},
		{model.BookingRejected, model.BookingApproved},
		{model.BookingCompleted, model.BookingCancelled},
		{model.BookingCancelled, model.BookingRequested},
		{model.BookingCancelled, model.BookingApproved},
	}
	for _, tc := range denied {
		if model.CanTransition(tc.from, tc.to) {
			t.Errorf("%s -> %s should be denied", tc.from, tc.to)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []model.BookingStatus{model.BookingRejected, model.BookingCompleted, model.BookingCancelled} {
		if !model.Terminal(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []model.BookingStatus{model.BookingRequested, model.BookingApproved} {
		if model.Terminal(s) {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestRentalDays(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		span time.Duration
		want int
	}{
		{"exactly one day", 24 * time.Hour, 1},
		{"partial day rounds up", 36 * time.Hour, 2},
		{"two and a half days", 60 * time.Hour, 3},
		{"exactly a week", 7 * 24 * time.Hour, 7},
		{"one hour", time.Hour, 1},
	}
	for _, tc := range cases {
		if got := model.RentalDays(base, base.Add(tc.span)); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}
