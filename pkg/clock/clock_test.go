package clock

import (
	"testing"
	"time"
)

func TestSystemClockUsesBusinessZone(t *testing.T) {
	now := System().Now()
	_, offset := now.Zone()
	if offset != 3*60*60 {
		t.Errorf("Expected UTC+3 offset, got %d", offset)
	}
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 3, 15, 12, 0, 0, 0, EAT)
	clk := Fixed(at)

	if !clk.Now().Equal(at) {
		t.Errorf("Expected %v, got %v", at, clk.Now())
	}
	if !clk.Now().Equal(clk.Now()) {
		t.Error("Fixed clock must not advance")
	}
}
