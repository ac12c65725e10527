package utils

import "testing"

func TestGetUserLevel(t *testing.T) {
	tests := []struct {
		reputation int
		want       string
	}{
		{0, "Matchday Fan"},
		{10, "Matchday Fan"},
		{11, "Talent Spotter"},
		{51, "Regional Scout"},
		{201, "Head Scout"},
		{1000, "Director of Football"},
		{-5, "Matchday Fan"},
	}
	for _, tt := range tests {
		name, _ := GetUserLevel(tt.reputation)
		if name != tt.want {
			t.Errorf("GetUserLevel(%d) = %q, want %q", tt.reputation, name, tt.want)
		}
	}
}
