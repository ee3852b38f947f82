package model

import "testing"

func TestClassify_Examples(t *testing.T) {
	cases := []struct {
		importance, urgency int
		want                Quadrant
	}{
		{3, 4, QuadrantDoFirst},
		{-1, -2, QuadrantEliminate},
		{2, 0, QuadrantSchedule},
		{0, 1, QuadrantDelegate},
		{0, 0, QuadrantEliminate},
		{5, -5, QuadrantSchedule},
		{-5, 5, QuadrantDelegate},
	}
	for _, tc := range cases {
		if got := Classify(tc.importance, tc.urgency); got != tc.want {
			t.Fatalf("Classify(%d, %d): expected %q, got %q", tc.importance, tc.urgency, tc.want, got)
		}
	}
}

func TestClassify_TotalOverScoreRange(t *testing.T) {
	valid := map[Quadrant]bool{}
	for _, q := range Quadrants() {
		valid[q] = true
	}
	for i := MinScore; i <= MaxScore; i++ {
		for u := MinScore; u <= MaxScore; u++ {
			got := Classify(i, u)
			if !valid[got] {
				t.Fatalf("Classify(%d, %d) returned unknown label %q", i, u, got)
			}
			if again := Classify(i, u); again != got {
				t.Fatalf("Classify(%d, %d) not stable: %q then %q", i, u, got, again)
			}
		}
	}
}

func TestParseQuadrant(t *testing.T) {
	cases := []struct {
		in      string
		want    Quadrant
		wantErr bool
	}{
		{"Do First", QuadrantDoFirst, false},
		{"do-first", QuadrantDoFirst, false},
		{"  schedule ", QuadrantSchedule, false},
		{"DELEGATE", QuadrantDelegate, false},
		{"eliminate", QuadrantEliminate, false},
		{"later", "", true},
	}
	for _, tc := range cases {
		got, err := ParseQuadrant(tc.in)
		if tc.wantErr && err == nil {
			t.Fatalf("ParseQuadrant(%q): expected error", tc.in)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("ParseQuadrant(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseQuadrant(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
