package model

import "testing"

func TestBalanceDelta(t *testing.T) {
	cases := []struct {
		name string
		old  PointsStatus
		new  PointsStatus
		pts  int64
		want int64
	}{
		{"approve pending", StatusPending, StatusApproved, 50, 50},
		{"deny pending", StatusPending, StatusDenied, 50, 0},
		{"revoke approved", StatusApproved, StatusDenied, 50, -50},
		{"approve previously denied", StatusDenied, StatusApproved, 50, 50},
		{"reopen approved", StatusApproved, StatusPending, 50, -50},
		{"repeat approve", StatusApproved, StatusApproved, 50, 0},
		{"repeat deny", StatusDenied, StatusDenied, 50, 0},
		{"repeat pending", StatusPending, StatusPending, 50, 0},
		{"deny to pending", StatusDenied, StatusPending, 50, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BalanceDelta(tc.old, tc.new, tc.pts); got != tc.want {
				t.Fatalf("BalanceDelta(%s, %s, %d) = %d, want %d", tc.old, tc.new, tc.pts, got, tc.want)
			}
		})
	}
}

// A transition away from approved followed by a transition back must cancel
// out, whatever intermediate state the entry passes through.
func TestBalanceDeltaRoundTrips(t *testing.T) {
	const pts = 120
	states := []PointsStatus{StatusPending, StatusApproved, StatusDenied}
	for _, mid := range states {
		sum := BalanceDelta(StatusApproved, mid, pts) + BalanceDelta(mid, StatusApproved, pts)
		if sum != 0 {
			t.Fatalf("approved -> %s -> approved leaked %d points", mid, sum)
		}
	}
}

// Replays the review sequences an admin can actually produce and checks the
// running balance after each step.
func TestBalanceDeltaSequences(t *testing.T) {
	type step struct {
		to   PointsStatus
		want int64 // running balance after the step
	}
	cases := []struct {
		name  string
		pts   int64
		steps []step
	}{
		{"approve then claw back", 80, []step{
			{StatusApproved, 80},
			{StatusDenied, 0},
		}},
		{"deny then approve", 80, []step{
			{StatusDenied, 0},
			{StatusApproved, 80},
		}},
		{"double approve is idempotent", 80, []step{
			{StatusApproved, 80},
			{StatusApproved, 80},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var balance int64
			status := StatusPending
			for i, s := range tc.steps {
				balance += BalanceDelta(status, s.to, tc.pts)
				status = s.to
				if balance != s.want {
					t.Fatalf("step %d: balance = %d, want %d", i, balance, s.want)
				}
			}
		})
	}
}

func TestParsePointsStatus(t *testing.T) {
	if s, err := ParsePointsStatus("approved"); err != nil || s != StatusApproved {
		t.Fatalf("ParsePointsStatus(approved) = %v, %v", s, err)
	}
	if s, err := ParsePointsStatus("denied"); err != nil || s != StatusDenied {
		t.Fatalf("ParsePointsStatus(denied) = %v, %v", s, err)
	}
	for _, bad := range []string{"", "pending", "APPROVED", "accepted"} {
		if _, err := ParsePointsStatus(bad); err == nil {
			t.Fatalf("ParsePointsStatus(%q) accepted, want error", bad)
		}
	}
}
