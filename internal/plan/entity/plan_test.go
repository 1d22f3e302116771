package entity

import "testing"

func TestPlanStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to PlanStatus
		want     bool
	}{
		{PlanStatusDraft, PlanStatusPendingLead, true},
		{PlanStatusDraft, PlanStatusApproved, false},
		{PlanStatusPendingLead, PlanStatusPendingManager, true},
		{PlanStatusPendingLead, PlanStatusRejected, true},
		{PlanStatusPendingLead, PlanStatusApproved, false},
		{PlanStatusPendingManager, PlanStatusPendingDirector, true},
		{PlanStatusPendingManager, PlanStatusRejected, true},
		{PlanStatusPendingDirector, PlanStatusApproved, true},
		{PlanStatusPendingDirector, PlanStatusRejected, true},
		{PlanStatusApproved, PlanStatusDraft, false},
		{PlanStatusApproved, PlanStatusRejected, false},
		{PlanStatusRejected, PlanStatusPendingLead, true},
		{PlanStatusRejected, PlanStatusApproved, false},
	}

	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("CanTransition(%d -> %d) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestPlanStatusNextOnApprove(t *testing.T) {
	cases := []struct {
		from          PlanStatus
		next          PlanStatus
		needsApprover bool
		ok            bool
	}{
		{PlanStatusPendingLead, PlanStatusPendingManager, true, true},
		{PlanStatusPendingManager, PlanStatusPendingDirector, true, true},
		{PlanStatusPendingDirector, PlanStatusApproved, false, true},
		{PlanStatusDraft, PlanStatusDraft, false, false},
		{PlanStatusApproved, PlanStatusApproved, false, false},
		{PlanStatusRejected, PlanStatusRejected, false, false},
	}

	for _, c := range cases {
		next, needsApprover, ok := c.from.NextOnApprove()
		if next != c.next || needsApprover != c.needsApprover || ok != c.ok {
			t.Errorf("NextOnApprove(%d) = (%d, %v, %v), want (%d, %v, %v)",
				c.from, next, needsApprover, ok, c.next, c.needsApprover, c.ok)
		}
	}
}

func TestPlanStatusLabel(t *testing.T) {
	if got := PlanStatusPendingLead.Label(); got != "Chờ đội trưởng duyệt" {
		t.Errorf("Label() = %q", got)
	}
	if got := PlanStatus(99).Label(); got != "Không xác định" {
		t.Errorf("unknown status Label() = %q", got)
	}
	if got := PlanStatusApproved.Color(); got != "success" {
		t.Errorf("Color() = %q", got)
	}
}

func TestPlanStatusIsPending(t *testing.T) {
	pending := []PlanStatus{PlanStatusPendingLead, PlanStatusPendingManager, PlanStatusPendingDirector}
	for _, s := range pending {
		if !s.IsPending() {
			t.Errorf("IsPending(%d) = false, want true", s)
		}
	}
	for _, s := range []PlanStatus{PlanStatusDraft, PlanStatusApproved, PlanStatusRejected} {
		if s.IsPending() {
			t.Errorf("IsPending(%d) = true, want false", s)
		}
	}
}
