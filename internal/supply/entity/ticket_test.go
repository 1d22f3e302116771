package entity

import "testing"

func TestComputeAmounts(t *testing.T) {
	cases := []struct {
		qty, price, vatRate float64
		amount, vat, total  float64
	}{
		{10, 1000, 10, 10000, 1000, 11000},
		{2.5, 200, 8, 500, 40, 540},
		{0, 1000, 10, 0, 0, 0},
		{100, 50, 0, 5000, 0, 5000},
	}

	for _, c := range cases {
		amount, vat, total := ComputeAmounts(c.qty, c.price, c.vatRate)
		if amount != c.amount || vat != c.vat || total != c.total {
			t.Errorf("ComputeAmounts(%v, %v, %v) = (%v, %v, %v), want (%v, %v, %v)",
				c.qty, c.price, c.vatRate, amount, vat, total, c.amount, c.vat, c.total)
		}
	}
}

func TestTicketStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to TicketStatus
		want     bool
	}{
		{TicketStatusDraft, TicketStatusPendingLead, true},
		{TicketStatusDraft, TicketStatusApproved, false},
		{TicketStatusPendingLead, TicketStatusPendingManager, true},
		{TicketStatusPendingLead, TicketStatusRejected, true},
		{TicketStatusPendingManager, TicketStatusApproved, true},
		{TicketStatusPendingManager, TicketStatusRejected, true},
		{TicketStatusApproved, TicketStatusDraft, false},
		{TicketStatusRejected, TicketStatusPendingLead, true},
	}

	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("CanTransition(%d -> %d) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTicketStatusNextOnApprove(t *testing.T) {
	next, needsApprover, ok := TicketStatusPendingLead.NextOnApprove()
	if next != TicketStatusPendingManager || !needsApprover || !ok {
		t.Errorf("NextOnApprove(pending_lead) = (%d, %v, %v)", next, needsApprover, ok)
	}

	next, needsApprover, ok = TicketStatusPendingManager.NextOnApprove()
	if next != TicketStatusApproved || needsApprover || !ok {
		t.Errorf("NextOnApprove(pending_manager) = (%d, %v, %v)", next, needsApprover, ok)
	}

	if _, _, ok := TicketStatusDraft.NextOnApprove(); ok {
		t.Error("NextOnApprove(draft) should not be ok")
	}
}
