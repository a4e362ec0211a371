package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"crm_maintenance_service/internal/domain/order"
)

func TestReminderRun_WritesOneLinePerOrder(t *testing.T) {
	repo := &fakeOrderRepo{reminders: []*order.Reminder{
		{OrderID: 11, CustomerEmail: "alice@example.com"},
		{OrderID: 7, CustomerEmail: "bob@example.com"},
	}}
	sink := &fakeSink{}
	svc := NewReminderServiceImpl(repo, sink, testLogger())

	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)
	written, err := svc.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if written != 2 {
		t.Errorf("written = %d, want 2", written)
	}

	want := []string{
		"[2024-06-01 08:00:00] OrderID=11 -> alice@example.com",
		"[2024-06-01 08:00:00] OrderID=7 -> bob@example.com",
	}
	if len(sink.lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(sink.lines), len(want))
	}
	for i := range want {
		if sink.lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, sink.lines[i], want[i])
		}
	}
}

func TestReminderRun_QueriesTrailingWeek(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := NewReminderServiceImpl(repo, &fakeSink{}, testLogger())

	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)
	if _, err := svc.Run(context.Background(), now); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if want := now.Add(-ReminderWindow); !repo.listedSince.Equal(want) {
		t.Errorf("window start = %s, want %s", repo.listedSince, want)
	}
	if !repo.listedUntil.Equal(now) {
		t.Errorf("window end = %s, want %s", repo.listedUntil, now)
	}
}

func TestReminderRun_NoRecentOrders(t *testing.T) {
	sink := &fakeSink{}
	svc := NewReminderServiceImpl(&fakeOrderRepo{}, sink, testLogger())

	written, err := svc.Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if written != 0 || len(sink.lines) != 0 {
		t.Errorf("expected no lines for an empty window, got %v", sink.lines)
	}
}

func TestReminderRun_QueryFailurePropagates(t *testing.T) {
	repo := &fakeOrderRepo{listErr: fmt.Errorf("connection lost")}
	sink := &fakeSink{}
	svc := NewReminderServiceImpl(repo, sink, testLogger())

	if _, err := svc.Run(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error when the order query fails")
	}
	if len(sink.lines) != 0 {
		t.Errorf("no lines may be written on query failure, got %v", sink.lines)
	}
}
