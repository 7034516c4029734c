package actionlog

import (
	"context"
	"testing"
	"time"

	"leadscout/internal/config"
)

func TestAllowDispatchRespectsBudgets(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := config.PromotionConfig{MaxRepliesPerHour: 2, MaxRepliesPerDay: 3}

	ok, err := db.AllowDispatch(ctx, cfg, now)
	if err != nil || !ok {
		t.Fatalf("expected allowed, got %v %v", ok, err)
	}
	_ = db.PutAction(ctx, now, ActionReply)
	_ = db.PutAction(ctx, now.Add(5*time.Minute), ActionReply)
	ok, _ = db.AllowDispatch(ctx, cfg, now.Add(10*time.Minute))
	if ok {
		t.Fatal("expected blocked by hourly budget")
	}
	// Next hour clears the hourly window but the daily limit of 3 blocks
	_ = db.PutAction(ctx, now.Add(65*time.Minute), ActionReply)
	ok, _ = db.AllowDispatch(ctx, cfg, now.Add(3*time.Hour))
	if ok {
		t.Fatal("expected blocked by daily budget")
	}
	ok, _ = db.AllowDispatch(ctx, cfg, now.Add(26*time.Hour))
	if !ok {
		t.Fatal("expected allowed after daily window passes")
	}
}

func TestAllowDispatchZeroBudgetDisables(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()
	now := time.Now()
	for i := 0; i < 50; i++ {
		_ = db.PutAction(ctx, now, ActionReply)
	}
	ok, err := db.AllowDispatch(ctx, config.PromotionConfig{}, now)
	if err != nil || !ok {
		t.Fatalf("zero budgets should always allow, got %v %v", ok, err)
	}
}

func TestReplyRecordsRoundTrip(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	_ = db.PutReplyRecord(ctx, base, ReplyRow{RunID: "r1", PostURL: "u1", Username: "alice", MatchScore: 55, ReplyText: "hey", Success: true})
	_ = db.PutReplyRecord(ctx, base.Add(time.Minute), ReplyRow{RunID: "r1", PostURL: "u2", Username: "bob", Success: false, FailureReason: "timeout"})

	rows, err := db.RecentReplyRecords(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Username != "bob" || rows[0].Success || rows[0].FailureReason != "timeout" {
		t.Fatalf("newest row wrong: %+v", rows[0])
	}
	if rows[1].Username != "alice" || !rows[1].Success || rows[1].MatchScore != 55 {
		t.Fatalf("oldest row wrong: %+v", rows[1])
	}
}
