package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/netscan/netscan-api/internal/application"
	"github.com/netscan/netscan-api/internal/domain"
)

func registerUser(t *testing.T, f *fixture, email string) uuid.UUID {
	t.Helper()
	res, err := f.service.Register(context.Background(), application.RegisterRequest{
		Name:     "Dana",
		Email:    email,
		Password: "passw0rd",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return res.User.UserID
}

func TestSaveResultAndHistory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	userID := registerUser(t, f, "user@example.com")

	saved, err := f.service.SaveResult(ctx, userID, application.SaveResultRequest{
		DownloadSpeed: 95.4,
		UploadSpeed:   20.1,
		Ping:          12,
		Jitter:        3,
		PacketLoss:    0.5,
		NetworkScore:  88,
		NetworkType:   "wifi",
		ISP:           "ExampleNet",
	})
	if err != nil {
		t.Fatalf("save result failed: %v", err)
	}
	if saved.ID == uuid.Nil {
		t.Fatalf("saved result missing id")
	}
	if saved.IP != "unknown" {
		t.Fatalf("expected defaulted ip, got %q", saved.IP)
	}

	res, err := f.service.History(ctx, userID, application.HistoryQuery{})
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if res.Total != 1 || len(res.Items) != 1 {
		t.Fatalf("expected a single history entry, got total=%d len=%d", res.Total, len(res.Items))
	}
	if res.Items[0].ID != saved.ID {
		t.Fatalf("history returned wrong record")
	}
}

func TestSaveResultRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID := registerUser(t, f, "user@example.com")

	_, err := f.service.SaveResult(context.Background(), userID, application.SaveResultRequest{
		DownloadSpeed: -1,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestHistoryEvictionKeepsNewest(t *testing.T) {
	t.Parallel()

	f := newFixtureWithConfig(t, application.Config{
		TokenTTL:             time.Hour,
		HistoryCap:           5,
		DefaultPageSize:      20,
		MaxPageSize:          100,
		FailedLoginThreshold: 5,
		LockoutDuration:      15 * time.Minute,
	})
	ctx := context.Background()
	userID := registerUser(t, f, "user@example.com")

	for i := 0; i < 8; i++ {
		if _, err := f.service.SaveResult(ctx, userID, application.SaveResultRequest{
			NetworkScore: 10 + i,
		}); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	res, err := f.service.History(ctx, userID, application.HistoryQuery{})
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if res.Total != 5 {
		t.Fatalf("expected retention cap of 5, got %d", res.Total)
	}
	// Newest first: scores 17 down to 13; the first three appends were evicted.
	if res.Items[0].NetworkScore != 17 || res.Items[4].NetworkScore != 13 {
		t.Fatalf("eviction kept wrong records: first=%d last=%d", res.Items[0].NetworkScore, res.Items[4].NetworkScore)
	}
}

func TestHistoryPagination(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	userID := registerUser(t, f, "user@example.com")

	for i := 0; i < 45; i++ {
		if _, err := f.service.SaveResult(ctx, userID, application.SaveResultRequest{NetworkScore: i % 100}); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	page2, err := f.service.History(ctx, userID, application.HistoryQuery{Page: 2, Limit: 20})
	if err != nil {
		t.Fatalf("history page 2 failed: %v", err)
	}
	if page2.Total != 45 || page2.TotalPages != 3 || len(page2.Items) != 20 {
		t.Fatalf("unexpected page 2 shape: total=%d pages=%d len=%d", page2.Total, page2.TotalPages, len(page2.Items))
	}

	page3, err := f.service.History(ctx, userID, application.HistoryQuery{Page: 3, Limit: 20})
	if err != nil {
		t.Fatalf("history page 3 failed: %v", err)
	}
	if len(page3.Items) != 5 {
		t.Fatalf("expected 5 items on last page, got %d", len(page3.Items))
	}

	// Past-the-end pages are empty, not an error.
	page9, err := f.service.History(ctx, userID, application.HistoryQuery{Page: 9, Limit: 20})
	if err != nil {
		t.Fatalf("history page 9 failed: %v", err)
	}
	if len(page9.Items) != 0 {
		t.Fatalf("expected empty page past the end, got %d items", len(page9.Items))
	}
}

func TestHistoryClampsPagingInputs(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	userID := registerUser(t, f, "user@example.com")

	res, err := f.service.History(ctx, userID, application.HistoryQuery{Page: -3, Limit: 0})
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if res.Page != 1 || res.Limit != 20 {
		t.Fatalf("expected clamped page=1 limit=20, got page=%d limit=%d", res.Page, res.Limit)
	}

	res, err = f.service.History(ctx, userID, application.HistoryQuery{Page: 1, Limit: 5000})
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if res.Limit != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", res.Limit)
	}
}

func TestEntryOwnership(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	owner := registerUser(t, f, "owner@example.com")
	other := registerUser(t, f, "other@example.com")

	saved, err := f.service.SaveResult(ctx, owner, application.SaveResultRequest{NetworkScore: 70})
	if err != nil {
		t.Fatalf("save result failed: %v", err)
	}

	if _, err := f.service.Entry(ctx, owner, saved.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := f.service.Entry(ctx, other, saved.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for cross-owner read, got %v", err)
	}
	if _, err := f.service.Entry(ctx, owner, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}

func TestClearHistory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	userID := registerUser(t, f, "user@example.com")

	for i := 0; i < 3; i++ {
		if _, err := f.service.SaveResult(ctx, userID, application.SaveResultRequest{NetworkScore: 50}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	n, err := f.service.ClearHistory(ctx, userID)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 deleted, got %d", n)
	}

	// Clearing again is a no-op.
	n, err = f.service.ClearHistory(ctx, userID)
	if err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 deleted on empty history, got %d", n)
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	userID := registerUser(t, f, "user@example.com")

	empty, err := f.service.Stats(ctx, userID)
	if err != nil {
		t.Fatalf("stats on empty history failed: %v", err)
	}
	if empty != nil {
		t.Fatalf("expected nil stats for empty history, got %+v", empty)
	}

	scores := []int{50, 70, 90}
	downloads := []float64{10, 20, 30}
	pings := []int{30, 20, 10}
	for i := range scores {
		if _, err := f.service.SaveResult(ctx, userID, application.SaveResultRequest{
			DownloadSpeed: downloads[i],
			UploadSpeed:   5,
			Ping:          pings[i],
			Jitter:        4,
			PacketLoss:    1,
			NetworkScore:  scores[i],
		}); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	stats, err := f.service.Stats(ctx, userID)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalTests != 3 {
		t.Fatalf("expected 3 tests, got %d", stats.TotalTests)
	}
	if stats.AvgDownload != 20.0 {
		t.Fatalf("expected avg download 20.0, got %v", stats.AvgDownload)
	}
	if stats.AvgScore != 70.0 {
		t.Fatalf("expected avg score 70.0, got %v", stats.AvgScore)
	}
	if stats.MaxDownload != 30 {
		t.Fatalf("expected max download 30, got %v", stats.MaxDownload)
	}
	if stats.MinPing != 10 {
		t.Fatalf("expected min ping 10, got %d", stats.MinPing)
	}
	if stats.BestScore != 90 || stats.WorstScore != 50 {
		t.Fatalf("expected score range 50..90, got %d..%d", stats.WorstScore, stats.BestScore)
	}
	if stats.TestsLast7Days != 3 {
		t.Fatalf("expected all tests within 7 days, got %d", stats.TestsLast7Days)
	}
	if stats.LastTestedAt.Before(stats.FirstTestedAt) {
		t.Fatalf("last tested %v precedes first tested %v", stats.LastTestedAt, stats.FirstTestedAt)
	}
}

func TestStatsSevenDayWindow(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	userID := registerUser(t, f, "user@example.com")

	// Seed an old record directly; the service only stamps current time.
	old := domain.Observation{NetworkScore: 40}.Normalize(userID, time.Now().UTC().Add(-30*24*time.Hour))
	if _, err := f.history.Append(ctx, old, 100); err != nil {
		t.Fatalf("seed old record: %v", err)
	}
	if _, err := f.service.SaveResult(ctx, userID, application.SaveResultRequest{NetworkScore: 60}); err != nil {
		t.Fatalf("save recent failed: %v", err)
	}

	stats, err := f.service.Stats(ctx, userID)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalTests != 2 {
		t.Fatalf("expected 2 tests, got %d", stats.TotalTests)
	}
	if stats.TestsLast7Days != 1 {
		t.Fatalf("expected 1 test within 7 days, got %d", stats.TestsLast7Days)
	}
}
