package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/netscan/netscan-api/internal/domain"
)

const recentWindow = 7 * 24 * time.Hour

// SaveResult validates and normalizes one observation and appends it to the
// owner's history, evicting the oldest entries beyond the retention cap.
func (s *Service) SaveResult(ctx context.Context, userID uuid.UUID, req SaveResultRequest) (domain.TestResult, error) {
	obs := req.observation()
	if err := obs.Validate(); err != nil {
		return domain.TestResult{}, err
	}
	record := obs.Normalize(userID, s.nowFn())

	saved, err := s.history.Append(ctx, record, s.cfg.HistoryCap)
	if err != nil {
		return domain.TestResult{}, fmt.Errorf("append result: %w", err)
	}
	return saved, nil
}

// History returns one page of the caller's results, newest first. Out-of-range
// paging inputs are clamped rather than rejected.
func (s *Service) History(ctx context.Context, userID uuid.UUID, q HistoryQuery) (HistoryResponse, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}

	result, err := s.history.List(ctx, userID, page, limit)
	if err != nil {
		return HistoryResponse{}, fmt.Errorf("list history: %w", err)
	}
	return HistoryResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Limit:      result.Limit,
	}, nil
}

// Entry fetches a single result by identifier. A record owned by someone else
// is reported as forbidden, not as missing, so ownership violations stay
// visible in logs.
func (s *Service) Entry(ctx context.Context, userID, resultID uuid.UUID) (domain.TestResult, error) {
	record, err := s.history.GetByID(ctx, resultID)
	if err != nil {
		return domain.TestResult{}, err
	}
	if record.UserID != userID {
		return domain.TestResult{}, fmt.Errorf("%w: result belongs to another account", domain.ErrForbidden)
	}
	return record, nil
}

// ClearHistory removes the caller's entire collection and reports how many
// records were deleted. Clearing an empty history is not an error.
func (s *Service) ClearHistory(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.history.Clear(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return n, nil
}

// Stats aggregates the caller's retained history. A nil result means the
// history is empty.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (*domain.Stats, error) {
	records, err := s.history.SnapshotByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("snapshot history: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	stats := domain.Stats{
		TotalTests:  len(records),
		MaxDownload: records[0].DownloadSpeed,
		MaxUpload:   records[0].UploadSpeed,
		MinPing:     records[0].Ping,
		BestScore:   records[0].NetworkScore,
		WorstScore:  records[0].NetworkScore,
		// Snapshot is newest first.
		LastTestedAt:  records[0].CreatedAt,
		FirstTestedAt: records[len(records)-1].CreatedAt,
	}

	var (
		sumDownload, sumUpload, sumLoss, sumScore float64
		sumPing, sumJitter                        int
	)
	cutoff := s.nowFn().Add(-recentWindow)
	for _, r := range records {
		sumDownload += r.DownloadSpeed
		sumUpload += r.UploadSpeed
		sumLoss += r.PacketLoss
		sumScore += float64(r.NetworkScore)
		sumPing += r.Ping
		sumJitter += r.Jitter

		if r.DownloadSpeed > stats.MaxDownload {
			stats.MaxDownload = r.DownloadSpeed
		}
		if r.UploadSpeed > stats.MaxUpload {
			stats.MaxUpload = r.UploadSpeed
		}
		if r.Ping < stats.MinPing {
			stats.MinPing = r.Ping
		}
		if r.NetworkScore > stats.BestScore {
			stats.BestScore = r.NetworkScore
		}
		if r.NetworkScore < stats.WorstScore {
			stats.WorstScore = r.NetworkScore
		}
		if r.CreatedAt.After(cutoff) {
			stats.TestsLast7Days++
		}
	}

	n := float64(len(records))
	stats.AvgDownload = round2(sumDownload / n)
	stats.AvgUpload = round2(sumUpload / n)
	stats.AvgPacketLoss = round2(sumLoss / n)
	stats.AvgScore = round1(sumScore / n)
	stats.AvgPing = int(math.Round(float64(sumPing) / n))
	stats.AvgJitter = int(math.Round(float64(sumJitter) / n))

	return &stats, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
