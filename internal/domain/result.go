package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxNetworkTypeLen = 50
	maxISPLen         = 200
	maxIPLen          = 50
	maxLocationLen    = 200

	// unknownField is the default for optional descriptive fields so that
	// history rows are always renderable without null handling downstream.
	unknownField = "unknown"
)

// TestResult is one speed-test observation. Records are immutable once created;
// there is no update path anywhere in the system.
type TestResult struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	DownloadSpeed float64   `json:"download_speed"`
	UploadSpeed   float64   `json:"upload_speed"`
	Ping          int       `json:"ping"`
	Jitter        int       `json:"jitter"`
	PacketLoss    float64   `json:"packet_loss"`
	NetworkScore  int       `json:"network_score"`
	NetworkType   string    `json:"network_type"`
	ISP           string    `json:"isp"`
	IP            string    `json:"ip"`
	Location      string    `json:"location"`
	CreatedAt     time.Time `json:"created_at"`
}

// Observation is the caller-supplied portion of a test result, prior to
// normalization and identity assignment.
type Observation struct {
	DownloadSpeed float64
	UploadSpeed   float64
	Ping          int
	Jitter        int
	PacketLoss    float64
	NetworkScore  int
	NetworkType   string
	ISP           string
	IP            string
	Location      string
}

// Validate rejects out-of-range numeric fields. String fields are never a
// validation failure; they are defaulted and truncated by Normalize.
func (o Observation) Validate() error {
	if o.DownloadSpeed < 0 {
		return fmt.Errorf("%w: downloadSpeed must be >= 0", ErrInvalidInput)
	}
	if o.UploadSpeed < 0 {
		return fmt.Errorf("%w: uploadSpeed must be >= 0", ErrInvalidInput)
	}
	if o.Ping < 0 {
		return fmt.Errorf("%w: ping must be >= 0", ErrInvalidInput)
	}
	if o.Jitter < 0 {
		return fmt.Errorf("%w: jitter must be >= 0", ErrInvalidInput)
	}
	if o.PacketLoss < 0 || o.PacketLoss > 100 {
		return fmt.Errorf("%w: packetLoss must be within 0-100", ErrInvalidInput)
	}
	if o.NetworkScore < 0 || o.NetworkScore > 100 {
		return fmt.Errorf("%w: networkScore must be within 0-100", ErrInvalidInput)
	}
	return nil
}

// Normalize builds the immutable record: assigns identity, stamps creation
// time, and defaults/truncates descriptive string fields.
func (o Observation) Normalize(userID uuid.UUID, now time.Time) TestResult {
	return TestResult{
		ID:            uuid.New(),
		UserID:        userID,
		DownloadSpeed: o.DownloadSpeed,
		UploadSpeed:   o.UploadSpeed,
		Ping:          o.Ping,
		Jitter:        o.Jitter,
		PacketLoss:    o.PacketLoss,
		NetworkScore:  o.NetworkScore,
		NetworkType:   clampField(o.NetworkType, maxNetworkTypeLen),
		ISP:           clampField(o.ISP, maxISPLen),
		IP:            clampField(o.IP, maxIPLen),
		Location:      clampField(o.Location, maxLocationLen),
		CreatedAt:     now,
	}
}

func clampField(v string, max int) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return unknownField
	}
	if len(v) > max {
		return v[:max]
	}
	return v
}

// Stats summarizes a user's full history snapshot.
type Stats struct {
	TotalTests     int       `json:"total_tests"`
	AvgDownload    float64   `json:"avg_download"`
	AvgUpload      float64   `json:"avg_upload"`
	AvgPing        int       `json:"avg_ping"`
	AvgJitter      int       `json:"avg_jitter"`
	AvgPacketLoss  float64   `json:"avg_packet_loss"`
	AvgScore       float64   `json:"avg_score"`
	MaxDownload    float64   `json:"max_download"`
	MaxUpload      float64   `json:"max_upload"`
	MinPing        int       `json:"min_ping"`
	BestScore      int       `json:"best_score"`
	WorstScore     int       `json:"worst_score"`
	TestsLast7Days int       `json:"tests_last_7_days"`
	LastTestedAt   time.Time `json:"last_tested_at"`
	FirstTestedAt  time.Time `json:"first_tested_at"`
}
