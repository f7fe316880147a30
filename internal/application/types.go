package application

import (
	"github.com/netscan/netscan-api/internal/domain"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both registration and login: a bearer token plus
// the sanitized account profile.
type AuthResponse struct {
	Token     string         `json:"token"`
	ExpiresIn int64          `json:"expires_in"`
	User      domain.Profile `json:"user"`
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

type SaveResultRequest struct {
	DownloadSpeed float64 `json:"download_speed"`
	UploadSpeed   float64 `json:"upload_speed"`
	Ping          int     `json:"ping"`
	Jitter        int     `json:"jitter"`
	PacketLoss    float64 `json:"packet_loss"`
	NetworkScore  int     `json:"network_score"`
	NetworkType   string  `json:"network_type"`
	ISP           string  `json:"isp"`
	IP            string  `json:"ip"`
	Location      string  `json:"location"`
}

func (r SaveResultRequest) observation() domain.Observation {
	return domain.Observation{
		DownloadSpeed: r.DownloadSpeed,
		UploadSpeed:   r.UploadSpeed,
		Ping:          r.Ping,
		Jitter:        r.Jitter,
		PacketLoss:    r.PacketLoss,
		NetworkScore:  r.NetworkScore,
		NetworkType:   r.NetworkType,
		ISP:           r.ISP,
		IP:            r.IP,
		Location:      r.Location,
	}
}

type HistoryQuery struct {
	Page  int
	Limit int
}

type HistoryResponse struct {
	Items      []domain.TestResult `json:"items"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	Limit      int                 `json:"limit"`
}

type ClearHistoryResponse struct {
	Deleted int `json:"deleted"`
}
