package postgres

import (
	"time"

	"github.com/netscan/netscan-api/internal/domain"
)

func toDomainUser(row userModel) domain.User {
	var lastLogin time.Time
	if row.LastLoginAt != nil {
		lastLogin = *row.LastLoginAt
	}
	return domain.User{
		UserID:        row.UserID,
		Name:          row.Name,
		Email:         row.Email,
		PasswordHash:  row.PasswordHash,
		SessionMarker: row.SessionMarker,
		CreatedAt:     row.CreatedAt,
		LastLoginAt:   lastLogin,
	}
}

func toDomainResult(row testResultModel) domain.TestResult {
	return domain.TestResult{
		ID:            row.ID,
		UserID:        row.UserID,
		DownloadSpeed: row.DownloadSpeed,
		UploadSpeed:   row.UploadSpeed,
		Ping:          row.Ping,
		Jitter:        row.Jitter,
		PacketLoss:    row.PacketLoss,
		NetworkScore:  row.NetworkScore,
		NetworkType:   row.NetworkType,
		ISP:           row.ISP,
		IP:            row.IP,
		Location:      row.Location,
		CreatedAt:     row.CreatedAt,
	}
}

func toResultModel(r domain.TestResult) testResultModel {
	return testResultModel{
		ID:            r.ID,
		UserID:        r.UserID,
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
		CreatedAt:     r.CreatedAt,
	}
}
