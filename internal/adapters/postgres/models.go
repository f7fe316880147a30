package postgres

import (
	"time"

	"github.com/google/uuid"
)

type userModel struct {
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string     `gorm:"column:name"`
	Email         string     `gorm:"column:email"`
	PasswordHash  string     `gorm:"column:password_hash"`
	SessionMarker uuid.UUID  `gorm:"column:session_marker;type:uuid"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	LastLoginAt   *time.Time `gorm:"column:last_login_at"`
}

func (userModel) TableName() string { return "users" }

type testResultModel struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid"`
	DownloadSpeed float64   `gorm:"column:download_speed"`
	UploadSpeed   float64   `gorm:"column:upload_speed"`
	Ping          int       `gorm:"column:ping"`
	Jitter        int       `gorm:"column:jitter"`
	PacketLoss    float64   `gorm:"column:packet_loss"`
	NetworkScore  int       `gorm:"column:network_score"`
	NetworkType   string    `gorm:"column:network_type"`
	ISP           string    `gorm:"column:isp"`
	IP            string    `gorm:"column:ip"`
	Location      string    `gorm:"column:location"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (testResultModel) TableName() string { return "test_results" }
