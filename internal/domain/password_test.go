package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "passw0rd", wantErr: false},
		{name: "valid long", password: "correct horse battery staple 9", wantErr: false},
		{name: "too short", password: "abc1", wantErr: true},
		{name: "seven chars", password: "abcdef1", wantErr: true},
		{name: "no digit", password: "passwords", wantErr: true},
		{name: "no letter", password: "12345678", wantErr: true},
		{name: "empty", password: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePasswordRejectsOverlong(t *testing.T) {
	long := make([]byte, 129)
	for i := range long {
		long[i] = 'a'
	}
	long[0] = '1'
	assert.ErrorIs(t, ValidatePassword(string(long)), ErrInvalidInput)
}
