package student

import (
	"testing"
	"time"

	"github.com/ecobirla/ecopoints/core"
)

func TestMakeVerifyToken(t *testing.T) {
	conf := &core.Config{
		SecretKey:                 []byte("secret"),
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
	}

	now := time.Now()
	std := Student{
		StudentID: "2021A7PS0001",
		Name:      "T",
		Email:     "t@test.test",
		JoinedAt:  now,
		UpdatedAt: now,
		LastLogin: now,
	}
	_ = std.SetPassword("pwd")

	validToken, err := MakeToken(conf, std)
	if err != nil {
		t.Fatalf("MakeToken() error = %v", err)
	}

	// generate an expired token
	dayLate := conf.PasswordResetTimeoutDelta + (24 * time.Hour)
	NowFunc = func() time.Time { return time.Now().Add(-dayLate) }
	expiredToken, err := MakeToken(conf, std)
	if err != nil {
		t.Fatalf("MakeToken() error = %v", err)
	}
	NowFunc = time.Now // reset

	tests := []struct {
		name    string
		std     Student
		token   string
		wantErr error
	}{
		{name: "no token", std: std, wantErr: errInvalidToken},
		{name: "invalid parts len", std: std, token: "lmaooolol", wantErr: errInvalidToken},
		{name: "invalid base32", std: std, token: "hahaha-sigsig-sig", wantErr: errInvalidToken},
		{name: "invalid timestamp", std: std, token: "NRXWY-sigsig-sig", wantErr: errInvalidToken},
		{name: "invalid token", std: std, token: "HE4TS-sigsig-sig", wantErr: errInvalidToken},
		{name: "expired token", std: std, token: expiredToken, wantErr: errTokenExpired},
		{name: "valid token", std: std, token: validToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := verifyToken(conf, tt.std, tt.token); err != tt.wantErr {
				t.Errorf("verifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
