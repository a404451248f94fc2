package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/ecobirla/ecopoints/core/student"
)

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	name, studentID, email, course, pwd string,
	isAdmin bool,
	joinedAt ...time.Time,
) student.Student {
	tstamp := time.Now().UTC()
	if len(joinedAt) > 0 {
		tstamp = joinedAt[0].UTC()
	}
	std := student.Student{
		StudentID: studentID,
		Name:      name,
		Email:     email,
		Course:    course,
		IsAdmin:   isAdmin,
		JoinedAt:  tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := std.SetPassword(pwd); err != nil {
			t.Fatalf("createStudent() failed: %v", err)
		}
	}
	std, err := repo.CreateStudent(context.Background(), std)
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return std
}
