package main

import (
	"context"
	"time"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/student"
)

// grantAdmin promotes an existing student to admin, or creates the account
// when none matches the given student ID or email.
func (cli *commandLine) grantAdmin(id, email, name, pwd string) error {
	ctx := context.Background()
	id = core.CleanString(id, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	std, err := cli.stdRepo.GetStudentByIDOrEmail(ctx, id)
	if err != nil {
		if err != student.ErrNotFound {
			return err
		}
		std, err = cli.stdRepo.GetStudentByIDOrEmail(ctx, email)
		if err != nil {
			if err != student.ErrNotFound {
				return err
			}
			now := time.Now().UTC()
			std = student.Student{
				StudentID: id,
				Email:     email,
				JoinedAt:  now,
			}
		}
	}
	if name != "" {
		std.Name = core.CleanString(name)
	}
	std.IsAdmin = true
	if err := std.SetPassword(pwd); err != nil {
		return err
	}
	std.UpdatedAt = time.Now().UTC()

	_, err = cli.stdRepo.UpdateOrCreateStudent(ctx, std)
	return err
}
