package main

import (
	"context"
	"time"

	"github.com/ecobirla/ecopoints/core"
)

func (cli *commandLine) resetPassword(login, pwd string) error {
	ctx := context.Background()
	std, err := cli.stdRepo.GetStudentByIDOrEmail(ctx, core.CleanString(login, true /* lower */))
	if err != nil {
		return err
	}
	if err := std.SetPassword(pwd); err != nil {
		return err
	}
	std.UpdatedAt = time.Now().UTC()
	if _, err := cli.stdRepo.UpdateStudent(ctx, std, nil); err != nil {
		return err
	}
	return nil
}
