package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/ecobirla/ecopoints/core/student"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db      *sqlx.DB
	stdRepo student.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  grantadmin -id STUDENT_ID -email EMAIL [-name NAME] - promote or create an admin account")
	fmt.Println("  resetpassword -login STUDENT_ID|EMAIL - reset a student's password")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	grantAdminCmd := flag.NewFlagSet("grantadmin", flag.ExitOnError)
	grantAdminID := grantAdminCmd.String("id", "", "The campus student ID.")
	grantAdminEmail := grantAdminCmd.String("email", "", "The account email.")
	grantAdminName := grantAdminCmd.String("name", "", "The student's full name (used when creating the account).")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordLogin := resetPasswordCmd.String("login", "", "The student's ID or email. The password will be prompted next.")

	switch args[1] {
	case "grantadmin":
		if err := grantAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *grantAdminID == "" || *grantAdminEmail == "" {
			grantAdminCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			grantAdminCmd.Usage()
			return errHelp
		}
		return cli.grantAdmin(*grantAdminID, *grantAdminEmail, *grantAdminName, string(pwd))
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordLogin == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordLogin, string(pwd))
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() ([]byte, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	return pwd, err
}
