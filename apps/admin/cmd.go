package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	usrSvc    *user.Service
	schoolSvc *school.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -name NAME -email EMAIL -role teacher|student - create a user; the password is prompted")
	fmt.Println("  addclass -name NAME -teacher EMAIL - create a class owned by a teacher")
	fmt.Println("  markattendance -class ID -student EMAIL -status present|absent - set a student's attendance entry")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserRole := addUserCmd.String("role", "", "The user's role: teacher or student.")

	addClassCmd := flag.NewFlagSet("addclass", flag.ExitOnError)
	addClassName := addClassCmd.String("name", "", "The class name.")
	addClassTeacher := addClassCmd.String("teacher", "", "The owning teacher's email.")

	markAttCmd := flag.NewFlagSet("markattendance", flag.ExitOnError)
	markAttClass := markAttCmd.String("class", "", "The class ID.")
	markAttStudent := markAttCmd.String("student", "", "The student's email.")
	markAttStatus := markAttCmd.String("status", "", "The attendance status: present or absent.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserName == "" || *addUserEmail == "" || *addUserRole == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserEmail, string(pwd), *addUserRole)
	case "addclass":
		if err := addClassCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addClassName == "" || *addClassTeacher == "" {
			addClassCmd.Usage()
			return errHelp
		}
		return cli.addClass(*addClassName, *addClassTeacher)
	case "markattendance":
		if err := markAttCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *markAttClass == "" || *markAttStudent == "" || *markAttStatus == "" {
			markAttCmd.Usage()
			return errHelp
		}
		return cli.markAttendance(*markAttClass, *markAttStudent, *markAttStatus)
	default:
		cli.printUsage()
		return errHelp
	}
}
