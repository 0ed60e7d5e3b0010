package main

import (
	"context"
	"fmt"

	"github.com/trezcool/mahudhurio/core/user"
)

// addUser creates a user.User after the usual signup validation.
func (cli *commandLine) addUser(name, email, pwd, role string) error {
	nu := user.NewUser{
		Name:     name,
		Email:    email,
		Password: pwd,
		Role:     role,
	}
	if err := nu.Validate(); err != nil {
		return err
	}

	usr, err := cli.usrSvc.Create(context.Background(), nu)
	if err != nil {
		return err
	}
	fmt.Printf("%s %q created: %s\n", usr.Role, usr.Email, usr.ID.Hex())
	return nil
}
