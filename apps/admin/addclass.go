package main

import (
	"context"
	"fmt"

	"github.com/trezcool/mahudhurio/core/school"
)

// addClass creates a school.Class owned by the teacher with the given email.
func (cli *commandLine) addClass(name, teacherEmail string) error {
	ctx := context.Background()

	tchr, err := cli.usrSvc.GetByEmail(ctx, teacherEmail)
	if err != nil {
		return err
	}

	nc := school.NewClass{
		ClassName: name,
		TeacherID: tchr.ID,
	}
	if err = nc.Validate(); err != nil {
		return err
	}

	cls, err := cli.schoolSvc.CreateClass(ctx, nc)
	if err != nil {
		return err
	}
	fmt.Printf("class %q created: %s\n", cls.ClassName, cls.ID.Hex())
	return nil
}
