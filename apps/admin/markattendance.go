package main

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/mahudhurio/core/school"
)

// markAttendance upserts a student's attendance entry for a class.
func (cli *commandLine) markAttendance(classID, studentEmail, status string) error {
	ctx := context.Background()

	id, err := primitive.ObjectIDFromHex(classID)
	if err != nil {
		return school.ErrClassNotFound
	}
	stu, err := cli.usrSvc.GetByEmail(ctx, studentEmail)
	if err != nil {
		return err
	}

	att, err := cli.schoolSvc.MarkAttendance(ctx, id, stu.ID, status)
	if err != nil {
		return err
	}
	fmt.Printf("attendance for %q in class %s: %s\n", studentEmail, classID, att.Status)
	return nil
}
