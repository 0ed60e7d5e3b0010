package testutil

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/user"
)

func CreateUser(t *testing.T, repo user.Repository, name, email, pwd, role string) user.User {
	t.Helper()

	usr := user.User{
		Name:  name,
		Email: email,
		Role:  role,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateClass(t *testing.T, repo school.ClassRepository, name string, teacherID primitive.ObjectID, studentIDs ...primitive.ObjectID) school.Class {
	t.Helper()

	cls, err := repo.CreateClass(context.Background(), school.Class{
		ClassName:  name,
		TeacherID:  teacherID,
		StudentIDs: studentIDs,
	})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return cls
}

func MarkAttendance(t *testing.T, repo school.AttendanceRepository, classID, studentID primitive.ObjectID, status string) school.Attendance {
	t.Helper()

	att, err := repo.UpsertAttendance(context.Background(), school.Attendance{
		ClassID:   classID,
		StudentID: studentID,
		Status:    status,
	})
	if err != nil {
		t.Fatalf("MarkAttendance() failed: %v", err)
	}
	return att
}
