package school

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/user"
)

var (
	// errors
	ErrClassNotFound      = errors.New("class not found")
	ErrNotClassOwner      = errors.New("user not owner of class")
	ErrNotEnrolled        = errors.New("student not enrolled in this class")
	ErrAttendanceNotFound = errors.New("attendance record not found")

	errNotATeacher = errors.New("user is not a teacher")
	errNotAStudent = errors.New("user is not a student")
)

type (
	ClassRepository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		GetClassByID(ctx context.Context, id primitive.ObjectID) (Class, error)
		GetClassByName(ctx context.Context, name string) (Class, error)
		// AppendStudent atomically appends studentID to the class's studentIds,
		// conditioned on the class still being owned by teacherID.
		AppendStudent(ctx context.Context, classID, teacherID, studentID primitive.ObjectID) (Class, error)
	}

	AttendanceRepository interface {
		GetAttendance(ctx context.Context, classID, studentID primitive.ObjectID) (Attendance, error)
		// UpsertAttendance keeps a single record per (classId, studentId) pair.
		UpsertAttendance(ctx context.Context, att Attendance) (Attendance, error)
	}

	Service struct {
		classes    ClassRepository
		attendance AttendanceRepository
		users      user.Repository
	}
)

func NewService(classes ClassRepository, attendance AttendanceRepository, users user.Repository) *Service {
	return &Service{classes: classes, attendance: attendance, users: users}
}

// CreateClass creates a Class after checking that TeacherID references an
// existing teacher. Used by out-of-band administration; there is no HTTP
// endpoint for it.
func (svc *Service) CreateClass(ctx context.Context, nc NewClass) (Class, error) {
	tchr, err := svc.users.GetUserByID(ctx, nc.TeacherID)
	if err != nil {
		if err == user.ErrNotFound {
			return Class{}, core.NewValidationError(err, core.FieldError{Field: "teacherId", Error: err.Error()})
		}
		return Class{}, err
	}
	if !tchr.IsTeacher() {
		return Class{}, core.NewValidationError(errNotATeacher, core.FieldError{Field: "teacherId", Error: errNotATeacher.Error()})
	}

	cls := Class{
		ClassName:  nc.ClassName,
		TeacherID:  nc.TeacherID,
		StudentIDs: []primitive.ObjectID{},
	}
	return svc.classes.CreateClass(ctx, cls)
}

func (svc *Service) LookupClassByName(ctx context.Context, name string) (Class, error) {
	return svc.classes.GetClassByName(ctx, core.CleanString(name))
}

func (svc *Service) GetClassByID(ctx context.Context, id primitive.ObjectID) (Class, error) {
	return svc.classes.GetClassByID(ctx, id)
}

// AddStudent enrolls studentID into the class. Only the owning teacher may do
// it, and studentID must reference an existing student. The append itself is a
// single conditional store update; two concurrent calls cannot lose an id.
func (svc *Service) AddStudent(ctx context.Context, actor Actor, classID, studentID primitive.ObjectID) (Class, error) {
	cls, err := svc.classes.GetClassByID(ctx, classID)
	if err != nil {
		return Class{}, err
	}
	if cls.TeacherID != actor.ID {
		return Class{}, ErrNotClassOwner
	}

	stu, err := svc.users.GetUserByID(ctx, studentID)
	if err != nil {
		if err == user.ErrNotFound {
			return Class{}, core.NewValidationError(err, core.FieldError{Field: "studentId", Error: err.Error()})
		}
		return Class{}, err
	}
	if !stu.IsStudent() {
		return Class{}, core.NewValidationError(errNotAStudent, core.FieldError{Field: "studentId", Error: errNotAStudent.Error()})
	}

	return svc.classes.AppendStudent(ctx, classID, actor.ID, studentID)
}

// GetClassDetail returns the class with its students populated. A teacher must
// own the class; a student must be enrolled in it.
func (svc *Service) GetClassDetail(ctx context.Context, actor Actor, classID primitive.ObjectID) (ClassDetail, error) {
	cls, err := svc.classes.GetClassByID(ctx, classID)
	if err != nil {
		return ClassDetail{}, err
	}
	if actor.IsTeacher() {
		if cls.TeacherID != actor.ID {
			return ClassDetail{}, ErrNotClassOwner
		}
	} else if !cls.HasStudent(actor.ID) {
		return ClassDetail{}, ErrNotEnrolled
	}

	students, err := svc.users.GetUsersByID(ctx, cls.StudentIDs)
	if err != nil {
		return ClassDetail{}, err
	}
	return ClassDetail{
		ID:        cls.ID,
		ClassName: cls.ClassName,
		TeacherID: cls.TeacherID,
		Students:  students,
	}, nil
}

// GetStudentAttendance returns the actor's own attendance entry for the class.
func (svc *Service) GetStudentAttendance(ctx context.Context, actor Actor, classID primitive.ObjectID) (StudentAttendance, error) {
	cls, err := svc.classes.GetClassByID(ctx, classID)
	if err != nil {
		return StudentAttendance{}, err
	}
	if !cls.HasStudent(actor.ID) {
		return StudentAttendance{}, ErrNotEnrolled
	}

	att, err := svc.attendance.GetAttendance(ctx, classID, actor.ID)
	if err != nil {
		return StudentAttendance{}, err
	}
	return StudentAttendance{ClassID: classID, Status: att.Status}, nil
}

// MarkAttendance upserts the attendance entry for an enrolled student. Used by
// out-of-band administration; there is no HTTP endpoint for it.
func (svc *Service) MarkAttendance(ctx context.Context, classID, studentID primitive.ObjectID, status string) (Attendance, error) {
	if status != StatusPresent && status != StatusAbsent {
		return Attendance{}, core.NewValidationError(nil, core.FieldError{Field: "status", Error: "must be one of: present, absent"})
	}

	cls, err := svc.classes.GetClassByID(ctx, classID)
	if err != nil {
		return Attendance{}, err
	}
	if !cls.HasStudent(studentID) {
		return Attendance{}, ErrNotEnrolled
	}

	return svc.attendance.UpsertAttendance(ctx, Attendance{
		ClassID:   classID,
		StudentID: studentID,
		Status:    status,
	})
}
