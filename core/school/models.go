package school

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/user"
)

// Attendance statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

var AllStatuses = []string{StatusPresent, StatusAbsent}

type Class struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	ClassName  string               `bson:"className" json:"className"`
	TeacherID  primitive.ObjectID   `bson:"teacherId" json:"teacherId"`
	StudentIDs []primitive.ObjectID `bson:"studentIds" json:"studentIds"`
}

// HasStudent reports whether id is enrolled in the class.
func (c Class) HasStudent(id primitive.ObjectID) bool {
	for _, sid := range c.StudentIDs {
		if sid == id {
			return true
		}
	}
	return false
}

// ClassDetail is a Class with its enrolled students populated.
type ClassDetail struct {
	ID        primitive.ObjectID `json:"_id"`
	ClassName string             `json:"className"`
	TeacherID primitive.ObjectID `json:"teacherId"`
	Students  []user.User        `json:"students"`
}

type Attendance struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ClassID   primitive.ObjectID `bson:"classId" json:"classId"`
	StudentID primitive.ObjectID `bson:"studentId" json:"studentId"`
	Status    string             `bson:"status" json:"status"`
}

// StudentAttendance is a student's own attendance entry for one class.
type StudentAttendance struct {
	ClassID primitive.ObjectID `json:"classId"`
	Status  string             `json:"status"`
}

// Actor is the authenticated caller's identity, as carried by its token.
type Actor struct {
	ID   primitive.ObjectID
	Role string
}

func (a Actor) IsTeacher() bool { return a.Role == user.RoleTeacher }
func (a Actor) IsStudent() bool { return a.Role == user.RoleStudent }

// NewClass contains information needed to create a Class.
type NewClass struct {
	ClassName string             `json:"className" validate:"required"`
	TeacherID primitive.ObjectID `json:"teacherId"`
}

func (nc *NewClass) Validate() error {
	nc.ClassName = core.CleanString(nc.ClassName)
	return core.Validate.Struct(nc)
}

// ClassLookup is the lookup-by-name request payload.
type ClassLookup struct {
	ClassName string `json:"className" validate:"required"`
}

func (cl *ClassLookup) Validate() error {
	cl.ClassName = core.CleanString(cl.ClassName)
	return core.Validate.Struct(cl)
}

// AddStudent is the enrollment request payload; StudentID is an ObjectID hex.
type AddStudent struct {
	StudentID string `json:"studentId" validate:"required"`
}

func (as *AddStudent) Validate() error {
	as.StudentID = core.CleanString(as.StudentID)
	return core.Validate.Struct(as)
}
