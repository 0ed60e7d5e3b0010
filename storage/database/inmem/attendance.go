package inmemdb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/mahudhurio/core/school"
)

type attendanceRepository struct {
	db *DB
}

var _ school.AttendanceRepository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *DB) school.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) GetAttendance(_ context.Context, classID, studentID primitive.ObjectID) (school.Attendance, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, att := range repo.db.attendance {
		if att.ClassID == classID && att.StudentID == studentID {
			return *att, nil
		}
	}
	return school.Attendance{}, school.ErrAttendanceNotFound
}

func (repo *attendanceRepository) UpsertAttendance(_ context.Context, att school.Attendance) (school.Attendance, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, existing := range repo.db.attendance {
		if existing.ClassID == att.ClassID && existing.StudentID == att.StudentID {
			existing.Status = att.Status
			return *existing, nil
		}
	}
	att.ID = primitive.NewObjectID()
	repo.db.attendance[att.ID] = &att
	return att, nil
}
