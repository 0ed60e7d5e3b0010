package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/mahudhurio/core/school"
)

type attendanceRepository struct {
	coll *mongo.Collection
}

var _ school.AttendanceRepository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *mongo.Database) school.AttendanceRepository {
	return &attendanceRepository{coll: db.Collection(attendanceCollection)}
}

func (repo *attendanceRepository) GetAttendance(ctx context.Context, classID, studentID primitive.ObjectID) (school.Attendance, error) {
	var att school.Attendance
	err := repo.coll.FindOne(ctx, bson.M{"classId": classID, "studentId": studentID}).Decode(&att)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return school.Attendance{}, school.ErrAttendanceNotFound
		}
		return school.Attendance{}, errors.Wrap(err, "finding attendance")
	}
	return att, nil
}

func (repo *attendanceRepository) UpsertAttendance(ctx context.Context, att school.Attendance) (school.Attendance, error) {
	var saved school.Attendance
	err := repo.coll.FindOneAndUpdate(
		ctx,
		bson.M{"classId": att.ClassID, "studentId": att.StudentID},
		bson.M{
			"$set":         bson.M{"status": att.Status},
			"$setOnInsert": bson.M{"classId": att.ClassID, "studentId": att.StudentID},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&saved)
	if err != nil {
		return school.Attendance{}, errors.Wrap(err, "upserting attendance")
	}
	return saved, nil
}
