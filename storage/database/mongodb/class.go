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

type classRepository struct {
	coll *mongo.Collection
}

var _ school.ClassRepository = (*classRepository)(nil)

func NewClassRepository(db *mongo.Database) school.ClassRepository {
	return &classRepository{coll: db.Collection(classCollection)}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls school.Class) (school.Class, error) {
	if cls.StudentIDs == nil {
		cls.StudentIDs = []primitive.ObjectID{}
	}
	res, err := repo.coll.InsertOne(ctx, cls)
	if err != nil {
		return school.Class{}, errors.Wrap(err, "inserting class")
	}
	cls.ID = res.InsertedID.(primitive.ObjectID)
	return cls, nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id primitive.ObjectID) (school.Class, error) {
	return repo.getClass(ctx, bson.M{"_id": id})
}

func (repo *classRepository) GetClassByName(ctx context.Context, name string) (school.Class, error) {
	return repo.getClass(ctx, bson.M{"className": name})
}

func (repo *classRepository) getClass(ctx context.Context, filter bson.M) (school.Class, error) {
	var cls school.Class
	if err := repo.coll.FindOne(ctx, filter).Decode(&cls); err != nil {
		if err == mongo.ErrNoDocuments {
			return school.Class{}, school.ErrClassNotFound
		}
		return school.Class{}, errors.Wrap(err, "finding class")
	}
	return cls, nil
}

// AppendStudent pushes studentID onto studentIds in a single conditional
// update; the teacherId filter makes ownership part of the atomic operation so
// concurrent appends cannot lose an update.
func (repo *classRepository) AppendStudent(ctx context.Context, classID, teacherID, studentID primitive.ObjectID) (school.Class, error) {
	var cls school.Class
	err := repo.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": classID, "teacherId": teacherID},
		bson.M{"$push": bson.M{"studentIds": studentID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cls)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return school.Class{}, school.ErrClassNotFound
		}
		return school.Class{}, errors.Wrap(err, "appending student to class")
	}
	return cls, nil
}
