package inmemdb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/mahudhurio/core/school"
)

type classRepository struct {
	db *DB
}

var _ school.ClassRepository = (*classRepository)(nil)

func NewClassRepository(db *DB) school.ClassRepository {
	return &classRepository{db: db}
}

func (repo *classRepository) CreateClass(_ context.Context, cls school.Class) (school.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if cls.StudentIDs == nil {
		cls.StudentIDs = []primitive.ObjectID{}
	}
	cls.ID = primitive.NewObjectID()
	repo.db.classes[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) GetClassByID(_ context.Context, id primitive.ObjectID) (school.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if cls, ok := repo.db.classes[id]; ok {
		return copyClass(*cls), nil
	}
	return school.Class{}, school.ErrClassNotFound
}

func (repo *classRepository) GetClassByName(_ context.Context, name string) (school.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, cls := range repo.db.classes {
		if cls.ClassName == name {
			return copyClass(*cls), nil
		}
	}
	return school.Class{}, school.ErrClassNotFound
}

func (repo *classRepository) AppendStudent(_ context.Context, classID, teacherID, studentID primitive.ObjectID) (school.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cls, ok := repo.db.classes[classID]
	if !ok || cls.TeacherID != teacherID {
		return school.Class{}, school.ErrClassNotFound
	}
	cls.StudentIDs = append(cls.StudentIDs, studentID)
	return copyClass(*cls), nil
}

// copyClass detaches the studentIds slice so callers cannot alias table state.
func copyClass(cls school.Class) school.Class {
	ids := make([]primitive.ObjectID, len(cls.StudentIDs))
	copy(ids, cls.StudentIDs)
	cls.StudentIDs = ids
	return cls
}
