package inmemdb

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/user"
)

// DB is an in-memory stand-in for the document store, used in tests and admin
// dry runs. A single mutex guards all tables; document operations are atomic
// under it, matching the store's per-document guarantees.
type DB struct {
	mutex      sync.RWMutex
	users      map[primitive.ObjectID]*user.User
	classes    map[primitive.ObjectID]*school.Class
	attendance map[primitive.ObjectID]*school.Attendance
}

func Open() (*DB, error) {
	return &DB{
		users:      make(map[primitive.ObjectID]*user.User),
		classes:    make(map[primitive.ObjectID]*school.Class),
		attendance: make(map[primitive.ObjectID]*school.Attendance),
	}, nil
}
