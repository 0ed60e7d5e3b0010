package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trezcool/mahudhurio/core/user"
)

type userRepository struct {
	coll *mongo.Collection
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *mongo.Database) user.Repository {
	return &userRepository{coll: db.Collection(userCollection)}
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string) error {
	count, err := repo.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return errors.Wrap(err, "counting users by email")
	}
	if count > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	res, err := repo.coll.InsertOne(ctx, usr)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	usr.ID = res.InsertedID.(primitive.ObjectID)
	return usr, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (user.User, error) {
	var usr user.User
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&usr); err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	if err := repo.coll.FindOne(ctx, bson.M{"email": email}).Decode(&usr); err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user by email")
	}
	return usr, nil
}

func (repo *userRepository) GetUsersByID(ctx context.Context, ids []primitive.ObjectID) ([]user.User, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "finding users by ID")
	}
	var users []user.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decoding users")
	}

	// restore the order of ids; the store returns documents in natural order
	byID := make(map[primitive.ObjectID]user.User, len(users))
	for _, usr := range users {
		byID[usr.ID] = usr
	}
	ordered := make([]user.User, 0, len(users))
	for _, id := range ids {
		if usr, ok := byID[id]; ok {
			ordered = append(ordered, usr)
		}
	}
	return ordered, nil
}

func (repo *userRepository) FilterUsersByRole(ctx context.Context, role string) ([]user.User, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, errors.Wrap(err, "finding users by role")
	}
	users := make([]user.User, 0)
	if err = cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decoding users")
	}
	return users, nil
}
