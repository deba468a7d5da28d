package repository

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/magicdancearts/server/internal/model"
)

// UserRepo provides access to the 'users' collection.
type UserRepo struct {
	c *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{c: db.Collection("users")}
}

// List returns every user.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	cur, err := r.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListByRole returns users holding the given role. It backs the public
// instructor listing, which replaced the denormalized 'instructors'
// collection of earlier revisions.
func (r *UserRepo) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	cur, err := r.c.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail fetches a user by normalized email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.c.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// RoleByEmail returns the current stored role for an email. It is the
// lookup injected into the role guard, so role changes take effect on the
// next request without reissuing tokens.
func (r *UserRepo) RoleByEmail(ctx context.Context, email string) (model.Role, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

// Insert creates a user with no role. The unique email index turns a
// duplicate registration into ErrDuplicateEmail without a prior read.
func (r *UserRepo) Insert(ctx context.Context, u model.User) (model.User, error) {
	u.ID = primitive.NewObjectID()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Role = ""
	if _, err := r.c.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.User{}, ErrDuplicateEmail
		}
		return model.User{}, err
	}
	return u, nil
}

// SetRole assigns a role to a user by id. Matching no document is not an
// error; the modified count tells the caller what happened.
func (r *UserRepo) SetRole(ctx context.Context, id primitive.ObjectID, role model.Role) (int64, error) {
	res, err := r.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Delete removes a user by id and reports how many documents were deleted.
func (r *UserRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
