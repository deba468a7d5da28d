package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magicdancearts/server/internal/model"
)

// ClassRepo provides access to the 'classes' collection.
type ClassRepo struct {
	c *mongo.Collection
}

func NewClassRepo(db *mongo.Database) *ClassRepo {
	return &ClassRepo{c: db.Collection("classes")}
}

// List returns every class regardless of status.
func (r *ClassRepo) List(ctx context.Context) ([]model.Class, error) {
	return r.find(ctx, bson.M{})
}

// ListApproved returns classes whose review passed. This backs the public
// catalog.
func (r *ClassRepo) ListApproved(ctx context.Context) ([]model.Class, error) {
	return r.find(ctx, bson.M{"status": model.StatusApproved})
}

// ListByEmail returns the classes owned by an instructor.
func (r *ClassRepo) ListByEmail(ctx context.Context, email string) ([]model.Class, error) {
	return r.find(ctx, bson.M{"email": email})
}

func (r *ClassRepo) find(ctx context.Context, filter bson.M) ([]model.Class, error) {
	cur, err := r.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	classes := []model.Class{}
	if err := cur.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Insert creates a class. Status defaults to pending so a new class never
// appears in the public catalog before review.
func (r *ClassRepo) Insert(ctx context.Context, cls model.Class) (model.Class, error) {
	cls.ID = primitive.NewObjectID()
	if cls.Status == "" {
		cls.Status = model.StatusPending
	}
	if _, err := r.c.InsertOne(ctx, cls); err != nil {
		return model.Class{}, err
	}
	return cls, nil
}

// UpdateFields replaces the instructor-editable field set on an existing
// class. Unlike earlier revisions this is not an upsert: a missing id
// returns ErrNotFound instead of minting a document.
func (r *ClassRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, upd model.ClassUpdate) error {
	res, err := r.c.UpdateByID(ctx, id, bson.M{"$set": upd})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus moves a class to approved or denied. The set is unconditional;
// there is no transition validation on the current status.
func (r *ClassRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status model.ClassStatus) (int64, error) {
	res, err := r.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// SetFeedback records admin feedback on a class.
func (r *ClassRepo) SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) (int64, error) {
	res, err := r.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"feedback": feedback}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Enroll takes one seat on a class and returns the updated document. The
// filter requires a free seat, so available_seats can never go below zero
// even under concurrent payments. Run inside the payment transaction.
func (r *ClassRepo) Enroll(ctx context.Context, id primitive.ObjectID) (model.Class, error) {
	filter := bson.M{"_id": id, "available_seats": bson.M{"$gt": 0}}
	update := bson.M{"$inc": bson.M{"enrolled_students": 1, "available_seats": -1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var cls model.Class
	err := r.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cls)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Distinguish a missing class from a sold-out one.
		if cnt, cntErr := r.c.CountDocuments(ctx, bson.M{"_id": id}); cntErr == nil && cnt == 0 {
			return model.Class{}, ErrNotFound
		}
		return model.Class{}, ErrSoldOut
	}
	if err != nil {
		return model.Class{}, err
	}
	return cls, nil
}
