package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/magicdancearts/server/internal/model"
)

// SelectionRepo provides access to the 'selected_classes' collection.
//
// Uniqueness is keyed on class_id alone, so a class selected by one student
// cannot be selected by another until the first selection is paid or
// removed. This matches the deployed behavior the frontend was built
// against; switching to a composite (email, class_id) key is a deliberate
// product decision, not a code fix.
type SelectionRepo struct {
	c *mongo.Collection
}

func NewSelectionRepo(db *mongo.Database) *SelectionRepo {
	return &SelectionRepo{c: db.Collection("selected_classes")}
}

// ListByEmail returns a student's current selections.
func (r *SelectionRepo) ListByEmail(ctx context.Context, email string) ([]model.Selection, error) {
	cur, err := r.c.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	selections := []model.Selection{}
	if err := cur.All(ctx, &selections); err != nil {
		return nil, err
	}
	return selections, nil
}

// Insert records a selection. The unique class_id index turns a duplicate
// into ErrClassTaken.
func (r *SelectionRepo) Insert(ctx context.Context, sel model.Selection) (model.Selection, error) {
	sel.ID = primitive.NewObjectID()
	if _, err := r.c.InsertOne(ctx, sel); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Selection{}, ErrClassTaken
		}
		return model.Selection{}, err
	}
	return sel, nil
}

// Delete removes a selection by id and reports the deleted count. Also
// called by the payment workflow when a selection is consumed.
func (r *SelectionRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
