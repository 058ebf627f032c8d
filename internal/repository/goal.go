package repository

import (
	"context"

	"github.com/AnshRaj112/voxa-backend/internal/database"
	"github.com/AnshRaj112/voxa-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	List(ctx context.Context, userID string, filter models.GoalFilter) ([]models.Goal, error)
	ByID(ctx context.Context, userID, id string) (*models.Goal, error)
	// Replace writes goal's mutable fields if the stored version still equals goal.Version,
	// and bumps the version. It returns ErrVersionConflict when the document has moved on.
	Replace(ctx context.Context, goal *models.Goal) error
	Delete(ctx context.Context, userID, id string) error
	CountByStatus(ctx context.Context, userID string) (map[string]int64, error)
	CountByCategory(ctx context.Context, userID string) (map[string]int64, error)
	// AverageProgress averages progress over the user's goals in the given status; 0 if there are none.
	AverageProgress(ctx context.Context, userID string, status models.GoalStatus) (float64, error)
}

type goalRepository struct {
	c collection[models.Goal]
}

func NewGoalRepository(db *mongo.Database) GoalRepository {
	return &goalRepository{c: collection[models.Goal]{coll: db.Collection(database.GoalsCollection)}}
}

func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) error {
	if goal.ID.IsZero() {
		goal.ID = primitive.NewObjectID()
	}
	return r.c.insert(ctx, goal)
}

func (r *goalRepository) List(ctx context.Context, userID string, filter models.GoalFilter) ([]models.Goal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.c.find(ctx, goalQuery(userID, filter), opts)
}

func (r *goalRepository) ByID(ctx context.Context, userID, id string) (*models.Goal, error) {
	return r.c.byID(ctx, userID, id)
}

func (r *goalRepository) Replace(ctx context.Context, goal *models.Goal) error {
	filter := bson.M{"_id": goal.ID, "user_id": goal.UserID, "version": goal.Version}
	res, err := r.c.coll.UpdateOne(ctx, filter, goalUpdate(goal))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	goal.Version++
	return nil
}

func (r *goalRepository) Delete(ctx context.Context, userID, id string) error {
	return r.c.delete(ctx, userID, id)
}

func (r *goalRepository) CountByStatus(ctx context.Context, userID string) (map[string]int64, error) {
	return r.c.countBy(ctx, bson.M{"user_id": userID}, "status")
}

func (r *goalRepository) CountByCategory(ctx context.Context, userID string) (map[string]int64, error) {
	return r.c.countBy(ctx, bson.M{"user_id": userID}, "category")
}

func (r *goalRepository) AverageProgress(ctx context.Context, userID string, status models.GoalStatus) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID, "status": status}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$progress"}}},
		}}},
	}

	cursor, err := r.c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Avg, nil
}

func goalQuery(userID string, f models.GoalFilter) bson.M {
	q := bson.M{"user_id": userID}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	return q
}

func goalUpdate(g *models.Goal) bson.M {
	milestones := g.Milestones
	if milestones == nil {
		milestones = []models.Milestone{}
	}
	return bson.M{
		"$set": bson.M{
			"title":       g.Title,
			"description": g.Description,
			"category":    g.Category,
			"progress":    g.Progress,
			"target":      g.Target,
			"deadline":    g.Deadline,
			"status":      g.Status,
			"milestones":  milestones,
			"updated_at":  g.UpdatedAt,
		},
		"$inc": bson.M{"version": 1},
	}
}
