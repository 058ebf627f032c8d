package repository

import (
	"context"
	"time"

	"github.com/AnshRaj112/voxa-backend/internal/database"
	"github.com/AnshRaj112/voxa-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MoodRepository interface {
	Create(ctx context.Context, mood *models.Mood) error
	List(ctx context.Context, userID string, filter models.MoodFilter, page Page) ([]models.Mood, int64, error)
	// Latest returns the most recent entry dated within [from, to], or ErrNotFound.
	Latest(ctx context.Context, userID string, from, to time.Time) (*models.Mood, error)
	Delete(ctx context.Context, userID, id string) error
	Since(ctx context.Context, userID string, since time.Time) ([]models.Mood, error)
	// Dates returns the date of every entry the user has logged.
	Dates(ctx context.Context, userID string) ([]time.Time, error)
}

type moodRepository struct {
	c collection[models.Mood]
}

func NewMoodRepository(db *mongo.Database) MoodRepository {
	return &moodRepository{c: collection[models.Mood]{coll: db.Collection(database.MoodsCollection)}}
}

func (r *moodRepository) Create(ctx context.Context, mood *models.Mood) error {
	if mood.ID.IsZero() {
		mood.ID = primitive.NewObjectID()
	}
	return r.c.insert(ctx, mood)
}

func (r *moodRepository) List(ctx context.Context, userID string, filter models.MoodFilter, page Page) ([]models.Mood, int64, error) {
	q := bson.M{"user_id": userID}
	if dr := dateRange(filter.From, filter.To); dr != nil {
		q["date"] = dr
	}
	return r.c.page(ctx, q, newestFirst, page)
}

func (r *moodRepository) Latest(ctx context.Context, userID string, from, to time.Time) (*models.Mood, error) {
	q := bson.M{"user_id": userID, "date": dateRange(&from, &to)}
	return r.c.findOne(ctx, q, options.FindOne().SetSort(newestFirst))
}

func (r *moodRepository) Delete(ctx context.Context, userID, id string) error {
	return r.c.delete(ctx, userID, id)
}

func (r *moodRepository) Since(ctx context.Context, userID string, since time.Time) ([]models.Mood, error) {
	q := bson.M{"user_id": userID, "date": bson.M{"$gte": since}}
	return r.c.find(ctx, q, options.Find().SetSort(newestFirst))
}

func (r *moodRepository) Dates(ctx context.Context, userID string) ([]time.Time, error) {
	opts := options.Find().SetSort(newestFirst).SetProjection(bson.M{"date": 1})
	moods, err := r.c.find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(moods))
	for i, m := range moods {
		dates[i] = m.Date
	}
	return dates, nil
}
