package repository

import (
	"context"
	"time"

	"github.com/AnshRaj112/voxa-backend/internal/database"
	"github.com/AnshRaj112/voxa-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type JournalRepository interface {
	Create(ctx context.Context, journal *models.Journal) error
	List(ctx context.Context, userID string, filter models.JournalFilter, page Page) ([]models.Journal, int64, error)
	ByID(ctx context.Context, userID, id string) (*models.Journal, error)
	Update(ctx context.Context, userID, id string, patch models.JournalPatch, now time.Time) (*models.Journal, error)
	Delete(ctx context.Context, userID, id string) error
	// Count returns the number of the user's journals dated at or after since, or all of them when since is nil.
	Count(ctx context.Context, userID string, since *time.Time) (int64, error)
	CountByMood(ctx context.Context, userID string) (map[string]int64, error)
}

type journalRepository struct {
	c collection[models.Journal]
}

func NewJournalRepository(db *mongo.Database) JournalRepository {
	return &journalRepository{c: collection[models.Journal]{coll: db.Collection(database.JournalsCollection)}}
}

func (r *journalRepository) Create(ctx context.Context, journal *models.Journal) error {
	if journal.ID.IsZero() {
		journal.ID = primitive.NewObjectID()
	}
	return r.c.insert(ctx, journal)
}

func (r *journalRepository) List(ctx context.Context, userID string, filter models.JournalFilter, page Page) ([]models.Journal, int64, error) {
	return r.c.page(ctx, journalQuery(userID, filter), newestFirst, page)
}

func (r *journalRepository) ByID(ctx context.Context, userID, id string) (*models.Journal, error) {
	return r.c.byID(ctx, userID, id)
}

func (r *journalRepository) Update(ctx context.Context, userID, id string, patch models.JournalPatch, now time.Time) (*models.Journal, error) {
	filter, err := owned(userID, id)
	if err != nil {
		return nil, err
	}
	return r.c.update(ctx, filter, journalUpdate(patch, now))
}

func (r *journalRepository) Delete(ctx context.Context, userID, id string) error {
	return r.c.delete(ctx, userID, id)
}

func (r *journalRepository) Count(ctx context.Context, userID string, since *time.Time) (int64, error) {
	filter := bson.M{"user_id": userID}
	if since != nil {
		filter["date"] = bson.M{"$gte": *since}
	}
	return r.c.coll.CountDocuments(ctx, filter)
}

func (r *journalRepository) CountByMood(ctx context.Context, userID string) (map[string]int64, error) {
	return r.c.countBy(ctx, bson.M{"user_id": userID}, "mood")
}

func journalQuery(userID string, f models.JournalFilter) bson.M {
	q := bson.M{"user_id": userID}
	if f.Mood != "" {
		q["mood"] = f.Mood
	}
	if f.Sentiment != "" {
		q["sentiment"] = f.Sentiment
	}
	if f.Search != "" {
		q["$or"] = bson.A{
			bson.M{"title": containsInsensitive(f.Search)},
			bson.M{"transcription": containsInsensitive(f.Search)},
			bson.M{"tags": equalsInsensitive(f.Search)},
		}
	}
	if r := dateRange(f.From, f.To); r != nil {
		q["date"] = r
	}
	return q
}

func journalUpdate(p models.JournalPatch, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	unset := bson.M{}

	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Transcription != nil {
		set["transcription"] = *p.Transcription
	}
	if p.WordCount != nil {
		set["word_count"] = *p.WordCount
	}
	if p.AudioURL != nil {
		if *p.AudioURL == "" {
			unset["audio_url"] = ""
		} else {
			set["audio_url"] = *p.AudioURL
		}
	}
	if p.Date != nil {
		set["date"] = *p.Date
	}
	if p.Mood != nil {
		set["mood"] = *p.Mood
	}
	if p.Tags != nil {
		tags := *p.Tags
		if tags == nil {
			tags = []string{}
		}
		set["tags"] = tags
	}
	if p.Sentiment != nil {
		set["sentiment"] = *p.Sentiment
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}
