package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

var _ ports.CohortRepository = (*CohortRepository)(nil)

type CohortRepository struct {
	col *mongo.Collection
}

func NewCohortRepository(db *mongo.Database) *CohortRepository {
	return &CohortRepository{col: db.Collection(collectionCohorts)}
}

type cohortDoc struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	CohortName string               `bson:"cohortName"`
	Alumni     []primitive.ObjectID `bson:"alumni"`
}

func (d cohortDoc) toDomain() *domain.Cohort {
	c := &domain.Cohort{
		ID:     d.ID.Hex(),
		Name:   d.CohortName,
		Alumni: make([]string, 0, len(d.Alumni)),
	}
	for _, id := range d.Alumni {
		c.Alumni = append(c.Alumni, id.Hex())
	}
	return c
}

func (r *CohortRepository) Create(ctx context.Context, name string) (*domain.Cohort, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := cohortDoc{CohortName: name, Alumni: []primitive.ObjectID{}}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert cohort: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CohortRepository) FindByID(ctx context.Context, id string) (*domain.Cohort, error) {
	oid, err := objectID(id, domain.ErrCohortNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d cohortDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCohortNotFound
		}
		return nil, fmt.Errorf("find cohort: %w", err)
	}
	return d.toDomain(), nil
}

func (r *CohortRepository) List(ctx context.Context) ([]*domain.Cohort, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find cohorts: %w", err)
	}
	var docs []cohortDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cohorts: %w", err)
	}

	out := make([]*domain.Cohort, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *CohortRepository) Rename(ctx context.Context, id, name string) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"cohortName": name}})
}

// AddAlumnus uses $addToSet so repeated moves never duplicate a member.
func (r *CohortRepository) AddAlumnus(ctx context.Context, cohortID, userID string) error {
	uid, err := objectID(userID, domain.ErrUserNotFound)
	if err != nil {
		return err
	}
	return r.updateByID(ctx, cohortID, bson.M{"$addToSet": bson.M{"alumni": uid}})
}

// RemoveAlumnus uses $pull. Unknown cohorts are ignored.
func (r *CohortRepository) RemoveAlumnus(ctx context.Context, cohortID, userID string) error {
	cid, err := primitive.ObjectIDFromHex(cohortID)
	if err != nil {
		return nil
	}
	uid, err := objectID(userID, domain.ErrUserNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": cid}, bson.M{"$pull": bson.M{"alumni": uid}}); err != nil {
		return fmt.Errorf("pull alumnus: %w", err)
	}
	return nil
}

func (r *CohortRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := objectID(id, domain.ErrCohortNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update cohort: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCohortNotFound
	}
	return nil
}
