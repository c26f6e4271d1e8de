package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

var _ ports.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"`
	Username   string              `bson:"username"`
	FullName   string              `bson:"fullName,omitempty"`
	GitURL     string              `bson:"gitUrl"`
	Email      string              `bson:"email,omitempty"`
	LinkedIn   string              `bson:"linkedIn,omitempty"`
	AboutMe    string              `bson:"aboutMe,omitempty"`
	UserAvatar string              `bson:"userAvatar"`
	LastLogin  time.Time           `bson:"lastLogin"`
	Cohort     *primitive.ObjectID `bson:"cohort,omitempty"`
}

func (d userDoc) toDomain() *domain.User {
	u := &domain.User{
		ID:         d.ID.Hex(),
		Username:   d.Username,
		FullName:   d.FullName,
		GitURL:     d.GitURL,
		Email:      d.Email,
		LinkedIn:   d.LinkedIn,
		AboutMe:    d.AboutMe,
		UserAvatar: d.UserAvatar,
		LastLogin:  d.LastLogin.UTC(),
	}
	if d.Cohort != nil {
		u.CohortID = d.Cohort.Hex()
	}
	return u
}

// Upsert writes gitUrl, userAvatar and lastLogin keyed by username in one
// atomic operation. The unique username index turns a lost insert race into a
// duplicate key error, in which case the record now exists and is updated.
func (r *UserRepository) Upsert(ctx context.Context, username, gitURL, avatar string, at time.Time) (*domain.User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"username": username}
	update := bson.M{"$set": bson.M{
		"gitUrl":     gitURL,
		"userAvatar": avatar,
		"lastLogin":  at.UTC(),
	}}

	created := false
	res, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	switch {
	case err == nil:
		created = res.UpsertedCount == 1
	case mongo.IsDuplicateKeyError(err):
		if _, err := r.col.UpdateOne(ctx, filter, update); err != nil {
			return nil, false, fmt.Errorf("update user: %w", err)
		}
	default:
		return nil, false, fmt.Errorf("upsert user: %w", err)
	}

	u, err := r.FindByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	return u, created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *UserRepository) ListByCohort(ctx context.Context, cohortID string) ([]*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(cohortID)
	if err != nil {
		return []*domain.User{}, nil
	}
	return r.find(ctx, bson.M{"cohort": oid})
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, p domain.Profile, cohortID *string, at time.Time) error {
	oid, err := objectID(id, domain.ErrUserNotFound)
	if err != nil {
		return err
	}

	set := bson.M{
		"fullName":  p.FullName,
		"gitUrl":    p.GitURL,
		"email":     p.Email,
		"linkedIn":  p.LinkedIn,
		"aboutMe":   p.AboutMe,
		"lastLogin": at.UTC(),
	}
	if cohortID != nil {
		cid, err := objectID(*cohortID, domain.ErrCohortNotFound)
		if err != nil {
			return err
		}
		set["cohort"] = cid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrUserNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return d.toDomain(), nil
}

func (r *UserRepository) find(ctx context.Context, filter bson.M) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	out := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
