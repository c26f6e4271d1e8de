package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

type projectDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ProjectName     string             `bson:"projectName"`
	Username        string             `bson:"username"`
	Collaborators   string             `bson:"collaborators,omitempty"`
	Description     string             `bson:"description"`
	DeploymentLink  string             `bson:"deploymentLink,omitempty"`
	DeploymentImage string             `bson:"deploymentImage,omitempty"`
	UserAvatarURL   string             `bson:"userAvatarUrl,omitempty"`
	RepoLink        string             `bson:"repoLink,omitempty"`
}

func (d projectDoc) toDomain() *domain.Project {
	return &domain.Project{
		ID:              d.ID.Hex(),
		Name:            d.ProjectName,
		Owner:           d.Username,
		Collaborators:   d.Collaborators,
		Description:     d.Description,
		DeploymentLink:  d.DeploymentLink,
		DeploymentImage: d.DeploymentImage,
		UserAvatarURL:   d.UserAvatarURL,
		RepoLink:        d.RepoLink,
	}
}

// Create inserts a new project document and sets p.ID.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, projectDoc{
		ProjectName:     p.Name,
		Username:        p.Owner,
		Collaborators:   p.Collaborators,
		Description:     p.Description,
		DeploymentLink:  p.DeploymentLink,
		DeploymentImage: p.DeploymentImage,
		UserAvatarURL:   p.UserAvatarURL,
		RepoLink:        p.RepoLink,
	})
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := objectID(id, domain.ErrProjectNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d projectDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return d.toDomain(), nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, username string) ([]*domain.Project, error) {
	return r.find(ctx, bson.M{"username": username})
}

// ListVisibleTo matches the owner exactly or the username as a
// case-insensitive substring of collaborators. The username is escaped so it
// is matched literally.
func (r *ProjectRepository) ListVisibleTo(ctx context.Context, username string) ([]*domain.Project, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"collaborators": primitive.Regex{Pattern: regexp.QuoteMeta(username), Options: "i"}},
	}}
	return r.find(ctx, filter)
}

// Replace overwrites every editable field, clearing the ones left empty.
func (r *ProjectRepository) Replace(ctx context.Context, id string, c domain.ProjectChanges) error {
	oid, err := objectID(id, domain.ErrProjectNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"projectName":     c.Name,
		"description":     c.Description,
		"collaborators":   c.Collaborators,
		"deploymentLink":  c.DeploymentLink,
		"deploymentImage": c.DeploymentImage,
		"repoLink":        c.RepoLink,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrProjectNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) find(ctx context.Context, filter bson.M) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	var docs []projectDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	out := make([]*domain.Project, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
