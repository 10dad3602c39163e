package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/careerlink/jobboard/internal/models"
	"github.com/careerlink/jobboard/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*models.Application, error)
	ListByApplicant(ctx context.Context, userID string) ([]models.Application, error)
	ListByEmployer(ctx context.Context, userID string) ([]models.Application, error)
	ListByParty(ctx context.Context, userID string, role models.Role) ([]models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, applicationID string) error
}

type applicationRepo struct {
	col *mongo.Collection
}

func NewApplicationRepo(db *mongo.Database) ApplicationRepository {
	return &applicationRepo{col: db.Collection("applications")}
}

func (r *applicationRepo) Create(ctx context.Context, app *models.Application) error {
	now := time.Now().UTC()
	if app.CreatedAt.IsZero() {
		app.CreatedAt = now
	}
	app.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, app)
	return err
}

func (r *applicationRepo) GetByApplicationID(ctx context.Context, applicationID string) (*models.Application, error) {
	var app models.Application
	err := r.col.FindOne(ctx, bson.M{"application_id": applicationID}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &app, err
}

func (r *applicationRepo) ListByApplicant(ctx context.Context, userID string) ([]models.Application, error) {
	return r.list(ctx, bson.M{"applicant.user_id": userID})
}

func (r *applicationRepo) ListByEmployer(ctx context.Context, userID string) ([]models.Application, error) {
	return r.list(ctx, bson.M{"employer.user_id": userID})
}

func (r *applicationRepo) ListByParty(ctx context.Context, userID string, role models.Role) ([]models.Application, error) {
	if role == models.RoleJobSeeker {
		return r.ListByApplicant(ctx, userID)
	}
	return r.ListByEmployer(ctx, userID)
}

func (r *applicationRepo) list(ctx context.Context, filter bson.M) ([]models.Application, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Application
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the whole document, guarded by the revision the caller
// read. A concurrent writer bumps the revision first and the replace
// matches nothing; that surfaces as ErrConflict so the request can be
// retried against fresh state.
func (r *applicationRepo) Update(ctx context.Context, app *models.Application) error {
	prev := app.Revision
	app.Revision = prev + 1
	app.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx,
		bson.M{"application_id": app.ApplicationID, "revision": prev},
		app,
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"application_id": app.ApplicationID})
		if err != nil {
			return err
		}
		if n == 0 {
			return utils.ErrNotFound
		}
		return utils.ErrConflict
	}
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, applicationID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"application_id": applicationID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
