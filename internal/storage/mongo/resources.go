package mongo

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/models"
)

type machineDoc struct {
	ID                  int64     `bson:"_id"`
	SN                  string    `bson:"sn"`
	Owner               string    `bson:"owner"`
	HostName            string    `bson:"host_name"`
	HostAccountPassword string    `bson:"host_account_password"`
	RemoteAccount       string    `bson:"remote_account"`
	RemotePassword      string    `bson:"remote_password"`
	Note                string    `bson:"note"`
	State               string    `bson:"state"`
	IPKVM               string    `bson:"ipkvm"`
	CreatedAt           time.Time `bson:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at"`
}

func toMachineDoc(r models.Resource) machineDoc {
	return machineDoc{
		ID: r.ID, SN: r.Name, Owner: r.Owner, HostName: r.HostName,
		HostAccountPassword: r.HostAccountPassword, RemoteAccount: r.RemoteAccount,
		RemotePassword: r.RemotePassword, Note: r.Note, State: r.State, IPKVM: r.IPKVM,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (d machineDoc) resource() models.Resource {
	return models.Resource{
		ID: d.ID, Name: d.SN, Owner: d.Owner, HostName: d.HostName,
		HostAccountPassword: d.HostAccountPassword, RemoteAccount: d.RemoteAccount,
		RemotePassword: d.RemotePassword, Note: d.Note, State: d.State, IPKVM: d.IPKVM,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func (s *Store) AddResource(r models.Resource) (models.Resource, error) {
	ctx, cancel := opCtx()
	defer cancel()

	id, err := s.nextID(ctx, machinesColl)
	if err != nil {
		return models.Resource{}, err
	}
	r.ID = id
	r.CreatedAt = now()
	r.UpdatedAt = r.CreatedAt

	if _, err := s.db.Collection(machinesColl).InsertOne(ctx, toMachineDoc(r)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Resource{}, fmt.Errorf("machine %q: %w", r.Name, apperr.ErrAlreadyExists)
		}
		return models.Resource{}, err
	}
	return r, nil
}

func (s *Store) UpdateResource(r models.Resource) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := s.db.Collection(machinesColl).UpdateOne(ctx, bson.M{"_id": r.ID}, bson.M{"$set": bson.M{
		"owner":                 r.Owner,
		"host_name":             r.HostName,
		"host_account_password": r.HostAccountPassword,
		"remote_account":        r.RemoteAccount,
		"remote_password":       r.RemotePassword,
		"note":                  r.Note,
		"state":                 r.State,
		"ipkvm":                 r.IPKVM,
		"updated_at":            now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("machine %d: %w", r.ID, apperr.ErrNotFound)
	}
	return nil
}

func (s *Store) findResource(filter bson.M, label string) (models.Resource, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var doc machineDoc
	err := s.db.Collection(machinesColl).FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Resource{}, fmt.Errorf("machine %s: %w", label, apperr.ErrNotFound)
	}
	if err != nil {
		return models.Resource{}, err
	}
	return doc.resource(), nil
}

func (s *Store) GetResource(id int64) (models.Resource, error) {
	return s.findResource(bson.M{"_id": id}, fmt.Sprint(id))
}

func (s *Store) GetResourceByName(name string) (models.Resource, error) {
	return s.findResource(bson.M{"sn": name}, fmt.Sprintf("%q", name))
}

func (s *Store) GetAllResources() ([]models.Resource, error) {
	ctx, cancel := opCtx()
	defer cancel()

	cur, err := s.db.Collection(machinesColl).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "sn", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []machineDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	resources := make([]models.Resource, 0, len(docs))
	for _, d := range docs {
		resources = append(resources, d.resource())
	}
	return resources, nil
}
