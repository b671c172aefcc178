package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/julianstephens/benchbook/internal/constants"
	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/logger"
	"github.com/julianstephens/benchbook/internal/models"
)

// schemaVersion is bumped whenever ensureIndexes changes shape.
const schemaVersion = 1

const (
	settingsColl = "settings"
	metaColl     = "meta"
	countersColl = "counters"
	machinesColl = "machines"
	bookingsColl = "bookings"
)

type Store struct {
	uri    string
	dbName string
	client *mongo.Client
	db     *mongo.Database
}

func New(uri string) *Store {
	return &Store{
		uri:    uri,
		dbName: databaseName(uri),
	}
}

// databaseName takes the database from the URI path, defaulting to the app name.
func databaseName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return constants.AppName
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return constants.AppName
}

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.StoreTimeout)
}

func (s *Store) connect() error {
	ctx, cancel := opCtx()
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri).SetServerSelectionTimeout(constants.StoreTimeout))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return fmt.Errorf("failed to reach MongoDB: %w", err)
	}
	s.client = client
	s.db = client.Database(s.dbName)
	return nil
}

func (s *Store) Init() error {
	if s.client == nil {
		if err := s.connect(); err != nil {
			return err
		}
	}

	if err := s.ensureIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	ctx, cancel := opCtx()
	defer cancel()
	_, err := s.db.Collection(metaColl).UpdateOne(ctx,
		bson.M{"_id": "schema_version"},
		bson.M{"$set": bson.M{"version": schemaVersion}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	logger.Info("MongoDB indexes ensured", "database", s.dbName, "version", schemaVersion)

	if _, err := s.GetSettings(); err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

// ensureIndexes makes the database enforce one booking per (machine, date, slot).
func (s *Store) ensureIndexes() error {
	ctx, cancel := opCtx()
	defer cancel()

	_, err := s.db.Collection(bookingsColl).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "machine_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "slot", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("unique_machine_date_slot"),
		},
	})
	if err != nil {
		return err
	}

	_, err = s.db.Collection(machinesColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sn", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_sn"),
	})
	return err
}

func (s *Store) Load() error {
	if s.client != nil {
		return nil
	}
	if err := s.connect(); err != nil {
		return err
	}
	current, _, err := s.SchemaVersion()
	if err != nil {
		return err
	}
	if current == 0 {
		return fmt.Errorf("storage not initialized, run 'benchbook init' first")
	}
	if current > schemaVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade the application", current, schemaVersion)
	}
	return nil
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := opCtx()
	defer cancel()
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil
	return err
}

func (s *Store) SchemaVersion() (int, int, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var doc struct {
		Version int `bson:"version"`
	}
	err := s.db.Collection(metaColl).FindOne(ctx, bson.M{"_id": "schema_version"}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, schemaVersion, nil
	}
	if err != nil {
		return 0, 0, err
	}
	return doc.Version, schemaVersion, nil
}

func (s *Store) GetConfigPath() string {
	return "mongodb"
}

// nextID hands out increasing machine ids from a counter document.
func (s *Store) nextID(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.db.Collection(countersColl).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	return doc.Seq, err
}

// now returns a timestamp at the precision BSON dates keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
