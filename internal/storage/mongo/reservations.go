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

type bookingDoc struct {
	ID          string    `bson:"_id"`
	MachineID   int64     `bson:"machine_id"`
	Date        string    `bson:"date"`
	Slot        int       `bson:"slot"`
	DisplayName string    `bson:"display_name"`
	RequesterID string    `bson:"requester_id"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d bookingDoc) reservation() models.Reservation {
	return models.Reservation{
		ID:          d.ID,
		ResourceID:  d.MachineID,
		Date:        d.Date,
		Slot:        d.Slot,
		DisplayName: d.DisplayName,
		RequesterID: d.RequesterID,
		CreatedAt:   d.CreatedAt,
	}
}

func (s *Store) GetReservations(resourceID int64, date string) ([]models.Reservation, error) {
	ctx, cancel := opCtx()
	defer cancel()

	cur, err := s.db.Collection(bookingsColl).Find(ctx,
		bson.M{"machine_id": resourceID, "date": date},
		options.Find().SetSort(bson.D{{Key: "slot", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	var docs []bookingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	reservations := make([]models.Reservation, 0, len(docs))
	for _, d := range docs {
		reservations = append(reservations, d.reservation())
	}
	return reservations, nil
}

func (s *Store) GetReservation(resourceID int64, date string, slot int) (models.Reservation, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var doc bookingDoc
	err := s.db.Collection(bookingsColl).FindOne(ctx, bson.M{"machine_id": resourceID, "date": date, "slot": slot}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Reservation{}, fmt.Errorf("booking %s/%d: %w", date, slot, apperr.ErrNotFound)
	}
	if err != nil {
		return models.Reservation{}, err
	}
	return doc.reservation(), nil
}

func (s *Store) AddReservation(r models.Reservation) error {
	ctx, cancel := opCtx()
	defer cancel()

	if r.CreatedAt.IsZero() {
		r.CreatedAt = now()
	}
	_, err := s.db.Collection(bookingsColl).InsertOne(ctx, bookingDoc{
		ID:          r.ID,
		MachineID:   r.ResourceID,
		Date:        r.Date,
		Slot:        r.Slot,
		DisplayName: r.DisplayName,
		RequesterID: r.RequesterID,
		CreatedAt:   r.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("slot %d on %s: %w", r.Slot, r.Date, apperr.ErrSlotTaken)
	}
	return err
}

func (s *Store) DeleteReservations(resourceID int64, date string, slots []int, requesterID string) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	ctx, cancel := opCtx()
	defer cancel()

	filter := bson.M{"machine_id": resourceID, "date": date, "slot": bson.M{"$in": slots}}
	if requesterID != "" {
		filter["requester_id"] = requesterID
	}
	res, err := s.db.Collection(bookingsColl).DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}
