package mongo

import (
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/julianstephens/benchbook/internal/constants"
	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/models"
)

type settingDoc struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func (s *Store) GetSettings() (models.Settings, error) {
	ctx, cancel := opCtx()
	defer cancel()

	cur, err := s.db.Collection(settingsColl).Find(ctx, bson.M{})
	if err != nil {
		return models.Settings{}, err
	}
	var docs []settingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return models.Settings{}, err
	}
	if len(docs) == 0 {
		return models.Settings{}, fmt.Errorf("settings %w", apperr.ErrNotFound)
	}

	settings := models.DefaultSettings()
	for _, d := range docs {
		switch d.Key {
		case constants.SettingTimezone:
			settings.Timezone = d.Value
		case constants.SettingHorizonDays:
			if settings.HorizonDays, err = strconv.Atoi(d.Value); err != nil {
				return models.Settings{}, fmt.Errorf("parsing %s: %w", d.Key, err)
			}
		case constants.SettingCancelPolicy:
			settings.CancelPolicy = d.Value
		case constants.SettingViewerTemplate:
			settings.ViewerTemplate = d.Value
		}
	}
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	ctx, cancel := opCtx()
	defer cancel()

	var writes []mongo.WriteModel
	for key, value := range map[string]string{
		constants.SettingTimezone:       settings.Timezone,
		constants.SettingHorizonDays:    strconv.Itoa(settings.HorizonDays),
		constants.SettingCancelPolicy:   settings.CancelPolicy,
		constants.SettingViewerTemplate: settings.ViewerTemplate,
	} {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": key}).
			SetReplacement(settingDoc{Key: key, Value: value}).
			SetUpsert(true))
	}
	_, err := s.db.Collection(settingsColl).BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	return err
}
