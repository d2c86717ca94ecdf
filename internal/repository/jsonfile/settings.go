package jsonfile

import (
	"context"

	"github.com/ksaito/salon-api/internal/model"
)

type SettingsRepository struct {
	doc *document[model.CalendarSettings]
}

func NewSettingsRepository(store *Store) *SettingsRepository {
	return &SettingsRepository{doc: newDocument[model.CalendarSettings](store, "settings.json", "settings")}
}

func (r *SettingsRepository) Get(ctx context.Context) (model.CalendarSettings, bool, error) {
	return r.doc.load(ctx)
}

func (r *SettingsRepository) Save(ctx context.Context, settings model.CalendarSettings) error {
	return r.doc.save(ctx, settings)
}
