package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/ports"
)

// File is the on-disk seed fixture: starter events and shopping items loaded
// at boot and reloaded whenever the file changes.
type File struct {
	Events   []EventSeed        `yaml:"events"`
	Shopping []ShoppingItemSeed `yaml:"shopping"`
}

type EventSeed struct {
	ID          string          `yaml:"id"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Start       time.Time       `yaml:"start"`
	End         time.Time       `yaml:"end"`
	AllDay      bool            `yaml:"all_day"`
	Location    string          `yaml:"location"`
	Color       string          `yaml:"color"`
	Image       string          `yaml:"image"`
	Reminder    string          `yaml:"reminder"`
	Recurring   *RecurrenceSeed `yaml:"recurring"`
}

type RecurrenceSeed struct {
	Frequency  string `yaml:"frequency"`
	Interval   int    `yaml:"interval"`
	DaysOfWeek []int  `yaml:"days_of_week"`
}

type ShoppingItemSeed struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Category     string `yaml:"category"`
	Amount       string `yaml:"amount"`
	Price        string `yaml:"price"`
	Notes        string `yaml:"notes"`
	Completed    bool   `yaml:"completed"`
	RepeatOption string `yaml:"repeat_option"`
}

// Load parses a seed file from disk.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &f, nil
}

// ToEvents converts the seed records into domain events. Seed ids are stable
// across reloads: named ids hash to the same uuid every time.
func (f *File) ToEvents() ([]*entities.Event, error) {
	out := make([]*entities.Event, 0, len(f.Events))
	for i, seed := range f.Events {
		event := &entities.Event{
			ID:        seedID(seed.ID, fmt.Sprintf("event-%d", i)),
			Title:     seed.Title,
			StartDate: seed.Start,
			EndDate:   seed.End,
			AllDay:    seed.AllDay,
			Color:     seed.Color,
		}
		if seed.Description != "" {
			event.Description = strPtr(seed.Description)
		}
		if seed.Location != "" {
			event.Location = strPtr(seed.Location)
		}
		if seed.Image != "" {
			event.Image = strPtr(seed.Image)
		}
		if seed.Reminder != "" {
			event.Reminder = strPtr(seed.Reminder)
		}
		if seed.Recurring != nil {
			freq := entities.RecurrenceFrequency(seed.Recurring.Frequency)
			if !freq.IsValid() {
				return nil, fmt.Errorf("seed event %q: unknown recurrence frequency %q", seed.Title, seed.Recurring.Frequency)
			}
			interval := seed.Recurring.Interval
			if interval < 1 {
				interval = 1
			}
			event.Recurring = &entities.RecurrenceRule{
				Frequency:  freq,
				Interval:   interval,
				DaysOfWeek: seed.Recurring.DaysOfWeek,
			}
		}
		if err := event.Validate(); err != nil {
			return nil, fmt.Errorf("seed event %q: %w", seed.Title, err)
		}
		out = append(out, event)
	}
	return out, nil
}

// ToShoppingItems converts the seed records into domain shopping items.
func (f *File) ToShoppingItems() ([]*entities.ShoppingItem, error) {
	out := make([]*entities.ShoppingItem, 0, len(f.Shopping))
	for i, seed := range f.Shopping {
		repeat := entities.RepeatOption(seed.RepeatOption)
		if seed.RepeatOption == "" {
			repeat = entities.RepeatNone
		}
		if !repeat.IsValid() {
			return nil, fmt.Errorf("seed item %q: %w", seed.Name, entities.ErrInvalidRepeatOption)
		}
		item := &entities.ShoppingItem{
			ID:           seedID(seed.ID, fmt.Sprintf("item-%d", i)),
			Name:         seed.Name,
			Category:     seed.Category,
			Completed:    seed.Completed,
			RepeatOption: repeat,
		}
		if seed.Amount != "" {
			item.Amount = strPtr(seed.Amount)
		}
		if seed.Price != "" {
			item.Price = strPtr(seed.Price)
		}
		if seed.Notes != "" {
			item.Notes = strPtr(seed.Notes)
		}
		out = append(out, item)
	}
	return out, nil
}

// Apply loads the file at path and replaces the contents of both stores.
func Apply(ctx context.Context, path string, events ports.EventRepository, shopping ports.ShoppingRepository) error {
	f, err := Load(path)
	if err != nil {
		return err
	}
	evs, err := f.ToEvents()
	if err != nil {
		return err
	}
	items, err := f.ToShoppingItems()
	if err != nil {
		return err
	}
	if err := events.ReplaceAll(ctx, evs); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}
	if err := shopping.ReplaceAll(ctx, items); err != nil {
		return fmt.Errorf("seed shopping items: %w", err)
	}
	return nil
}

var seedNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// seedID derives a stable uuid from the seed's declared id, falling back to
// the positional key when none is given.
func seedID(declared, fallback string) uuid.UUID {
	name := declared
	if name == "" {
		name = fallback
	}
	return uuid.NewSHA1(seedNamespace, []byte(name))
}

func strPtr(s string) *string {
	return &s
}
