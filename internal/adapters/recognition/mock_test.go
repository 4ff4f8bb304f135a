package recognition

import (
	"context"
	"errors"
	"testing"

	"github.com/daybook/core/internal/domain/entities"
)

func TestRecognizeWithHint(t *testing.T) {
	rec := NewMockRecognizer()
	ctx := context.Background()
	image := []byte("snapshot")

	tests := []struct {
		hint  entities.ScanCategory
		check func(t *testing.T, result *entities.ScanResult)
	}{
		{
			hint: entities.ScanInvitation,
			check: func(t *testing.T, result *entities.ScanResult) {
				if result.Invitation == nil || result.Invitation.Title != "Team Offsite Meeting" {
					t.Error("invitation payload missing")
				}
			},
		},
		{
			hint: entities.ScanReceipt,
			check: func(t *testing.T, result *entities.ScanResult) {
				if result.Receipt == nil || len(result.Receipt.Items) != 3 {
					t.Error("receipt payload missing")
				}
			},
		},
		{
			hint: entities.ScanProduct,
			check: func(t *testing.T, result *entities.ScanResult) {
				if result.Product == nil || result.Product.Name != "Organic Avocados" {
					t.Error("product payload missing")
				}
			},
		},
		{
			hint: entities.ScanDocument,
			check: func(t *testing.T, result *entities.ScanResult) {
				if result.Document == nil || result.Document.Title != "Meeting Minutes" {
					t.Error("document payload missing")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.hint), func(t *testing.T) {
			result, err := rec.Recognize(ctx, image, tt.hint)
			if err != nil {
				t.Fatalf("Recognize() error = %v", err)
			}
			if result.Category != tt.hint {
				t.Errorf("Category = %q, want %q", result.Category, tt.hint)
			}
			if len(result.DetectedObjects) == 0 {
				t.Error("no detected objects")
			}
			if result.ExtractedText == "" {
				t.Error("no extracted text")
			}
			tt.check(t, result)

			// Exactly one payload matches the category.
			payloads := 0
			if result.Invitation != nil {
				payloads++
			}
			if result.Receipt != nil {
				payloads++
			}
			if result.Product != nil {
				payloads++
			}
			if result.Document != nil {
				payloads++
			}
			if payloads != 1 {
				t.Errorf("%d payloads set, want exactly 1", payloads)
			}
		})
	}
}

func TestRecognizeWithoutHintIsDeterministic(t *testing.T) {
	rec := NewMockRecognizer()
	ctx := context.Background()
	image := []byte("the same bytes every time")

	first, err := rec.Recognize(ctx, image, "")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	second, err := rec.Recognize(ctx, image, entities.ScanUnknown)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if first.Category != second.Category {
		t.Errorf("categories differ for identical input: %q vs %q", first.Category, second.Category)
	}
	if !first.Category.IsValid() || first.Category == entities.ScanUnknown {
		t.Errorf("Category = %q, want a concrete category", first.Category)
	}
}

func TestRecognizeRejectsBadInput(t *testing.T) {
	rec := NewMockRecognizer()
	ctx := context.Background()

	if _, err := rec.Recognize(ctx, nil, entities.ScanReceipt); !errors.Is(err, entities.ErrEmptyScanImage) {
		t.Errorf("empty image error = %v", err)
	}
	if _, err := rec.Recognize(ctx, []byte("x"), entities.ScanCategory("blueprint")); !errors.Is(err, entities.ErrInvalidScanCategory) {
		t.Errorf("invalid hint error = %v", err)
	}
}
