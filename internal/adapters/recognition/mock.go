package recognition

import (
	"context"
	"hash/fnv"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/ports"
)

// MockRecognizer is an offline Recognizer with canned results per category.
// With no hint the category is derived from a hash of the image bytes, so
// the same upload always classifies the same way.
type MockRecognizer struct{}

// NewMockRecognizer creates the offline recognizer
func NewMockRecognizer() ports.Recognizer {
	return &MockRecognizer{}
}

var hintable = []entities.ScanCategory{
	entities.ScanInvitation,
	entities.ScanReceipt,
	entities.ScanProduct,
	entities.ScanDocument,
}

func (m *MockRecognizer) Recognize(ctx context.Context, image []byte, hint entities.ScanCategory) (*entities.ScanResult, error) {
	if len(image) == 0 {
		return nil, entities.ErrEmptyScanImage
	}

	category := hint
	switch {
	case category == "" || category == entities.ScanUnknown:
		category = classify(image)
	case !category.IsValid():
		return nil, entities.ErrInvalidScanCategory
	}

	result := fixtureFor(category)
	result.DetectedObjects = detectedObjectsFor(category)
	return result, nil
}

// classify picks a stable category from the image bytes.
func classify(image []byte) entities.ScanCategory {
	h := fnv.New32a()
	h.Write(image)
	return hintable[int(h.Sum32())%len(hintable)]
}

func fixtureFor(category entities.ScanCategory) *entities.ScanResult {
	switch category {
	case entities.ScanInvitation:
		return &entities.ScanResult{
			Category:   entities.ScanInvitation,
			Confidence: 0.96,
			ExtractedText: "TEAM OFFSITE MEETING\nDate: May 15, 2025\nTime: 10:00 AM - 4:00 PM\n" +
				"Location: Conference Room A, Building 2\n\nOrganizer: Sarah Johnson\n" +
				"sarah.j@company.com\n\nQuarterly team meeting. Bring your presentation materials.",
			Invitation: &entities.InvitationDetail{
				Title:     "Team Offsite Meeting",
				Date:      "2025-05-15",
				Time:      "10:00 AM",
				Location:  "Conference Room A, Building 2",
				Organizer: "Sarah Johnson",
				Notes:     "Quarterly team meeting. Bring your presentation materials.",
			},
		}
	case entities.ScanReceipt:
		return &entities.ScanResult{
			Category:   entities.ScanReceipt,
			Confidence: 0.97,
			ExtractedText: "GREEN GROCERS\n123 Main Street\nCity, State 12345\n\n" +
				"Date: 04/03/2025\nTime: 14:35\n\nApples      $4.99\nBread       $3.50\n" +
				"Milk        $2.99\n\nSubtotal    $11.48\nTax (8%)     $0.92\n\nTOTAL       $12.40",
			Receipt: &entities.ReceiptDetail{
				Store:    "Green Grocers",
				Date:     "2025-04-03",
				Total:    "$12.40",
				Category: "Groceries",
				Items: []entities.ReceiptItem{
					{Name: "Apples", Price: "$4.99"},
					{Name: "Bread", Price: "$3.50"},
					{Name: "Milk", Price: "$2.99"},
				},
			},
		}
	case entities.ScanProduct:
		return &entities.ScanResult{
			Category:   entities.ScanProduct,
			Confidence: 0.96,
			ExtractedText: "Organic Avocados\n2 count package\n\nPrice: $5.99\nCategory: Groceries\n\n" +
				"Fresh organic avocados, perfect for guacamole.",
			Product: &entities.ProductDetail{
				Name:        "Organic Avocados",
				Price:       "$5.99",
				Category:    "Groceries",
				Brand:       "Nature's Best",
				Store:       "Green Grocers",
				Description: "Fresh organic avocados, perfect for guacamole.",
			},
		}
	default:
		return &entities.ScanResult{
			Category:   entities.ScanDocument,
			Confidence: 0.98,
			ExtractedText: "MEETING MINUTES\n\nDate: April 10, 2025\nSubject: Product Launch Planning\n\n" +
				"Attendees:\n- John Smith (Chair)\n- Jane Doe\n- Alex Johnson",
			Document: &entities.DocumentDetail{
				Title:   "Meeting Minutes",
				Date:    "2025-04-10",
				Type:    "Work",
				Content: "Discussion about upcoming product launch and marketing strategy.",
				Author:  "John Smith",
			},
		}
	}
}

func detectedObjectsFor(category entities.ScanCategory) []entities.DetectedObject {
	switch category {
	case entities.ScanInvitation:
		return []entities.DetectedObject{
			{Name: "Document", Confidence: 0.92},
			{Name: "Calendar", Confidence: 0.84},
			{Name: "Event", Confidence: 0.96},
		}
	case entities.ScanReceipt:
		return []entities.DetectedObject{
			{Name: "Receipt", Confidence: 0.97},
			{Name: "Document", Confidence: 0.88},
			{Name: "Printed text", Confidence: 0.95},
		}
	case entities.ScanProduct:
		return []entities.DetectedObject{
			{Name: "Product", Confidence: 0.96},
			{Name: "Packaging", Confidence: 0.92},
			{Name: "Brand logo", Confidence: 0.88},
		}
	default:
		return []entities.DetectedObject{
			{Name: "Document", Confidence: 0.98},
			{Name: "Paper", Confidence: 0.93},
			{Name: "Text", Confidence: 0.97},
		}
	}
}
