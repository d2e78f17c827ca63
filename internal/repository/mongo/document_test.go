package mongo

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roamlog/api/internal/domain"
)

func newHex() string { return primitive.NewObjectID().Hex() }

func samplePost() domain.Post {
	created := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
	edited := created.Add(2 * time.Hour)
	publishedAt := created.Add(time.Hour)
	return domain.Post{
		ID:      newHex(),
		Slug:    "hiking-the-dolomites",
		Tags:    []string{"hiking", "italy"},
		Author:  "ada",
		Title:   "Hiking the Dolomites",
		Summary: "three passes in four days",
		CoverPhoto: &domain.Photo{
			ID: newHex(), AltText: "ridge at dawn", PublicURL: "https://cdn/x.jpg", Width: 1600, Height: 900,
		},
		Photos: []domain.Photo{
			{ID: newHex(), AltText: "camp", PublicURL: "https://cdn/a.jpg", Width: 800, Height: 600},
			{ID: newHex(), AltText: "summit", PublicURL: "https://cdn/b.jpg", Width: 800, Height: 600},
		},
		ArticleContent:  "# Day one\n\nwe set off early...",
		CreatedAt:       created,
		EditedAt:        &edited,
		PublishedAt:     &publishedAt,
		ViewCount:       42,
		Location:        domain.Location{ID: newHex(), Place: "Dolomites", Latitude: 46.41, Longitude: 11.84},
		ReadTimeMinutes: 3,
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	p := samplePost()
	doc, err := toDocument(p)
	if err != nil {
		t.Fatalf("toDocument: %v", err)
	}
	got := doc.toDomain()
	if !reflect.DeepEqual(got, p) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, p)
	}
}

func TestDocumentRoundTrip_Minimal(t *testing.T) {
	// No cover photo, no photos, draft, unpersisted location.
	p := domain.Post{
		ID:             newHex(),
		Slug:           "draft-post",
		Author:         "ada",
		Title:          "Draft Post",
		Summary:        "s",
		ArticleContent: "c",
		Photos:         []domain.Photo{},
		CreatedAt:      time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC),
		Location:       domain.Location{Place: "Nowhere", Latitude: 0, Longitude: 0},
	}
	doc, err := toDocument(p)
	if err != nil {
		t.Fatalf("toDocument: %v", err)
	}
	if doc.PublishedAt != nil {
		t.Fatalf("draft must persist with no published_at")
	}
	if !doc.Location.ID.IsZero() {
		t.Fatalf("empty location id must map to the zero ObjectID")
	}
	got := doc.toDomain()
	if !reflect.DeepEqual(got, p) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, p)
	}
}

func TestToDocument_InvalidID(t *testing.T) {
	p := samplePost()
	p.ID = "not-hex"
	if _, err := toDocument(p); err == nil {
		t.Fatalf("expected error for invalid post id")
	}
	p = samplePost()
	p.CoverPhoto.ID = "also-not-hex"
	if _, err := toDocument(p); err == nil {
		t.Fatalf("expected error for invalid photo id")
	}
}

func TestPublishedOnlyFilter(t *testing.T) {
	f := publishedOnly()
	inner, ok := f["published_at"].(bson.M)
	if !ok {
		t.Fatalf("want bson.M predicate, got %T", f["published_at"])
	}
	if v, present := inner["$ne"]; !present || v != nil {
		t.Fatalf("want $ne nil predicate, got %v", inner)
	}
}
