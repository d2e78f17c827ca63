package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roamlog/api/internal/domain"
)

// postDocument is the persisted shape of a post. Field names are the
// collection's snake_case vocabulary; identifiers are ObjectIDs.
type postDocument struct {
	ID              primitive.ObjectID `bson:"_id"`
	Slug            string             `bson:"slug"`
	Tags            []string           `bson:"tags"`
	Author          string             `bson:"author"`
	Title           string             `bson:"title"`
	Summary         string             `bson:"summary"`
	CoverPhoto      *photoDocument     `bson:"cover_photo,omitempty"`
	Photos          []photoDocument    `bson:"photos"`
	ArticleContent  string             `bson:"article_content"`
	CreatedAt       time.Time          `bson:"created_at"`
	EditedAt        *time.Time         `bson:"edited_at,omitempty"`
	PublishedAt     *time.Time         `bson:"published_at,omitempty"`
	ViewCount       int                `bson:"view_count"`
	Location        locationDocument   `bson:"location"`
	ReadTimeMinutes int                `bson:"read_time_minutes"`
}

type photoDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	AltText   string             `bson:"alt_text"`
	PublicURL string             `bson:"public_url"`
	Width     int                `bson:"width"`
	Height    int                `bson:"height"`
}

type locationDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Place     string             `bson:"place"`
	Latitude  float64            `bson:"latitude"`
	Longitude float64            `bson:"longitude"`
}

// objectID parses a domain identifier into the store's native ID type.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("post id %q: %w", id, err)
	}
	return oid, nil
}

// toDocument converts a domain post into its persisted form. It fails
// only when an identifier is not valid ObjectID hex, which the factory
// never produces.
func toDocument(p domain.Post) (postDocument, error) {
	id, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return postDocument{}, fmt.Errorf("post id %q: %w", p.ID, err)
	}
	var cover *photoDocument
	if p.CoverPhoto != nil {
		c, err := toPhotoDocument(*p.CoverPhoto)
		if err != nil {
			return postDocument{}, err
		}
		cover = &c
	}
	photos := make([]photoDocument, 0, len(p.Photos))
	for _, ph := range p.Photos {
		d, err := toPhotoDocument(ph)
		if err != nil {
			return postDocument{}, err
		}
		photos = append(photos, d)
	}
	loc, err := toLocationDocument(p.Location)
	if err != nil {
		return postDocument{}, err
	}
	return postDocument{
		ID:              id,
		Slug:            p.Slug,
		Tags:            p.Tags,
		Author:          p.Author,
		Title:           p.Title,
		Summary:         p.Summary,
		CoverPhoto:      cover,
		Photos:          photos,
		ArticleContent:  p.ArticleContent,
		CreatedAt:       p.CreatedAt,
		EditedAt:        p.EditedAt,
		PublishedAt:     p.PublishedAt,
		ViewCount:       p.ViewCount,
		Location:        loc,
		ReadTimeMinutes: p.ReadTimeMinutes,
	}, nil
}

// toDomain is the inverse of toDocument, field for field.
func (d postDocument) toDomain() domain.Post {
	var cover *domain.Photo
	if d.CoverPhoto != nil {
		c := d.CoverPhoto.toDomain()
		cover = &c
	}
	photos := make([]domain.Photo, 0, len(d.Photos))
	for _, ph := range d.Photos {
		photos = append(photos, ph.toDomain())
	}
	return domain.Post{
		ID:              d.ID.Hex(),
		Slug:            d.Slug,
		Tags:            d.Tags,
		Author:          d.Author,
		Title:           d.Title,
		Summary:         d.Summary,
		CoverPhoto:      cover,
		Photos:          photos,
		ArticleContent:  d.ArticleContent,
		CreatedAt:       d.CreatedAt,
		EditedAt:        d.EditedAt,
		PublishedAt:     d.PublishedAt,
		ViewCount:       d.ViewCount,
		Location:        d.Location.toDomain(),
		ReadTimeMinutes: d.ReadTimeMinutes,
	}
}

func toPhotoDocument(p domain.Photo) (photoDocument, error) {
	id, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return photoDocument{}, fmt.Errorf("photo id %q: %w", p.ID, err)
	}
	return photoDocument{
		ID:        id,
		AltText:   p.AltText,
		PublicURL: p.PublicURL,
		Width:     p.Width,
		Height:    p.Height,
	}, nil
}

func (d photoDocument) toDomain() domain.Photo {
	return domain.Photo{
		ID:        d.ID.Hex(),
		AltText:   d.AltText,
		PublicURL: d.PublicURL,
		Width:     d.Width,
		Height:    d.Height,
	}
}

// toLocationDocument maps an unpersisted location (empty ID) to the
// zero ObjectID; toDomain maps the zero ObjectID back to "".
func toLocationDocument(l domain.Location) (locationDocument, error) {
	var id primitive.ObjectID
	if l.ID != "" {
		var err error
		id, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return locationDocument{}, fmt.Errorf("location id %q: %w", l.ID, err)
		}
	}
	return locationDocument{
		ID:        id,
		Place:     l.Place,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}, nil
}

func (d locationDocument) toDomain() domain.Location {
	var id string
	if !d.ID.IsZero() {
		id = d.ID.Hex()
	}
	return domain.Location{
		ID:        id,
		Place:     d.Place,
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
	}
}
