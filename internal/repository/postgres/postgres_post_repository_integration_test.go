//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/roamlog/api/internal/domain"
	"github.com/roamlog/api/internal/repository"
)

// startPostgres spins up a Postgres container using testcontainers.
func startPostgres(ctx context.Context, t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	pg, err := tcpostgres.RunContainer(ctx,
		tcpostgres.WithUsername("roamlog"),
		tcpostgres.WithPassword("secret"),
		tcpostgres.WithDatabase("roamlog"),
	)
	if err != nil {
		t.Skipf("skipping: cannot start postgres container (is Docker running?): %v", err)
		return nil, func() {}
	}
	host, _ := pg.Host(ctx)
	port, _ := pg.MappedPort(ctx, "5432")
	dsn := fmt.Sprintf("postgres://roamlog:secret@%s:%s/roamlog?sslmode=disable", host, port.Port())
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	for {
		if err := pool.Ping(ctx); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			t.Fatalf("timeout waiting for db ready: %v", ctx.Err())
		case <-time.After(250 * time.Millisecond):
		}
	}
	cleanup := func() {
		pool.Close()
		_ = pg.Terminate(context.Background())
	}
	return pool, cleanup
}

func testPost(id, slug string, tags []string, created time.Time, published *time.Time) domain.Post {
	return domain.Post{
		ID:             id,
		Slug:           slug,
		Tags:           tags,
		Author:         "ada",
		Title:          "title " + id,
		Summary:        "summary " + id,
		ArticleContent: fmt.Sprintf("content-%s", id),
		CreatedAt:      created,
		PublishedAt:    published,
		Location:       domain.Location{Place: "Lisbon", Latitude: 38.72, Longitude: -9.14},
	}
}

func TestPostgresRepository_VisibilityAndTagFilter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	pool, cleanup := startPostgres(ctx, t)
	defer cleanup()

	repo := NewPostRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	pub := now
	a := testPost("a1", "post-a", []string{"x", "y"}, now, &pub)
	b := testPost("b2", "post-b", []string{"y"}, now.Add(time.Second), &pub)
	c := testPost("c3", "post-c", []string{"y"}, now.Add(2*time.Second), nil) // draft

	for _, p := range []domain.Post{a, b, c} {
		if err := repo.Insert(ctx, p); err != nil {
			t.Fatalf("insert %s: %v", p.ID, err)
		}
	}

	published, err := repo.FindPublished(ctx)
	if err != nil {
		t.Fatalf("find published: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("want 2 published, got %d", len(published))
	}

	tagged, err := repo.FindPublishedByTag(ctx, "y")
	if err != nil {
		t.Fatalf("find by tag: %v", err)
	}
	if len(tagged) != 2 {
		t.Fatalf("want exactly 2 tagged published posts, got %d", len(tagged))
	}

	if _, err := repo.FindPublishedBySlug(ctx, "post-c"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("draft must not be visible by slug, got %v", err)
	}
	got, err := repo.FindBySlug(ctx, "post-c")
	if err != nil {
		t.Fatalf("authoring lookup: %v", err)
	}
	if got.ID != "c3" {
		t.Fatalf("want draft c3, got %s", got.ID)
	}
}

func TestPostgresRepository_RoundTripAndUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	pool, cleanup := startPostgres(ctx, t)
	defer cleanup()

	repo := NewPostRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	pub := now
	p := testPost("a1", "post-a", []string{"x"}, now, &pub)
	p.CoverPhoto = &domain.Photo{ID: "ph1", AltText: "cover", PublicURL: "https://cdn/x.jpg", Width: 1600, Height: 900}
	p.Photos = []domain.Photo{{ID: "ph2", AltText: "b", PublicURL: "https://cdn/b.jpg", Width: 800, Height: 600}}
	p.ReadTimeMinutes = 4

	if err := repo.Insert(ctx, p); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := repo.FindPublishedBySlug(ctx, "post-a")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.CoverPhoto == nil || got.CoverPhoto.ID != "ph1" {
		t.Fatalf("cover photo lost: %+v", got.CoverPhoto)
	}
	if len(got.Photos) != 1 || got.Photos[0].ID != "ph2" {
		t.Fatalf("photos lost: %+v", got.Photos)
	}
	if got.Location.Place != "Lisbon" {
		t.Fatalf("location lost: %+v", got.Location)
	}
	if got.ReadTimeMinutes != 4 {
		t.Fatalf("read time lost: %d", got.ReadTimeMinutes)
	}

	// whole-row replace
	edited := now.Add(time.Hour)
	got.Summary = "updated"
	got.EditedAt = &edited
	if err := repo.Replace(ctx, "a1", got); err != nil {
		t.Fatalf("replace: %v", err)
	}
	again, err := repo.FindBySlug(ctx, "post-a")
	if err != nil {
		t.Fatalf("find after replace: %v", err)
	}
	if again.Summary != "updated" || again.EditedAt == nil {
		t.Fatalf("replace not applied: %+v", again)
	}
}

func TestPostgresRepository_AtomicIncrement(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	pool, cleanup := startPostgres(ctx, t)
	defer cleanup()

	repo := NewPostRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	pub := now
	if err := repo.Insert(ctx, testPost("a1", "post-a", nil, now, &pub)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	const n = 20
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() { errs <- repo.IncrementViewCount(ctx, "a1") }()
	}
	for i := 0; i < n; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	got, err := repo.FindBySlug(ctx, "post-a")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ViewCount != n {
		t.Fatalf("want viewCount %d, got %d", n, got.ViewCount)
	}
}
