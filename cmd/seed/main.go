// Seed tool: loads communities (groups) from a JSON file. Groups are not
// writable through the API, so this is how they get into the database.
//
// The file holds an array of {"title", "slug", "description"} objects.
// Existing slugs are updated in place.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yatube/api-go/config"
)

const (
	maxTitleLength = 200
	maxSlugLength  = 50
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type groupSeed struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

const upsertGroup = `INSERT INTO groups (title, slug, description) VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE SET title = EXCLUDED.title, description = EXCLUDED.description`

func main() {
	var file string
	var dsn string
	var batchSize int
	flag.StringVar(&file, "file", "groups.json", "path to the groups JSON file")
	flag.StringVar(&dsn, "dsn", "", "database connection string (defaults to DATABASE_URL / DB_*)")
	flag.IntVar(&batchSize, "batch", 100, "upsert batch size")
	flag.Parse()

	config.Load()
	if dsn == "" {
		dsn = config.DatabaseDSN()
	}

	f, err := os.Open(file)
	if err != nil {
		log.Fatalf("open %s: %v", file, err)
	}
	groups, err := parseGroups(f)
	f.Close()
	if err != nil {
		log.Fatalf("parse %s: %v", file, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	if err := seedGroups(ctx, dsn, groups, batchSize); err != nil {
		log.Fatalf("seed groups failed: %v", err)
	}
	log.Printf("seeded %d groups in %s", len(groups), time.Since(start).Truncate(time.Millisecond))
}

// parseGroups decodes and validates the seed file. Slugs must be unique
// within the file.
func parseGroups(r io.Reader) ([]groupSeed, error) {
	var groups []groupSeed
	if err := json.NewDecoder(r).Decode(&groups); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	seen := make(map[string]bool, len(groups))
	for i := range groups {
		g := &groups[i]
		g.Title = strings.TrimSpace(g.Title)
		g.Slug = strings.TrimSpace(g.Slug)

		switch {
		case g.Title == "":
			return nil, fmt.Errorf("group %d: title is required", i)
		case len([]rune(g.Title)) > maxTitleLength:
			return nil, fmt.Errorf("group %d: title longer than %d characters", i, maxTitleLength)
		case !slugPattern.MatchString(g.Slug) || len(g.Slug) > maxSlugLength:
			return nil, fmt.Errorf("group %d: invalid slug %q", i, g.Slug)
		case seen[g.Slug]:
			return nil, fmt.Errorf("group %d: duplicate slug %q", i, g.Slug)
		}
		seen[g.Slug] = true
	}
	return groups, nil
}

func seedGroups(ctx context.Context, dsn string, groups []groupSeed, batchSize int) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(ctx)

	batch := &pgx.Batch{}
	pending := 0
	flush := func() error {
		if pending == 0 {
			return nil
		}
		br := conn.SendBatch(ctx, batch)
		for i := 0; i < pending; i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("batch exec: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("batch close: %w", err)
		}
		batch = &pgx.Batch{}
		pending = 0
		return nil
	}

	for _, g := range groups {
		batch.Queue(upsertGroup, g.Title, g.Slug, g.Description)
		pending++
		if pending >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}
