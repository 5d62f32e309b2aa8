package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/heart0018/OriginalProduct/internal/domain/cards"
	"github.com/heart0018/OriginalProduct/internal/domain/storage"
	"github.com/heart0018/OriginalProduct/internal/imagestore"
	"github.com/heart0018/OriginalProduct/internal/region"
)

const searchURL = "https://www.google.com/search?q="

// cardRecord is one entry of an import file, as written by the collectors.
type cardRecord struct {
	Title        string              `json:"title"`
	Genre        string              `json:"genre"`
	Rating       float64             `json:"rating"`
	ReviewCount  int                 `json:"review_count"`
	ImageURL     string              `json:"image_url"`
	ExternalLink string              `json:"external_link"`
	Region       string              `json:"region"`
	Address      string              `json:"address"`
	PlaceID      string              `json:"place_id"`
	Latitude     decimal.NullDecimal `json:"latitude"`
	Longitude    decimal.NullDecimal `json:"longitude"`
	Reviews      []string            `json:"reviews"`
}

type imagePersister interface {
	Persist(ctx context.Context, key, sourceURL string) (string, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(s *storage.Tx) error) error
}

type importStats struct {
	Imported   int
	Duplicates int
	Invalid    int
	ImageFails int
}

type importer struct {
	store   txRunner
	images  imagePersister // nil: keep image urls as given
	workers int
	logger  *zap.SugaredLogger
}

type pendingCard struct {
	card    *cards.Card
	reviews []string
}

func importCmd(ctx context.Context, logger *zap.SugaredLogger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	file := fs.String("file", "", "JSON file holding an array of cards")
	persist := fs.Bool("persist-images", false, "copy image_url to Cloudinary (needs CLOUDINARY_URL)")
	workers := fs.Int("workers", 4, "concurrent image uploads")
	folder := fs.String("folder", imagestore.DefaultFolder, "Cloudinary folder")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("import: -file is required")
	}

	records, err := readRecords(*file)
	if err != nil {
		return err
	}

	im := &importer{workers: *workers, logger: logger}

	if *persist {
		cld, err := imagestore.NewCloudinaryFromURL(os.Getenv("CLOUDINARY_URL"), *folder)
		if err != nil {
			return err
		}
		im.images = cld
	}

	pool, err := openPool()
	if err != nil {
		return err
	}
	defer pool.Close()
	im.store = storage.NewContainer(pool)

	stats, err := im.run(ctx, records)
	if err != nil {
		return err
	}
	logger.Infow("import finished",
		"file", *file,
		"imported", stats.Imported,
		"duplicates", stats.Duplicates,
		"invalid", stats.Invalid,
		"image_failures", stats.ImageFails,
	)
	return nil
}

func readRecords(path string) ([]cardRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []cardRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

// toCard fills what the collectors leave out: the region from the address
// and a search link when there is no external link.
func (r cardRecord) toCard() *cards.Card {
	c := &cards.Card{
		Title:        strings.TrimSpace(r.Title),
		Genre:        &r.Genre,
		Rating:       r.Rating,
		ReviewCount:  r.ReviewCount,
		ImageURL:     &r.ImageURL,
		ExternalLink: &r.ExternalLink,
		Region:       &r.Region,
		Address:      &r.Address,
		PlaceID:      &r.PlaceID,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
	}

	if strings.TrimSpace(r.Region) == "" {
		if reg, ok := region.FromAddress(r.Address); ok {
			c.Region = &reg
		}
	}
	if strings.TrimSpace(r.ExternalLink) == "" && c.Title != "" {
		link := searchURL + url.QueryEscape(c.Title)
		c.ExternalLink = &link
	}
	return c
}

func (im *importer) run(ctx context.Context, records []cardRecord) (importStats, error) {
	var stats importStats

	pending := make([]pendingCard, 0, len(records))
	for i, rec := range records {
		c := rec.toCard()
		if err := c.Validate(); err != nil {
			stats.Invalid++
			im.logger.Warnw("skipping invalid card", "index", i, "title", rec.Title, "error", err)
			continue
		}
		pending = append(pending, pendingCard{card: c, reviews: nonBlank(rec.Reviews)})
	}

	if im.images != nil {
		stats.ImageFails = im.persistImages(ctx, pending)
	}

	for _, p := range pending {
		err := im.store.WithTx(ctx, func(tx *storage.Tx) error {
			if err := tx.Cards.Create(ctx, p.card); err != nil {
				return err
			}
			return tx.Cards.AddReviewComments(ctx, p.card.ID, p.reviews)
		})
		switch {
		case errors.Is(err, cards.ErrDuplicatePlaceID):
			stats.Duplicates++
		case err != nil:
			return stats, fmt.Errorf("import %q: %w", p.card.Title, err)
		default:
			stats.Imported++
		}
	}

	return stats, nil
}

// persistImages swaps image urls for Cloudinary copies. A failed upload keeps
// the original url and is only counted.
func (im *importer) persistImages(ctx context.Context, pending []pendingCard) int {
	failed := make([]bool, len(pending))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(im.workers, 1))

	for i := range pending {
		c := pending[i].card
		if c.ImageURL == nil {
			continue
		}
		key := imagestore.PublicID(c.Title)
		if c.PlaceID != nil {
			key = *c.PlaceID
		}
		if key == "" {
			key = fmt.Sprintf("card_%d", i)
		}
		g.Go(func() error {
			hosted, err := im.images.Persist(ctx, key, *c.ImageURL)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				im.logger.Warnw("image upload failed", "title", c.Title, "error", err)
				failed[i] = true
				return nil
			}
			c.ImageURL = &hosted
			return nil
		})
	}
	_ = g.Wait()

	n := 0
	for _, f := range failed {
		if f {
			n++
		}
	}
	return n
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
