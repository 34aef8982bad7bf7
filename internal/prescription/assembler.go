package prescription

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/drbusiness/platform/internal/consultation"
	"github.com/drbusiness/platform/internal/imagegen"
)

// DefaultImageDelay spaces out the per-post image requests to stay under the
// image model's rate limits.
const DefaultImageDelay = time.Second

// Synthesizer generates a marketing graphic for a visual prompt.
type Synthesizer interface {
	Synthesize(ctx context.Context, visualPrompt string) (imagegen.Image, error)
}

// BrandApplier stamps a logo onto an image. Branding never fails; the worst
// outcome is the unbranded input.
type BrandApplier interface {
	Brand(ctx context.Context, base, logo imagegen.Image) imagegen.Image
}

// Uploader stores an image and returns its permanent URL.
type Uploader interface {
	Upload(ctx context.Context, img imagegen.Image) (string, error)
}

// Assembler runs the full prescription pipeline: three parallel text
// generations, then a sequential image pipeline over the week-1 posts.
type Assembler struct {
	gen      *Generator
	synth    Synthesizer
	brander  BrandApplier
	uploader Uploader
	delay    time.Duration
}

func NewAssembler(gen *Generator, synth Synthesizer, brander BrandApplier, uploader Uploader, delay time.Duration) *Assembler {
	return &Assembler{
		gen:      gen,
		synth:    synth,
		brander:  brander,
		uploader: uploader,
		delay:    delay,
	}
}

// GeneratePrescription assembles the complete prescription. The three text
// generations run in parallel and all must succeed; there is no partial
// prescription. Image failures only cost individual posts their image.
func (a *Assembler) GeneratePrescription(ctx context.Context, d consultation.ConsultationData) (*Prescription, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var (
		strategy Strategy
		week1    []DetailedPost
		future   []FutureWeek
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		strategy, err = a.gen.GenerateStrategy(gctx, d)
		return err
	})
	g.Go(func() error {
		var err error
		week1, err = a.gen.GenerateWeek1(gctx, d)
		return err
	})
	g.Go(func() error {
		var err error
		future, err = a.gen.GenerateFutureWeeks(gctx, d)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.attachImages(ctx, week1, DecodeLogo(d.Business.LogoImage))

	return &Prescription{
		Strategy:        strategy,
		Week1Plan:       week1,
		FutureWeeksPlan: future,
	}, nil
}

// AssembleDetailedWeek expands a future week's ideas into detailed posts and
// runs the same image pipeline over them.
func (a *Assembler) AssembleDetailedWeek(ctx context.Context, d consultation.ConsultationData, ideas []SimplePost) ([]DetailedPost, error) {
	posts, err := a.gen.GenerateDetailedWeek(ctx, d, ideas)
	if err != nil {
		return nil, err
	}
	a.attachImages(ctx, posts, DecodeLogo(d.Business.LogoImage))
	return posts, nil
}

// RegeneratePostImage runs the image pipeline for a single post and returns
// the new hosted URL. Unlike batch assembly, failures here propagate so the
// caller can surface them.
func (a *Assembler) RegeneratePostImage(ctx context.Context, d consultation.ConsultationData, post DetailedPost) (string, error) {
	img, err := a.synth.Synthesize(ctx, post.VisualPrompt)
	if err != nil {
		return "", err
	}
	img = a.brander.Brand(ctx, img, DecodeLogo(d.Business.LogoImage))
	return a.uploader.Upload(ctx, img)
}

// attachImages runs synthesize, brand, upload for each post in order, with a
// delay between posts. A failed post keeps an empty GeneratedImage and the
// loop moves on.
func (a *Assembler) attachImages(ctx context.Context, posts []DetailedPost, logo imagegen.Image) {
	for i := range posts {
		if i > 0 && a.delay > 0 {
			select {
			case <-time.After(a.delay):
			case <-ctx.Done():
				slog.Warn("image pipeline cancelled", "remaining_posts", len(posts)-i)
				return
			}
		}

		post := &posts[i]
		img, err := a.synth.Synthesize(ctx, post.VisualPrompt)
		if err != nil {
			slog.Warn("image synthesis failed, post keeps no image", "day", post.Day, "error", err)
			continue
		}

		img = a.brander.Brand(ctx, img, logo)

		url, err := a.uploader.Upload(ctx, img)
		if err != nil {
			slog.Warn("image upload failed, post keeps no image", "day", post.Day, "error", err)
			continue
		}
		post.GeneratedImage = url
		slog.Debug("post image attached", "day", post.Day, "url", url)
	}
}

// DecodeLogo turns the stored logo (a base64 data URL or raw base64) into an
// Image. Anything undecodable yields an empty Image, meaning no branding.
func DecodeLogo(logo string) imagegen.Image {
	if logo == "" {
		return imagegen.Image{}
	}
	mime := "image/png"
	data := logo
	if strings.HasPrefix(logo, "data:") {
		rest := strings.TrimPrefix(logo, "data:")
		semi := strings.Index(rest, ";base64,")
		if semi < 0 {
			return imagegen.Image{}
		}
		mime = rest[:semi]
		data = rest[semi+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		slog.Warn("logo image is not valid base64, branding skipped", "error", err)
		return imagegen.Image{}
	}
	return imagegen.Image{Bytes: raw, MimeType: mime}
}
