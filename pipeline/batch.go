package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Run converts every chart named by cfg.Inputs. A failing chart is recorded
// in the report and does not stop the others; the returned error is only for
// discovery problems or cancellation.
func Run(ctx context.Context, cfg Config) (Report, error) {
	files, err := Discover(cfg.Inputs)
	if err != nil {
		return Report{}, err
	}

	cache, err := lru.New[string, *Output](max(cfg.CacheSize, 1))
	if err != nil {
		return Report{}, errors.Wrap(err, "cache")
	}

	log.Printf("=== Convert %d charts ===", len(files))
	results := make([]Result, len(files))
	for i, f := range files {
		results[i] = Result{Input: f, Err: errors.New("not scheduled")}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i, f := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = runOne(gctx, &cfg, cache, f)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Results: results}
	for _, r := range results {
		name := filepath.Base(r.Input)
		switch {
		case r.Err != nil:
			log.Printf("  %s: FAIL %v", name, r.Err)
		case r.Cached:
			log.Printf("  %s: %d notes, %d links, %d pages (cached)", name, r.Notes, r.Links, r.Pages)
		default:
			log.Printf("  %s: %d notes, %d links, %d pages", name, r.Notes, r.Links, r.Pages)
		}
		if r.LayoutErr != nil {
			log.Printf("  %s: no preview: %v", name, r.LayoutErr)
		}
	}
	log.Printf("Converted %d, failed %d", len(results)-report.Failed(), report.Failed())

	return report, ctx.Err()
}

func runOne(ctx context.Context, cfg *Config, cache *lru.Cache[string, *Output], input string) Result {
	res := Result{Input: input}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		res.Err = errors.Wrap(err, "read chart")
		return res
	}

	sum := sha256.Sum256(raw)
	key := hex.EncodeToString(sum[:])
	out, ok := cache.Get(key)
	if ok {
		res.Cached = true
	} else {
		out, err = Convert(raw, *cfg)
		if err != nil {
			res.Err = err
			return res
		}
		cache.Add(key, out)
	}

	res.BrokenLinks = out.BrokenLinks
	res.LayoutErr = out.LayoutErr
	res.Pages = len(out.Layout.Pages)
	if out.ConvertErr == nil {
		res.Notes = len(out.Converted.Notes)
		res.Links = len(out.Converted.Links)
		res.BPM = out.Converted.BPM
	}

	res.Files, err = writeOutputs(cfg, input, out)
	if err == nil {
		err = out.ConvertErr
	}
	res.Err = err
	return res
}
