package txrrc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/normalize"
	"github.com/blackthreadai/wildcatter/pkg/source"
	"github.com/blackthreadai/wildcatter/pkg/source/bulkcsv"
	"github.com/blackthreadai/wildcatter/pkg/source/fixedwidth"
	"github.com/blackthreadai/wildcatter/pkg/source/httpx"
	"github.com/blackthreadai/wildcatter/pkg/source/stage"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

const sourceTag = "tx_rrc"

const (
	pdqURL      = "https://webapps.rrc.texas.gov/PDQ/generalReportAction.do?method=exportPDQData"
	wellboreURL = "https://mft.rrc.texas.gov/link/wellbore-p5-fixed-width.dat"
)

// Adapter implements source.Adapter for tx_rrc.
type Adapter struct{}

// New returns the tx_rrc adapter.
func New() *Adapter { return &Adapter{} }

// Tag returns "tx_rrc".
func (a *Adapter) Tag() string { return sourceTag }

// Run downloads (or reuses) the staged PDQ CSV dump and the fixed-width
// wellbore file, streams both, and maps them into a canonical Batch.
func (a *Adapter) Run(ctx context.Context, cfg source.Config) (*types.Batch, error) {
	logger := log.WithComponent("source." + sourceTag)

	dir, err := a.stageDir(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("staging failed: %w", err)
	}

	batch := &types.Batch{
		SourceTag: sourceTag,
		SourceURL: pdqURL,
		Assets:    make(map[string]*types.Asset),
	}

	if err := a.parseWellbore(filepath.Join(dir, "wellbore.dat"), batch); err != nil {
		logger.Error().Err(err).Msg("wellbore parse failed, continuing with PDQ only")
	}

	if err := a.parsePDQ(filepath.Join(dir, "pdq.csv"), batch); err != nil {
		return nil, fmt.Errorf("PDQ parse failed: %w", err)
	}

	logger.Info().Int("assets", len(batch.Assets)).Int("operators", len(batch.Operators)).
		Int("production", len(batch.Productions)).Int("parse_errors", batch.ParseErrors).Msg("batch mapped")

	return batch, nil
}

func (a *Adapter) stageDir(ctx context.Context, cfg source.Config) (string, error) {
	if !cfg.Download {
		return stage.Latest(cfg.DataDir, sourceTag)
	}

	dir, err := stage.Dir(cfg.DataDir, sourceTag, time.Now())
	if err != nil {
		return "", err
	}

	doer := httpx.New("source."+sourceTag, httpx.BulkPolicy(), nil)
	if err := download(ctx, doer, pdqURL, filepath.Join(dir, "pdq.csv")); err != nil {
		return "", fmt.Errorf("PDQ download failed: %w", err)
	}
	if err := download(ctx, doer, wellboreURL, filepath.Join(dir, "wellbore.dat")); err != nil {
		return "", fmt.Errorf("wellbore download failed: %w", err)
	}
	return dir, nil
}

func download(ctx context.Context, doer *httpx.Doer, url, dest string) error {
	resp, err := doer.Do(ctx, "GET", url, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	ok, err := stage.CheckIntegrity(dest)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s failed integrity check (HTML error page)", dest)
	}
	return nil
}

func (a *Adapter) parseWellbore(path string, batch *types.Batch) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := fixedwidth.NewReader(f, wellboreLayout)
	for {
		rec, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		mapWellboreRecord(rec, batch)
	}
	batch.ParseErrors += r.ShortLines
	return nil
}

func (a *Adapter) parsePDQ(path string, batch *types.Batch) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := bulkcsv.NewReader(f)
	if err != nil {
		return err
	}

	operatorSeen := make(map[string]bool)
	for {
		rec, ok, err := r.Next()
		if err != nil {
			batch.ParseErrors++
			continue
		}
		if !ok {
			break
		}
		mapPDQRecord(rec, batch, operatorSeen)
	}
	return nil
}

// AssetIDFor builds the deterministic tx_rrc asset ID from an API
// number, exported so the adapter's tests and the mapper agree on one
// construction path.
func AssetIDFor(apiNumber string) string {
	return normalize.AssetIDFromAPINumber(sourceTag, apiNumber, 10)
}
