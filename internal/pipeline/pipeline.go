package pipeline

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockfeed/internal/brands"
	"stockfeed/internal/config"
	"stockfeed/internal/feed"
	"stockfeed/internal/model"
	"stockfeed/internal/oem"
	"stockfeed/internal/pricing"
	"stockfeed/internal/sheet"
	"stockfeed/internal/store"
	"stockfeed/internal/upload"
)

// Runner executes full pipeline runs and records them in the run log.
type Runner struct {
	store *store.Store
}

// NewRunner creates a pipeline runner.
func NewRunner(st *store.Store) *Runner {
	return &Runner{store: st}
}

// Options selects the configuration of one run.
type Options struct {
	Config *config.AppConfig
	// SkipUpload suppresses the FTP pushes even when the config enables
	// them. Used for dry runs from the control surface.
	SkipUpload bool
}

// ProgressEvent is one milestone of a running pipeline, streamed to the
// control surface while the run is in flight.
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/stage/done/error
	Message   string      `json:"message"` // human-readable milestone
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Result summarizes a finished run.
type Result struct {
	RunID      string          `json:"run_id"`
	MergedRows int             `json:"merged_rows"`
	TuleroRows int             `json:"tulero_rows"`
	Tyre24Rows int             `json:"tyre24_rows"`
	TuleroPath string          `json:"tulero_path"`
	Tyre24Path string          `json:"tyre24_path"`
	Uploads    []upload.Result `json:"uploads"`
	Duration   time.Duration   `json:"duration"`
}

// Run starts a pipeline run and returns its progress channel. The channel
// is closed when the run finishes; the final event is either "done" with
// a *Result payload or "error".
func (r *Runner) Run(opts Options) <-chan ProgressEvent {
	progress := make(chan ProgressEvent, 100)

	go func() {
		defer close(progress)
		r.doRun(opts, progress)
	}()

	return progress
}

func (r *Runner) doRun(opts Options, progress chan ProgressEvent) {
	start := time.Now()
	cfg := opts.Config
	runID := uuid.NewString()

	if r.store != nil {
		if err := r.store.CreateRun(runID, start); err != nil {
			send(progress, "error", fmt.Sprintf("start run log: %v", err), nil)
			return
		}
	}

	fail := func(stage string, err error) {
		msg := fmt.Sprintf("%s: %v", stage, err)
		if r.store != nil {
			r.store.FailRun(runID, msg)
		}
		send(progress, "error", msg, map[string]string{"run_id": runID})
	}

	send(progress, "start", "pipeline run started", map[string]string{"run_id": runID})

	// Source workbooks.
	warehouseTable, err := sheet.LoadWorkbook(inputPath(cfg.Inputs.WarehouseFile), sheet.SourceWarehouse)
	if err != nil {
		fail("load warehouse file", err)
		return
	}
	articlesTable, err := sheet.LoadWorkbook(inputPath(cfg.Inputs.ArticlesFile), sheet.SourceArticles)
	if err != nil {
		fail("load articles file", err)
		return
	}
	send(progress, "stage", "workbooks loaded", nil)

	warehouse, wstats, err := sheet.NormalizeWarehouse(warehouseTable, filepath.Base(cfg.Inputs.WarehouseFile))
	if err != nil {
		fail("clean warehouse data", err)
		return
	}
	articles, astats, err := sheet.NormalizeArticles(articlesTable, filepath.Base(cfg.Inputs.ArticlesFile))
	if err != nil {
		fail("clean articles data", err)
		return
	}
	send(progress, "stage", "source data cleaned", map[string]string{
		"warehouse": wstats.String(),
		"articles":  astats.String(),
	})

	// Lookup tables.
	oemTable, err := oem.LoadFolder(inputPath(cfg.Inputs.OEMFolder))
	if err != nil {
		fail("load oem tables", err)
		return
	}
	synonyms, err := brands.LoadSynonyms(inputPath(cfg.Inputs.BrandsFile))
	if err != nil {
		fail("load brands file", err)
		return
	}
	tecdoc, err := brands.LoadTecDoc(inputPath(cfg.Inputs.TecdocFile))
	if err != nil {
		fail("load tecdoc file", err)
		return
	}
	send(progress, "stage", fmt.Sprintf("lookup tables loaded: %d oem keys, %d tecdoc brands", oemTable.Len(), tecdoc.Len()), nil)

	merged := Merge(articles, warehouse)
	send(progress, "stage", fmt.Sprintf("merged %d rows", len(merged)), nil)

	// The two marketplace tails run concurrently on independent copies.
	var (
		wg         sync.WaitGroup
		tuleroRows []model.TuleroRow
		tyre24Rows []model.Tyre24Row
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		tuleroRows = BuildTulero(model.CloneMerged(merged), TuleroInputs{
			OEM:      oemTable,
			Synonyms: synonyms,
			Ignored:  brands.Ignored,
			Pricing: pricing.Params{
				Markup:   decimal.NewFromFloat(cfg.Tulero.Markup),
				Shipping: decimal.NewFromFloat(cfg.Tulero.Shipping),
			},
		})
	}()
	go func() {
		defer wg.Done()
		tyre24Rows = BuildTyre24(model.CloneMerged(merged), Tyre24Inputs{
			TecDoc: tecdoc,
			Pricing: pricing.DualParams{
				MarkupHome:  decimal.NewFromFloat(cfg.Tyre24.MarkupIT),
				ShipHome:    decimal.NewFromFloat(cfg.Tyre24.ShippingIT),
				MarkupOther: decimal.NewFromFloat(cfg.Tyre24.MarkupDE),
				ShipOther:   decimal.NewFromFloat(cfg.Tyre24.ShippingDE),
			},
		})
	}()
	wg.Wait()
	send(progress, "stage", fmt.Sprintf("feeds built: %d tulero rows, %d tyre24 rows", len(tuleroRows), len(tyre24Rows)), nil)

	outDir, err := config.EnsureOutputFolder(cfg)
	if err != nil {
		fail("prepare output folder", err)
		return
	}
	res := &Result{
		RunID:      runID,
		MergedRows: len(merged),
		TuleroRows: len(tuleroRows),
		Tyre24Rows: len(tyre24Rows),
		TuleroPath: filepath.Join(outDir, feed.TuleroFileName),
		Tyre24Path: filepath.Join(outDir, feed.Tyre24FileName),
	}

	if err := feed.WriteTulero(res.TuleroPath, tuleroRows); err != nil {
		fail("write tulero feed", err)
		return
	}
	if err := feed.WriteTyre24(res.Tyre24Path, tyre24Rows); err != nil {
		fail("write tyre24 feed", err)
		return
	}
	send(progress, "stage", "feed files written", map[string]string{
		"tulero": res.TuleroPath,
		"tyre24": res.Tyre24Path,
	})

	if !opts.SkipUpload {
		res.Uploads = r.pushFeeds(cfg, runID, res, progress)
	}

	res.Duration = time.Since(start)
	if r.store != nil {
		r.store.FinishRun(runID, store.RunSummary{
			MergedRows: res.MergedRows,
			TuleroRows: res.TuleroRows,
			Tyre24Rows: res.Tyre24Rows,
		})
	}

	// Successful runs persist the settings they ran with, so the next
	// session starts from them.
	if err := config.SaveConfig(cfg); err != nil {
		log.Printf("pipeline: save config: %v", err)
	}

	send(progress, "done", "pipeline run finished", res)
}

// pushFeeds uploads the enabled feeds and records every attempt.
func (r *Runner) pushFeeds(cfg *config.AppConfig, runID string, res *Result, progress chan ProgressEvent) []upload.Result {
	var results []upload.Result

	targets := []struct {
		name    string
		enabled bool
		ftp     config.FTPConfig
		path    string
	}{
		{"tulero", cfg.Tulero.Upload, cfg.Tulero.FTP, res.TuleroPath},
		{"tyre24", cfg.Tyre24.Upload, cfg.Tyre24.FTP, res.Tyre24Path},
	}

	for _, t := range targets {
		if !t.enabled {
			continue
		}
		send(progress, "stage", fmt.Sprintf("uploading %s feed", t.name), nil)
		ur := upload.Push(upload.Target{
			Host:     t.ftp.Host,
			User:     t.ftp.User,
			Password: t.ftp.Password,
			Dir:      t.ftp.Dir,
		}, t.path)
		if r.store != nil {
			if err := r.store.RecordUpload(runID, t.name, ur); err != nil {
				log.Printf("pipeline: record %s upload: %v", t.name, err)
			}
		}
		if !ur.OK() {
			send(progress, "stage", fmt.Sprintf("upload %s failed: %s", t.name, ur.Error), nil)
		}
		results = append(results, ur)
	}
	return results
}

func send(ch chan ProgressEvent, typ, msg string, data interface{}) {
	ch <- ProgressEvent{Type: typ, Message: msg, Data: data, Timestamp: time.Now()}
}

func inputPath(p string) string {
	return config.ResolvePath(p)
}
