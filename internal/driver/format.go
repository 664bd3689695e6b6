package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"taskfmt/internal/diag"
	"taskfmt/internal/dialect"
	"taskfmt/internal/format"
	"taskfmt/internal/logger"
	"taskfmt/internal/observ"
	"taskfmt/internal/project"
	"taskfmt/internal/source"
)

// FormatOptions configures Taskfile formatting.
type FormatOptions struct {
	Check          bool
	Stdout         bool
	Jobs           int
	MaxDiagnostics int
	Exclude        []string
	Options        format.Options

	// Cache is optional; nil disables the clean-file cache.
	Cache    *CleanCache
	Progress ProgressSink
	Timer    *observ.Timer
	// FileSet receives every loaded file. A fresh set is used when nil.
	FileSet *source.FileSet
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path    string
	Changed bool
	// Cached is set when the clean-file cache skipped parsing.
	Cached    bool
	Err       error
	Formatted []byte
	Bag       *diag.Bag
}

func (o FormatOptions) withDefaults() FormatOptions {
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = 256
	}
	if o.FileSet == nil {
		o.FileSet = source.NewFileSet()
	}
	if o.Timer == nil {
		o.Timer = observ.NewTimer()
	}
	return o
}

// FormatPaths formats provided files or directories (recursively collecting
// Taskfiles). When opts.Check is true, files are not modified; Changed
// indicates whether formatting would update the file contents. When
// opts.Stdout is true, formatted content is returned in the results without
// touching files on disk. Results are sorted by path.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	log := logger.FromContext(ctx)
	plugin := dialect.NewPlugin(opts.Options)

	idx := opts.Timer.Begin("collect")
	files, err := collectFiles(ctx, paths, plugin, opts.Exclude)
	opts.Timer.End(idx, "")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoTaskfiles
	}
	log.Debug("collected taskfiles", "count", len(files), "jobs", opts.Jobs)

	rev := Revision(opts.Options)
	emitQueued(opts.Progress, files)

	// each worker writes only its own slot
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(gctx, plugin, path, rev, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	emit(opts.Progress, Event{Stage: StageWrite, Status: StatusDone})
	return results, nil
}

// FormatSource formats in-memory content, such as stdin. name is used for
// diagnostics only. Nothing is written and the cache is not consulted.
func FormatSource(ctx context.Context, name string, content []byte, opts FormatOptions) (FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return FormatResult{}, err
	}
	opts = opts.withDefaults()
	plugin := dialect.NewPlugin(opts.Options)
	parser, printer, _ := plugin.Entries(dialect.Taskfile)

	res := FormatResult{Path: name, Bag: diag.NewBag(opts.MaxDiagnostics)}
	reporter := diag.NewBagReporter(res.Bag)

	id := opts.FileSet.AddVirtual(name, content)
	sf := opts.FileSet.Get(id)

	out, err := runPipeline(parser, printer, sf, reporter, opts.Timer)
	if err != nil {
		res.Err = err
		return res, nil
	}
	res.Changed = !bytes.Equal(out, sf.Content)
	res.Formatted = sf.Restore(out)
	if opts.Check && res.Changed {
		reportUnformatted(reporter, name)
	}
	return res, nil
}

func runPipeline(parser dialect.Parser, printer dialect.Printer, sf *source.File, r diag.Reporter, timer *observ.Timer) ([]byte, error) {
	idx := timer.Begin(string(StageParse))
	doc, err := parser.Parse(sf.Path, sf.Content, r)
	timer.End(idx, "")
	if err != nil {
		return nil, err
	}
	idx = timer.Begin(string(StageFormat))
	out, err := printer.Print(sf.Path, doc, r)
	timer.End(idx, "")
	return out, err
}

func formatFile(ctx context.Context, plugin *dialect.Plugin, path string, rev project.Digest, opts FormatOptions) FormatResult {
	log := logger.FromContext(ctx).With("file", path)
	start := time.Now()
	res := FormatResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	reporter := diag.NewBagReporter(res.Bag)

	fail := func(stage Stage, err error) FormatResult {
		res.Err = err
		emit(opts.Progress, Event{File: path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		log.Debug("format failed", "stage", stage, "err", err)
		return res
	}

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	idx := opts.Timer.Begin(string(StageRead))
	id, err := opts.FileSet.Load(path)
	opts.Timer.End(idx, "")
	if err != nil {
		diag.ReportError(reporter, diag.IOLoadFileError, diag.At(path, 0, 0), err.Error()).Emit()
		return fail(StageRead, err)
	}
	sf := opts.FileSet.Get(id)

	key := CleanKey(project.Digest(sf.Hash), rev)
	if opts.Cache != nil && opts.Cache.IsClean(key) {
		res.Cached = true
		if opts.Stdout {
			res.Formatted = sf.Restore(sf.Content)
		}
		log.Debug("clean cache hit")
		emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusDone, Elapsed: time.Since(start)})
		return res
	}

	parser, printer, ok := plugin.Entries(dialect.Taskfile)
	if lang, found := plugin.LanguageFor(path); found {
		parser, printer, ok = plugin.Entries(lang)
	}
	if !ok {
		return fail(StageParse, fmt.Errorf("format: no printer for %s", path))
	}

	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	out, err := runPipeline(parser, printer, sf, reporter, opts.Timer)
	if err != nil {
		return fail(StageFormat, err)
	}
	res.Changed = !bytes.Equal(out, sf.Content)

	if !res.Changed && opts.Cache != nil {
		rec := &CleanRecord{Path: path, Size: len(sf.Content), ContentHash: project.Digest(sf.Hash), Revision: rev}
		if err := opts.Cache.Put(key, rec); err != nil {
			log.Warn("failed to update clean cache", "err", err)
		}
	}

	switch {
	case opts.Check:
		if res.Changed {
			reportUnformatted(reporter, path)
		}
	case opts.Stdout:
		res.Formatted = sf.Restore(out)
	case res.Changed:
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		idx := opts.Timer.Begin(string(StageWrite))
		err := writeFile(path, sf.Restore(out))
		opts.Timer.End(idx, "")
		if err != nil {
			diag.ReportError(reporter, diag.IOWriteFileError, diag.At(path, 0, 0), err.Error()).Emit()
			return fail(StageWrite, err)
		}
		log.Info("reformatted")
	}

	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusDone, Elapsed: time.Since(start)})
	return res
}

func reportUnformatted(r diag.Reporter, path string) {
	diag.ReportWarning(r, diag.FmtNeedsFormatting, diag.At(path, 0, 0), "file is not formatted").Emit()
}

// writeFile replaces path with data, keeping its permission bits.
func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, data, mode.Perm())
}
