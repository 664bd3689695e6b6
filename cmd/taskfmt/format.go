package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"taskfmt/internal/diag"
	"taskfmt/internal/diagfmt"
	"taskfmt/internal/document"
	"taskfmt/internal/driver"
	"taskfmt/internal/format"
	"taskfmt/internal/logger"
	"taskfmt/internal/observ"
	"taskfmt/internal/project"
	"taskfmt/internal/source"
	"taskfmt/internal/version"
)

const (
	cacheApp  = "taskfmt"
	stdinName = "<stdin>"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path|-> [path...]",
	Short: "Format Taskfiles",
	Long: `Format Taskfiles in place. Directories are searched recursively for
Taskfile.yml, Taskfile.yaml, taskfile.yml and taskfile.yaml; files named
explicitly are always formatted. "-" reads a Taskfile from stdin and writes
the result to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|short|json|sarif)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted Taskfiles to stdout instead of rewriting files")
	fmtCmd.Flags().Int("jobs", 0, "parallel workers (0 = config or GOMAXPROCS)")
	fmtCmd.Flags().StringArray("exclude", nil, "doublestar pattern to skip while walking directories (repeatable)")
	fmtCmd.Flags().Bool("no-cache", false, "ignore the clean-file cache")
	fmtCmd.Flags().String("ui", "", "progress UI (auto|on|off; default from config)")
}

type fmtFlags struct {
	check          bool
	outputFormat   string
	stdout         bool
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	flags, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, mode, err := buildFormatOptions(cmd, cfg.Format, flags)
	if err != nil {
		return err
	}
	log := logger.FromContext(cmd.Context())

	if len(args) == 1 && args[0] == "-" {
		return runFmtStdin(cmd, flags, opts)
	}

	if opts.Cache != nil {
		log.Debug("using clean-file cache", "dir", opts.Cache.Dir())
	}

	var results []driver.FormatResult
	useUI := flags.outputFormat == "text" && !flags.stdout && !flags.quiet && shouldUseTUI(mode)
	if useUI {
		files, collectErr := driver.CollectFiles(cmd.Context(), args, opts.Exclude)
		if collectErr != nil {
			return collectErr
		}
		if len(files) == 0 {
			return driver.ErrNoTaskfiles
		}
		results, err = runFormatWithUI(cmd.Context(), "taskfmt fmt", files, opts)
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}
	return reportFmtResults(cmd, flags, opts, results)
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var f fmtFlags
	var err error
	if f.check, err = cmd.Flags().GetBool("check"); err != nil {
		return f, err
	}
	if f.outputFormat, err = cmd.Flags().GetString("format"); err != nil {
		return f, err
	}
	if f.stdout, err = cmd.Flags().GetBool("stdout"); err != nil {
		return f, err
	}
	if f.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return f, err
	}
	if f.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return f, err
	}
	if f.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return f, err
	}

	switch f.outputFormat {
	case "text", "short", "json", "sarif":
	default:
		return f, fmt.Errorf("fmt: unsupported output format %q", f.outputFormat)
	}
	if f.stdout && f.check {
		return f, fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if f.stdout && f.outputFormat != "text" {
		return f, fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	return f, nil
}

// buildFormatOptions merges the [format] table with flags; flags that were
// set explicitly win.
func buildFormatOptions(cmd *cobra.Command, cfg project.FormatConfig, flags fmtFlags) (driver.FormatOptions, uiMode, error) {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return driver.FormatOptions{}, "", err
	}
	if !cmd.Flags().Changed("jobs") {
		jobs = cfg.EffectiveJobs()
	}
	if jobs < 0 {
		return driver.FormatOptions{}, "", fmt.Errorf("fmt: --jobs must be >= 0")
	}

	exclude, err := cmd.Flags().GetStringArray("exclude")
	if err != nil {
		return driver.FormatOptions{}, "", err
	}
	exclude = append(append([]string(nil), cfg.Exclude...), exclude...)

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return driver.FormatOptions{}, "", err
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return driver.FormatOptions{}, "", err
	}
	if !cmd.Flags().Changed("ui") {
		uiValue = cfg.UI
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return driver.FormatOptions{}, "", err
	}

	stringify := document.DefaultStringifyOptions()
	if cfg.Indent > 0 {
		stringify.Indent = cfg.Indent
	}
	if err := stringify.Validate(); err != nil {
		return driver.FormatOptions{}, "", err
	}

	wd, err := os.Getwd()
	if err != nil {
		return driver.FormatOptions{}, "", err
	}
	opts := driver.FormatOptions{
		Check:          flags.check,
		Stdout:         flags.stdout,
		Jobs:           jobs,
		MaxDiagnostics: flags.maxDiagnostics,
		Exclude:        exclude,
		Options:        format.Options{Stringify: stringify},
		Timer:          observ.NewTimer(),
		FileSet:        source.NewFileSetWithBase(wd),
	}
	if cfg.Cache && !noCache {
		cache, err := driver.OpenCleanCache(cacheApp)
		if err != nil {
			logger.FromContext(cmd.Context()).Warn("clean-file cache disabled", "err", err)
		} else {
			opts.Cache = cache
		}
	}
	return opts, mode, nil
}

func runFmtStdin(cmd *cobra.Command, flags fmtFlags, opts driver.FormatOptions) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("fmt: failed to read stdin: %w", err)
	}
	res, err := driver.FormatSource(cmd.Context(), stdinName, content, opts)
	if err != nil {
		return err
	}
	if res.Err == nil && !flags.check && flags.outputFormat == "text" {
		if _, err := cmd.OutOrStdout().Write(res.Formatted); err != nil {
			return err
		}
		return nil
	}
	return reportFmtResults(cmd, flags, opts, []driver.FormatResult{res})
}

func reportFmtResults(cmd *cobra.Command, flags fmtFlags, opts driver.FormatOptions, results []driver.FormatResult) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	bag := diag.NewBag(flags.maxDiagnostics)
	var hasErrors, hasChanges bool
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
		}
		if res.Changed {
			hasChanges = true
		}
		bag.Merge(res.Bag)
	}
	bag.Sort()

	switch flags.outputFormat {
	case "text":
		if flags.stdout {
			renderFmtStdout(stdout, results)
		} else {
			renderFmtText(stdout, results, flags.check, flags.quiet)
		}
		errBag := diag.NewBag(flags.maxDiagnostics)
		for _, d := range bag.Items() {
			if d.Severity >= diag.SevError {
				errBag.Add(d)
			}
		}
		useColor, err := colorEnabled(cmd, os.Stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(stderr, errBag, opts.FileSet, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   1,
			PathMode:  diagfmt.PathModeRelative,
			ShowNotes: true,
		})
		if flags.timings {
			printPhaseTimings(stderr, opts.Timer, len(results))
		}
	case "short":
		if flags.timings {
			driver.AppendTimingDiagnostic(bag, opts.Timer, len(results))
		}
		if out := diag.FormatShortDiagnostics(bag.Items(), opts.FileSet.BaseDir(), true); out != "" {
			fmt.Fprintln(stdout, out)
		}
	case "json":
		if flags.timings {
			driver.AppendTimingDiagnostic(bag, opts.Timer, len(results))
		}
		if err := renderFmtJSON(stdout, results, bag, opts, flags.check); err != nil {
			return err
		}
	case "sarif":
		if flags.timings {
			driver.AppendTimingDiagnostic(bag, opts.Timer, len(results))
		}
		meta := diagfmt.SarifRunMeta{
			ToolName:       "taskfmt",
			ToolVersion:    version.Current().Version,
			InvocationArgs: os.Args[1:],
		}
		if err := diagfmt.Sarif(stdout, bag, opts.FileSet, meta); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if flags.check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func renderFmtStdout(out io.Writer, results []driver.FormatResult) {
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
}

func renderFmtText(out io.Writer, results []driver.FormatResult, check, quiet bool) {
	if quiet {
		return
	}
	for _, res := range results {
		if res.Err != nil || !res.Changed {
			continue
		}
		if check {
			fmt.Fprintln(out, res.Path)
			continue
		}
		fmt.Fprintf(out, "reformatted %s\n", res.Path)
	}
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, bag *diag.Bag, opts driver.FormatOptions, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Cached   bool   `json:"cached,omitempty"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}
	type jsonPayload struct {
		Files       []jsonResult              `json:"files"`
		Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
	}

	payload := jsonPayload{Files: make([]jsonResult, 0, len(results))}
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, Cached: res.Cached, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload.Files = append(payload.Files, jr)
	}
	payload.Diagnostics = diagfmt.BuildDiagnosticsOutput(bag, opts.FileSet, diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         diagfmt.PathModeRelative,
		IncludeNotes:     true,
	})

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
