package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/CrestNiraj12/tweetsentiment/app"
	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/infra/auth"
	"github.com/CrestNiraj12/tweetsentiment/infra/config"
	"github.com/CrestNiraj12/tweetsentiment/infra/harvest"
	"github.com/CrestNiraj12/tweetsentiment/infra/model"
	"github.com/CrestNiraj12/tweetsentiment/infra/store"
	"github.com/CrestNiraj12/tweetsentiment/infra/twitterapi"
	"github.com/CrestNiraj12/tweetsentiment/infra/viewer"
	"github.com/CrestNiraj12/tweetsentiment/nlp/clean"
	"github.com/CrestNiraj12/tweetsentiment/nlp/sequence"
	"github.com/CrestNiraj12/tweetsentiment/nlp/stopwords"
	"github.com/CrestNiraj12/tweetsentiment/tui"
	"github.com/CrestNiraj12/tweetsentiment/viz"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// tokenEnv holds an access token used when the search form leaves it empty.
const tokenEnv = "TWEETSENTIMENT_AUTH_TOKEN"

const defaultHistoryLimit = 20

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliReport
	cliHistory
	cliInvalid
)

// cliArgs is the parsed command line.
type cliArgs struct {
	mode  cliMode
	term  string
	count int
	limit int
	msg   string
}

func parseCLIArgs(args []string) cliArgs {
	if len(args) == 0 {
		return cliArgs{mode: cliRun}
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliArgs{mode: cliVersion}
	case "--help", "-h", "help":
		return cliArgs{mode: cliHelp}
	case "report":
		return parseReportArgs(args[1:])
	case "history":
		return parseHistoryArgs(args[1:])
	default:
		return cliArgs{mode: cliInvalid, msg: fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))}
	}
}

func parseReportArgs(args []string) cliArgs {
	if len(args) == 0 || len(args) > 2 || strings.TrimSpace(args[0]) == "" {
		return cliArgs{mode: cliInvalid, msg: "report needs a search term and an optional post count"}
	}
	a := cliArgs{mode: cliReport, term: strings.TrimSpace(args[0])}
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < domain.MinPostCount || n > domain.MaxPostCount {
			return cliArgs{mode: cliInvalid, msg: fmt.Sprintf("post count must be a number between %d and %d, got %q", domain.MinPostCount, domain.MaxPostCount, args[1])}
		}
		a.count = n
	}
	return a
}

func parseHistoryArgs(args []string) cliArgs {
	a := cliArgs{mode: cliHistory, limit: defaultHistoryLimit}
	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return cliArgs{mode: cliInvalid, msg: fmt.Sprintf("history limit must be a positive number, got %q", args[0])}
		}
		a.limit = n
	default:
		return cliArgs{mode: cliInvalid, msg: "history takes at most one argument"}
	}
	return a
}

func usage() string {
	return `Usage:
  tweetsentiment                     interactive dashboard
  tweetsentiment report <term> [n]   score n posts (default from config) and print a summary
  tweetsentiment history [n]         list the last n archived searches
  tweetsentiment [--version|-version|-v] [--help|-h]`
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// setupLogging routes the default slog logger to the configured file.
// The TUI owns the terminal, so nothing is logged to stderr.
func setupLogging(cfg config.Config) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := tea.LogToFile(cfg.LogPath, "tweetsentiment")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	return f, nil
}

// fallbackTokens returns the providers consulted when a search carries no
// credential: the token file if it exists, then the environment.
func fallbackTokens(cfg config.Config) []auth.TokenProvider {
	var out []auth.TokenProvider
	if _, err := os.Stat(cfg.TokenPath); err == nil {
		out = append(out, auth.NewFileTokenProvider(cfg.TokenPath))
	} else if !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("token file unreadable", "path", cfg.TokenPath, "err", err)
	}
	if strings.TrimSpace(os.Getenv(tokenEnv)) != "" {
		out = append(out, auth.NewEnvTokenProvider(tokenEnv))
	}
	return out
}

// newFetcher builds the post source selected by fetch_backend.
func newFetcher(cfg config.Config) app.PostFetcher {
	tokens := fallbackTokens(cfg)
	if cfg.FetchBackend == config.BackendAPI {
		client := twitterapi.NewClient(cfg.APIBaseURL, nil)
		return twitterapi.NewFetcher(client, cfg.Language, tokens...)
	}
	opts := []harvest.Option{
		harvest.WithOutputDir(cfg.HarvestDir),
		harvest.WithTab(cfg.HarvestTab),
		harvest.WithLanguage(cfg.Language),
	}
	for _, tp := range tokens {
		opts = append(opts, harvest.WithFallbackToken(tp))
	}
	return harvest.New(cfg.HarvestArgv(), opts...)
}

// services is everything built from the configuration.
type services struct {
	search *app.SearchService
	charts *viz.Builder
	db     *store.DB
}

func (s services) Close() {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Warn("closing history db", "err", err)
		}
	}
}

// buildServices wires the pipeline. clouds selects whether word clouds
// are rendered.
func buildServices(cfg config.Config, clouds bool) (services, error) {
	general, err := stopwords.Load(cfg.StopwordsPath, stopwords.General())
	if err != nil {
		return services{}, err
	}
	vizStop, err := stopwords.Load(cfg.VizStopwordsPath, stopwords.Viz())
	if err != nil {
		return services{}, err
	}

	var svc services
	var archiver app.Archiver
	if cfg.ArchiveEnabled() {
		db, err := store.Open(cfg.ArchivePath)
		if err != nil {
			// History is optional; searches still work without it.
			slog.Warn("run history disabled", "path", cfg.ArchivePath, "err", err)
		} else {
			svc.db = db
			archiver = db
		}
	}

	svc.search = app.NewSearchService(
		newFetcher(cfg),
		clean.New(general),
		sequence.NewEncoder(cfg.TokenizerPath),
		model.NewHandle(cfg.ModelPath),
		archiver,
	)

	var gen *viz.CloudGenerator
	if clouds {
		var mask *viz.Mask
		if cfg.MaskPath != "" {
			if mask, err = viz.LoadMask(cfg.MaskPath); err != nil {
				svc.Close()
				return services{}, err
			}
		}
		face, err := viz.LoadTypeface(cfg.FontPath)
		if err != nil {
			svc.Close()
			return services{}, err
		}
		gen = viz.NewCloudGenerator(viz.DefaultCloudOptions(), mask, face)
	}
	svc.charts = viz.NewBuilder(viz.DefaultTheme(), vizStop, gen)
	return svc, nil
}

// writeReport prints the all-posts view of a finished search.
func writeReport(w io.Writer, res app.SearchResult, ch viz.Charts) {
	fmt.Fprintf(w, "Sentiment for %q: %s of %s posts scored", res.Term,
		humanize.Comma(int64(res.Corpus.Len())), humanize.Comma(int64(len(res.Fetched))))
	if res.Dropped > 0 {
		fmt.Fprintf(w, " (%d dropped)", res.Dropped)
	}
	fmt.Fprintln(w)
	for _, s := range ch.Pie.Slices {
		fmt.Fprintf(w, "  %-8s %6s  %5.1f%%\n", s.Label, humanize.Comma(int64(s.Count)), s.Percent)
	}
	for _, bar := range []viz.Bar{ch.Unigrams, ch.Bigrams} {
		fmt.Fprintf(w, "\n%s\n", bar.Title)
		if len(bar.Entries) == 0 {
			fmt.Fprintln(w, "  (none)")
		}
		for i, e := range bar.Entries {
			fmt.Fprintf(w, "  %2d. %-30s %s\n", i+1, e.Phrase, humanize.Comma(int64(e.Count)))
		}
	}
	if res.ArchiveErr != nil {
		fmt.Fprintf(w, "\nwarning: run not archived: %v\n", res.ArchiveErr)
	}
}

// writeHistory prints archived runs, newest first.
func writeHistory(w io.Writer, runs []domain.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No searches recorded yet.")
		return
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%-14s %-24q %5s scored  %5s positive  %5s negative  %s\n",
			humanize.Time(r.CreatedAt), r.Term,
			humanize.Comma(int64(r.Scored())), humanize.Comma(int64(r.Positive)), humanize.Comma(int64(r.Negative)),
			r.ID)
	}
}

func runReport(cfg config.Config, term string, count int) error {
	if count == 0 {
		count = cfg.DefaultCount
	}
	svc, err := buildServices(cfg, false)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := svc.search.RunSearch(ctx, domain.SearchRequest{Term: term, Count: count})
	if err != nil {
		var perr *harvest.ProcessError
		if errors.As(err, &perr) && perr.Stderr != "" {
			fmt.Fprintln(os.Stderr, strings.TrimSpace(perr.Stderr))
		}
		return err
	}
	writeReport(os.Stdout, res, svc.charts.Build(res.Corpus, domain.ViewAll))
	return nil
}

func runHistory(cfg config.Config, limit int) error {
	if !cfg.ArchiveEnabled() {
		return errors.New("run history is disabled (archive_path: off)")
	}
	db, err := store.Open(cfg.ArchivePath)
	if err != nil {
		return err
	}
	defer db.Close()
	runs, err := db.ListRuns(context.Background(), limit)
	if err != nil {
		return err
	}
	writeHistory(os.Stdout, runs)
	return nil
}

func runTUI(cfg config.Config) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("stdout is not a terminal; use `tweetsentiment report <term>` for plain output")
	}

	svc, err := buildServices(cfg, true)
	if err != nil {
		return err
	}
	defer svc.Close()

	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		slog.Warn("ignoring ui state", "err", err)
	}
	term, count := uiState.Term, cfg.DefaultCount
	if uiState.Count != 0 {
		count = uiState.Count
	}

	rootModel := tui.NewApp(tui.Deps{
		Search:       svc.search,
		Charts:       svc.charts,
		Viewer:       viewer.NewEnvViewer(),
		OutputDir:    cfg.OutputDir,
		StatePath:    cfg.UIStatePath,
		InitialTerm:  term,
		InitialCount: count,
	})

	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func main() {
	args := parseCLIArgs(os.Args[1:])
	switch args.mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("tweetsentiment %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", args.msg, usage())
		os.Exit(2)
	}

	// 1. Load config from file and environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// 2. Logging goes to a file.
	logFile, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// 3. Run the selected mode.
	switch args.mode {
	case cliReport:
		err = runReport(cfg, args.term, args.count)
	case cliHistory:
		err = runHistory(cfg, args.limit)
	default:
		err = runTUI(cfg)
	}
	if err != nil {
		slog.Error("exiting", "err", err)
		fmt.Fprintf(os.Stderr, "tweetsentiment: %v\n", err)
		logFile.Close()
		os.Exit(1)
	}
}
