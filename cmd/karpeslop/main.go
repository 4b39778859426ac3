package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/CodeDeficient/KarpeSlop/internal/api"
	"github.com/CodeDeficient/KarpeSlop/internal/discover"
	"github.com/CodeDeficient/KarpeSlop/internal/engine"
	"github.com/CodeDeficient/KarpeSlop/internal/ir"
	"github.com/CodeDeficient/KarpeSlop/internal/reporting"
	"github.com/CodeDeficient/KarpeSlop/internal/rulepack"
	"github.com/CodeDeficient/KarpeSlop/internal/security"
	"github.com/CodeDeficient/KarpeSlop/internal/shared"
	"github.com/CodeDeficient/KarpeSlop/internal/storage"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "analyze":
		analyzeCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "watch":
		watchCmd(os.Args[2:])
	case "version":
		fmt.Println("karpeslop IR:", ir.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `karpeslop - AI-slop detector for TypeScript/React codebases

Usage:
  karpeslop analyze --path <src-dir> [--rules <pack.yaml>] [--out <reports-dir>] [--db ./karpeslop.db] [--quiet] [--strict] [--config ./karpeslop.yaml]
  karpeslop report  --run <run-id>   [--out <reports-dir>] [--db ./karpeslop.db]
  karpeslop diff    --base <run-id> --head <run-id> [--out <reports-dir>] [--db ./karpeslop.db]
  karpeslop serve   [--addr :8787] [--db ./karpeslop.db]
  karpeslop watch   --path <src-dir> [flags as analyze]
  karpeslop version
`)
}

type analyzeOpts struct {
	inPath string
	outDir string
	dbPath string
	rules  string
	quiet  bool
	strict bool
	detCfg *engine.Config
	appCfg shared.Config
}

func parseAnalyzeFlags(name string, args []string) analyzeOpts {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	inPath := fs.String("path", "", "Path to source directory")
	outDir := fs.String("out", "", "Output directory for reports")
	dbPath := fs.String("db", "", "SQLite database path")
	rules := fs.String("rules", "", "Path to detection rule pack (optional)")
	quiet := fs.Bool("quiet", false, "Limit test-file findings to logging issues")
	strict := fs.Bool("strict", false, "Exit nonzero when any issue is found")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	// precedence: flags > config > defaults
	if *inPath == "" && len(cfg.Analysis.Sources) > 0 {
		*inPath = cfg.Analysis.Sources[0]
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *rules == "" {
		*rules = cfg.Analysis.Rules
	}
	if !*quiet {
		*quiet = cfg.Analysis.Quiet
	}

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, name+": --path (or analysis.sources in config) is required")
		os.Exit(2)
	}

	opts := analyzeOpts{
		inPath: *inPath, outDir: *outDir, dbPath: *dbPath,
		rules: *rules, quiet: *quiet, strict: *strict, appCfg: cfg,
	}
	if *rules != "" {
		det, err := rulepack.Load(*rules)
		if err != nil {
			slog.Error("rule pack rejected", "path", *rules, "err", err)
			os.Exit(1)
		}
		opts.detCfg = det
		if det.Strict {
			opts.strict = true
		}
	}
	return opts
}

func analyzeCmd(args []string) {
	opts := parseAnalyzeFlags("analyze", args)
	run, issues := runAnalysis(opts)
	if opts.strict && issues > 0 {
		slog.Warn("strict mode: issues found", "issues", issues)
		os.Exit(1)
	}
	_ = run
}

// runAnalysis performs one full scan-persist-report cycle and returns the
// run id plus the surviving issue count.
func runAnalysis(opts analyzeOpts) (string, int) {
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}

	var ignore []string
	if opts.detCfg != nil {
		ignore = opts.detCfg.IgnorePaths
	}
	files, err := discover.Collect(opts.inPath, ignore)
	if err != nil {
		slog.Error("file discovery failed", "err", err)
		os.Exit(1)
	}

	res, err := engine.Detect(files, opts.detCfg, opts.quiet)
	if err != nil {
		slog.Error("detection failed", "err", err)
		os.Exit(1)
	}

	run := ir.Run{
		ID:           "run-" + uuid.NewString()[:8],
		StartedAt:    time.Now().UTC(),
		Source:       filepath.Clean(opts.inPath),
		IRVersion:    ir.Version,
		Files:        len(files),
		Quiet:        opts.quiet,
		Issues:       res.Issues,
		Consolidated: res.Consolidated,
		Score:        res.Score,
	}

	db, err := storage.OpenSQLite(opts.dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}
	if err := db.SaveRun(&run); err != nil {
		slog.Error("db save run error", "err", err)
		os.Exit(1)
	}

	jsonPath, _ := reporting.WriteJSON(run.ID, opts.outDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, opts.outDir, &run)
	slog.Info("analyze complete",
		"run", run.ID,
		"files", run.Files,
		"issues", len(run.Issues),
		"score", run.Score.Total,
		"json", jsonPath,
		"html", htmlPath,
	)
	fmt.Print(reporting.RenderConsole(&run))
	return run.ID, len(run.Issues)
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	runID := fs.String("run", "", "Run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *runID == "" {
		fmt.Fprintln(os.Stderr, "report: --run is required")
		os.Exit(2)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	run, err := db.LoadRun(*runID)
	if err != nil {
		slog.Error("load run error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	fmt.Printf("Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", run.ID, jsonPath, htmlPath)
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		os.Exit(2)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		slog.Error("load base run error", "err", err)
		os.Exit(1)
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		slog.Error("load head run error", "err", err)
		os.Exit(1)
	}
	path, err := reporting.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	if err != nil {
		slog.Error("diff write error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Diff OK\n  %s\n", path)
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	rules := fs.String("rules", "", "Path to detection rule pack (optional)")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *addr == "" {
		*addr = cfg.API.Addr
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *rules == "" {
		*rules = cfg.Analysis.Rules
	}

	var detCfg *engine.Config
	if *rules != "" {
		var err error
		detCfg, err = rulepack.Load(*rules)
		if err != nil {
			slog.Error("rule pack rejected", "path", *rules, "err", err)
			os.Exit(1)
		}
	}
	rs, err := engine.Build(detCfg)
	if err != nil {
		slog.Error("rule set build error", "err", err)
		os.Exit(1)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}
	bootstrapAdmin(db)

	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Rules:           rs,
		Logger:          logger,
		AllowedOrigins:  cfg.API.AllowedOrigins,
		SessionDuration: 12 * time.Hour,
	}
	slog.Info("serving", "addr", *addr)
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

// bootstrapAdmin creates an initial admin user on an empty users table,
// taking the password from KARPESLOP_ADMIN_PASSWORD.
func bootstrapAdmin(db *storage.DB) {
	n, err := db.CountUsers()
	if err != nil || n > 0 {
		return
	}
	pw := os.Getenv("KARPESLOP_ADMIN_PASSWORD")
	if pw == "" {
		slog.Warn("no users exist and KARPESLOP_ADMIN_PASSWORD is unset; write endpoints will be unusable")
		return
	}
	hash, err := security.HashPassword(pw)
	if err != nil {
		slog.Error("password hash error", "err", err)
		return
	}
	if _, err := db.CreateUser("admin", hash, "admin"); err != nil {
		slog.Error("admin bootstrap error", "err", err)
		return
	}
	slog.Info("bootstrapped admin user")
}
