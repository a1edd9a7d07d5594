package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"route-postman/internal/collection"
	"route-postman/internal/config"
	"route-postman/internal/exporter"
	"route-postman/internal/logger"
	"route-postman/internal/routes"
	"route-postman/internal/ui"
)

const (
	appName    = "route-postman"
	appVersion = "1.0.0"
	appDesc    = "Generate Postman collections from a declared route manifest"

	logFileName = "route-postman.log"
)

const (
	configFlag  = "config"
	routesFlag  = "routes"
	outputFlag  = "output"
	formatFlag  = "format"
	verboseFlag = "verbose"
	quietFlag   = "quiet"
)

var appFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    configFlag,
		Aliases: []string{"c"},
		Value:   "config.yaml",
		Usage:   "Path to configuration file",
	},
	&cli.StringFlag{
		Name:    routesFlag,
		Aliases: []string{"r"},
		Usage:   "Override input.routes_file (YAML or JSON route manifest)",
	},
	&cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Usage:   "Override output directory from config",
	},
	&cli.StringFlag{
		Name:    formatFlag,
		Aliases: []string{"f"},
		Usage:   "Comma-separated output formats (json,yaml,openapi,excel,html,word)",
	},
	&cli.BoolFlag{
		Name:    verboseFlag,
		Aliases: []string{"v"},
		Usage:   "Enable verbose logging (DEBUG level)",
	},
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Hide progress bars and console logs",
	},
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("\n❌ PANIC: %v\n", r)
			os.Exit(2)
		}
	}()

	os.Exit(run(os.Args, os.Stdout))
}

// run executes the CLI and maps the outcome to an exit code
func run(args []string, stdout io.Writer) int {
	if err := newApp(stdout).Run(args); err != nil {
		fmt.Fprintf(stdout, "❌ %v\n", err)
		return 1
	}
	return 0
}

func newApp(stdout io.Writer) *cli.App {
	// -v belongs to --verbose
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	app := cli.NewApp()
	app.Name = appName
	app.Version = appVersion
	app.Usage = appDesc
	app.Flags = appFlags
	app.Action = generate
	app.Writer = stdout
	app.ErrWriter = stdout
	return app
}

func generate(c *cli.Context) error {
	out := c.App.Writer
	quiet := c.Bool(quietFlag)

	if !quiet {
		printBanner(out)
	}

	// 1. Initialize
	cfg, err := config.Load(c.String(configFlag))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := applyOverrides(c, cfg); err != nil {
		return err
	}

	exporters, err := exporter.GetExporters(cfg.Output.Formats)
	if err != nil {
		return err
	}
	if len(exporters) == 0 {
		return fmt.Errorf("no output formats selected")
	}

	console := out
	if quiet {
		console = io.Discard
	}
	if err := logger.Init(console, filepath.Join(cfg.Output.Dir, logFileName), c.Bool(verboseFlag)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	pipeline := ui.NewPipelineWithOutput(ui.DefaultPhases, out)
	if quiet {
		pipeline.Disable()
	}

	// --- Phase 1: Loading ---
	logger.Info("Phase 1: Loading routes from %s", cfg.Input.RoutesFile)
	loadBar := pipeline.NextPhase(1)
	descriptors, models, err := routes.Load(cfg.Input.RoutesFile, cfg)
	if err != nil {
		return fmt.Errorf("failed to load routes: %w", err)
	}
	loadBar.Increment()

	// --- Phase 2: Grouping ---
	logger.Info("Phase 2: Grouping %d routes (%s)...", len(descriptors), cfg.Collection.GroupingStrategy)
	groupBar := pipeline.NextPhase(1)
	doc := collection.NewBuilder(cfg, models).Build(descriptors)
	groupBar.Increment()

	// --- Phase 3: Exporting ---
	logger.Info("Phase 3: Writing %d output format(s)...", len(exporters))
	exportBar := pipeline.NextPhase(len(exporters))
	paths, err := exporter.Run(c.Context, exporters, doc, cfg, func(name, path string) {
		exportBar.Describe(name)
		exportBar.Increment()
	})
	if err != nil {
		return err
	}
	pipeline.Finish()
	pipeline.PrintSummary(fmt.Sprintf("%d file(s) written to %s", len(paths), cfg.Output.Dir))

	logger.Info("✅ Collection %q: %d requests, %d routes skipped", doc.Info.Name, doc.CountRequests(), logger.SkippedRoutes())
	for _, p := range paths {
		logger.Info("   → %s", p)
	}
	logger.Info("Log file: %s", logger.GetLogFilePath())
	return nil
}

// applyOverrides layers the command-line flags over the loaded configuration
func applyOverrides(c *cli.Context, cfg *config.Config) error {
	if routesFile := c.String(routesFlag); routesFile != "" {
		abs, err := filepath.Abs(routesFile)
		if err != nil {
			return fmt.Errorf("failed to resolve --routes: %w", err)
		}
		cfg.Input.RoutesFile = abs
	}

	if outputDir := c.String(outputFlag); outputDir != "" {
		abs, err := filepath.Abs(outputDir)
		if err != nil {
			return fmt.Errorf("failed to resolve --output: %w", err)
		}
		cfg.Output.Dir = abs
		if err := cfg.EnsureOutputDir(); err != nil {
			return err
		}
	}

	if formats := c.String(formatFlag); formats != "" {
		cfg.Output.Formats = strings.Split(formats, ",")
	}

	if cfg.Input.RoutesFile == "" {
		return fmt.Errorf("no route manifest given: set input.routes_file or pass --routes")
	}
	return nil
}

func printBanner(w io.Writer) {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                    ROUTE POSTMAN v1.0.0                   ║
║        Postman Collections from Declared Routes           ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Fprintln(w, banner)
}
