package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/plasmalabs/glyphforge"
	"github.com/plasmalabs/glyphforge/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┬ ┬ ┬┌─┐┬ ┬┌─┐┌─┐┬─┐┌─┐┌─┐
│ ┬│ └┬┘├─┘├─┤├┤ │ │├┬┘│ ┬├┤
└─┘┴─┘┴ ┴  ┴ ┴└  └─┘┴└─└─┘└─┘

Material glyph to KDE icon theme builder.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	mapping   = flag.String("mapping", "mapping.csv", "Mapping table (target_name, source_id, context)")
	source    = flag.String("source", "material-design-icons", "Path to the upstream glyph checkout")
	outDir    = flag.String("out", "build", "Output directory")
	style     = flag.String("style", "Filled", "Glyph variant: Filled, Outlined, Rounded, Two-Tone")
	variant   = flag.String("theme", "light", "Color variant: light or dark")
	configs   = flag.String("config", "", "TOML build config")
	version   = flag.String("release", "0.0.0", "Version stamped into the archive name")
	ci        = flag.Bool("ci", false, "Non-interactive mode: plain output, no prompts")
	skipPNG   = flag.Bool("skip-png", false, "Stop after the scalable icons")
	noArchive = flag.Bool("no-archive", false, "Skip the packaging step")
	builtin   = flag.Bool("builtin", false, "Rasterize in process instead of the external converter")
	fast      = flag.Bool("fast", false, "Rasterize once per icon and downsample the smaller sizes")
	workers   = flag.Int("conc", runtime.NumCPU(), "Number of icons to process concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	glyphStyle, err := glyphforge.ParseStyle(*style)
	if err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
	if *variant != "light" && *variant != "dark" {
		log.Fatal(utils.DecorateText(fmt.Sprintf("unknown color variant %q, expected light or dark", *variant), utils.ErrorMessage))
	}

	cfg, err := glyphforge.LoadConfig(*configs, *variant)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to load the build config: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	table, err := glyphforge.LoadTable(*mapping)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to load the mapping table: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	if _, err := os.Stat(*source); err != nil {
		log.Fatalf(
			utils.DecorateText("Glyph source not found: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	// The spinner is terminal furniture; drop it in CI and whenever
	// stderr is not a terminal.
	quiet := *ci || !term.IsTerminal(int(os.Stderr.Fd()))

	b := &glyphforge.Builder{
		Config:    cfg,
		Table:     table,
		Source:    glyphforge.NewSource(*source, glyphStyle),
		OutDir:    *outDir,
		Version:   *version,
		Workers:   *workers,
		SkipPNG:   *skipPNG,
		NoArchive: *noArchive,
		Builtin:   *builtin,
		Fast:      *fast,
		Quiet:     quiet,
	}

	// Capture CTRL-C and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		fmt.Fprint(os.Stderr, "\033[?25h")
		os.Exit(1)
	}()

	out, err := b.Execute()
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError building the theme: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	}

	fmt.Fprintf(os.Stderr, "The theme has been saved as: %s %s\n",
		utils.DecorateText(out, utils.SuccessMessage),
		utils.DefaultColor,
	)
}
