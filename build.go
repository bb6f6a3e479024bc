package glyphforge

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/plasmalabs/glyphforge/utils"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Builder runs the whole pipeline: coverage gate, normalization,
// rasterization, theme assembly and packaging. Every failure is fatal
// to the build; nothing is retried and nothing is substituted beyond
// the placeholder glyph a mapping row asks for explicitly.
type Builder struct {
	Config  *Config
	Table   *Table
	Source  *Source
	OutDir  string
	Version string
	Workers int

	// SkipPNG stops after the scalable icons, NoArchive after assembly.
	SkipPNG   bool
	NoArchive bool

	// Builtin and Fast select the rasterizer mode.
	Builtin bool
	Fast    bool

	// Quiet suppresses the spinner and progress output.
	Quiet bool

	spinner *utils.Spinner
}

// svgResult carries one normalized glyph between the pipeline stages.
type svgResult struct {
	rec Record
	svg []byte
	err error
}

// pngTask is one unit of rasterization work.
type pngTask struct {
	rec  Record
	svg  []byte
	size int
}

// Execute runs the build and returns the path of the produced archive,
// or the theme directory when archiving is disabled.
func (b *Builder) Execute() (string, error) {
	now := time.Now()

	missing := Check(b.Table, b.Config.Required())
	if len(missing) > 0 {
		return "", &CoverageError{Missing: missing}
	}

	// Resolve every glyph before any conversion starts, so a broken
	// mapping row halts the build with nothing half-written.
	for _, rec := range b.Table.Records {
		if rec.Placeholder() {
			continue
		}
		if _, err := b.Source.Locate(rec.Source); err != nil {
			return "", errors.Wrapf(err, "mapping row %q", rec.Name)
		}
	}

	themeDir := filepath.Join(b.OutDir, b.slug())
	if err := os.MkdirAll(themeDir, 0755); err != nil {
		return "", errors.Wrap(err, "unable to create the theme directory")
	}
	asm := NewAssembler(themeDir, b.Config)

	b.spinner = utils.NewSpinner(b.statusMsg("normalizing glyphs..."), time.Millisecond*80, b.Quiet)
	b.spinner.Start()

	normalized, err := b.normalizeStage(asm)
	if err != nil {
		b.spinner.Stop()
		return "", err
	}

	if !b.SkipPNG {
		b.spinner.SetMessage(b.statusMsg("rasterizing icons..."))
		if err := b.rasterizeStage(asm, normalized); err != nil {
			b.spinner.Stop()
			return "", err
		}
	}

	if err := asm.WriteDescriptor(); err != nil {
		b.spinner.Stop()
		return "", err
	}

	out := themeDir
	if !b.NoArchive {
		b.spinner.SetMessage(b.statusMsg("packaging the theme..."))
		out, err = Package(themeDir, b.Version)
		if err != nil {
			b.spinner.Stop()
			return "", err
		}
	}

	b.spinner.StopMsg = fmt.Sprintf("%s %s\n",
		utils.DecorateText("⚒ GLYPHFORGE", utils.StatusMessage),
		utils.DecorateText("⇢ the theme has been built ✔", utils.SuccessMessage),
	)
	b.spinner.Stop()

	if !b.Quiet {
		fmt.Fprintf(os.Stderr, "Built %d icons in %s\n",
			len(b.Table.Records),
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage),
		)
	}
	return out, nil
}

// normalizeStage runs one task per mapping row through a bounded worker
// pool: normalize the upstream glyph and place the scalable icon. The
// normalized bytes are kept for the rasterization stage.
func (b *Builder) normalizeStage(asm *Assembler) ([]svgResult, error) {
	done := make(chan struct{})
	defer close(done)

	recs := make(chan Record)
	go func() {
		defer close(recs)
		for _, rec := range b.Table.Records {
			select {
			case <-done:
				return
			case recs <- rec:
			}
		}
	}()

	results := make(chan svgResult)
	var wg sync.WaitGroup
	workers := b.workers()
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			norm := &Normalizer{Command: b.Config.Tools.Normalize}
			for rec := range recs {
				svg, err := b.normalizeRecord(norm, rec)
				if err == nil {
					_, err = asm.PlaceSVG(rec, svg)
				}
				select {
				case <-done:
					return
				case results <- svgResult{rec: rec, svg: svg, err: err}:
				}
			}
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(results)
		wg.Wait()
	}()

	var (
		normalized []svgResult
		firstErr   error
	)
	for res := range results {
		if res.err != nil && firstErr == nil {
			firstErr = errors.Wrapf(res.err, "normalizing %q", res.rec.Name)
		}
		if res.err == nil {
			normalized = append(normalized, res)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return normalized, nil
}

// normalizeRecord produces the canonical SVG for one mapping row.
func (b *Builder) normalizeRecord(norm *Normalizer, rec Record) ([]byte, error) {
	if rec.Placeholder() {
		// The embedded placeholder is already canonical; the recolor
		// pass keeps it on the same path as everything else.
		return Recolor([]byte(placeholderSVG))
	}
	path, err := b.Source.Locate(rec.Source)
	if err != nil {
		return nil, err
	}
	return norm.Normalize(path)
}

// rasterizeStage renders the PNG artifacts. The default mode dispatches
// one task per (icon, size) pair; fast mode renders per icon and
// downsamples, so its task unit is the icon.
func (b *Builder) rasterizeStage(asm *Assembler, normalized []svgResult) error {
	raster := &Rasterizer{
		Command:         b.Config.Tools.Rasterize,
		OptimizeCommand: b.Config.Tools.Optimize,
		Builtin:         b.Builtin,
		Fast:            b.Fast,
		Foreground:      b.Config.Foreground,
	}
	if b.Fast {
		return b.rasterizePerIcon(asm, raster, normalized)
	}

	done := make(chan struct{})
	defer close(done)

	tasks := make(chan pngTask)
	go func() {
		defer close(tasks)
		for _, res := range normalized {
			for _, size := range b.Config.Sizes {
				select {
				case <-done:
					return
				case tasks <- pngTask{rec: res.rec, svg: res.svg, size: size}:
				}
			}
		}
	}()

	errch := make(chan error)
	var wg sync.WaitGroup
	workers := b.workers()
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for task := range tasks {
				err := b.rasterizeTask(asm, raster, task)
				select {
				case <-done:
					return
				case errch <- err:
				}
			}
		}()
	}

	go func() {
		defer close(errch)
		wg.Wait()
	}()

	var firstErr error
	for err := range errch {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// rasterizeTask renders, places and optionally optimizes one PNG.
func (b *Builder) rasterizeTask(asm *Assembler, raster *Rasterizer, task pngTask) error {
	data, err := raster.Rasterize(task.svg, task.size, task.rec.Name)
	if err != nil {
		return err
	}
	path, err := asm.PlacePNG(task.rec, task.size, data)
	if err != nil {
		return errors.Wrapf(err, "placing %q at %d", task.rec.Name, task.size)
	}
	if b.Config.Optimize {
		return raster.Optimize(path)
	}
	return nil
}

// rasterizePerIcon is the fast mode stage: each worker renders one icon
// at the largest size and downsamples the rest.
func (b *Builder) rasterizePerIcon(asm *Assembler, raster *Rasterizer, normalized []svgResult) error {
	done := make(chan struct{})
	defer close(done)

	tasks := make(chan svgResult)
	go func() {
		defer close(tasks)
		for _, res := range normalized {
			select {
			case <-done:
				return
			case tasks <- res:
			}
		}
	}()

	errch := make(chan error)
	var wg sync.WaitGroup
	workers := b.workers()
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for res := range tasks {
				err := b.rasterizeIcon(asm, raster, res)
				select {
				case <-done:
					return
				case errch <- err:
				}
			}
		}()
	}

	go func() {
		defer close(errch)
		wg.Wait()
	}()

	var firstErr error
	for err := range errch {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (b *Builder) rasterizeIcon(asm *Assembler, raster *Rasterizer, res svgResult) error {
	pngs, err := raster.RasterizeAll(res.svg, b.Config.Sizes, res.rec.Name)
	if err != nil {
		return err
	}
	for _, size := range b.Config.Sizes {
		path, err := asm.PlacePNG(res.rec, size, pngs[size])
		if err != nil {
			return errors.Wrapf(err, "placing %q at %d", res.rec.Name, size)
		}
		if b.Config.Optimize {
			if err := raster.Optimize(path); err != nil {
				return err
			}
		}
	}
	return nil
}

// workers clamps the configured concurrency the same way the CLI does.
func (b *Builder) workers() int {
	if b.Workers <= 0 || b.Workers > maxWorkers {
		return runtime.NumCPU()
	}
	return b.Workers
}

// slug derives the theme directory name from the configured theme name.
func (b *Builder) slug() string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(b.Config.Name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(sb.String(), "-")
}

func (b *Builder) statusMsg(msg string) string {
	return fmt.Sprintf("%s %s",
		utils.DecorateText("⚒ GLYPHFORGE", utils.StatusMessage),
		utils.DecorateText("⇢ "+msg, utils.DefaultMessage),
	)
}
