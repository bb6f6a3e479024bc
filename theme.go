package glyphforge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// descriptorFile is the theme metadata file KDE reads.
const descriptorFile = "index.theme"

// contextTitles maps the mapping table contexts to the display names
// the naming spec uses inside the descriptor.
var contextTitles = map[string]string{
	"actions":       "Actions",
	"animations":    "Animations",
	"apps":          "Applications",
	"categories":    "Categories",
	"devices":       "Devices",
	"emblems":       "Emblems",
	"emotes":        "Emotes",
	"international": "International",
	"mimetypes":     "MimeTypes",
	"places":        "Places",
	"status":        "Status",
}

// dirKey identifies one theme directory. Size zero means scalable.
type dirKey struct {
	size    int
	context string
}

func (k dirKey) String() string {
	if k.size == 0 {
		return "scalable/" + k.context
	}
	return fmt.Sprintf("%dx%d/%s", k.size, k.size, k.context)
}

// Assembler writes produced artifacts into the theme tree and generates
// the descriptor enumerating every directory that received at least one
// artifact. Placement is safe for concurrent workers.
type Assembler struct {
	Root   string
	Config *Config

	mu   sync.Mutex
	dirs map[dirKey]struct{}
}

// NewAssembler returns an assembler writing under root.
func NewAssembler(root string, cfg *Config) *Assembler {
	return &Assembler{
		Root:   root,
		Config: cfg,
		dirs:   make(map[dirKey]struct{}),
	}
}

// PlaceSVG writes the scalable artifact for the record and returns the
// path it was written to.
func (a *Assembler) PlaceSVG(rec Record, svg []byte) (string, error) {
	return a.place(dirKey{context: rec.Context}, rec.Name+".svg", svg)
}

// PlacePNG writes the fixed-size artifact for the record.
func (a *Assembler) PlacePNG(rec Record, size int, png []byte) (string, error) {
	return a.place(dirKey{size: size, context: rec.Context}, rec.Name+".png", png)
}

func (a *Assembler) place(key dirKey, name string, data []byte) (string, error) {
	dir := filepath.Join(a.Root, filepath.FromSlash(key.String()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "unable to create the theme directory")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrapf(err, "unable to write %s", name)
	}

	a.mu.Lock()
	a.dirs[key] = struct{}{}
	a.mu.Unlock()

	return path, nil
}

// Directories lists every populated theme directory in the stable
// descriptor order: fixed sizes ascending, contexts lexicographic
// within a size, scalable directories last.
func (a *Assembler) Directories() []dirKey {
	a.mu.Lock()
	keys := make([]dirKey, 0, len(a.dirs))
	for k := range a.dirs {
		keys = append(keys, k)
	}
	a.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		ki, kj := keys[i], keys[j]
		// Scalable (size 0) sorts after every fixed size.
		si, sj := ki.size, kj.size
		if si == 0 {
			si = int(^uint(0) >> 1)
		}
		if sj == 0 {
			sj = int(^uint(0) >> 1)
		}
		if si != sj {
			return si < sj
		}
		return ki.context < kj.context
	})
	return keys
}

// WriteDescriptor generates index.theme under the theme root. Repeated
// builds over the same artifact set produce byte-identical output.
func (a *Assembler) WriteDescriptor() error {
	dirs := a.Directories()

	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[Icon Theme]\n")
	fmt.Fprintf(&b, "Name=%s\n", a.Config.Name)
	fmt.Fprintf(&b, "Comment=%s\n", a.Config.Comment)
	fmt.Fprintf(&b, "Inherits=%s\n", a.Config.Inherits)
	fmt.Fprintf(&b, "Example=%s\n", a.Config.Example)
	fmt.Fprintf(&b, "Directories=%s\n", strings.Join(names, ","))

	for _, d := range dirs {
		fmt.Fprintf(&b, "\n[%s]\n", d.String())
		if d.size == 0 {
			fmt.Fprintf(&b, "Size=24\n")
			fmt.Fprintf(&b, "Context=%s\n", contextTitles[d.context])
			fmt.Fprintf(&b, "Type=Scalable\n")
			fmt.Fprintf(&b, "MinSize=8\n")
			fmt.Fprintf(&b, "MaxSize=512\n")
		} else {
			fmt.Fprintf(&b, "Size=%d\n", d.size)
			fmt.Fprintf(&b, "Context=%s\n", contextTitles[d.context])
			fmt.Fprintf(&b, "Type=Fixed\n")
		}
	}

	path := filepath.Join(a.Root, descriptorFile)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.Wrap(err, "unable to write the theme descriptor")
	}
	return nil
}
