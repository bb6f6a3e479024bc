package glyphforge

import "sort"

// RequiredNames is the default set of target names the theme must map
// before a build is allowed to proceed. It covers the FreeDesktop core
// names this theme commits to, one group per context.
var RequiredNames = []string{
	// actions
	"document-new",
	"document-open",
	"document-save",
	"document-print",
	"edit-copy",
	"edit-cut",
	"edit-paste",
	"edit-delete",
	"edit-find",
	"edit-undo",
	"edit-redo",
	"go-home",
	"go-previous",
	"go-next",
	"go-up",
	"go-down",
	"list-add",
	"list-remove",
	"view-refresh",
	"window-close",
	"zoom-in",
	"zoom-out",
	// apps
	"help-browser",
	"preferences-system",
	"system-file-manager",
	"utilities-terminal",
	// devices
	"audio-card",
	"battery",
	"camera-photo",
	"computer",
	"drive-harddisk",
	"input-keyboard",
	"input-mouse",
	"media-optical",
	"network-wired",
	"network-wireless",
	"phone",
	"printer",
	"video-display",
	// mimetypes
	"application-x-executable",
	"audio-x-generic",
	"image-x-generic",
	"text-x-generic",
	"video-x-generic",
	// places
	"folder",
	"folder-remote",
	"user-desktop",
	"user-home",
	"user-trash",
	// status
	"dialog-error",
	"dialog-information",
	"dialog-warning",
	"dialog-question",
	"audio-volume-high",
	"audio-volume-muted",
	"battery-caution",
	"network-error",
	"security-high",
	"security-low",
}

// Check computes the coverage gate: every required name must appear in
// the mapping table. It returns the missing names in sorted order; an
// empty result means the table fully covers the required set.
func Check(t *Table, required []string) []string {
	present := t.Names()

	var missing []string
	for _, name := range required {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
