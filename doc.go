/*
Package glyphforge builds a KDE-compatible icon theme out of upstream
Material Design glyphs: it loads a name mapping table, verifies it
covers the required FreeDesktop icon names, normalizes each referenced
glyph into a single-color 24x24 SVG, rasterizes the fixed pixel sizes
and packages the assembled tree together with its theme descriptor.

The package provides a command line interface. To check the supported
commands type:

	$ glyphforge --help

In case you wish to drive a build from your own code:

	package main

	import (
		"log"

		"github.com/plasmalabs/glyphforge"
	)

	func main() {
		table, err := glyphforge.LoadTable("mapping.csv")
		if err != nil {
			log.Fatal(err)
		}

		b := &glyphforge.Builder{
			Config: glyphforge.DefaultConfig("light"),
			Table:  table,
			Source: glyphforge.NewSource("material-design-icons", glyphforge.StyleFilled),
			OutDir: "build",
		}
		if _, err := b.Execute(); err != nil {
			log.Fatal(err)
		}
	}
*/
package glyphforge
