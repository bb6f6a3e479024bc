package glyphforge

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Package archives the assembled theme tree as <base>-<version>.tar.gz
// next to the tree root and writes a sha256 sidecar for it. Entries are
// added in lexical walk order with zeroed timestamps and ownership so
// that repeated builds of the same tree hash identically.
func Package(root, version string) (string, error) {
	base := filepath.Base(root)
	archive := filepath.Join(filepath.Dir(root), fmt.Sprintf("%s-%s.tar.gz", base, version))

	out, err := os.Create(archive)
	if err != nil {
		return "", &PackagingError{Path: archive, Err: err}
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(filepath.Dir(root), path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		if d.IsDir() {
			return tw.WriteHeader(&tar.Header{
				Typeflag: tar.TypeDir,
				Name:     name + "/",
				Mode:     0755,
				ModTime:  time.Unix(0, 0),
			})
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if err := tw.WriteHeader(&tar.Header{
			Typeflag: tar.TypeReg,
			Name:     name,
			Mode:     0644,
			Size:     info.Size(),
			ModTime:  time.Unix(0, 0),
		}); err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if walkErr != nil {
		return "", &PackagingError{Path: archive, Err: walkErr}
	}
	if err := tw.Close(); err != nil {
		return "", &PackagingError{Path: archive, Err: err}
	}
	if err := gz.Close(); err != nil {
		return "", &PackagingError{Path: archive, Err: err}
	}
	if err := out.Close(); err != nil {
		return "", &PackagingError{Path: archive, Err: err}
	}

	if err := writeChecksum(archive); err != nil {
		return "", err
	}
	return archive, nil
}

// writeChecksum writes <archive>.sha256 in the sha256sum format so the
// sidecar verifies with stock tooling.
func writeChecksum(archive string) error {
	f, err := os.Open(archive)
	if err != nil {
		return &PackagingError{Path: archive, Err: err}
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return &PackagingError{Path: archive, Err: err}
	}

	sum := fmt.Sprintf("%s  %s\n", hex.EncodeToString(h.Sum(nil)), filepath.Base(archive))
	sidecar := archive + ".sha256"
	if err := os.WriteFile(sidecar, []byte(sum), 0644); err != nil {
		return &PackagingError{Path: sidecar, Err: err}
	}
	return nil
}
