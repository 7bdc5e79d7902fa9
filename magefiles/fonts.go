//go:build mage

package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
)

// dejaVuRelease is the upstream archive containing the default fonts.
const dejaVuRelease = "https://github.com/dejavu-fonts/dejavu-fonts/releases/download/version_2_37/dejavu-fonts-ttf-2.37.zip"

// defaultFonts are the files the renderer looks for in the working directory.
var defaultFonts = []string{"DejaVuSans.ttf", "DejaVuSans-Bold.ttf"}

// Fonts downloads DejaVuSans.ttf and DejaVuSans-Bold.ttf into the working
// directory. Existing files are left alone.
func Fonts() error {
	var missing []string
	for _, name := range defaultFonts {
		if _, err := os.Stat(name); os.IsNotExist(err) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		fmt.Println("Fonts already present.")
		return nil
	}

	resp, err := http.Get(dejaVuRelease)
	if err != nil {
		return fmt.Errorf("downloading fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading fonts: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading font archive: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("opening font archive: %w", err)
	}

	want := make(map[string]bool, len(missing))
	for _, name := range missing {
		want[name] = true
	}
	for _, f := range zr.File {
		name := path.Base(f.Name)
		if !want[name] {
			continue
		}
		if err := extractFile(f, name); err != nil {
			return err
		}
		fmt.Println("  ", name)
		delete(want, name)
	}
	if len(want) > 0 {
		return fmt.Errorf("font archive is missing %v", want)
	}
	return nil
}

func extractFile(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return out.Close()
}
