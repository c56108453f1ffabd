package generator

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"time"
)

// ManifestName is the archive entry holding the jar manifest
const ManifestName = "META-INF/MANIFEST.MF"

// emptyManifest carries only the mandatory version attribute
const emptyManifest = "Manifest-Version: 1.0\r\n\r\n"

// writeJar creates a jar at path holding the manifest and one entry whose
// bytes are copied from the file at source
func writeJar(path, entryName, source string) (err error) {
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open compiled class: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close archive: %w", closeErr)
		}
	}()

	return WriteJar(out, entryName, in)
}

// WriteJar writes a jar to w: the manifest followed by a single entry
func WriteJar(w io.Writer, entryName string, content io.Reader) error {
	zw := zip.NewWriter(w)
	modified := time.Now()

	manifest, err := zw.CreateHeader(&zip.FileHeader{Name: ManifestName, Method: zip.Deflate, Modified: modified})
	if err != nil {
		return fmt.Errorf("failed to add manifest: %w", err)
	}
	if _, err := io.WriteString(manifest, emptyManifest); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	entry, err := zw.CreateHeader(&zip.FileHeader{Name: entryName, Method: zip.Deflate, Modified: modified})
	if err != nil {
		return fmt.Errorf("failed to add entry %s: %w", entryName, err)
	}
	if _, err := io.Copy(entry, content); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", entryName, err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}
