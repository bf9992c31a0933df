// Package export assembles the bulk download archive: one top-level folder
// holding, per asset, the rendered image and a sibling plain-text metadata
// record.
package export

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"

	"github.com/w3jdev/mockupgenius/internal/mockup"
)

// zipMethodZstd is the ZIP compression method ID for Zstandard
// (APPNOTE 6.3.7). Registered with the highest level the Go library
// supports; readers that lack zstd can still list entries.
const zipMethodZstd uint16 = 93

func init() {
	zip.RegisterCompressor(zipMethodZstd, func(w io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(12)))
	})
}

// FolderName is the single top-level directory inside the archive.
const FolderName = "MockupGenius_Package"

// SanitizeTitle strips every character other than letters, digits, hyphen,
// and underscore, producing a filename-safe base name. Idempotent.
func SanitizeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return -1
	}, title)
}

// baseName resolves the per-asset file stem, falling back to the asset id
// when the title sanitizes to nothing.
func baseName(a *mockup.GeneratedAsset) string {
	name := SanitizeTitle(a.SEOTitle)
	if name == "" {
		name = "mockup_" + SanitizeTitle(a.ID)
	}
	return name
}

// Archive writes the full package for the given assets to w. Any per-asset
// failure aborts the whole export; the caller reports it as one retryable
// error at the export boundary.
func Archive(w io.Writer, assets []*mockup.GeneratedAsset) error {
	if len(assets) == 0 {
		return fmt.Errorf("no assets to export")
	}

	zw := zip.NewWriter(w)
	now := time.Now()

	for _, a := range assets {
		name := baseName(a)

		if len(a.ImageData) == 0 {
			zw.Close()
			return fmt.Errorf("asset %s has no image payload", a.ID)
		}

		if err := writeEntry(zw, FolderName+"/"+name+".png", a.ImageData, now); err != nil {
			zw.Close()
			return err
		}
		if err := writeEntry(zw, FolderName+"/"+name+"_info.txt", []byte(infoRecord(a)), now); err != nil {
			zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	log.Info().Int("assets", len(assets)).Msg("Export archive assembled")
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte, modTime time.Time) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zipMethodZstd,
		Modified: modTime,
	}
	entry, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create archive entry %s: %w", name, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("write archive entry %s: %w", name, err)
	}
	return nil
}

// infoRecord renders the fixed-order plain-text metadata file. Missing
// fields render as empty or their documented placeholder.
func infoRecord(a *mockup.GeneratedAsset) string {
	variant := a.VariantLabel
	if variant == "" {
		variant = "Standard"
	}
	score := "N/A"
	if a.ConversionScore > 0 {
		score = fmt.Sprintf("%d", a.ConversionScore)
	}
	audience := a.TargetAudience
	if audience == "" {
		audience = "General"
	}
	category := a.AppCategory
	if category == "" {
		category = "General"
	}
	description := a.Description
	if description == "" {
		description = a.AltText
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TITLE: %s\n", a.SEOTitle)
	fmt.Fprintf(&b, "TAGLINE: %s\n", a.Tagline)
	fmt.Fprintf(&b, "VARIANT: %s\n\n", variant)
	fmt.Fprintf(&b, "CONVERSION SCORE: %s/100\n", score)
	fmt.Fprintf(&b, "TARGET AUDIENCE: %s\n", audience)
	fmt.Fprintf(&b, "APP CATEGORY: %s\n\n", category)
	fmt.Fprintf(&b, "DESCRIPTION (SHORT):\n%s\n\n", description)
	fmt.Fprintf(&b, "SEO KEYWORDS:\n%s\n\n", a.SEOKeywords)
	fmt.Fprintf(&b, "SOCIAL MEDIA CAPTION:\n%s\n\n", a.SocialCaption)
	fmt.Fprintf(&b, "ALT TEXT:\n%s\n\n", a.AltText)
	fmt.Fprintf(&b, "SETTINGS USED:\n")
	fmt.Fprintf(&b, "Device: %s\n", a.DeviceType)
	fmt.Fprintf(&b, "Background: %s\n", a.BackgroundStyle)
	fmt.Fprintf(&b, "Lighting: %s\n", a.Lighting)
	fmt.Fprintf(&b, "Mood: %s\n", a.ColorMood)
	return b.String()
}
