package catalog

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
)

const (
	fieldSeparator = "_"
	variantPrefix  = "v"
	minFields      = 4
)

// Asset is one hairstyle image parsed from an object name of the form
// SEQ_STYLE_SHAPE_AGEBAND_vVARIANT.ext[.ext]
type Asset struct {
	Sequence   int              `json:"sequence"`
	StyleName  string           `json:"style_name"`
	Shape      domain.FaceShape `json:"face_shape"`
	AgeBand    domain.AgeBand   `json:"age_band"`
	Variant    int              `json:"variant"`
	Extension  string           `json:"extension"`
	ObjectName string           `json:"object_name"`
	URL        string           `json:"url,omitempty"`
}

// Key is the canonical style key variants are grouped under
func (a Asset) Key() string {
	return StyleKey(a.Shape, a.AgeBand, a.StyleName)
}

// StyleKey builds the shape|age|style key
func StyleKey(shape domain.FaceShape, band domain.AgeBand, style string) string {
	return string(shape) + "|" + string(band) + "|" + style
}

// ParseFilename parses an object name. Any directory prefix is ignored and
// the name is NFC-normalised before tag lookup. Failures wrap
// ErrMalformedFilename.
func ParseFilename(name string) (Asset, error) {
	base := norm.NFC.String(path.Base(strings.TrimSpace(name)))
	if base == "" || base == "." || base == "/" {
		return Asset{}, malformed(name, "empty name")
	}

	cut := strings.LastIndex(base, fieldSeparator)
	if cut < 0 {
		return Asset{}, malformed(name, "no field separator")
	}
	head, tail := base[:cut], base[cut+1:]

	variantField, ext, ok := strings.Cut(tail, ".")
	if !ok || ext == "" || strings.HasSuffix(ext, ".") {
		return Asset{}, malformed(name, "missing extension")
	}

	fields := strings.Split(head, fieldSeparator)
	if len(fields) < minFields {
		return Asset{}, malformed(name, fmt.Sprintf("expected %d fields, got %d", minFields+1, len(fields)+1))
	}

	seq, err := parseSequence(fields[0])
	if err != nil {
		return Asset{}, malformed(name, err.Error())
	}

	bandTag := fields[len(fields)-1]
	shapeTag := fields[len(fields)-2]
	style := strings.Join(fields[1:len(fields)-2], fieldSeparator)
	if strings.TrimSpace(style) == "" {
		return Asset{}, malformed(name, "empty style name")
	}

	shape, ok := domain.FaceShapeFromTag(shapeTag)
	if !ok {
		return Asset{}, malformed(name, fmt.Sprintf("unknown face shape tag %q", shapeTag))
	}

	band := domain.AgeBand(bandTag)
	if !band.Valid() {
		return Asset{}, malformed(name, fmt.Sprintf("unknown age band tag %q", bandTag))
	}

	variant, err := parseVariant(variantField)
	if err != nil {
		return Asset{}, malformed(name, err.Error())
	}

	return Asset{
		Sequence:   seq,
		StyleName:  style,
		Shape:      shape,
		AgeBand:    band,
		Variant:    variant,
		Extension:  ext,
		ObjectName: name,
	}, nil
}

// FormatFilename renders the object name for an asset
func FormatFilename(a Asset) string {
	ext := a.Extension
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%03d_%s_%s_%s_%s%d.%s",
		a.Sequence, a.StyleName, a.Shape.Tag(), a.AgeBand, variantPrefix, a.Variant, ext)
}

func parseSequence(v string) (int, error) {
	if !isDigits(v) {
		return 0, fmt.Errorf("sequence %q is not a number", v)
	}
	seq, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("sequence %q: %v", v, err)
	}
	return seq, nil
}

func parseVariant(v string) (int, error) {
	digits, ok := strings.CutPrefix(v, variantPrefix)
	if !ok || !isDigits(digits) {
		return 0, fmt.Errorf("variant %q must look like v1", v)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("variant %q must be a positive integer", v)
	}
	return n, nil
}

func isDigits(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func malformed(name, reason string) error {
	return fmt.Errorf("%w: %q: %s", ErrMalformedFilename, name, reason)
}
