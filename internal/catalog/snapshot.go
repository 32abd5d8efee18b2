package catalog

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
)

// StyleEntry is one style with every known image variant
type StyleEntry struct {
	Key       string           `json:"key"`
	StyleName string           `json:"style_name"`
	Shape     domain.FaceShape `json:"face_shape"`
	AgeBand   domain.AgeBand   `json:"age_band"`
	// Sequence is the lowest sequence id among the variants
	Sequence int      `json:"sequence"`
	URLs     []string `json:"urls"`
}

// PrimaryURL is the first variant URL
func (e StyleEntry) PrimaryURL() string {
	if len(e.URLs) == 0 {
		return ""
	}
	return e.URLs[0]
}

// Listing is the result of one catalog query with the version of the
// snapshot it was read from
type Listing struct {
	Version uint64       `json:"version"`
	Styles  []StyleEntry `json:"styles"`
}

type group struct {
	shape domain.FaceShape
	band  domain.AgeBand
}

// Snapshot is an immutable catalog version. It is replaced wholesale on
// refresh and never mutated after Build returns.
type Snapshot struct {
	Version uint64
	BuiltAt time.Time
	Skipped int
	// Collisions counts assets whose (sequence, variant) pair was already
	// claimed by a different style; both are kept
	Collisions int

	groups map[group][]StyleEntry
	assets int
}

// Build parses every object name and groups the valid ones by shape and age
// band. Malformed names and duplicate (sequence, variant) pairs of the same
// style are logged and skipped. A pair reused by a different style is logged
// and counted in Collisions.
func Build(objects []provider.Object, version uint64, builtAt time.Time, logger *slog.Logger) *Snapshot {
	byKey := make(map[string][]Asset)
	owners := make(map[[2]int]string)
	skipped, collisions := 0, 0

	for _, obj := range objects {
		asset, err := ParseFilename(obj.Name)
		if err != nil {
			skipped++
			logger.Warn("skipping catalog object", "object", obj.Name, "error", err)
			continue
		}
		asset.URL = obj.URL

		id := [2]int{asset.Sequence, asset.Variant}
		if owner, ok := owners[id]; !ok {
			owners[id] = asset.Key()
		} else if owner != asset.Key() {
			collisions++
			logger.Warn("catalog asset id reused by another style",
				"object", obj.Name,
				"sequence", asset.Sequence,
				"variant", asset.Variant,
				"style", asset.Key(),
				"first_style", owner,
			)
		}

		byKey[asset.Key()] = append(byKey[asset.Key()], asset)
	}

	s := &Snapshot{
		Version: version,
		BuiltAt: builtAt,
		groups:  make(map[group][]StyleEntry),
	}

	for key, variants := range byKey {
		slices.SortFunc(variants, func(a, b Asset) int {
			return cmp.Or(
				cmp.Compare(a.Variant, b.Variant),
				cmp.Compare(a.Sequence, b.Sequence),
				cmp.Compare(a.ObjectName, b.ObjectName),
			)
		})

		first := variants[0]
		entry := StyleEntry{
			Key:       key,
			StyleName: first.StyleName,
			Shape:     first.Shape,
			AgeBand:   first.AgeBand,
			Sequence:  first.Sequence,
			URLs:      make([]string, 0, len(variants)),
		}

		seen := make(map[[2]int]bool, len(variants))
		for _, v := range variants {
			id := [2]int{v.Sequence, v.Variant}
			if seen[id] {
				skipped++
				logger.Warn("skipping duplicate catalog variant", "object", v.ObjectName, "style", key)
				continue
			}
			seen[id] = true
			entry.URLs = append(entry.URLs, v.URL)
			entry.Sequence = min(entry.Sequence, v.Sequence)
		}

		g := group{shape: entry.Shape, band: entry.AgeBand}
		s.groups[g] = append(s.groups[g], entry)
		s.assets += len(entry.URLs)
	}

	for g := range s.groups {
		slices.SortFunc(s.groups[g], compareEntries)
	}
	s.Skipped = skipped
	s.Collisions = collisions

	return s
}

// Empty returns a snapshot with no entries
func Empty() *Snapshot {
	return &Snapshot{groups: make(map[group][]StyleEntry)}
}

// Entries returns the styles for shape and band, ordered by sequence id then
// name. A wildcard band returns every band in vocabulary order.
func (s *Snapshot) Entries(shape domain.FaceShape, band domain.AgeBand) []StyleEntry {
	if !band.IsWildcard() {
		return cloneEntries(s.groups[group{shape: shape, band: band}])
	}

	var out []StyleEntry
	for _, b := range domain.AgeBands {
		out = append(out, cloneEntries(s.groups[group{shape: shape, band: b}])...)
	}
	return out
}

// EntryCount is the number of distinct styles
func (s *Snapshot) EntryCount() int {
	n := 0
	for _, entries := range s.groups {
		n += len(entries)
	}
	return n
}

// AssetCount is the number of image variants across all styles
func (s *Snapshot) AssetCount() int {
	return s.assets
}

// Age returns how long ago the snapshot was built
func (s *Snapshot) Age(now time.Time) time.Duration {
	if s.BuiltAt.IsZero() {
		return 0
	}
	return now.Sub(s.BuiltAt)
}

// Counts returns the number of styles per shape and band
func (s *Snapshot) Counts() map[domain.FaceShape]map[domain.AgeBand]int {
	out := make(map[domain.FaceShape]map[domain.AgeBand]int)
	for g, entries := range s.groups {
		if out[g.shape] == nil {
			out[g.shape] = make(map[domain.AgeBand]int)
		}
		out[g.shape][g.band] = len(entries)
	}
	return out
}

func compareEntries(a, b StyleEntry) int {
	return cmp.Or(
		cmp.Compare(a.Sequence, b.Sequence),
		cmp.Compare(a.StyleName, b.StyleName),
	)
}

func cloneEntries(entries []StyleEntry) []StyleEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]StyleEntry, len(entries))
	for i, e := range entries {
		e.URLs = slices.Clone(e.URLs)
		out[i] = e
	}
	return out
}
