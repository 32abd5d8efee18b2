// Package recommend ranks catalog styles for a classified face shape.
package recommend

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/catalog"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
)

// DefaultLimit is the number of styles returned per analysis
const DefaultLimit = 4

// Category groups styles by keywords found in their name
type Category struct {
	Name     string
	Keywords []string
}

// Matches reports whether the style name contains any keyword
func (c Category) Matches(style string) bool {
	for _, k := range c.Keywords {
		if strings.Contains(style, k) {
			return true
		}
	}
	return false
}

var (
	Layered  = Category{Name: "layered", Keywords: []string{"레이어드", "레이어", "샤기"}}
	Bob      = Category{Name: "bob", Keywords: []string{"보브", "단발", "bob"}}
	Wave     = Category{Name: "wave", Keywords: []string{"웨이브", "히피", "펌", "컬"}}
	Bangs    = Category{Name: "bangs", Keywords: []string{"뱅", "앞머리", "시스루"}}
	Long     = Category{Name: "long-straight", Keywords: []string{"롱", "스트레이트", "긴머리"}}
	Short    = Category{Name: "short", Keywords: []string{"숏", "픽시", "투블럭", "크롭", "쉐도우"}}
	Volume   = Category{Name: "volume", Keywords: []string{"볼륨", "허쉬", "리프"}}
	SidePart = Category{Name: "side-part", Keywords: []string{"가르마", "사이드", "댄디", "애즈"}}
)

// DefaultPreferences is the per-shape order of style categories, most suitable first
func DefaultPreferences() map[domain.FaceShape][]Category {
	return map[domain.FaceShape][]Category{
		domain.FaceShapeRound:   {Layered, Long, SidePart, Volume, Short, Wave, Bob, Bangs},
		domain.FaceShapeOval:    {Layered, Bob, Wave, Bangs, Short, Long, SidePart, Volume},
		domain.FaceShapeSquare:  {Wave, Layered, SidePart, Long, Bangs, Bob, Volume, Short},
		domain.FaceShapeLong:    {Bangs, Bob, Wave, Volume, Layered, Short, SidePart, Long},
		domain.FaceShapeHeart:   {Bob, Wave, SidePart, Bangs, Layered, Long, Volume, Short},
		domain.FaceShapeDiamond: {Bangs, Bob, Layered, Wave, SidePart, Volume, Long, Short},
	}
}

// rationales are templated with the style name
var rationales = map[domain.FaceShape]string{
	domain.FaceShapeRound:   "둥근형 얼굴에는 %s 스타일이 세로 라인을 강조해 얼굴을 갸름해 보이게 합니다",
	domain.FaceShapeOval:    "타원형 얼굴은 균형 잡힌 비율이라 %s 스타일의 장점을 그대로 살릴 수 있습니다",
	domain.FaceShapeSquare:  "각진형 얼굴에는 %s 스타일이 턱선의 각을 부드럽게 감싸 줍니다",
	domain.FaceShapeLong:    "긴형 얼굴에는 %s 스타일이 가로 볼륨을 더해 얼굴 길이를 보완합니다",
	domain.FaceShapeHeart:   "하트형 얼굴에는 %s 스타일이 좁은 턱 주변에 볼륨을 더해 균형을 맞춥니다",
	domain.FaceShapeDiamond: "다이아몬드형 얼굴에는 %s 스타일이 이마와 턱을 채워 광대를 부드럽게 보이게 합니다",
}

// Config configures the Engine
type Config struct {
	Limit       int
	Preferences map[domain.FaceShape][]Category
}

// Input is what the engine ranks for
type Input struct {
	Shape     domain.FaceShape
	Undertone domain.Undertone
	// AgeBand is optional; empty selects every band
	AgeBand domain.AgeBand
}

// Result is the ranked style list plus colour suggestions
type Result struct {
	Styles     []domain.Recommendation
	HairColors []string
}

type Engine struct {
	limit       int
	preferences map[domain.FaceShape][]Category
}

func NewEngine(cfg Config) *Engine {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Preferences == nil {
		cfg.Preferences = DefaultPreferences()
	}
	return &Engine{limit: cfg.Limit, preferences: cfg.Preferences}
}

type candidate struct {
	entry        catalog.StyleEntry
	category     string
	categoryRank int
	bandRank     int
}

// Recommend selects the styles for the shape and band and returns at most
// Limit of them. A specific band also matches styles tagged for all ages.
// The result is never padded with styles of another shape. The undertone
// only selects hair colour names.
func (e *Engine) Recommend(in Input, snap *catalog.Snapshot) Result {
	prefs := e.preferences[in.Shape]

	var entries []catalog.StyleEntry
	if in.AgeBand.IsWildcard() || in.AgeBand == domain.AgeBandAll {
		entries = snap.Entries(in.Shape, in.AgeBand)
	} else {
		entries = append(snap.Entries(in.Shape, in.AgeBand), snap.Entries(in.Shape, domain.AgeBandAll)...)
	}

	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		c := candidate{entry: entry, categoryRank: len(prefs), bandRank: bandRank(in.AgeBand, entry.AgeBand)}
		for i, cat := range prefs {
			if cat.Matches(entry.StyleName) {
				c.category, c.categoryRank = cat.Name, i
				break
			}
		}
		candidates = append(candidates, c)
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(a.categoryRank, b.categoryRank),
			cmp.Compare(a.bandRank, b.bandRank),
			cmp.Compare(a.entry.Sequence, b.entry.Sequence),
			cmp.Compare(a.entry.StyleName, b.entry.StyleName),
		)
	})

	styles := make([]domain.Recommendation, 0, min(e.limit, len(candidates)))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if len(styles) == e.limit {
			break
		}
		if seen[c.entry.StyleName] {
			continue
		}
		seen[c.entry.StyleName] = true

		styles = append(styles, domain.Recommendation{
			Rank:         len(styles) + 1,
			StyleName:    c.entry.StyleName,
			Category:     c.category,
			FaceShape:    c.entry.Shape,
			AgeBand:      c.entry.AgeBand,
			Rationale:    Rationale(in.Shape, c.entry.StyleName),
			PrimaryURL:   c.entry.PrimaryURL(),
			ImageURLs:    c.entry.URLs,
			VariantCount: len(c.entry.URLs),
		})
	}

	return Result{
		Styles:     styles,
		HairColors: in.Undertone.HairColors(),
	}
}

// Rationale renders the per-shape explanation for a style
func Rationale(shape domain.FaceShape, style string) string {
	tmpl, ok := rationales[shape]
	if !ok {
		return style
	}
	return fmt.Sprintf(tmpl, style)
}

// bandRank puts an exact band match ahead of all-ages styles
func bandRank(requested, actual domain.AgeBand) int {
	if requested.IsWildcard() || requested == actual {
		return 0
	}
	return 1
}
