package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Asset
	}{
		{
			name:  "double extension",
			input: "117_레이어드미디움_타원형_1020대_v1.jpg.jpg",
			want: Asset{
				Sequence: 117, StyleName: "레이어드미디움", Shape: domain.FaceShapeOval,
				AgeBand: domain.AgeBand1020, Variant: 1, Extension: "jpg.jpg",
			},
		},
		{
			name:  "zero padded sequence",
			input: "001_클래식보브_둥근형_3040대_v12.png",
			want: Asset{
				Sequence: 1, StyleName: "클래식보브", Shape: domain.FaceShapeRound,
				AgeBand: domain.AgeBand3040, Variant: 12, Extension: "png",
			},
		},
		{
			name:  "path prefix stripped",
			input: "hairstyles/2024/42_투블럭컷_각진형_전연령_v3.webp",
			want: Asset{
				Sequence: 42, StyleName: "투블럭컷", Shape: domain.FaceShapeSquare,
				AgeBand: domain.AgeBandAll, Variant: 3, Extension: "webp",
			},
		},
		{
			name:  "style containing separator",
			input: "7_히피펌_롱_긴형_5060대_v2.jpg",
			want: Asset{
				Sequence: 7, StyleName: "히피펌_롱", Shape: domain.FaceShapeLong,
				AgeBand: domain.AgeBand5060, Variant: 2, Extension: "jpg",
			},
		},
		{
			name:  "decomposed hangul",
			input: norm.NFD.String("3_허쉬컷_다이아몬드형_1020대_v1.jpg"),
			want: Asset{
				Sequence: 3, StyleName: "허쉬컷", Shape: domain.FaceShapeDiamond,
				AgeBand: domain.AgeBand1020, Variant: 1, Extension: "jpg",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilename(tt.input)
			require.NoError(t, err)

			tt.want.ObjectName = tt.input
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFilename_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "missing age band", input: "002_단발_둥근형_v1.jpg"},
		{name: "missing extension", input: "002_단발_둥근형_1020대_v1"},
		{name: "non numeric sequence", input: "A02_단발_둥근형_1020대_v1.jpg"},
		{name: "negative sequence", input: "-2_단발_둥근형_1020대_v1.jpg"},
		{name: "unknown shape", input: "002_단발_세모형_1020대_v1.jpg"},
		{name: "english shape", input: "002_단발_round_1020대_v1.jpg"},
		{name: "unknown age band", input: "002_단발_둥근형_7080대_v1.jpg"},
		{name: "variant without prefix", input: "002_단발_둥근형_1020대_1.jpg"},
		{name: "variant zero", input: "002_단발_둥근형_1020대_v0.jpg"},
		{name: "variant not numeric", input: "002_단발_둥근형_1020대_vX.jpg"},
		{name: "empty style", input: "002__둥근형_1020대_v1.jpg"},
		{name: "no separator", input: "readme.txt"},
		{name: "trailing dot", input: "002_단발_둥근형_1020대_v1.jpg."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilename(tt.input)
			assert.ErrorIs(t, err, ErrMalformedFilename)
		})
	}
}

func TestFormatFilename_RoundTrip(t *testing.T) {
	for i, shape := range domain.FaceShapes {
		for j, band := range domain.AgeBands {
			in := Asset{
				Sequence:  i*10 + j,
				StyleName: "스타일_" + string(shape),
				Shape:     shape,
				AgeBand:   band,
				Variant:   j + 1,
				Extension: "jpg.jpg",
			}

			name := FormatFilename(in)
			got, err := ParseFilename(name)
			require.NoError(t, err, name)

			in.ObjectName = name
			assert.Equal(t, in, got)
		}
	}
}

func TestAsset_Key(t *testing.T) {
	a := Asset{StyleName: "클래식보브", Shape: domain.FaceShapeRound, AgeBand: domain.AgeBand1020}
	assert.Equal(t, "round|1020대|클래식보브", a.Key())
}
