package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaceShapeTags(t *testing.T) {
	tests := []struct {
		shape FaceShape
		tag   string
	}{
		{FaceShapeRound, "둥근형"},
		{FaceShapeOval, "타원형"},
		{FaceShapeSquare, "각진형"},
		{FaceShapeLong, "긴형"},
		{FaceShapeHeart, "하트형"},
		{FaceShapeDiamond, "다이아몬드형"},
	}

	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			assert.Equal(t, tt.tag, tt.shape.Tag())

			got, ok := FaceShapeFromTag(tt.tag)
			require.True(t, ok)
			assert.Equal(t, tt.shape, got)
		})
	}

	_, ok := FaceShapeFromTag("세모형")
	assert.False(t, ok)
}

func TestFaceShape_Priority(t *testing.T) {
	assert.Less(t, FaceShapeOval.Priority(), FaceShapeRound.Priority())
	assert.Less(t, FaceShapeRound.Priority(), FaceShapeSquare.Priority())
	assert.Less(t, FaceShapeSquare.Priority(), FaceShapeLong.Priority())
	assert.Less(t, FaceShapeLong.Priority(), FaceShapeHeart.Priority())
	assert.Less(t, FaceShapeHeart.Priority(), FaceShapeDiamond.Priority())
	assert.Equal(t, len(FaceShapes), FaceShape("triangle").Priority())
}

func TestParseFaceShape(t *testing.T) {
	got, err := ParseFaceShape("round")
	require.NoError(t, err)
	assert.Equal(t, FaceShapeRound, got)

	got, err = ParseFaceShape("하트형")
	require.NoError(t, err)
	assert.Equal(t, FaceShapeHeart, got)

	_, err = ParseFaceShape("triangle")
	assert.True(t, errors.Is(err, ErrInvalidFaceShape))
}

func TestParseAgeBand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AgeBand
		wantErr bool
	}{
		{"empty is wildcard", "", AgeBandAny, false},
		{"teens and twenties", "1020대", AgeBand1020, false},
		{"all ages tag", "전연령", AgeBandAll, false},
		{"unknown band", "80대", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAgeBand(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAgeBand)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.True(t, AgeBandAny.IsWildcard())
	assert.False(t, AgeBandAll.IsWildcard())
}

func TestUndertone_HairColors(t *testing.T) {
	for _, u := range []Undertone{UndertoneWarm, UndertoneCool, UndertoneNeutral} {
		assert.NotEmpty(t, u.HairColors(), string(u))
	}

	colors := UndertoneWarm.HairColors()
	colors[0] = "changed"
	assert.NotEqual(t, "changed", UndertoneWarm.HairColors()[0], "HairColors must return a copy")
}
