package coords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXZBBoxFromLengths(t *testing.T) {
	box, err := XZBBoxFromLengths(20, 30)
	require.NoError(t, err)
	assert.Equal(t, XZ(0, 0), box.Min())
	assert.Equal(t, XZ(19, 29), box.Max())
	assert.Equal(t, 20, box.LengthX())
	assert.Equal(t, 30, box.LengthZ())

	_, err = XZBBoxFromLengths(0, 10)
	assert.ErrorIs(t, err, ErrInvalidBBox)
}

func TestXZBBoxContains(t *testing.T) {
	box := NewXZBBox(XZ(5, 5), XZ(0, 0))
	assert.True(t, box.Contains(XZ(0, 0)))
	assert.True(t, box.Contains(XZ(5, 5)))
	assert.False(t, box.Contains(XZ(6, 0)))
	assert.False(t, box.Contains(XZ(0, -1)))
}

func TestNewLLBBoxRejectsInvalid(t *testing.T) {
	_, err := NewLLBBox(1.0, 0.0, 0.0, 1.0)
	assert.ErrorIs(t, err, ErrInvalidBBox)

	_, err = NewLLBBox(-91.0, 0.0, 0.0, 1.0)
	assert.ErrorIs(t, err, ErrInvalidBBox)

	_, err = NewLLBBox(0.0, 0.0, 1.0, 1.0)
	assert.NoError(t, err)
}

func TestGeoDistance(t *testing.T) {
	a := LLPoint{Lat: 0, Lng: 0}
	b := LLPoint{Lat: 0.01, Lng: 0.01}
	metersZ, metersX := GeoDistance(a, b)

	// One hundredth of a degree is roughly 1.1 km.
	assert.InDelta(t, 1111.9, metersZ, 10)
	assert.InDelta(t, 1111.9, metersX, 10)
}

func TestTransformerProjectsCorners(t *testing.T) {
	bbox, err := NewLLBBox(0.0, 0.0, 0.01, 0.01)
	require.NoError(t, err)

	tr, err := NewTransformer(bbox, 1.0)
	require.NoError(t, err)

	blocks := tr.BlockBBox()
	assert.Equal(t, XZ(0, 0), blocks.Min())

	// The north-west corner maps to the grid origin.
	nw := tr.ToXZ(LLPoint{Lat: 0.01, Lng: 0.0})
	assert.Equal(t, XZ(0, 0), nw)

	// The south-east corner maps to the grid maximum.
	se := tr.ToXZ(LLPoint{Lat: 0.0, Lng: 0.01})
	assert.Equal(t, blocks.Max(), se)
}

func TestTransformerScale(t *testing.T) {
	bbox, err := NewLLBBox(0.0, 0.0, 0.01, 0.01)
	require.NoError(t, err)

	base, err := NewTransformer(bbox, 1.0)
	require.NoError(t, err)
	doubled, err := NewTransformer(bbox, 2.0)
	require.NoError(t, err)

	assert.Equal(t, base.BlockBBox().LengthX()*2, doubled.BlockBBox().LengthX())
}
