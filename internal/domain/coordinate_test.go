package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinate_JSON(t *testing.T) {
	c := NewCoordinate(-100.3161, 25.6866)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `[-100.3161, 25.6866]`, string(data))

	var decoded Coordinate
	require.NoError(t, json.Unmarshal([]byte(`[2.1734, 41.3851]`), &decoded))
	assert.Equal(t, 2.1734, decoded.Lon)
	assert.Equal(t, 41.3851, decoded.Lat)

	err = json.Unmarshal([]byte(`[1]`), &decoded)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly 2")

	err = json.Unmarshal([]byte(`{"lat":1,"lon":2}`), &decoded)
	assert.Error(t, err)
}

func TestCoordinate_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		coord    Coordinate
		expected bool
	}{
		{name: "origin", coord: NewCoordinate(0, 0), expected: true},
		{name: "corner", coord: NewCoordinate(180, -90), expected: true},
		{name: "latitude out of range", coord: NewCoordinate(10, 91), expected: false},
		{name: "longitude out of range", coord: NewCoordinate(-181, 10), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.coord.IsValid())
		})
	}
}

func TestGeoPosition_Coordinate(t *testing.T) {
	p := GeoPosition{Latitude: 25.6866, Longitude: -100.3161, Timestamp: time.Now()}

	c := p.Coordinate()

	assert.Equal(t, -100.3161, c.Lon)
	assert.Equal(t, 25.6866, c.Lat)
}

func TestPositionState_ChangedFrom(t *testing.T) {
	var p PositionState
	a := NewCoordinate(1, 2)

	assert.True(t, p.ChangedFrom(a), "no previous position counts as a change")

	p.PreviousPosition = &a
	assert.False(t, p.ChangedFrom(NewCoordinate(1, 2)))
	assert.True(t, p.ChangedFrom(NewCoordinate(1, 2.000001)))
}

func TestGeolocationError_Error(t *testing.T) {
	err := &GeolocationError{Code: GeolocationPermissionDenied, Message: "User denied Geolocation"}
	assert.Equal(t, "geolocation error: permission_denied: User denied Geolocation", err.Error())

	err = &GeolocationError{Code: GeolocationUnsupported}
	assert.Equal(t, "geolocation error: unsupported", err.Error())
}
