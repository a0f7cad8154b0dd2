package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itinerary-microservice/internal/pkg/errors"
	"github.com/itinerary-microservice/internal/pkg/utils"
)

func TestDistance_OneDegreeOfLongitudeAtEquator(t *testing.T) {
	km, eta, err := utils.Distance(0, 0, 0, 1)

	assert.NoError(t, err)
	assert.InDelta(t, 111.19, km, 0.5)
	// 60 km/h: minutes are distance in km
	assert.InDelta(t, km, eta, 0.001)
}

func TestDistance_Symmetric(t *testing.T) {
	kmAB, etaAB, err := utils.Distance(-6.1754, 106.8272, -7.7956, 110.3695)
	assert.NoError(t, err)

	kmBA, etaBA, err := utils.Distance(-7.7956, 110.3695, -6.1754, 106.8272)
	assert.NoError(t, err)

	assert.Equal(t, kmAB, kmBA)
	assert.Equal(t, etaAB, etaBA)
}

func TestDistance_SamePoint(t *testing.T) {
	km, eta, err := utils.Distance(-6.9, 107.6, -6.9, 107.6)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, km)
	assert.Equal(t, 0.0, eta)
}

func TestDistance_InvalidCoordinates(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
	}{
		{"latitude above range", 91, 0, 0, 0},
		{"latitude below range", -90.5, 0, 0, 0},
		{"longitude above range", 0, 181, 0, 0},
		{"destination out of range", 0, 0, 0, -180.1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := utils.Distance(tc.lat1, tc.lng1, tc.lat2, tc.lng2)
			assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, utils.ValidateCoordinates(0, 0))
	assert.True(t, utils.ValidateCoordinates(-90, 180))
	assert.True(t, utils.ValidateCoordinates(90, -180))
	assert.False(t, utils.ValidateCoordinates(90.0001, 0))
	assert.False(t, utils.ValidateCoordinates(0, 180.0001))
}
