package metar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestDecodeHeader(t *testing.T) {
	t.Parallel()

	t.Run("station and time", func(t *testing.T) {
		t.Parallel()
		h, next := decodeHeader([]string{"LFBD", "121600Z", "33015KT"}, 0)
		require.Equal(t, 2, next)
		assert.Equal(t, "LFBD", h.StationID)
		assert.False(t, h.IsCorrected)
		assert.False(t, h.IsAutomated)
		require.NoError(t, h.TimeErr)
		assert.Equal(t, &MetarTime{Kind: TimeDayTime, Day: 12, Hour: 16}, h.Time)
	})

	t.Run("correction tag before the station", func(t *testing.T) {
		t.Parallel()
		h, next := decodeHeader([]string{"CCA", "LFBD", "121600Z"}, 0)
		require.Equal(t, 3, next)
		assert.Equal(t, "LFBD", h.StationID)
		assert.True(t, h.IsCorrected)
	})

	t.Run("COR and AUTO after the time", func(t *testing.T) {
		t.Parallel()
		h, next := decodeHeader([]string{"LFBD", "121600Z", "COR", "AUTO", "33015KT"}, 0)
		require.Equal(t, 4, next)
		assert.True(t, h.IsCorrected)
		assert.True(t, h.IsAutomated)
	})

	t.Run("impossible day keeps the header but drops the time", func(t *testing.T) {
		t.Parallel()
		h, next := decodeHeader([]string{"LFBD", "321600Z"}, 0)
		require.Equal(t, 2, next)
		assert.Equal(t, "LFBD", h.StationID)
		assert.Nil(t, h.Time)
		assert.Error(t, h.TimeErr)
	})

	t.Run("declines without a time group", func(t *testing.T) {
		t.Parallel()
		_, next := decodeHeader([]string{"LFBD"}, 0)
		assert.Equal(t, 0, next)
	})
}

func TestDecodeWind(t *testing.T) {
	t.Parallel()

	t.Run("direction speed and gust", func(t *testing.T) {
		t.Parallel()
		w, next := decodeWind([]string{"33015G25KT"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Exact(330), UnitDegreeTrue), w.FromDirection)
		assert.Equal(t, NewQuantity(Exact(15), UnitKnot), w.Speed)
		assert.Equal(t, NewQuantity(Exact(25), UnitKnot), w.Gust)
		assert.Nil(t, w.FromDirectionRange)
	})

	t.Run("variability lookahead", func(t *testing.T) {
		t.Parallel()
		w, next := decodeWind([]string{"33015KT", "270V040", "9999"}, 0)
		require.Equal(t, 2, next)
		assert.Equal(t, NewQuantity(RangeValue(Exact(270), Exact(40)), UnitDegreeTrue), w.FromDirectionRange)
	})

	t.Run("variable direction", func(t *testing.T) {
		t.Parallel()
		w, next := decodeWind([]string{"VRB03KT"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(VariableValue(), UnitDegreeTrue), w.FromDirection)
		assert.Equal(t, NewQuantity(Exact(3), UnitKnot), w.Speed)
	})

	t.Run("calm wind has no direction", func(t *testing.T) {
		t.Parallel()
		w, next := decodeWind([]string{"00000KT"}, 0)
		require.Equal(t, 1, next)
		assert.Nil(t, w.FromDirection)
		assert.Equal(t, NewQuantity(Exact(0), UnitKnot), w.Speed)
	})

	t.Run("missing direction", func(t *testing.T) {
		t.Parallel()
		w, next := decodeWind([]string{"///10KT"}, 0)
		require.Equal(t, 1, next)
		assert.Nil(t, w.FromDirection)
		assert.Equal(t, NewQuantity(Exact(10), UnitKnot), w.Speed)
	})

	t.Run("speed above instrument range", func(t *testing.T) {
		t.Parallel()
		w, next := decodeWind([]string{"240P99KT"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Above(99), UnitKnot), w.Speed)
	})

	t.Run("metres per second", func(t *testing.T) {
		t.Parallel()
		w, next := decodeWind([]string{"24007G14MPS"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Exact(7), UnitMetrePerSecond), w.Speed)
		assert.Equal(t, NewQuantity(Exact(14), UnitMetrePerSecond), w.Gust)
	})

	t.Run("estimated wind", func(t *testing.T) {
		t.Parallel()
		w, next := decodeWind([]string{"E33015KT"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Exact(330), UnitDegreeTrue), w.FromDirection)
	})

	t.Run("declines non-wind groups", func(t *testing.T) {
		t.Parallel()
		_, next := decodeWind([]string{"9999"}, 0)
		assert.Equal(t, 0, next)
	})
}

func TestDecodeVisibility(t *testing.T) {
	t.Parallel()

	t.Run("9999 means ten kilometres or more", func(t *testing.T) {
		t.Parallel()
		v, next := decodeVisibility([]string{"9999"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Above(10000), UnitMetre), v.Prevailing)
	})

	t.Run("CAVOK", func(t *testing.T) {
		t.Parallel()
		v, next := decodeVisibility([]string{"CAVOK"}, 0)
		require.Equal(t, 1, next)
		assert.True(t, v.CAVOK)
		assert.Equal(t, NewQuantity(Above(10000), UnitMetre), v.Prevailing)
	})

	t.Run("metres with NDV", func(t *testing.T) {
		t.Parallel()
		v, next := decodeVisibility([]string{"0400NDV"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Exact(400), UnitMetre), v.Prevailing)
	})

	t.Run("statute miles", func(t *testing.T) {
		t.Parallel()
		v, next := decodeVisibility([]string{"10SM"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Exact(10), UnitStatuteMile), v.Prevailing)
	})

	t.Run("detached unit token", func(t *testing.T) {
		t.Parallel()
		v, next := decodeVisibility([]string{"1", "SM"}, 0)
		require.Equal(t, 2, next)
		assert.Equal(t, NewQuantity(Exact(1), UnitStatuteMile), v.Prevailing)
	})

	t.Run("split mixed fraction", func(t *testing.T) {
		t.Parallel()
		v, next := decodeVisibility([]string{"1", "1/2SM"}, 0)
		require.Equal(t, 2, next)
		assert.Equal(t, NewQuantity(Exact(1.5), UnitStatuteMile), v.Prevailing)
	})

	t.Run("split mixed fraction with detached unit", func(t *testing.T) {
		t.Parallel()
		v, next := decodeVisibility([]string{"1", "1/2", "SM"}, 0)
		require.Equal(t, 3, next)
		assert.Equal(t, NewQuantity(Exact(1.5), UnitStatuteMile), v.Prevailing)
	})

	t.Run("fraction below instrument range", func(t *testing.T) {
		t.Parallel()
		v, next := decodeVisibility([]string{"M1/4SM"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Below(0.25), UnitStatuteMile), v.Prevailing)
	})

	t.Run("minimum and directional groups", func(t *testing.T) {
		t.Parallel()
		v, next := decodeVisibility([]string{"9999", "4000", "2000SW", "1000N", "Q1018"}, 0)
		require.Equal(t, 4, next)
		assert.Equal(t, NewQuantity(Above(10000), UnitMetre), v.Prevailing)
		assert.Equal(t, NewQuantity(Exact(4000), UnitMetre), v.Minimum)
		require.Len(t, v.Directional, 2)
		assert.Equal(t, DirectionalVisibility{
			Visibility: Quantity{Value: Exact(2000), Units: UnitMetre},
			Direction:  "south_west",
		}, v.Directional[0])
		assert.Equal(t, DirectionalVisibility{
			Visibility: Quantity{Value: Exact(1000), Units: UnitMetre},
			Direction:  "north",
		}, v.Directional[1])
	})

	t.Run("missing visibility is consumed without a value", func(t *testing.T) {
		t.Parallel()
		v, next := decodeVisibility([]string{"////"}, 0)
		require.Equal(t, 1, next)
		assert.Nil(t, v.Prevailing)
	})

	t.Run("declines non-visibility groups", func(t *testing.T) {
		t.Parallel()
		_, next := decodeVisibility([]string{"SCT025"}, 0)
		assert.Equal(t, 0, next)
	})
}

func TestDecodeRunwayVisualRange(t *testing.T) {
	t.Parallel()

	t.Run("metres with tendency", func(t *testing.T) {
		t.Parallel()
		r, next := decodeRunwayVisualRange([]string{"R23/1100D"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, "23", r.Runway)
		assert.Equal(t, Quantity{Value: Exact(1100), Units: UnitMetre}, r.VisualRange)
		assert.Equal(t, ptr.To(RVRTrend("decreasing")), r.Trend)
	})

	t.Run("feet with variable range", func(t *testing.T) {
		t.Parallel()
		r, next := decodeRunwayVisualRange([]string{"R06R/M0200VP2000FT/U"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, "06R", r.Runway)
		assert.Equal(t, Quantity{Value: RangeValue(Below(200), Above(2000)), Units: UnitFoot}, r.VisualRange)
		assert.Equal(t, ptr.To(RVRTrend("increasing")), r.Trend)
	})

	t.Run("slash before tendency", func(t *testing.T) {
		t.Parallel()
		r, next := decodeRunwayVisualRange([]string{"R21/1800V2000/N"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, ptr.To(RVRTrend("no_change")), r.Trend)
	})

	t.Run("declines non-RVR groups", func(t *testing.T) {
		t.Parallel()
		_, next := decodeRunwayVisualRange([]string{"RERA"}, 0)
		assert.Equal(t, 0, next)
	})
}

func TestDecodePresentWeather(t *testing.T) {
	t.Parallel()

	tests := []struct {
		group    string
		expected WeatherCondition
	}{
		{"+TSRA", WeatherCondition{
			Intensity:   IntensityHeavy,
			Descriptors: []WeatherDescriptor{"thunderstorm"},
			Phenomena:   []WeatherPhenomenon{"rain"},
		}},
		{"BCFG", WeatherCondition{
			Intensity:   IntensityModerate,
			Descriptors: []WeatherDescriptor{"patches"},
			Phenomena:   []WeatherPhenomenon{"fog"},
		}},
		{"-FZDZ", WeatherCondition{
			Intensity:   IntensityLight,
			Descriptors: []WeatherDescriptor{"freezing"},
			Phenomena:   []WeatherPhenomenon{"drizzle"},
		}},
		{"VCSH", WeatherCondition{
			Intensity:    IntensityModerate,
			IsInVicinity: true,
			Descriptors:  []WeatherDescriptor{"shower"},
			Phenomena:    []WeatherPhenomenon{},
		}},
		{"TS", WeatherCondition{
			Intensity:   IntensityModerate,
			Descriptors: []WeatherDescriptor{"thunderstorm"},
			Phenomena:   []WeatherPhenomenon{},
		}},
		{"RADZ", WeatherCondition{
			Intensity:   IntensityModerate,
			Descriptors: []WeatherDescriptor{},
			Phenomena:   []WeatherPhenomenon{"rain", "drizzle"},
		}},
		{"+SHRAGS", WeatherCondition{
			Intensity:   IntensityHeavy,
			Descriptors: []WeatherDescriptor{"shower"},
			Phenomena:   []WeatherPhenomenon{"rain", "snow_pellets"},
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.group, func(t *testing.T) {
			t.Parallel()
			w, next := decodePresentWeather([]string{tt.group}, 0)
			require.Equal(t, 1, next)
			assert.Equal(t, &tt.expected, w)
		})
	}

	t.Run("declines groups with no codes", func(t *testing.T) {
		t.Parallel()
		for _, group := range []string{"AUTO", "NOSIG", "///", "Q1018"} {
			_, next := decodePresentWeather([]string{group}, 0)
			assert.Equal(t, 0, next, "group %q", group)
		}
	})
}

func TestDecodeRecentWeather(t *testing.T) {
	t.Parallel()

	w, next := decodeRecentWeather([]string{"RETSRA"}, 0)
	require.Equal(t, 1, next)
	assert.Equal(t, []WeatherDescriptor{"thunderstorm"}, w.Descriptors)
	assert.Equal(t, []WeatherPhenomenon{"rain"}, w.Phenomena)

	_, next = decodeRecentWeather([]string{"RA"}, 0)
	assert.Equal(t, 0, next)
}

func TestDecodeCloudLayer(t *testing.T) {
	t.Parallel()

	t.Run("cover height and type", func(t *testing.T) {
		t.Parallel()
		c, next := decodeCloudLayer([]string{"SCT025CB"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, ptr.To(CloudCover("scattered")), c.Cover)
		assert.Equal(t, NewQuantity(Exact(2500), UnitFoot), c.Height)
		assert.Equal(t, ptr.To(CloudType("cumulonimbus")), c.CloudType)
	})

	t.Run("vertical visibility", func(t *testing.T) {
		t.Parallel()
		c, next := decodeCloudLayer([]string{"VV002"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, ptr.To(CloudCover("vertical_visibility")), c.Cover)
		assert.Equal(t, NewQuantity(Exact(200), UnitFoot), c.Height)
	})

	t.Run("cover only", func(t *testing.T) {
		t.Parallel()
		c, next := decodeCloudLayer([]string{"NSC"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, ptr.To(CloudCover("nil_significant_cloud")), c.Cover)
		assert.Nil(t, c.Height)
		assert.Nil(t, c.CloudType)
	})

	t.Run("missing height", func(t *testing.T) {
		t.Parallel()
		c, next := decodeCloudLayer([]string{"FEW///"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, ptr.To(CloudCover("few")), c.Cover)
		assert.Nil(t, c.Height)
	})

	t.Run("missing cover", func(t *testing.T) {
		t.Parallel()
		c, next := decodeCloudLayer([]string{"///015"}, 0)
		require.Equal(t, 1, next)
		assert.Nil(t, c.Cover)
		assert.Equal(t, NewQuantity(Exact(1500), UnitFoot), c.Height)
	})

	t.Run("declines when everything is missing", func(t *testing.T) {
		t.Parallel()
		_, next := decodeCloudLayer([]string{"//////"}, 0)
		assert.Equal(t, 0, next)
	})
}

func TestDecodeTemperature(t *testing.T) {
	t.Parallel()

	t.Run("positive pair", func(t *testing.T) {
		t.Parallel()
		temp, next := decodeTemperature([]string{"17/15"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Exact(17), UnitDegreeCelsius), temp.Temperature)
		assert.Equal(t, NewQuantity(Exact(15), UnitDegreeCelsius), temp.DewPoint)
	})

	t.Run("M prefix means minus", func(t *testing.T) {
		t.Parallel()
		temp, next := decodeTemperature([]string{"M01/M04"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Exact(-1), UnitDegreeCelsius), temp.Temperature)
		assert.Equal(t, NewQuantity(Exact(-4), UnitDegreeCelsius), temp.DewPoint)
	})

	t.Run("missing dew point", func(t *testing.T) {
		t.Parallel()
		temp, next := decodeTemperature([]string{"25/"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Exact(25), UnitDegreeCelsius), temp.Temperature)
		assert.Nil(t, temp.DewPoint)
	})

	t.Run("missing temperature", func(t *testing.T) {
		t.Parallel()
		temp, next := decodeTemperature([]string{"///12"}, 0)
		require.Equal(t, 1, next)
		assert.Nil(t, temp.Temperature)
		assert.Equal(t, NewQuantity(Exact(12), UnitDegreeCelsius), temp.DewPoint)
	})
}

func TestDecodePressure(t *testing.T) {
	t.Parallel()

	t.Run("hectopascals", func(t *testing.T) {
		t.Parallel()
		q, next := decodePressure([]string{"Q1018"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Exact(1018), UnitHectopascal), q)
	})

	t.Run("inches of mercury are scaled down", func(t *testing.T) {
		t.Parallel()
		q, next := decodePressure([]string{"A2992"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Exact(29.92), UnitInchOfMercury), q)
	})

	t.Run("missing value is consumed without a quantity", func(t *testing.T) {
		t.Parallel()
		q, next := decodePressure([]string{"Q////"}, 0)
		require.Equal(t, 1, next)
		assert.Nil(t, q)
	})
}

func TestDecodeWindShear(t *testing.T) {
	t.Parallel()

	t.Run("all runways", func(t *testing.T) {
		t.Parallel()
		ws, next := decodeWindShear([]string{"WS", "ALL", "RWY"}, 0)
		require.Equal(t, 3, next)
		assert.True(t, ws.AllRunways)
		assert.Nil(t, ws.Runway)
	})

	t.Run("single runway", func(t *testing.T) {
		t.Parallel()
		ws, next := decodeWindShear([]string{"WS", "R23"}, 0)
		require.Equal(t, 2, next)
		assert.Equal(t, ptr.To("23"), ws.Runway)
		assert.False(t, ws.AllRunways)
	})

	t.Run("RWY spelling", func(t *testing.T) {
		t.Parallel()
		ws, next := decodeWindShear([]string{"WS", "RWY22L"}, 0)
		require.Equal(t, 2, next)
		assert.Equal(t, ptr.To("22L"), ws.Runway)
	})

	t.Run("declines a dangling WS", func(t *testing.T) {
		t.Parallel()
		_, next := decodeWindShear([]string{"WS"}, 0)
		assert.Equal(t, 0, next)
	})
}

func TestDecodeSeaState(t *testing.T) {
	t.Parallel()

	t.Run("temperature and state code", func(t *testing.T) {
		t.Parallel()
		s, next := decodeSeaState([]string{"W15/S4"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Exact(15), UnitDegreeCelsius), s.SurfaceTemperature)
		assert.Equal(t, ptr.To(4), s.StateCode)
		assert.Nil(t, s.WaveHeight)
	})

	t.Run("wave height in decimetres", func(t *testing.T) {
		t.Parallel()
		s, next := decodeSeaState([]string{"W12/H75"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Exact(7.5), UnitMetre), s.WaveHeight)
		assert.Nil(t, s.StateCode)
	})

	t.Run("negative water temperature", func(t *testing.T) {
		t.Parallel()
		s, next := decodeSeaState([]string{"WM01/S2"}, 0)
		require.Equal(t, 1, next)
		assert.Equal(t, NewQuantity(Exact(-1), UnitDegreeCelsius), s.SurfaceTemperature)
	})

	t.Run("missing temperature", func(t *testing.T) {
		t.Parallel()
		s, next := decodeSeaState([]string{"W///S3"}, 0)
		require.Equal(t, 1, next)
		assert.Nil(t, s.SurfaceTemperature)
		assert.Equal(t, ptr.To(3), s.StateCode)
	})
}

func TestDecodeColorCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, decodeColorCodes([]string{"BLU", "GRN", "TEMPO"}, 0))
	assert.Equal(t, 1, decodeColorCodes([]string{"BLACKWHT"}, 0))
	assert.Equal(t, 0, decodeColorCodes([]string{"AMBER"}, 0))
}
