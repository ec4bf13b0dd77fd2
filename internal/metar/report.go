package metar

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
)

// DirectionalVisibility is a visibility reported toward one compass octant.
type DirectionalVisibility struct {
	Visibility Quantity        `json:"visibility"`
	Direction  DirectionOctant `json:"direction"`
}

// RunwayVisualRange is the visual range reported for one runway.
type RunwayVisualRange struct {
	Runway      string    `json:"runway"`
	VisualRange Quantity  `json:"visual_range"`
	Trend       *RVRTrend `json:"trend"`
}

// WeatherCondition is one present or recent weather group.
type WeatherCondition struct {
	Intensity    WeatherIntensity    `json:"intensity"`
	IsInVicinity bool                `json:"is_in_vicinity"`
	Descriptors  []WeatherDescriptor `json:"descriptors"`
	Phenomena    []WeatherPhenomenon `json:"phenomena"`
}

// CloudLayer is one cloud group; any of its parts may be unreported.
type CloudLayer struct {
	Cover     *CloudCover `json:"cover"`
	Height    *Quantity   `json:"height"`
	CloudType *CloudType  `json:"cloud_type"`
}

// WindShear reports wind shear for one runway or for all of them.
type WindShear struct {
	Runway     *string `json:"runway"`
	AllRunways bool    `json:"all_runways"`
}

// TrendChange is one forecast change block (NOSIG, TEMPO or BECMG) with its
// optional FM/TL/AT bounds and the changed elements.
type TrendChange struct {
	Indicator TrendIndicator `json:"indicator"`
	FromTime  *MetarTime     `json:"from_time"`
	ToTime    *MetarTime     `json:"to_time"`
	AtTime    *MetarTime     `json:"at_time"`

	WindFromDirection      *Quantity `json:"wind_from_direction"`
	WindFromDirectionRange *Quantity `json:"wind_from_direction_range"`
	WindSpeed              *Quantity `json:"wind_speed"`
	WindGust               *Quantity `json:"wind_gust"`

	PrevailingVisibility *Quantity `json:"prevailing_visibility"`

	PresentWeather []WeatherCondition `json:"present_weather"`
	Clouds         []CloudLayer       `json:"clouds"`
}

// Report is one decoded METAR or SPECI report.
type Report struct {
	StationID       string     `json:"station_id"`
	ObservationTime *MetarTime `json:"observation_time"`
	IsCorrected     bool       `json:"is_corrected"`
	IsAutomated     bool       `json:"is_automated"`

	WindFromDirection      *Quantity `json:"wind_from_direction"`
	WindFromDirectionRange *Quantity `json:"wind_from_direction_range"`
	WindSpeed              *Quantity `json:"wind_speed"`
	WindGust               *Quantity `json:"wind_gust"`

	PrevailingVisibility    *Quantity               `json:"prevailing_visibility"`
	MinimumVisibility       *Quantity               `json:"minimum_visibility"`
	DirectionalVisibilities []DirectionalVisibility `json:"directional_visibilites"`

	RunwayVisualRanges []RunwayVisualRange `json:"runway_visual_ranges"`
	PresentWeather     []WeatherCondition  `json:"present_weather"`
	Clouds             []CloudLayer        `json:"clouds"`
	Ceiling            *Quantity           `json:"ceiling"`

	Temperature *Quantity `json:"temperature"`
	DewPoint    *Quantity `json:"dew_point"`
	Pressure    *Quantity `json:"pressure"`

	RecentWeather []WeatherCondition `json:"recent_weather"`
	WindShears    []WindShear        `json:"wind_shears"`

	SeaSurfaceTemperature *Quantity `json:"sea_surface_temperature"`
	SeaStateCode          *int      `json:"sea_state_code"`
	SignificantWaveHeight *Quantity `json:"significant_wave_height"`

	Trends []TrendChange `json:"trends"`

	Report string `json:"report"`
}

// Decoder decodes raw METAR/SPECI reports. Anchor, when set, resolves
// day-of-month observation times and trend clock times into full timestamps.
// Logger receives unparsed-group debug lines and datetime warnings; nil
// falls back to slog.Default(). The zero value is ready to use.
type Decoder struct {
	Anchor *time.Time
	Logger *slog.Logger
}

func (d *Decoder) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// Decode decodes one raw report. It fails only when no station id and time
// group can be located; every other malformed group leaves its fields absent
// and the decode continues.
func (d *Decoder) Decode(raw string) (*Report, error) {
	sanitized := Sanitize(raw)
	toks := strings.Fields(sanitized)

	rep := &Report{
		DirectionalVisibilities: []DirectionalVisibility{},
		RunwayVisualRanges:      []RunwayVisualRange{},
		PresentWeather:          []WeatherCondition{},
		Clouds:                  []CloudLayer{},
		RecentWeather:           []WeatherCondition{},
		WindShears:              []WindShear{},
		Trends:                  []TrendChange{},
		Report:                  sanitized,
	}

	var (
		headerDone, windDone, visDone, tempDone, pressDone bool
		unparsed                                           []string
		trendIndicator                                     TrendIndicator
		trendToks                                          []string
	)
	section := SectionMain

	flushTrend := func() {
		if trendIndicator == "" {
			return
		}
		rep.Trends = append(rep.Trends, d.decodeTrend(trendIndicator, trendToks, rep.ObservationTime))
		trendIndicator, trendToks = "", nil
	}

	i := 0
	for i < len(toks) {
		if marker, indicator, ok := sectionMarker(toks[i]); ok {
			flushTrend()
			section = marker
			trendIndicator = indicator
			i++
			continue
		}
		switch section {
		case SectionRemark:
			i++
		case SectionTrend:
			trendToks = append(trendToks, toks[i])
			i++
		default:
			i = d.decodeMainGroup(rep, toks, i, &headerDone, &windDone, &visDone, &tempDone, &pressDone, &unparsed)
		}
	}
	flushTrend()

	if !headerDone {
		return nil, fmt.Errorf("no station identifier found in report %q", sanitized)
	}

	rep.Ceiling = calculateCeiling(rep.Clouds)

	if len(unparsed) > 0 {
		d.logger().Debug("unparsed report groups",
			"station", rep.StationID, "groups", unparsed, "report", sanitized)
	}
	return rep, nil
}

// decodeMainGroup tries each main-section decoder against the group at the
// cursor in fixed priority order and returns the advanced cursor. Fields
// reported at most once keep their first occurrence; later duplicates fall
// through to lower-priority decoders or the unparsed list.
func (d *Decoder) decodeMainGroup(rep *Report, toks []string, i int, headerDone, windDone, visDone, tempDone, pressDone *bool, unparsed *[]string) int {
	if !*headerDone {
		if h, next := decodeHeader(toks, i); next != i {
			rep.StationID = h.StationID
			rep.IsCorrected = h.IsCorrected
			rep.IsAutomated = h.IsAutomated
			rep.ObservationTime = d.resolveTime(h.Time, h.TimeErr, d.Anchor)
			*headerDone = true
			return next
		}
	}
	if !*windDone {
		if w, next := decodeWind(toks, i); next != i {
			rep.WindFromDirection = w.FromDirection
			rep.WindFromDirectionRange = w.FromDirectionRange
			rep.WindSpeed = w.Speed
			rep.WindGust = w.Gust
			*windDone = true
			return next
		}
	}
	if !*visDone {
		if v, next := decodeVisibility(toks, i); next != i {
			rep.PrevailingVisibility = v.Prevailing
			rep.MinimumVisibility = v.Minimum
			rep.DirectionalVisibilities = append(rep.DirectionalVisibilities, v.Directional...)
			if v.CAVOK {
				cover := CoverCeilingOK
				rep.Clouds = append(rep.Clouds, CloudLayer{Cover: &cover})
			}
			*visDone = true
			return next
		}
	}
	if r, next := decodeRunwayVisualRange(toks, i); next != i {
		rep.RunwayVisualRanges = append(rep.RunwayVisualRanges, *r)
		return next
	}
	if w, next := decodePresentWeather(toks, i); next != i {
		rep.PresentWeather = append(rep.PresentWeather, *w)
		return next
	}
	if c, next := decodeCloudLayer(toks, i); next != i {
		rep.Clouds = append(rep.Clouds, *c)
		return next
	}
	if !*tempDone {
		if t, next := decodeTemperature(toks, i); next != i {
			rep.Temperature = t.Temperature
			rep.DewPoint = t.DewPoint
			*tempDone = true
			return next
		}
	}
	if q, next := decodePressure(toks, i); next != i {
		if !*pressDone && q != nil {
			rep.Pressure = q
			*pressDone = true
		}
		return next
	}
	if w, next := decodeRecentWeather(toks, i); next != i {
		rep.RecentWeather = append(rep.RecentWeather, *w)
		return next
	}
	if ws, next := decodeWindShear(toks, i); next != i {
		rep.WindShears = append(rep.WindShears, *ws)
		return next
	}
	if s, next := decodeSeaState(toks, i); next != i {
		rep.SeaSurfaceTemperature = s.SurfaceTemperature
		rep.SeaStateCode = s.StateCode
		rep.SignificantWaveHeight = s.WaveHeight
		return next
	}
	if next := decodeColorCodes(toks, i); next != i {
		return next
	}
	// Groups made only of slashes stand for missing data; they are skipped
	// without being reported.
	if strings.Trim(toks[i], "/") != "" {
		*unparsed = append(*unparsed, toks[i])
	}
	return i + 1
}

// resolveTime applies the anchor to a decoded time, downgrading resolution
// problems to warnings.
func (d *Decoder) resolveTime(t *MetarTime, parseErr error, anchor *time.Time) *MetarTime {
	if parseErr != nil {
		d.logger().Warn("dropping unusable time group", "error", parseErr)
		return nil
	}
	if t == nil || anchor == nil {
		return t
	}
	resolved, err := t.Resolve(*anchor)
	if err != nil {
		d.logger().Warn("dropping unresolvable time group", "error", err)
		return nil
	}
	return resolved
}

// calculateCeiling derives the cloud ceiling: the lowest broken, overcast or
// vertical-visibility layer height. Layers that cannot hide the sky make the
// ceiling unlimited; an obscuring layer with no usable height makes it
// indefinite.
func calculateCeiling(layers []CloudLayer) *Quantity {
	lowest := math.MaxFloat64
	var unlimited *bool
	for _, layer := range layers {
		if layer.Cover == nil {
			continue
		}
		switch *layer.Cover {
		case "broken", "overcast", "vertical_visibility":
			unlimited = new(bool)
			if layer.Height != nil && layer.Height.Value.Kind == ValueExact {
				lowest = math.Min(lowest, layer.Height.Value.Num)
			}
		default:
			if unlimited == nil {
				t := true
				unlimited = &t
			}
		}
	}
	switch {
	case unlimited == nil:
		return nil
	case *unlimited:
		return NewQuantity(Value{Kind: ValueUnlimited}, UnitFoot)
	case lowest < math.MaxFloat64:
		return NewQuantity(Exact(lowest), UnitFoot)
	default:
		return NewQuantity(Value{Kind: ValueIndefinite}, UnitFoot)
	}
}
