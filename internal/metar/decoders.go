package metar

import (
	"regexp"
	"strconv"
	"strings"

	"k8s.io/utils/ptr"
)

// Section decoders take the token slice and a cursor and return the decoded
// fields with the cursor advanced past everything they consumed. A decoder
// that does not recognize the group at the cursor declines by returning the
// cursor unchanged.

type headerFields struct {
	StationID   string
	Time        *MetarTime
	TimeErr     error
	IsCorrected bool
	IsAutomated bool
}

// decodeHeader matches the mandatory station id + day-time pair, optionally
// preceded by a CCA-CCZ correction tag and optionally followed by COR/CCx
// and AUTO. A malformed time group leaves Time nil with TimeErr set; the
// header still matches.
func decodeHeader(toks []string, i int) (*headerFields, int) {
	start := i
	h := &headerFields{}
	if corPrefixRegex.MatchString(toks[i]) && i+2 < len(toks) &&
		stationRegex.MatchString(toks[i+1]) && dayTimeRegex.MatchString(toks[i+2]) {
		h.IsCorrected = true
		i++
	}
	if i+1 >= len(toks) || !stationRegex.MatchString(toks[i]) {
		return nil, start
	}
	m := dayTimeRegex.FindStringSubmatch(toks[i+1])
	if m == nil {
		return nil, start
	}
	h.StationID = toks[i]
	day, _ := strconv.Atoi(m[1])
	hour, _ := strconv.Atoi(m[2])
	minute, _ := strconv.Atoi(m[3])
	h.Time, h.TimeErr = NewDayTime(day, hour, minute)
	i += 2
	if i < len(toks) && correctionRegex.MatchString(toks[i]) {
		h.IsCorrected = true
		i++
	}
	if i < len(toks) && toks[i] == "AUTO" {
		h.IsAutomated = true
		i++
	}
	return h, i
}

type windFields struct {
	FromDirection      *Quantity
	FromDirectionRange *Quantity
	Speed              *Quantity
	Gust               *Quantity
}

// decodeWind matches a wind group and, when present, the following
// DDDVDDD variability group.
func decodeWind(toks []string, i int) (*windFields, int) {
	m := windRegex.FindStringSubmatch(toks[i])
	if m == nil {
		return nil, i
	}
	w := &windFields{}
	var units Unit
	switch m[4] {
	case "KT":
		units = UnitKnot
	case "MPS":
		units = UnitMetrePerSecond
	}
	dir, speed := m[1], m[2]
	// 00000KT reports calm wind: a zero speed with no direction.
	if dir == "000" && strings.Trim(speed, "0") == "" {
		dir = "///"
	}
	if dir != "///" {
		if v, err := ParseValue(dir); err == nil {
			w.FromDirection = NewQuantity(v, UnitDegreeTrue)
		}
	}
	if speed != "//" {
		if v, err := ParseValue(speed); err == nil {
			w.Speed = NewQuantity(v, units)
		}
	}
	if m[3] != "" && m[3] != "//" {
		if v, err := ParseValue(m[3]); err == nil {
			w.Gust = NewQuantity(v, units)
		}
	}
	i++
	if i < len(toks) {
		if vm := windVarRegex.FindStringSubmatch(toks[i]); vm != nil {
			lo, _ := ParseValue(vm[1])
			hi, _ := ParseValue(vm[2])
			w.FromDirectionRange = NewQuantity(RangeValue(lo, hi), UnitDegreeTrue)
			i++
		}
	}
	return w, i
}

type visibilityFields struct {
	Prevailing  *Quantity
	Minimum     *Quantity
	Directional []DirectionalVisibility
	CAVOK       bool
}

// decodeVisibility matches the prevailing visibility group, including CAVOK,
// a detached "SM" unit token, a split mixed fraction ("1 1/2SM"), and any
// following minimum and directional visibility groups.
func decodeVisibility(toks []string, i int) (*visibilityFields, int) {
	v := &visibilityFields{}
	tok := toks[i]
	if tok == "CAVOK" {
		v.Prevailing = NewQuantity(Above(10000), UnitMetre)
		v.CAVOK = true
		return v, i + 1
	}
	if tok == "////" {
		return v, i + 1
	}
	units := UnitMetre
	var prevailing *Value
	if m := visRegex.FindStringSubmatch(tok); m != nil {
		prefix, digits := m[1], m[2]
		i++
		if m[4] != "" {
			units = UnitStatuteMile
		} else if i < len(toks) && toks[i] == "SM" {
			units = UnitStatuteMile
			i++
		} else if i < len(toks) {
			if fm := visFracRegex.FindStringSubmatch(toks[i]); fm != nil && fm[1] == "" {
				digits = digits + " " + fm[2] + "/" + fm[3]
				i++
				if fm[4] != "" {
					units = UnitStatuteMile
				} else if i < len(toks) && toks[i] == "SM" {
					units = UnitStatuteMile
					i++
				}
			}
		}
		if val, err := ParseValue(prefix + digits); err == nil {
			// 9999 means 10 km or more.
			if units == UnitMetre && val == Exact(9999) {
				val = Above(10000)
			}
			prevailing = &val
		}
	} else if m := visFracRegex.FindStringSubmatch(tok); m != nil {
		i++
		if m[4] != "" {
			units = UnitStatuteMile
		} else if i < len(toks) && toks[i] == "SM" {
			units = UnitStatuteMile
			i++
		}
		if val, err := ParseValue(m[1] + m[2] + "/" + m[3]); err == nil {
			prevailing = &val
		}
	} else {
		return nil, i
	}
	if prevailing != nil {
		v.Prevailing = NewQuantity(*prevailing, units)
	}
	if i < len(toks) && visMinRegex.MatchString(toks[i]) {
		if val, err := ParseValue(toks[i]); err == nil {
			v.Minimum = NewQuantity(val, units)
			i++
		}
	}
	for i < len(toks) {
		dm := visDirRegex.FindStringSubmatch(toks[i])
		if dm == nil {
			break
		}
		octant, ok := directionOctants[dm[2]]
		if !ok {
			break
		}
		val, err := ParseValue(dm[1])
		if err != nil {
			break
		}
		v.Directional = append(v.Directional, DirectionalVisibility{
			Visibility: Quantity{Value: val, Units: units},
			Direction:  octant,
		})
		i++
	}
	return v, i
}

// decodeRunwayVisualRange matches one RVR group like R23/1100D or
// R06R/M0200VP2000FT/U.
func decodeRunwayVisualRange(toks []string, i int) (*RunwayVisualRange, int) {
	m := rvrRegex.FindStringSubmatch(toks[i])
	if m == nil {
		return nil, i
	}
	val, err := ParseValue(m[2])
	if err != nil {
		return nil, i
	}
	units := UnitMetre
	if m[3] == "FT" {
		units = UnitFoot
	}
	r := &RunwayVisualRange{
		Runway:      m[1],
		VisualRange: Quantity{Value: val, Units: units},
	}
	if m[4] != "" {
		trend := rvrTrends[m[4]]
		r.Trend = &trend
	}
	return r, i + 1
}

// decodeWeatherCondition matches one present or recent weather group. All
// codes are two characters, so descriptor and phenomenon lists split evenly.
func decodeWeatherCondition(re *regexp.Regexp, toks []string, i int) (*WeatherCondition, int) {
	m := re.FindStringSubmatch(toks[i])
	if m == nil || (m[3] == "" && m[4] == "") {
		return nil, i
	}
	w := &WeatherCondition{
		Intensity:   IntensityModerate,
		Descriptors: []WeatherDescriptor{},
		Phenomena:   []WeatherPhenomenon{},
	}
	switch m[1] {
	case "-":
		w.Intensity = IntensityLight
	case "+":
		w.Intensity = IntensityHeavy
	}
	w.IsInVicinity = m[2] == "VC"
	for codes := m[3]; codes != ""; codes = codes[2:] {
		w.Descriptors = append(w.Descriptors, weatherDescriptors[codes[:2]])
	}
	for codes := m[4]; codes != ""; codes = codes[2:] {
		w.Phenomena = append(w.Phenomena, weatherPhenomena[codes[:2]])
	}
	return w, i + 1
}

func decodePresentWeather(toks []string, i int) (*WeatherCondition, int) {
	return decodeWeatherCondition(weatherRegex, toks, i)
}

func decodeRecentWeather(toks []string, i int) (*WeatherCondition, int) {
	return decodeWeatherCondition(recentWeatherRegex, toks, i)
}

// decodeCloudLayer matches one cloud group. Heights are hundreds of feet.
// A group where cover, height and type are all missing does not count as a
// layer.
func decodeCloudLayer(toks []string, i int) (*CloudLayer, int) {
	m := cloudRegex.FindStringSubmatch(toks[i])
	if m == nil {
		return nil, i
	}
	layer := &CloudLayer{}
	if cover, ok := cloudCovers[m[1]]; ok {
		layer.Cover = &cover
	}
	if m[2] != "" && m[2] != "///" {
		h, _ := strconv.Atoi(m[2])
		layer.Height = NewQuantity(Exact(float64(h)*100), UnitFoot)
	}
	if t, ok := cloudTypes[m[3]]; ok {
		layer.CloudType = &t
	}
	if layer.Cover == nil && layer.Height == nil && layer.CloudType == nil {
		return nil, i
	}
	return layer, i + 1
}

type temperatureFields struct {
	Temperature *Quantity
	DewPoint    *Quantity
}

// decodeTemperature matches the TT/DD group. M prefixes mean minus here,
// not "less than".
func decodeTemperature(toks []string, i int) (*temperatureFields, int) {
	m := temperatureRegex.FindStringSubmatch(toks[i])
	if m == nil {
		return nil, i
	}
	t := &temperatureFields{
		Temperature: parseCelsius(m[1]),
		DewPoint:    parseCelsius(m[2]),
	}
	if t.Temperature == nil && t.DewPoint == nil {
		return nil, i
	}
	return t, i + 1
}

func parseCelsius(s string) *Quantity {
	if s == "" || s == "//" {
		return nil
	}
	negative := strings.HasPrefix(s, "M")
	n, err := strconv.Atoi(strings.TrimPrefix(s, "M"))
	if err != nil {
		return nil
	}
	if negative {
		n = -n
	}
	return NewQuantity(Exact(float64(n)), UnitDegreeCelsius)
}

// decodePressure matches QPPPP (hectopascals) or APPPP (hundredths of an
// inch of mercury). A Q//// or A//// group is consumed without a value.
func decodePressure(toks []string, i int) (*Quantity, int) {
	m := pressureRegex.FindStringSubmatch(toks[i])
	if m == nil {
		return nil, i
	}
	if m[2] == "////" {
		return nil, i + 1
	}
	n, _ := strconv.Atoi(m[2])
	switch m[1] {
	case "Q":
		return NewQuantity(Exact(float64(n)), UnitHectopascal), i + 1
	default:
		return NewQuantity(Exact(float64(n)/100), UnitInchOfMercury), i + 1
	}
}

// decodeWindShear matches "WS ALL RWY" or "WS R23"/"WS RWY23".
func decodeWindShear(toks []string, i int) (*WindShear, int) {
	if toks[i] != "WS" {
		return nil, i
	}
	if i+2 < len(toks) && toks[i+1] == "ALL" && toks[i+2] == "RWY" {
		return &WindShear{AllRunways: true}, i + 3
	}
	if i+1 < len(toks) {
		if m := windShearRunwayRegex.FindStringSubmatch(toks[i+1]); m != nil {
			return &WindShear{Runway: ptr.To(m[1])}, i + 2
		}
	}
	return nil, i
}

type seaStateFields struct {
	SurfaceTemperature *Quantity
	StateCode          *int
	WaveHeight         *Quantity
}

// decodeSeaState matches WTT/Sc (sea state code) or WTT/Hhhh (wave height
// in decimetres, reported in metres).
func decodeSeaState(toks []string, i int) (*seaStateFields, int) {
	m := seaStateRegex.FindStringSubmatch(toks[i])
	if m == nil {
		return nil, i
	}
	s := &seaStateFields{SurfaceTemperature: parseCelsius(m[1])}
	if m[2] != "" && m[2] != "/" {
		code, _ := strconv.Atoi(m[2])
		s.StateCode = ptr.To(code)
	}
	if m[3] != "" && m[3] != "///" {
		dm, _ := strconv.Atoi(m[3])
		s.WaveHeight = NewQuantity(Exact(float64(dm)/10), UnitMetre)
	}
	return s, i + 1
}

// decodeColorCodes consumes military color-state groups without reporting
// them.
func decodeColorCodes(toks []string, i int) int {
	for i < len(toks) && colorRegex.MatchString(toks[i]) {
		i++
	}
	return i
}
