package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/martinlindhe/unit"

	"github.com/skyobs/metar-decoder/internal/metar"
)

var (
	labelColor = color.New(color.FgCyan, color.Bold).SprintFunc()
	noteColor  = color.New(color.FgHiBlack).SprintFunc()
)

var unitSuffixes = map[metar.Unit]string{
	metar.UnitDegreeTrue:     "°",
	metar.UnitKnot:           " kt",
	metar.UnitMetrePerSecond: " m/s",
	metar.UnitMetre:          " m",
	metar.UnitStatuteMile:    " mi",
	metar.UnitFoot:           " ft",
	metar.UnitDegreeCelsius:  "°C",
	metar.UnitHectopascal:    " hPa",
	metar.UnitInchOfMercury:  " inHg",
}

// FormatReport renders a short colored human-readable summary of one report.
func FormatReport(rep *metar.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s", labelColor("Station:"), rep.StationID)
	var tags []string
	if rep.IsCorrected {
		tags = append(tags, "corrected")
	}
	if rep.IsAutomated {
		tags = append(tags, "automated")
	}
	if len(tags) > 0 {
		fmt.Fprintf(&sb, " %s", noteColor("("+strings.Join(tags, ", ")+")"))
	}
	sb.WriteString("\n")

	if rep.ObservationTime != nil {
		fmt.Fprintf(&sb, "%s %s\n", labelColor("Time:"), formatTime(rep.ObservationTime))
	}
	if line := formatWind(rep.WindFromDirection, rep.WindFromDirectionRange, rep.WindSpeed, rep.WindGust); line != "" {
		fmt.Fprintf(&sb, "%s %s\n", labelColor("Wind:"), line)
	}
	if rep.PrevailingVisibility != nil {
		fmt.Fprintf(&sb, "%s %s\n", labelColor("Visibility:"), formatVisibility(rep.PrevailingVisibility))
	}
	for _, w := range rep.PresentWeather {
		fmt.Fprintf(&sb, "%s %s\n", labelColor("Weather:"), formatWeather(w))
	}
	for _, c := range rep.Clouds {
		fmt.Fprintf(&sb, "%s %s\n", labelColor("Clouds:"), formatCloud(c))
	}
	if rep.Ceiling != nil {
		fmt.Fprintf(&sb, "%s %s\n", labelColor("Ceiling:"), formatQuantity(*rep.Ceiling))
	}
	if rep.Temperature != nil {
		fmt.Fprintf(&sb, "%s %s\n", labelColor("Temperature:"), formatCelsius(*rep.Temperature))
	}
	if rep.DewPoint != nil {
		fmt.Fprintf(&sb, "%s %s\n", labelColor("Dew point:"), formatCelsius(*rep.DewPoint))
	}
	if rep.Pressure != nil {
		fmt.Fprintf(&sb, "%s %s\n", labelColor("Pressure:"), formatQuantity(*rep.Pressure))
	}
	for _, trend := range rep.Trends {
		fmt.Fprintf(&sb, "%s %s\n", labelColor("Trend:"), formatTrend(trend))
	}
	return sb.String()
}

func formatTime(t *metar.MetarTime) string {
	switch t.Kind {
	case metar.TimeDateTime:
		return t.DateTime.Format("2006-01-02 15:04 UTC")
	case metar.TimeDayTime:
		return fmt.Sprintf("day %d, %02d:%02d UTC", t.Day, t.Hour, t.Minute)
	default:
		return fmt.Sprintf("%02d:%02d UTC", t.Hour, t.Minute)
	}
}

func formatWind(direction, directionRange, speed, gust *metar.Quantity) string {
	var parts []string
	if direction != nil {
		if direction.Value.Kind == metar.ValueVariable {
			parts = append(parts, "variable")
		} else {
			parts = append(parts, "from "+formatQuantity(*direction))
		}
	}
	if directionRange != nil {
		parts = append(parts, "varying "+formatQuantity(*directionRange))
	}
	if speed != nil {
		s := "at " + formatQuantity(*speed)
		if speed.Units == metar.UnitKnot && speed.Value.Kind == metar.ValueExact {
			ms := (unit.Speed(speed.Value.Num) * unit.Knot).MetersPerSecond()
			s += " " + noteColor(fmt.Sprintf("(%.1f m/s)", ms))
		}
		parts = append(parts, s)
	}
	if gust != nil {
		parts = append(parts, "gusting "+formatQuantity(*gust))
	}
	return strings.Join(parts, ", ")
}

func formatVisibility(q *metar.Quantity) string {
	s := formatQuantity(*q)
	if q.Units == metar.UnitStatuteMile && q.Value.Kind == metar.ValueExact {
		km := (unit.Length(q.Value.Num) * unit.Mile).Kilometers()
		s += " " + noteColor(fmt.Sprintf("(%.1f km)", km))
	}
	return s
}

func formatCelsius(q metar.Quantity) string {
	s := formatQuantity(q)
	if q.Value.Kind == metar.ValueExact {
		f := unit.FromCelsius(q.Value.Num).Fahrenheit()
		s += " " + noteColor(fmt.Sprintf("(%.0f°F)", f))
	}
	return s
}

func formatWeather(w metar.WeatherCondition) string {
	var parts []string
	if w.Intensity != "moderate" {
		parts = append(parts, string(w.Intensity))
	}
	if w.IsInVicinity {
		parts = append(parts, "in vicinity")
	}
	for _, d := range w.Descriptors {
		parts = append(parts, strings.ReplaceAll(string(d), "_", " "))
	}
	for _, p := range w.Phenomena {
		parts = append(parts, strings.ReplaceAll(string(p), "_", " "))
	}
	return strings.Join(parts, " ")
}

func formatCloud(c metar.CloudLayer) string {
	var parts []string
	if c.Cover != nil {
		parts = append(parts, strings.ReplaceAll(string(*c.Cover), "_", " "))
	}
	if c.Height != nil {
		parts = append(parts, "at "+formatQuantity(*c.Height))
	}
	if c.CloudType != nil {
		parts = append(parts, strings.ReplaceAll(string(*c.CloudType), "_", " "))
	}
	return strings.Join(parts, " ")
}

func formatTrend(t metar.TrendChange) string {
	parts := []string{strings.ReplaceAll(string(t.Indicator), "_", " ")}
	if t.FromTime != nil {
		parts = append(parts, "from "+formatTime(t.FromTime))
	}
	if t.ToTime != nil {
		parts = append(parts, "until "+formatTime(t.ToTime))
	}
	if t.AtTime != nil {
		parts = append(parts, "at "+formatTime(t.AtTime))
	}
	if line := formatWind(t.WindFromDirection, t.WindFromDirectionRange, t.WindSpeed, t.WindGust); line != "" {
		parts = append(parts, "wind "+line)
	}
	if t.PrevailingVisibility != nil {
		parts = append(parts, "visibility "+formatVisibility(t.PrevailingVisibility))
	}
	for _, w := range t.PresentWeather {
		parts = append(parts, formatWeather(w))
	}
	for _, c := range t.Clouds {
		parts = append(parts, formatCloud(c))
	}
	return strings.Join(parts, ", ")
}

func formatQuantity(q metar.Quantity) string {
	switch q.Value.Kind {
	case metar.ValueUnlimited, metar.ValueIndefinite, metar.ValueVariable:
		return formatValue(q.Value)
	}
	return formatValue(q.Value) + unitSuffixes[q.Units]
}

func formatValue(v metar.Value) string {
	switch v.Kind {
	case metar.ValueExact:
		return trimFloat(v.Num)
	case metar.ValueAbove:
		return "more than " + trimFloat(v.Num)
	case metar.ValueBelow:
		return "less than " + trimFloat(v.Num)
	case metar.ValueRange:
		return formatValue(*v.Lo) + " to " + formatValue(*v.Hi)
	case metar.ValueVariable:
		return "variable"
	case metar.ValueUnlimited:
		return "unlimited"
	default:
		return "indefinite"
	}
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
