package metar

import "strconv"

// decodeTrend decodes the token span of one TEMPO or BECMG block (NOSIG
// carries no tokens). FM/TL/AT clock times are resolved against the
// observation time when it resolved to a full timestamp, otherwise against
// the decoder anchor. The changed elements reuse the main section decoders.
func (d *Decoder) decodeTrend(indicator TrendIndicator, toks []string, observed *MetarTime) TrendChange {
	tc := TrendChange{
		Indicator:      indicator,
		PresentWeather: []WeatherCondition{},
		Clouds:         []CloudLayer{},
	}
	anchor := d.Anchor
	if observed != nil && observed.Kind == TimeDateTime {
		anchor = &observed.DateTime
	}
	i := 0
	for i < len(toks) {
		if m := trendTimeRegex.FindStringSubmatch(toks[i]); m != nil {
			hour, _ := strconv.Atoi(m[2])
			minute, _ := strconv.Atoi(m[3])
			t, err := NewTime(hour, minute)
			t = d.resolveTime(t, err, anchor)
			switch m[1] {
			case "FM":
				tc.FromTime = t
			case "TL":
				tc.ToTime = t
			case "AT":
				tc.AtTime = t
			}
			i++
			continue
		}
		if tc.WindSpeed == nil && tc.WindFromDirection == nil {
			if w, next := decodeWind(toks, i); next != i {
				tc.WindFromDirection = w.FromDirection
				tc.WindFromDirectionRange = w.FromDirectionRange
				tc.WindSpeed = w.Speed
				tc.WindGust = w.Gust
				i = next
				continue
			}
		}
		if tc.PrevailingVisibility == nil {
			if v, next := decodeVisibility(toks, i); next != i {
				tc.PrevailingVisibility = v.Prevailing
				if v.CAVOK {
					cover := CoverCeilingOK
					tc.Clouds = append(tc.Clouds, CloudLayer{Cover: &cover})
				}
				i = next
				continue
			}
		}
		if w, next := decodePresentWeather(toks, i); next != i {
			tc.PresentWeather = append(tc.PresentWeather, *w)
			i = next
			continue
		}
		if c, next := decodeCloudLayer(toks, i); next != i {
			tc.Clouds = append(tc.Clouds, *c)
			i = next
			continue
		}
		// NSW (no significant weather) and anything unrecognized is skipped.
		i++
	}
	return tc
}
