// ABOUTME: Temporal pattern detection over glucose, sleep, and exercise.
// ABOUTME: Buckets by hour-of-day and day-of-week; empty buckets are absent.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/glucolog/glucolog/internal/models"
	"github.com/glucolog/glucolog/internal/storage"
)

// PatternType selects which sections of the pattern report to build.
type PatternType string

const (
	PatternAll      PatternType = "all"
	PatternGlucose  PatternType = "glucose"
	PatternSleep    PatternType = "sleep"
	PatternExercise PatternType = "exercise"
	PatternTemporal PatternType = "temporal"
)

// ParsePatternType validates a pattern_type argument. Empty means all.
func ParsePatternType(s string) (PatternType, error) {
	switch PatternType(s) {
	case "", PatternAll:
		return PatternAll, nil
	case PatternGlucose, PatternSleep, PatternExercise, PatternTemporal:
		return PatternType(s), nil
	}
	return "", fmt.Errorf("unknown pattern_type %q: expected all, glucose, sleep, exercise, or temporal", s)
}

// HourlyStat summarizes one hour-of-day bucket of glucose readings.
type HourlyStat struct {
	Hour        int     `json:"hour"`
	Count       int     `json:"count"`
	MeanMgdl    float64 `json:"mean_mgdl"`
	MinMgdl     float64 `json:"min_mgdl"`
	MaxMgdl     float64 `json:"max_mgdl"`
	TimeInRange float64 `json:"time_in_range"` // in-range count / bucket count
}

// WeekdayStat summarizes one day-of-week bucket of glucose readings.
type WeekdayStat struct {
	Weekday  string  `json:"weekday"`
	Count    int     `json:"count"`
	MeanMgdl float64 `json:"mean_mgdl"`
}

// RangeBands is the five-band time-in-range breakdown as percentages.
type RangeBands struct {
	VeryLowPct  float64 `json:"very_low_pct"`  // below the urgent-low edge
	LowPct      float64 `json:"low_pct"`       // urgent-low edge up to the target range
	InRangePct  float64 `json:"in_range_pct"`  // inside the target range
	HighPct     float64 `json:"high_pct"`      // above target up to the urgent-high edge
	VeryHighPct float64 `json:"very_high_pct"` // above the urgent-high edge
}

// DawnPhenomenon compares the early-morning window against overnight.
type DawnPhenomenon struct {
	OvernightMeanMgdl    float64 `json:"overnight_mean_mgdl"`     // 00:00-03:59
	EarlyMorningMeanMgdl float64 `json:"early_morning_mean_mgdl"` // 04:00-07:59
	RiseMgdl             float64 `json:"rise_mgdl"`
	Detected             bool    `json:"detected"`
}

// Anomaly is a reading whose z-score against the window exceeds the threshold.
type Anomaly struct {
	Timestamp time.Time `json:"timestamp"`
	ValueMgdl float64   `json:"value_mgdl"`
	ZScore    float64   `json:"z_score"`
}

// LowGlucoseEvent is a reading below the target range's low bound.
type LowGlucoseEvent struct {
	Timestamp time.Time `json:"timestamp"`
	ValueMgdl float64   `json:"value_mgdl"`
}

// GlucosePatterns is the glucose section of a pattern report.
type GlucosePatterns struct {
	TotalReadings int             `json:"total_readings"`
	MeanMgdl      float64         `json:"mean_mgdl,omitempty"`
	StdDevMgdl    float64         `json:"stddev_mgdl,omitempty"`
	Bands         *RangeBands     `json:"time_in_range,omitempty"`
	Hourly        []HourlyStat    `json:"hourly,omitempty"`
	Weekday       []WeekdayStat   `json:"weekday,omitempty"`
	HighestHour   *HourlyStat     `json:"highest_hour,omitempty"`
	LowestHour    *HourlyStat     `json:"lowest_hour,omitempty"`
	Dawn          *DawnPhenomenon `json:"dawn_phenomenon,omitempty"`
	Anomalies     []Anomaly       `json:"anomalies,omitempty"`
	LastLow       *LowGlucoseEvent `json:"last_low,omitempty"`
	Note          string          `json:"note,omitempty"`
}

// ClockStat is the mean clock time of an event for one weekday.
type ClockStat struct {
	Weekday   string `json:"weekday"`
	Count     int    `json:"count"`
	MeanClock string `json:"mean_clock"` // HH:MM
}

// SleepPatterns is the sleep section of a pattern report.
type SleepPatterns struct {
	TotalNights         int         `json:"total_nights"`
	MeanDurationMinutes float64     `json:"mean_duration_minutes,omitempty"`
	MeanEfficiency      float64     `json:"mean_efficiency,omitempty"`
	MeanDeepMinutes     float64     `json:"mean_deep_minutes,omitempty"`
	MeanCoreMinutes     float64     `json:"mean_core_minutes,omitempty"`
	MeanREMMinutes      float64     `json:"mean_rem_minutes,omitempty"`
	MeanAwakeMinutes    float64     `json:"mean_awake_minutes,omitempty"`
	BedtimeByWeekday    []ClockStat `json:"bedtime_by_weekday,omitempty"`
	WakeTimeByWeekday   []ClockStat `json:"wake_time_by_weekday,omitempty"`
	Note                string      `json:"note,omitempty"`
}

// WeekdayCount is a session count for one day of the week.
type WeekdayCount struct {
	Weekday string `json:"weekday"`
	Count   int    `json:"count"`
}

// PeriodCount is a session count for one time-of-day period.
type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// WorkoutTypeStat aggregates sessions of one workout type.
type WorkoutTypeStat struct {
	WorkoutType  string  `json:"workout_type"`
	Count        int     `json:"count"`
	TotalMinutes float64 `json:"total_minutes"`
}

// ExercisePatterns is the exercise section of a pattern report.
type ExercisePatterns struct {
	TotalSessions       int               `json:"total_sessions"`
	MeanDurationMinutes float64           `json:"mean_duration_minutes,omitempty"`
	SessionsByWeekday   []WeekdayCount    `json:"sessions_by_weekday,omitempty"`
	SessionsByPeriod    []PeriodCount     `json:"sessions_by_period,omitempty"`
	ByWorkoutType       []WorkoutTypeStat `json:"by_workout_type,omitempty"`
	Note                string            `json:"note,omitempty"`
}

// TemporalPatterns is the cross-domain time-bucketed view.
type TemporalPatterns struct {
	GlucoseHourly    []HourlyStat   `json:"glucose_hourly,omitempty"`
	GlucoseWeekday   []WeekdayStat  `json:"glucose_weekday,omitempty"`
	BedtimeByWeekday []ClockStat    `json:"bedtime_by_weekday,omitempty"`
	ExerciseWeekday  []WeekdayCount `json:"exercise_weekday,omitempty"`
	ExercisePeriods  []PeriodCount  `json:"exercise_periods,omitempty"`
}

// PatternReport is the full output of DetectPatterns.
type PatternReport struct {
	PatternType PatternType       `json:"pattern_type"`
	DateRange   string            `json:"date_range"`
	Glucose     *GlucosePatterns  `json:"glucose,omitempty"`
	Sleep       *SleepPatterns    `json:"sleep,omitempty"`
	Exercise    *ExercisePatterns `json:"exercise,omitempty"`
	Temporal    *TemporalPatterns `json:"temporal,omitempty"`
}

// DetectPatterns builds a pattern report for the requested type over the
// optional date range. A nil range analyzes the full history.
func (a *Analyzer) DetectPatterns(r *models.DateRange, patternType PatternType) (*PatternReport, error) {
	report := &PatternReport{
		PatternType: patternType,
		DateRange:   rangeLabel(r),
	}

	q := storage.Query{Range: r}

	needGlucose := patternType == PatternAll || patternType == PatternGlucose || patternType == PatternTemporal
	needSleep := patternType == PatternAll || patternType == PatternSleep || patternType == PatternTemporal
	needExercise := patternType == PatternAll || patternType == PatternExercise || patternType == PatternTemporal

	var glucose *GlucosePatterns
	var sleep *SleepPatterns
	var exercise *ExercisePatterns

	if needGlucose {
		readings, err := a.repo.GlucoseReadings(q)
		if err != nil {
			return nil, fmt.Errorf("detect patterns: %w", err)
		}
		glucose = a.glucosePatterns(readings)
	}
	if needSleep {
		records, err := a.repo.SleepRecords(q)
		if err != nil {
			return nil, fmt.Errorf("detect patterns: %w", err)
		}
		sleep = sleepPatterns(records)
	}
	if needExercise {
		records, err := a.repo.ExerciseRecords(q)
		if err != nil {
			return nil, fmt.Errorf("detect patterns: %w", err)
		}
		exercise = exercisePatterns(records)
	}

	if patternType == PatternTemporal {
		report.Temporal = &TemporalPatterns{
			GlucoseHourly:    glucose.Hourly,
			GlucoseWeekday:   glucose.Weekday,
			BedtimeByWeekday: sleep.BedtimeByWeekday,
			ExerciseWeekday:  exercise.SessionsByWeekday,
			ExercisePeriods:  exercise.SessionsByPeriod,
		}
		return report, nil
	}

	report.Glucose = glucose
	report.Sleep = sleep
	report.Exercise = exercise
	return report, nil
}

func rangeLabel(r *models.DateRange) string {
	if r == nil {
		return "all"
	}
	return r.String()
}

func (a *Analyzer) glucosePatterns(readings []*models.GlucoseReading) *GlucosePatterns {
	if len(readings) == 0 {
		return &GlucosePatterns{Note: "no glucose readings in range"}
	}

	th := a.Thresholds

	var hourly [24]*glucoseBucket
	var weekday [7]*glucoseBucket

	values := make([]float64, 0, len(readings))
	var bands struct{ veryLow, low, inRange, high, veryHigh int }

	for _, g := range readings {
		values = append(values, g.Value)

		h := g.Timestamp.Hour()
		if hourly[h] == nil {
			hourly[h] = &glucoseBucket{min: g.Value, max: g.Value}
		}
		hb := hourly[h]
		hb.count++
		hb.sum += g.Value
		if g.Value < hb.min {
			hb.min = g.Value
		}
		if g.Value > hb.max {
			hb.max = g.Value
		}
		if g.Value >= th.LowMgdl && g.Value <= th.HighMgdl {
			hb.inRange++
		}

		w := int(g.Timestamp.Weekday())
		if weekday[w] == nil {
			weekday[w] = &glucoseBucket{min: g.Value, max: g.Value}
		}
		weekday[w].count++
		weekday[w].sum += g.Value

		switch {
		case g.Value < th.VeryLowMgdl:
			bands.veryLow++
		case g.Value < th.LowMgdl:
			bands.low++
		case g.Value <= th.HighMgdl:
			bands.inRange++
		case g.Value <= th.VeryHighMgdl:
			bands.high++
		default:
			bands.veryHigh++
		}
	}

	mean, stddev := meanStdDev(values)
	total := float64(len(readings))

	p := &GlucosePatterns{
		TotalReadings: len(readings),
		MeanMgdl:      mean,
		StdDevMgdl:    stddev,
		Bands: &RangeBands{
			VeryLowPct:  100 * float64(bands.veryLow) / total,
			LowPct:      100 * float64(bands.low) / total,
			InRangePct:  100 * float64(bands.inRange) / total,
			HighPct:     100 * float64(bands.high) / total,
			VeryHighPct: 100 * float64(bands.veryHigh) / total,
		},
	}

	for h, b := range hourly {
		if b == nil {
			continue
		}
		stat := HourlyStat{
			Hour:        h,
			Count:       b.count,
			MeanMgdl:    b.sum / float64(b.count),
			MinMgdl:     b.min,
			MaxMgdl:     b.max,
			TimeInRange: float64(b.inRange) / float64(b.count),
		}
		p.Hourly = append(p.Hourly, stat)
	}
	for i := range p.Hourly {
		stat := &p.Hourly[i]
		if p.HighestHour == nil || stat.MeanMgdl > p.HighestHour.MeanMgdl {
			p.HighestHour = stat
		}
		if p.LowestHour == nil || stat.MeanMgdl < p.LowestHour.MeanMgdl {
			p.LowestHour = stat
		}
	}

	for w, b := range weekday {
		if b == nil {
			continue
		}
		p.Weekday = append(p.Weekday, WeekdayStat{
			Weekday:  time.Weekday(w).String(),
			Count:    b.count,
			MeanMgdl: b.sum / float64(b.count),
		})
	}

	p.Dawn = dawnPhenomenon(hourly[:], th.DawnRiseMgdl)

	// Readings arrive most recent first; anomaly order follows.
	if stddev > 0 {
		for _, g := range readings {
			z := (g.Value - mean) / stddev
			if math.Abs(z) > th.AnomalyZScore {
				p.Anomalies = append(p.Anomalies, Anomaly{
					Timestamp: g.Timestamp,
					ValueMgdl: g.Value,
					ZScore:    z,
				})
			}
		}
	}

	for _, g := range readings {
		if g.Value < th.LowMgdl {
			p.LastLow = &LowGlucoseEvent{Timestamp: g.Timestamp, ValueMgdl: g.Value}
			break
		}
	}

	return p
}

type glucoseBucket struct {
	count   int
	sum     float64
	min     float64
	max     float64
	inRange int
}

// dawnPhenomenon compares the 04:00-07:59 mean against 00:00-03:59. Nil when
// either window has no readings.
func dawnPhenomenon(hourly []*glucoseBucket, riseMgdl float64) *DawnPhenomenon {
	window := func(from, to int) (float64, int) {
		var sum float64
		var count int
		for h := from; h <= to; h++ {
			if hourly[h] == nil {
				continue
			}
			sum += hourly[h].sum
			count += hourly[h].count
		}
		return sum, count
	}

	overnightSum, overnightCount := window(0, 3)
	morningSum, morningCount := window(4, 7)
	if overnightCount == 0 || morningCount == 0 {
		return nil
	}

	overnight := overnightSum / float64(overnightCount)
	morning := morningSum / float64(morningCount)
	rise := morning - overnight

	return &DawnPhenomenon{
		OvernightMeanMgdl:    overnight,
		EarlyMorningMeanMgdl: morning,
		RiseMgdl:             rise,
		Detected:             rise >= riseMgdl,
	}
}

func sleepPatterns(records []*models.SleepRecord) *SleepPatterns {
	if len(records) == 0 {
		return &SleepPatterns{Note: "no sleep records in range"}
	}

	n := float64(len(records))
	p := &SleepPatterns{TotalNights: len(records)}

	var duration, efficiency, deep, core, rem, awake float64
	bedtimes := make([]clockAccumulator, 7)
	wakeTimes := make([]clockAccumulator, 7)

	for _, s := range records {
		duration += s.DurationMinutes
		efficiency += s.Efficiency
		deep += s.DeepMinutes
		core += s.CoreMinutes
		rem += s.REMMinutes
		awake += s.AwakeMinutes

		bedtimes[int(s.Bedtime.Weekday())].add(s.Bedtime)
		wakeTimes[int(s.WakeTime.Weekday())].add(s.WakeTime)
	}

	p.MeanDurationMinutes = duration / n
	p.MeanEfficiency = efficiency / n
	p.MeanDeepMinutes = deep / n
	p.MeanCoreMinutes = core / n
	p.MeanREMMinutes = rem / n
	p.MeanAwakeMinutes = awake / n

	for w := 0; w < 7; w++ {
		if bedtimes[w].count > 0 {
			p.BedtimeByWeekday = append(p.BedtimeByWeekday, ClockStat{
				Weekday:   time.Weekday(w).String(),
				Count:     bedtimes[w].count,
				MeanClock: bedtimes[w].meanClock(),
			})
		}
		if wakeTimes[w].count > 0 {
			p.WakeTimeByWeekday = append(p.WakeTimeByWeekday, ClockStat{
				Weekday:   time.Weekday(w).String(),
				Count:     wakeTimes[w].count,
				MeanClock: wakeTimes[w].meanClock(),
			})
		}
	}

	return p
}

// clockAccumulator averages times of day on the unit circle so bedtimes
// straddling midnight (23:30 and 00:30) average to midnight, not noon.
type clockAccumulator struct {
	sinSum, cosSum float64
	count          int
}

func (c *clockAccumulator) add(t time.Time) {
	minutes := float64(t.Hour()*60 + t.Minute())
	theta := 2 * math.Pi * minutes / 1440
	c.sinSum += math.Sin(theta)
	c.cosSum += math.Cos(theta)
	c.count++
}

func (c *clockAccumulator) meanClock() string {
	theta := math.Atan2(c.sinSum, c.cosSum)
	minutes := theta / (2 * math.Pi) * 1440
	if minutes < 0 {
		minutes += 1440
	}
	m := int(math.Round(minutes)) % 1440
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Time-of-day periods for exercise distribution.
const (
	periodMorning = "morning" // 06:00-10:59
	periodMidday  = "midday"  // 11:00-16:59
	periodEvening = "evening" // 17:00-21:59
	periodNight   = "night"   // 22:00-05:59
)

func timeOfDayPeriod(hour int) string {
	switch {
	case hour >= 6 && hour < 11:
		return periodMorning
	case hour >= 11 && hour < 17:
		return periodMidday
	case hour >= 17 && hour < 22:
		return periodEvening
	default:
		return periodNight
	}
}

func exercisePatterns(records []*models.ExerciseRecord) *ExercisePatterns {
	if len(records) == 0 {
		return &ExercisePatterns{Note: "no exercise records in range"}
	}

	p := &ExercisePatterns{TotalSessions: len(records)}

	var duration float64
	var weekday [7]int
	periods := make(map[string]int)
	types := make(map[string]*WorkoutTypeStat)
	var typeOrder []string

	for _, e := range records {
		duration += e.DurationMinutes
		weekday[int(e.StartedAt.Weekday())]++
		periods[timeOfDayPeriod(e.StartedAt.Hour())]++

		ts, ok := types[e.WorkoutType]
		if !ok {
			ts = &WorkoutTypeStat{WorkoutType: e.WorkoutType}
			types[e.WorkoutType] = ts
			typeOrder = append(typeOrder, e.WorkoutType)
		}
		ts.Count++
		ts.TotalMinutes += e.DurationMinutes
	}

	p.MeanDurationMinutes = duration / float64(len(records))

	for w := 0; w < 7; w++ {
		if weekday[w] > 0 {
			p.SessionsByWeekday = append(p.SessionsByWeekday, WeekdayCount{
				Weekday: time.Weekday(w).String(),
				Count:   weekday[w],
			})
		}
	}

	for _, period := range []string{periodMorning, periodMidday, periodEvening, periodNight} {
		if count := periods[period]; count > 0 {
			p.SessionsByPeriod = append(p.SessionsByPeriod, PeriodCount{Period: period, Count: count})
		}
	}

	sort.Strings(typeOrder)
	for _, name := range typeOrder {
		p.ByWorkoutType = append(p.ByWorkoutType, *types[name])
	}

	return p
}
