// ABOUTME: Demo data generator for exercising the analyzers.
// ABOUTME: Produces glucose with a dawn bump and meal peaks, weekday workouts, and correlated sleep.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/glucolog/glucolog/internal/models"
	"github.com/glucolog/glucolog/internal/storage"
)

// Options control generation. Days <= 0 defaults to 30.
type Options struct {
	Days int
	Seed int64
}

// Counts reports how many rows were inserted per domain.
type Counts struct {
	Glucose  int
	Sleep    int
	Exercise int
}

const seedSource = "glucolog-seed"

// Generate writes Days of demo data ending yesterday. The data carries the
// structure the analyzers look for: a dawn-phenomenon rise, post-meal peaks,
// a weekday exercise habit that lowers that day's glucose, and short nights
// that raise it.
func Generate(repo storage.Repository, opts Options) (*Counts, error) {
	days := opts.Days
	if days <= 0 {
		days = 30
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	counts := &Counts{}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	for d := days; d >= 1; d-- {
		day := today.AddDate(0, 0, -d)

		sleepMinutes, err := seedSleep(repo, rng, day, counts)
		if err != nil {
			return counts, err
		}

		exerciseMinutes, err := seedExercise(repo, rng, day, counts)
		if err != nil {
			return counts, err
		}

		// Exercise pulls the day's baseline down; short sleep pushes it up.
		baseline := 115 - exerciseMinutes*0.25 + (420-sleepMinutes)*0.05

		if err := seedGlucose(repo, rng, day, baseline, counts); err != nil {
			return counts, err
		}
	}

	return counts, nil
}

// seedSleep writes one night attributed to the given day (bedtime the
// evening before). Returns the night's asleep minutes.
func seedSleep(repo storage.Repository, rng *rand.Rand, day time.Time, counts *Counts) (float64, error) {
	bedtime := day.Add(-time.Duration(40+rng.Intn(100)) * time.Minute) // 22:20-23:59
	wake := day.Add(time.Duration(6*60+rng.Intn(75)) * time.Minute)    // 06:00-07:14

	inBed := wake.Sub(bedtime).Minutes()
	awake := 15 + rng.Float64()*40
	asleep := inBed - awake
	deep := asleep * (0.15 + rng.Float64()*0.05)
	rem := asleep * (0.20 + rng.Float64()*0.05)
	core := asleep - deep - rem

	record := models.NewSleepRecord(bedtime, wake).
		WithStages(deep, core, rem, awake).
		WithHeartRate(56+rng.Float64()*8, 48+rng.Float64()*5, 70+rng.Float64()*15).
		WithSource(seedSource)
	// Attribute the night to the wake-up day so it aligns with that day's
	// glucose and exercise aggregates.
	record.Date = day.Format(models.DateLayout)

	inserted, err := repo.CreateSleepRecord(record)
	if err != nil {
		return 0, fmt.Errorf("seed sleep: %w", err)
	}
	if inserted {
		counts.Sleep++
	}
	return asleep, nil
}

// seedExercise writes the day's sessions: a steady Mon/Wed/Fri habit plus an
// occasional weekend outing. Returns total minutes.
func seedExercise(repo storage.Repository, rng *rand.Rand, day time.Time, counts *Counts) (float64, error) {
	type session struct {
		hour     int
		minutes  float64
		workout  string
		distance float64
	}
	var sessions []session

	switch day.Weekday() {
	case time.Monday, time.Wednesday, time.Friday:
		sessions = append(sessions, session{7, 30 + rng.Float64()*20, "run", 5 + rng.Float64()*3})
	case time.Saturday:
		if rng.Float64() < 0.7 {
			sessions = append(sessions, session{10, 45 + rng.Float64()*45, "cycle", 15 + rng.Float64()*10})
		}
	}

	var total float64
	for _, sess := range sessions {
		start := day.Add(time.Duration(sess.hour)*time.Hour + time.Duration(rng.Intn(30))*time.Minute)
		record := models.NewExerciseRecord(start, sess.minutes).
			WithWorkoutType(sess.workout).
			WithDistance(sess.distance).
			WithEnergy(sess.minutes * (8 + rng.Float64()*4)).
			WithSource(seedSource)

		inserted, err := repo.CreateExerciseRecord(record)
		if err != nil {
			return total, fmt.Errorf("seed exercise: %w", err)
		}
		if inserted {
			counts.Exercise++
		}
		total += sess.minutes
	}
	return total, nil
}

// seedGlucose writes one reading per 15 minutes for the day around the given
// baseline, with a dawn rise and decaying post-meal peaks.
func seedGlucose(repo storage.Repository, rng *rand.Rand, day time.Time, baseline float64, counts *Counts) error {
	for minute := 0; minute < 24*60; minute += 15 {
		ts := day.Add(time.Duration(minute) * time.Minute)
		hour := float64(minute) / 60

		value := baseline
		// Dawn phenomenon: rise through the early morning.
		if hour >= 4 && hour < 8 {
			value += 25 * math.Sin((hour-4)/4*math.Pi)
		}
		// Post-meal peaks at 08:00, 13:00, and 19:00, decaying over ~2h.
		for _, meal := range []float64{8, 13, 19} {
			if hour >= meal && hour < meal+2.5 {
				value += 45 * math.Exp(-(hour-meal)*1.5)
			}
		}
		value += rng.NormFloat64() * 8

		if value < 45 {
			value = 45
		}

		reading := models.NewGlucoseReading(ts, math.Round(value)).WithSource(seedSource)
		inserted, err := repo.CreateGlucoseReading(reading)
		if err != nil {
			return fmt.Errorf("seed glucose: %w", err)
		}
		if inserted {
			counts.Glucose++
		}
	}
	return nil
}
