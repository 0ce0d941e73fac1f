// Command seed loads a running scoring service with demo athletes so the
// endpoints can be exercised by hand.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

const requestTimeout = 5 * time.Second

type seeder struct {
	base   string
	client *http.Client
	rng    *rand.Rand
}

func main() {
	var (
		addr     = flag.String("addr", "http://localhost:9090", "base URL of the scoring service")
		athletes = flag.Int("athletes", 3, "number of demo athletes to create")
		days     = flag.Int("days", 120, "days of history to generate per athlete")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")
	)
	flag.Parse()

	s := &seeder{
		base:   *addr,
		client: &http.Client{Timeout: requestTimeout},
		rng:    rand.New(rand.NewSource(*seed)),
	}

	for i := 0; i < *athletes; i++ {
		id := uuid.NewString()
		if err := s.seedAthlete(id, *days); err != nil {
			fmt.Fprintf(os.Stderr, "seeding %s failed: %v\n", id, err)
			os.Exit(1)
		}
		env, err := s.fetchScores(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetching scores for %s failed: %v\n", id, err)
			os.Exit(1)
		}
		fmt.Printf("athlete %s\n%s\n", id, env)
	}
}

// seedAthlete writes a plausible training history: a profile, weekly body
// composition, nightly sleep, near-daily sessions, and periodic squat and
// bench records that trend upward.
func (s *seeder) seedAthlete(id string, days int) error {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	day := func(offset int) string {
		return now.AddDate(0, 0, -offset).Format("2006-01-02")
	}

	height := 170.0 + s.rng.Float64()*25
	if err := s.post("/profile", map[string]any{
		"athlete_id": id,
		"height_cm":  height,
	}); err != nil {
		return err
	}

	weight := 70.0 + s.rng.Float64()*20
	bodyFat := 10.0 + s.rng.Float64()*8
	for d := days; d >= 0; d -= 7 {
		if err := s.post("/body", map[string]any{
			"athlete_id":   id,
			"date":         day(d),
			"weight_kg":    weight + s.rng.Float64()*2 - 1,
			"body_fat_pct": bodyFat + s.rng.Float64() - 0.5,
		}); err != nil {
			return err
		}
	}

	for d := 0; d < 14; d++ {
		if err := s.post("/sleep", map[string]any{
			"athlete_id":     id,
			"date":           day(d),
			"duration_hours": 6.5 + s.rng.Float64()*2,
			"quality":        2 + s.rng.Intn(4),
		}); err != nil {
			return err
		}
	}

	for d := days; d >= 0; d-- {
		if s.rng.Float64() < 0.25 {
			continue // rest day
		}
		if err := s.post("/sessions", map[string]any{
			"athlete_id":   id,
			"date":         day(d),
			"duration_min": 45 + s.rng.Float64()*45,
			"rpe":          4 + s.rng.Float64()*5,
		}); err != nil {
			return err
		}
	}

	squat := weight * (1.2 + s.rng.Float64()*0.6)
	bench := weight * (0.8 + s.rng.Float64()*0.4)
	for d := days; d >= 0; d -= 14 {
		squat *= 1.0 + s.rng.Float64()*0.02
		bench *= 1.0 + s.rng.Float64()*0.015
		for exercise, value := range map[string]float64{
			"back_squat":  squat,
			"bench_press": bench,
		} {
			if err := s.post("/records", map[string]any{
				"athlete_id":  id,
				"exercise_id": exercise,
				"value":       value,
				"recorded_at": day(d),
			}); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *seeder) post(path string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := s.client.Post(s.base+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, msg)
	}
	return nil
}

func (s *seeder) fetchScores(id string) (string, error) {
	resp, err := s.client.Get(s.base + "/scores/" + id)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET /scores/%s: status %d: %s", id, resp.StatusCode, body)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		return string(body), nil
	}
	return pretty.String(), nil
}
