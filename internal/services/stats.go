package services

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/models"
)

// StatsService computes the dashboard's vanity statistics. Several scores
// deliberately mix in random noise (entertainment framing, not a bug); the
// noise source is a field so tests can pin it to zero.
type StatsService struct {
	noise func() float64 // uniform [0, 1)
	now   func() time.Time
}

var statsService *StatsService

// GetStatsService returns the singleton stats service.
func GetStatsService() *StatsService {
	if statsService == nil {
		statsService = NewStatsService()
	}
	return statsService
}

func NewStatsService() *StatsService {
	return &StatsService{
		noise: rand.Float64,
		now:   time.Now,
	}
}

type DangerScore struct {
	Location string `json:"location"`
	Score    int    `json:"score"`
	Count    int    `json:"count"`
}

type HourRisk struct {
	Hour      string `json:"hour"`
	Count     int    `json:"count"`
	RiskScore int    `json:"risk_score"`
}

type PartyFoul struct {
	Score        int    `json:"score"`
	WeekdayCount int    `json:"weekday_count"`
	WeekendCount int    `json:"weekend_count"`
	Ratio        string `json:"ratio"`
}

type NarcScore struct {
	Category  string `json:"category"`
	NarcScore int    `json:"narc_score"`
	Count     int    `json:"count"`
}

type SnitchScore struct {
	Location  string `json:"location"`
	Score     int    `json:"score"`
	Incidents int    `json:"incidents"`
}

type TypeCount struct {
	IncidentType string `json:"incident_type"`
	Count        int    `json:"count"`
}

// Ordered so a type matching several keys resolves the same way every run;
// the last matching entry wins.
var severityWeights = []struct {
	key    string
	weight int
}{
	{"Larceny", 3},
	{"Burglary", 5},
	{"Assault", 8},
	{"Robbery", 7},
	{"Drug Related", 4},
	{"Suspicious Person", 2},
	{"Suspicious Activity", 2},
	{"Hit and Run", 4},
	{"Vehicle Accident", 3},
	{"Welfare Check", 1},
	{"Damage to Property", 2},
	{"Stolen Vehicle", 6},
}

const defaultSeverity = 3

// DangerIndex scores locations with at least three incidents by volume,
// severity and recency, returning the top ten.
func (s *StatsService) DangerIndex(incidents []models.Incident) []DangerScore {
	type agg struct {
		count    int
		recency  float64
		severity float64
	}
	locations := make(map[string]*agg)
	now := s.now()

	for _, incident := range incidents {
		a := locations[incident.IncidentLocation]
		if a == nil {
			a = &agg{}
			locations[incident.IncidentLocation] = a
		}
		a.count++

		daysSince := now.Sub(incident.TimeReported).Hours() / 24
		a.recency += math.Max(0, 30-daysSince) / 30

		severity := float64(defaultSeverity)
		for _, w := range severityWeights {
			if strings.Contains(incident.IncidentType, w.key) {
				severity = float64(w.weight)
			}
		}
		a.severity += severity
	}

	scores := make([]DangerScore, 0)
	for location, a := range locations {
		if a.count < 3 {
			continue
		}
		noise := math.Floor(s.noise() * 5)
		avgSeverity := a.severity / float64(a.count)
		avgRecency := a.recency / float64(a.count)
		score := int(math.Round(float64(a.count)*avgSeverity*avgRecency + noise))
		if score > 99 {
			score = 99
		}
		scores = append(scores, DangerScore{Location: location, Score: score, Count: a.count})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Location < scores[j].Location
	})
	if len(scores) > 10 {
		scores = scores[:10]
	}
	return scores
}

// SketchyHours ranks the ten busiest hours of the day with a risk score
// relative to the busiest hour.
func (s *StatsService) SketchyHours(incidents []models.Incident) []HourRisk {
	var hourCounts [24]int
	for _, incident := range incidents {
		hourCounts[incident.TimeReported.Hour()]++
	}

	maxCount := 0
	for _, c := range hourCounts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}
	sort.SliceStable(hours, func(i, j int) bool {
		return hourCounts[hours[i]] > hourCounts[hours[j]]
	})

	risks := make([]HourRisk, 0, 10)
	for _, hour := range hours[:10] {
		risk := int(math.Round(float64(hourCounts[hour])/float64(maxCount)*90 + s.noise()*10))
		if risk > 99 {
			risk = 99
		}
		risks = append(risks, HourRisk{
			Hour:      hourLabel(hour),
			Count:     hourCounts[hour],
			RiskScore: risk,
		})
	}
	return risks
}

func hourLabel(hour int) string {
	h := hour % 12
	if h == 0 {
		h = 12
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	return fmt.Sprintf("%d%s", h, ampm)
}

// PartyFoulIndex compares weekend and weekday incident rates.
func (s *StatsService) PartyFoulIndex(incidents []models.Incident) PartyFoul {
	weekdayCount, weekendCount := 0, 0
	for _, incident := range incidents {
		switch incident.TimeReported.Weekday() {
		case time.Sunday, time.Friday, time.Saturday:
			weekendCount++
		default:
			weekdayCount++
		}
	}

	weekdayAvg := float64(weekdayCount) / 4
	weekendAvg := float64(weekendCount) / 3
	if weekdayAvg == 0 {
		weekdayAvg = 1
	}
	ratio := weekendAvg / weekdayAvg

	noise := s.noise()*0.4 - 0.2
	score := int(math.Round(ratio*50 + noise*5))
	if score > 99 {
		score = 99
	}

	return PartyFoul{
		Score:        score,
		WeekdayCount: weekdayCount,
		WeekendCount: weekendCount,
		Ratio:        fmt.Sprintf("%.2f", ratio),
	}
}

var narcCategories = []struct {
	name     string
	keywords []string
}{
	{"Theft", []string{"Larceny", "Burglary", "Stolen", "Theft", "Robbery"}},
	{"Drug Related", []string{"Drug", "Marijuana", "Narcotic", "Overdose"}},
	{"Violence", []string{"Assault", "Fight", "Battery", "Weapon", "Shots Fired"}},
	{"Suspicious Behavior", []string{"Suspicious", "Trespassing", "Loitering", "BOLO", "Investigate", "Pedestrian Check"}},
	{"Fire", []string{"Fire", "Alarm", "Emergency", "Elevator Entrapment", "Utilities Outage"}},
	{"Sex Offenses", []string{"Sexual", "Indecent", "Exposure"}},
	{"Missing Persons", []string{"Missing"}},
	{"Animal Issues", []string{"Animal"}},
	{"Assistance", []string{"Assist", "Escort", "Serving Papers", "Follow Up"}},
}

// NarcRating scores incident categories by how often their reports read as
// called in by someone ("reported", "call", "complaint" in the description).
func (s *StatsService) NarcRating(incidents []models.Incident) []NarcScore {
	type agg struct {
		count    int
		reported int
	}
	data := make(map[string]*agg, len(narcCategories))
	for _, cat := range narcCategories {
		data[cat.name] = &agg{}
	}

	for _, incident := range incidents {
		for _, cat := range narcCategories {
			matched := false
			for _, keyword := range cat.keywords {
				if strings.Contains(incident.IncidentType, keyword) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}

			a := data[cat.name]
			a.count++

			desc := strings.ToLower(incident.IncidentDescription)
			if strings.Contains(desc, "reported") || strings.Contains(desc, "call") || strings.Contains(desc, "complaint") {
				a.reported++
			}
			break
		}
	}

	scores := make([]NarcScore, 0)
	for _, cat := range narcCategories {
		a := data[cat.name]
		if a.count < 2 {
			continue
		}
		reportRate := float64(a.reported) / float64(a.count)
		weighted := float64(a.count)*0.3 + reportRate*70
		noise := s.noise()*10 - 5
		score := int(math.Round(weighted + noise))
		if score > 99 {
			score = 99
		}
		if score < 1 {
			score = 1
		}
		scores = append(scores, NarcScore{Category: cat.name, NarcScore: score, Count: a.count})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].NarcScore > scores[j].NarcScore
	})
	if len(scores) > 10 {
		scores = scores[:10]
	}
	return scores
}

// SnitchRating finds the most-reported location, weighting recent activity.
func (s *StatsService) SnitchRating(incidents []models.Incident) SnitchScore {
	type agg struct {
		total  int
		recent int
	}
	locations := make(map[string]*agg)
	cutoff := s.now().AddDate(0, 0, -30)

	for _, incident := range incidents {
		a := locations[incident.IncidentLocation]
		if a == nil {
			a = &agg{}
			locations[incident.IncidentLocation] = a
		}
		a.total++
		if !incident.TimeReported.Before(cutoff) {
			a.recent++
		}
	}

	names := make([]string, 0, len(locations))
	for name := range locations {
		names = append(names, name)
	}
	sort.Strings(names)

	top := SnitchScore{}
	for _, location := range names {
		a := locations[location]
		if a.total < 3 {
			continue
		}

		base := math.Min(50, math.Round(math.Sqrt(float64(a.total))*10))
		recencyRatio := float64(a.recent) / float64(a.total)
		bonus := math.Round(math.Pow(recencyRatio, 0.7) * 50)
		noise := math.Floor(s.noise()*11) - 5
		score := int(math.Max(10, math.Min(100, base+bonus+noise)))

		if score > top.Score {
			top = SnitchScore{Location: location, Score: score, Incidents: a.total}
		}
	}
	return top
}

// TypeCounts tallies incidents per type, most common first.
func TypeCounts(incidents []models.Incident) []TypeCount {
	counts := make(map[string]int)
	for _, incident := range incidents {
		counts[incident.IncidentType]++
	}

	result := make([]TypeCount, 0, len(counts))
	for incidentType, count := range counts {
		result = append(result, TypeCount{IncidentType: incidentType, Count: count})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].IncidentType < result[j].IncidentType
	})
	return result
}
