package services

import (
	"context"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/singleflight"
)

// Headline is one ticker entry.
type Headline struct {
	Title string    `json:"title"`
	Link  string    `json:"link"`
	Date  time.Time `json:"date"`
}

// HeadlineSet is the headline endpoint payload. Status is empty on a healthy
// response and describes the degradation otherwise; the endpoint never fails.
type HeadlineSet struct {
	Headlines   []Headline `json:"headlines"`
	LastUpdated time.Time  `json:"lastUpdated"`
	Status      string     `json:"status,omitempty"`
}

const (
	headlineTTL      = 5 * time.Minute
	headlineLimit    = 15
	feedFetchTimeout = 5 * time.Second
)

var defaultFeeds = []string{
	"https://news.google.com/rss/search?q=UNC+Charlotte+campus+safety+police",
	"https://news.google.com/rss/search?q=UNC+Charlotte+security+incident",
	"https://www.ninertimes.com/search/?f=rss",
	"https://inside.charlotte.edu/news-features/feed",
	"https://emergency.charlotte.edu/communications/ninernotice/feed",
}

var campusDomains = []string{"charlotte.edu", "ninertimes.com", "uncc.edu"}

// NewsService aggregates the campus-safety news ticker. One cache slot per
// process; refreshes collapse through a singleflight group so an expiry burst
// costs one fetch round.
type NewsService struct {
	parser *gofeed.Parser
	feeds  []string

	mu        sync.Mutex
	cached    *HeadlineSet
	fetchedAt time.Time
	ttl       time.Duration

	group singleflight.Group

	// Swapped in tests; fetchAll failing entirely is the "unexpected
	// total failure" path that degrades to stale cache or fallback.
	fetchAll func() ([]Headline, error)
	now      func() time.Time
}

var (
	newsService *NewsService
	newsOnce    sync.Once
)

// GetNewsService returns the singleton news service. The warm-up goroutine in
// main and route registration both reach for it, so construction is guarded.
func GetNewsService() *NewsService {
	newsOnce.Do(func() {
		feeds := defaultFeeds
		if env := os.Getenv("NEWS_FEEDS"); env != "" {
			feeds = strings.Split(env, ",")
		}
		newsService = NewNewsService(feeds...)
	})
	return newsService
}

func NewNewsService(feeds ...string) *NewsService {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{
		Timeout: feedFetchTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	s := &NewsService{
		parser: parser,
		feeds:  feeds,
		ttl:    headlineTTL,
		now:    time.Now,
	}
	s.fetchAll = s.fetchFeeds
	return s
}

// Headlines returns the cached set when fresh, refreshes it otherwise, and
// degrades to stale cache or the static fallback when the refresh blows up.
// It never returns an error.
func (s *NewsService) Headlines() *HeadlineSet {
	s.mu.Lock()
	if s.cached != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		cached := s.cached
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do("headlines", func() (interface{}, error) {
		return s.refresh()
	})
	if err != nil {
		log.Printf("Headline refresh failed: %v", err)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.cached != nil {
			stale := *s.cached
			stale.Status = "Using cached data due to fetch error"
			return &stale
		}
		return &HeadlineSet{
			Headlines:   fallbackHeadlines(s.now()),
			LastUpdated: s.now(),
			Status:      "Using fallback data due to fetch error",
		}
	}
	return v.(*HeadlineSet)
}

func (s *NewsService) refresh() (*HeadlineSet, error) {
	merged, err := s.fetchAll()
	if err != nil {
		return nil, err
	}

	if len(merged) == 0 {
		log.Println("No headlines found from feeds, using fallback data")
		merged = fallbackHeadlines(s.now())
	}

	set := &HeadlineSet{
		Headlines:   processHeadlines(merged),
		LastUpdated: s.now(),
	}

	s.mu.Lock()
	s.cached = set
	s.fetchedAt = s.now()
	s.mu.Unlock()

	return set, nil
}

// fetchFeeds fans out one fetch per configured feed and waits for all of them.
// A dead feed contributes nothing; it never fails the batch.
func (s *NewsService) fetchFeeds() ([]Headline, error) {
	results := make([][]Headline, len(s.feeds))

	var wg sync.WaitGroup
	for i, url := range s.feeds {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), feedFetchTimeout)
			defer cancel()

			feed, err := s.parser.ParseURLWithContext(url, ctx)
			if err != nil {
				log.Printf("Error parsing feed %s: %v", url, err)
				return
			}

			items := make([]Headline, 0, len(feed.Items))
			for _, item := range feed.Items {
				if item.Title == "" {
					continue
				}
				link := item.Link
				if link == "" {
					link = "#"
				}
				date := s.now()
				if item.PublishedParsed != nil {
					date = *item.PublishedParsed
				} else if item.UpdatedParsed != nil {
					date = *item.UpdatedParsed
				}
				items = append(items, Headline{Title: item.Title, Link: link, Date: date})
			}
			results[i] = items
		}(i, url)
	}
	wg.Wait()

	// Merge in configured feed order so title dedupe is first-wins.
	seenTitles := make(map[string]bool)
	merged := make([]Headline, 0)
	for _, items := range results {
		for _, h := range items {
			if seenTitles[h.Title] {
				continue
			}
			seenTitles[h.Title] = true
			merged = append(merged, h)
		}
	}

	return merged, nil
}

// processHeadlines ranks the merged set: campus-affiliated sources are placed
// first, then the whole list is sorted stably by keyword score then publish
// date, so the campus-first placement only survives full ties. Capped at 15.
func processHeadlines(headlines []Headline) []Headline {
	campus := make([]Headline, 0)
	others := make([]Headline, 0)
	for _, h := range headlines {
		if isCampusSource(h.Link) {
			campus = append(campus, h)
		} else {
			others = append(others, h)
		}
	}

	ranked := append(campus, others...)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := prioritize(ranked[i]), prioritize(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].Date.After(ranked[j].Date)
	})

	if len(ranked) > headlineLimit {
		ranked = ranked[:headlineLimit]
	}
	return ranked
}

func isCampusSource(link string) bool {
	for _, domain := range campusDomains {
		if strings.Contains(link, domain) {
			return true
		}
	}
	return false
}

func prioritize(h Headline) int {
	title := strings.ToLower(h.Title)
	switch {
	case strings.Contains(title, "niner alert") || strings.Contains(title, "ninernotice"):
		return 10
	case strings.Contains(title, "police") || strings.Contains(title, "safety") || strings.Contains(title, "security"):
		return 8
	case strings.Contains(title, "emergency") || strings.Contains(title, "incident"):
		return 7
	case strings.Contains(title, "unc charlotte") || strings.Contains(title, "uncc"):
		return 5
	default:
		return 0
	}
}

func fallbackHeadlines(now time.Time) []Headline {
	return []Headline{
		{
			Title: "UNC Charlotte campus safety updates available on LiveSafe app",
			Link:  "https://emergency.charlotte.edu/communications/livesafe-app",
			Date:  now,
		},
		{
			Title: "Check NinerNotices for latest campus safety information",
			Link:  "https://emergency.charlotte.edu/communications/ninernotice",
			Date:  now,
		},
		{
			Title: "Campus Police Department provides daily security updates",
			Link:  "https://police.charlotte.edu/police-log/police-log-2025",
			Date:  now,
		},
	}
}
