package models

import "time"

// Source tells where a set of articles came from
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// ArticleFeed is a list of articles together with the source they were read from
type ArticleFeed struct {
	Articles []*Article `json:"articles"`
	Source   Source     `json:"source"`
	DemoMode bool       `json:"demo_mode"`
	Notice   string     `json:"notice,omitempty"`
}

type fallbackSeed struct {
	title    string
	content  string
	excerpt  string
	category string
	tags     []string
	author   string
	featured bool
	views    int64
	age      time.Duration
}

var fallbackSeeds = []fallbackSeed{
	{
		title:    "New Korean Cultural Center Opens in San Francisco",
		content:  "<p>The Korean Cultural Center of San Francisco officially opened yesterday...</p>",
		excerpt:  "The center will offer language classes, cultural events, and community gatherings.",
		category: "Community",
		tags:     []string{"culture", "community", "education"},
		author:   "Sarah Kim",
		featured: true,
		views:    1245,
		age:      48 * time.Hour,
	},
	{
		title:    "Korean Food Festival Returns to Union Square",
		content:  "<p>The annual Korean Food Festival is back this weekend...</p>",
		excerpt:  "Annual celebration of Korean cuisine features 30+ vendors and traditional performances.",
		category: "Food",
		tags:     []string{"food", "festival", "culture"},
		author:   "Jennifer Lee",
		views:    2156,
		age:      3 * time.Hour,
	},
	{
		title:    "Korean Tech Startup Raises $10M in Series A Funding",
		content:  "<p>A Korean-founded startup based in San Francisco has successfully raised $10 million...</p>",
		excerpt:  "Local Korean-founded startup secures major funding round.",
		category: "Business",
		tags:     []string{"business", "technology", "startup"},
		author:   "Michael Park",
		views:    987,
		age:      24 * time.Hour,
	},
	{
		title:    "Korean Language Program Expands to Bay Area Schools",
		content:  "<p>The San Francisco Unified School District announced the expansion...</p>",
		excerpt:  "SFUSD expands Korean language education to meet growing community demand.",
		category: "Education",
		tags:     []string{"education", "language", "schools"},
		author:   "David Kim",
		views:    834,
		age:      5 * time.Hour,
	},
	{
		title:    "Local Korean Artist Exhibition Opens at SFMOMA",
		content:  "<p>Contemporary Korean artist Min Jung Kim's solo exhibition...</p>",
		excerpt:  "SFMOMA showcases Korean American artist's exploration of cultural identity.",
		category: "Arts",
		tags:     []string{"arts", "culture", "exhibition"},
		author:   "Lisa Park",
		views:    567,
		age:      24 * time.Hour,
	},
}

const fallbackImage = "/placeholder.svg?height=400&width=600"

// FeaturedFallbackCount is how many sample articles the featured block shows
const FeaturedFallbackCount = 3

// FallbackArticles returns the fixed demo-mode sample set, dated relative to now
func FallbackArticles(now time.Time) []*Article {
	articles := make([]*Article, 0, len(fallbackSeeds))
	for i, seed := range fallbackSeeds {
		ts := now.Add(-seed.age)
		published := ts
		excerpt := seed.excerpt
		image := fallbackImage
		tags := make([]string, len(seed.tags))
		copy(tags, seed.tags)

		articles = append(articles, &Article{
			ID:          int64(i + 1),
			Title:       seed.title,
			Content:     seed.content,
			Excerpt:     &excerpt,
			Category:    seed.category,
			Tags:        tags,
			Author:      seed.author,
			Status:      StatusPublished,
			Featured:    seed.featured,
			ImageURL:    &image,
			Views:       seed.views,
			CreatedAt:   ts,
			UpdatedAt:   ts,
			PublishedAt: &published,
		})
	}
	return articles
}

// FeaturedFallback returns the sample set used by the homepage featured block
func FeaturedFallback(now time.Time) []*Article {
	return FallbackArticles(now)[:FeaturedFallbackCount]
}
