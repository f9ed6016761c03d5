// Package practice serves the simulated debate, extempore, and interview
// endpoints. Responses come from fixed pools and scores from fixed random
// ranges; nothing here calls a model and nothing is persisted.
package practice

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

var debateTopics = []string{
	"Climate Change Solutions",
	"Universal Basic Income",
	"Artificial Intelligence Regulation",
	"Social Media's Impact on Democracy",
	"Education System Reform",
	"Healthcare Models",
	"Space Exploration Priorities",
	"Cryptocurrency Regulation",
	"Genetic Engineering Ethics",
}

var extemporeTopics = []string{
	"The future of remote work",
	"Climate change solutions",
	"Artificial intelligence ethics",
	"Social media's impact on society",
	"Space exploration benefits",
	"Cryptocurrency's future",
	"Universal basic income",
	"Education system reform",
	"Healthcare innovation",
	"Sustainable urban development",
	"Digital privacy concerns",
	"Renewable energy transition",
	"Cultural diversity importance",
	"Global food security",
	"Mental health awareness",
}

var debateReplies = []string{
	"Have you considered the economic impact of this proposal on developing nations?",
	"That's an interesting perspective, but what evidence supports your claim?",
	"While your point has merit, there are significant implementation challenges to consider.",
	"Historical precedents suggest a different outcome than what you're proposing.",
	"The ethical implications of this approach require deeper examination.",
}

var debateFeedback = []string{
	"Strong opening arguments; work on anticipating counterpoints earlier.",
	"Good use of evidence; tighten the closing summary.",
	"Clear structure throughout; vary sentence rhythm to hold attention.",
	"Persuasive delivery; back more claims with concrete data.",
}

var interviewRecommendations = []string{
	"Ready for the next round; polish the project walkthroughs.",
	"Solid fundamentals; practice answering under time pressure.",
	"Communicates well; prepare more quantified achievements.",
	"Confident delivery; expand on system design trade-offs.",
}

// ExtemporeReport mirrors the score card the frontend renders after a
// speaking session.
type ExtemporeReport struct {
	ID              string    `json:"id"`
	Topic           string    `json:"topic"`
	DurationSeconds int       `json:"duration_seconds"`
	Fluency         int       `json:"fluency"`
	Clarity         int       `json:"clarity"`
	Structure       int       `json:"structure"`
	FillerWords     int       `json:"filler_words"`
	OverallScore    int       `json:"overall_score"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// DebateReport scores a finished debate session.
type DebateReport struct {
	ID           string    `json:"id"`
	Topic        string    `json:"topic"`
	Stance       string    `json:"stance"`
	RoundScores  []int     `json:"round_scores"`
	OverallScore int       `json:"overall_score"`
	Feedback     string    `json:"feedback"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// InterviewReport scores a simulated interview for a job profile.
type InterviewReport struct {
	ID             string    `json:"id"`
	JobProfile     string    `json:"job_profile"`
	Difficulty     string    `json:"difficulty"`
	Technical      int       `json:"technical"`
	Communication  int       `json:"communication"`
	Confidence     int       `json:"confidence"`
	OverallScore   int       `json:"overall_score"`
	Recommendation string    `json:"recommendation"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Service generates simulated practice content. The rand source is injected
// so tests can seed it; a mutex guards it because *rand.Rand is not safe for
// concurrent use.
type Service struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// DebateTopics returns the fixed debate topic pool.
func (s *Service) DebateTopics() []string {
	out := make([]string, len(debateTopics))
	copy(out, debateTopics)
	return out
}

// DebateReply picks a simulated opponent rebuttal.
func (s *Service) DebateReply(topic, stance, message string) string {
	return debateReplies[s.intn(len(debateReplies))]
}

// DebateReport produces per-round scores in [70,100) and an overall score
// in [80,100), the ranges the original UI simulated.
func (s *Service) DebateReport(topic, stance string, rounds int) *DebateReport {
	if rounds <= 0 {
		rounds = 3
	}
	scores := make([]int, rounds)
	for i := range scores {
		scores[i] = s.intn(30) + 70
	}
	return &DebateReport{
		ID:           uuid.NewString(),
		Topic:        topic,
		Stance:       stance,
		RoundScores:  scores,
		OverallScore: s.intn(20) + 80,
		Feedback:     debateFeedback[s.intn(len(debateFeedback))],
		GeneratedAt:  time.Now().UTC(),
	}
}

// ExtemporeTopic returns a random topic from the extempore pool.
func (s *Service) ExtemporeTopic() string {
	return extemporeTopics[s.intn(len(extemporeTopics))]
}

// ExtemporeReport mirrors the original score simulation: fluency, clarity,
// and structure in [70,100), filler words in [1,10], overall in [80,100).
func (s *Service) ExtemporeReport(topic string, durationSeconds int) *ExtemporeReport {
	return &ExtemporeReport{
		ID:              uuid.NewString(),
		Topic:           topic,
		DurationSeconds: durationSeconds,
		Fluency:         s.intn(30) + 70,
		Clarity:         s.intn(30) + 70,
		Structure:       s.intn(30) + 70,
		FillerWords:     s.intn(10) + 1,
		OverallScore:    s.intn(20) + 80,
		GeneratedAt:     time.Now().UTC(),
	}
}

// InterviewReport produces a simulated interview score card.
func (s *Service) InterviewReport(jobProfile, difficulty string) *InterviewReport {
	return &InterviewReport{
		ID:             uuid.NewString(),
		JobProfile:     jobProfile,
		Difficulty:     difficulty,
		Technical:      s.intn(30) + 70,
		Communication:  s.intn(30) + 70,
		Confidence:     s.intn(30) + 70,
		OverallScore:   s.intn(20) + 80,
		Recommendation: interviewRecommendations[s.intn(len(interviewRecommendations))],
		GeneratedAt:    time.Now().UTC(),
	}
}

func (s *Service) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
