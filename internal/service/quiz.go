package service

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"wordcards/internal/domain"
)

// maxDistractors is the number of wrong options shown next to the target
const maxDistractors = 3

// QuizService selects quiz rounds and checks answers
type QuizService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewQuizService creates a quiz service; nil rnd means a time-seeded source
func NewQuizService(rnd *rand.Rand) *QuizService {
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &QuizService{rnd: rnd}
}

// SelectRound picks a random target and builds a shuffled option set around it
func (s *QuizService) SelectRound(words []domain.WordRecord) (domain.WordRecord, []domain.QuizOption, error) {
	if len(words) == 0 {
		return domain.WordRecord{}, nil, domain.ErrNoWordsAvailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target := words[s.rnd.IntN(len(words))]
	return target, s.buildOptions(words, target), nil
}

// OptionsFor builds a fresh shuffled option set for a fixed target
func (s *QuizService) OptionsFor(words []domain.WordRecord, target domain.WordRecord) []domain.QuizOption {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buildOptions(words, target)
}

// EvaluateAnswer compares the answer with the target ignoring case and surrounding spaces
func (s *QuizService) EvaluateAnswer(submitted, target string) bool {
	return strings.ToLower(strings.TrimSpace(submitted)) == strings.ToLower(target)
}

// buildOptions must be called with s.mu held
func (s *QuizService) buildOptions(words []domain.WordRecord, target domain.WordRecord) []domain.QuizOption {
	seen := map[string]struct{}{target.Target: {}}
	pool := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w.Target]; ok {
			continue
		}
		seen[w.Target] = struct{}{}
		pool = append(pool, w.Target)
	}

	// Partial Fisher-Yates: first n entries become a uniform sample
	n := min(maxDistractors, len(pool))
	for i := 0; i < n; i++ {
		j := i + s.rnd.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	options := make([]domain.QuizOption, 0, n+1)
	for _, w := range pool[:n] {
		options = append(options, domain.QuizOption{Word: w})
	}
	options = append(options, domain.QuizOption{Word: target.Target, IsTarget: true})

	s.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// OptionLabels returns the display words of the options in order
func OptionLabels(options []domain.QuizOption) []string {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Word
	}
	return labels
}
