package domain

// WordRecord is a word from the user's vocabulary together with its progress
type WordRecord struct {
	Target         string
	Translation    string
	CorrectAnswers int
}

// QuizOption is a single choice rendered for one quiz round
type QuizOption struct {
	Word     string
	IsTarget bool
}

// Progress aggregates a user's learning progress
type Progress struct {
	WordCount    int
	TotalCorrect int
}

// IsEmpty reports whether the user has not added any words yet
func (p Progress) IsEmpty() bool {
	return p.WordCount == 0
}
