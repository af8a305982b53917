package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"trivia-challenge/internal/domain"
)

// BankQuestion ties a question to the category id it is served under.
type BankQuestion struct {
	CategoryID int
	domain.Question
}

// QuestionBank is an offline app.QuestionSource over a fixed set of questions.
type QuestionBank struct {
	questions []BankQuestion

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionBank(questions []BankQuestion) *QuestionBank {
	return &QuestionBank{
		questions: questions,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// FetchQuestions returns up to settings.Amount questions matching the
// difficulty and category (0 matches any), in random order.
func (b *QuestionBank) FetchQuestions(_ context.Context, settings domain.Settings) ([]domain.Question, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	var matches []domain.Question
	for _, q := range b.questions {
		if q.Difficulty != settings.Difficulty {
			continue
		}
		if settings.Category != 0 && q.CategoryID != settings.Category {
			continue
		}
		matches = append(matches, q.Question)
	}
	if len(matches) == 0 {
		return nil, domain.ErrNoResults
	}

	b.mu.Lock()
	b.rnd.Shuffle(len(matches), func(i, j int) { matches[i], matches[j] = matches[j], matches[i] })
	b.mu.Unlock()

	if len(matches) > settings.Amount {
		matches = matches[:settings.Amount]
	}
	return matches, nil
}

// Categories lists the categories that have at least one question.
func (b *QuestionBank) Categories(_ context.Context) ([]domain.Category, error) {
	known := make(map[int]domain.Category)
	for _, c := range domain.DefaultCategories() {
		known[c.ID] = c
	}
	seen := make(map[int]bool)
	var out []domain.Category
	for _, q := range b.questions {
		if seen[q.CategoryID] {
			continue
		}
		seen[q.CategoryID] = true
		c, ok := known[q.CategoryID]
		if !ok {
			c = domain.Category{ID: q.CategoryID, Name: q.Category}
		}
		out = append(out, c)
	}
	return out, nil
}

// SampleQuestions is the built-in offline bank.
func SampleQuestions() []BankQuestion {
	return []BankQuestion{
		{9, domain.Question{Text: "What is the capital of France?", Type: domain.Multiple, CorrectAnswer: "Paris", Distractors: []string{"Lyon", "Marseille", "Nice"}, Category: "General Knowledge", Difficulty: domain.Easy}},
		{9, domain.Question{Text: "How many continents are there?", Type: domain.Multiple, CorrectAnswer: "7", Distractors: []string{"5", "6", "8"}, Category: "General Knowledge", Difficulty: domain.Easy}},
		{9, domain.Question{Text: "The Great Wall of China is visible from the Moon with the naked eye.", Type: domain.Boolean, CorrectAnswer: domain.False, Category: "General Knowledge", Difficulty: domain.Medium}},
		{9, domain.Question{Text: "Which company created the &quot;Go&quot; programming language?", Type: domain.Multiple, CorrectAnswer: "Google", Distractors: []string{"Microsoft", "Apple", "Mozilla"}, Category: "General Knowledge", Difficulty: domain.Medium}},
		{10, domain.Question{Text: "Who wrote &quot;Romeo and Juliet&quot;?", Type: domain.Multiple, CorrectAnswer: "William Shakespeare", Distractors: []string{"Charles Dickens", "Jane Austen", "Mark Twain"}, Category: "Entertainment: Books", Difficulty: domain.Easy}},
		{10, domain.Question{Text: "In &quot;The Hitchhiker&#039;s Guide to the Galaxy&quot;, what is the answer to everything?", Type: domain.Multiple, CorrectAnswer: "42", Distractors: []string{"7", "0", "1024"}, Category: "Entertainment: Books", Difficulty: domain.Medium}},
		{10, domain.Question{Text: "George Orwell wrote &quot;Brave New World&quot;.", Type: domain.Boolean, CorrectAnswer: domain.False, Category: "Entertainment: Books", Difficulty: domain.Hard}},
		{17, domain.Question{Text: "What is the chemical symbol for gold?", Type: domain.Multiple, CorrectAnswer: "Au", Distractors: []string{"Ag", "Go", "Gd"}, Category: "Science & Nature", Difficulty: domain.Easy}},
		{17, domain.Question{Text: "Light travels faster than sound.", Type: domain.Boolean, CorrectAnswer: domain.True, Category: "Science & Nature", Difficulty: domain.Easy}},
		{17, domain.Question{Text: "What is the most abundant gas in Earth&#039;s atmosphere?", Type: domain.Multiple, CorrectAnswer: "Nitrogen", Distractors: []string{"Oxygen", "Carbon Dioxide", "Argon"}, Category: "Science & Nature", Difficulty: domain.Medium}},
		{17, domain.Question{Text: "What is the half-life of Carbon-14, rounded to the nearest millennium?", Type: domain.Multiple, CorrectAnswer: "6,000 years", Distractors: []string{"1,000 years", "12,000 years", "50,000 years"}, Category: "Science & Nature", Difficulty: domain.Hard}},
		{21, domain.Question{Text: "How many players are on a soccer team on the field?", Type: domain.Multiple, CorrectAnswer: "11", Distractors: []string{"9", "10", "12"}, Category: "Sports", Difficulty: domain.Easy}},
		{21, domain.Question{Text: "The Olympic Games are held every four years.", Type: domain.Boolean, CorrectAnswer: domain.True, Category: "Sports", Difficulty: domain.Easy}},
		{22, domain.Question{Text: "What is the largest ocean on Earth?", Type: domain.Multiple, CorrectAnswer: "Pacific", Distractors: []string{"Atlantic", "Indian", "Arctic"}, Category: "Geography", Difficulty: domain.Easy}},
		{22, domain.Question{Text: "What is the capital of Australia?", Type: domain.Multiple, CorrectAnswer: "Canberra", Distractors: []string{"Sydney", "Melbourne", "Perth"}, Category: "Geography", Difficulty: domain.Medium}},
		{22, domain.Question{Text: "Which country has the most natural lakes?", Type: domain.Multiple, CorrectAnswer: "Canada", Distractors: []string{"Russia", "Finland", "United States"}, Category: "Geography", Difficulty: domain.Hard}},
	}
}
