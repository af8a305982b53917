package app

import (
	"html"
	"math/rand"
	"time"

	"trivia-challenge/internal/domain"
)

// OptionShuffler builds and reduces labeled option sets.
type OptionShuffler struct {
	rnd *rand.Rand
}

// NewOptionShuffler seeds from the clock; tests inject a fixed source through NewOptionShufflerWithSource.
func NewOptionShuffler() *OptionShuffler {
	return NewOptionShufflerWithSource(rand.NewSource(time.Now().UnixNano()))
}

func NewOptionShufflerWithSource(src rand.Source) *OptionShuffler {
	return &OptionShuffler{rnd: rand.New(src)}
}

// Build decodes the answers, shuffles them and labels them from 'A'.
func (s *OptionShuffler) Build(correct string, distractors []string) domain.OptionSet {
	options := make([]string, 0, len(distractors)+1)
	options = append(options, decode(correct))
	for _, d := range distractors {
		options = append(options, decode(d))
	}

	correctIndex := 0
	s.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
		switch correctIndex {
		case i:
			correctIndex = j
		case j:
			correctIndex = i
		}
	})

	return domain.OptionSet{
		Labels:       labels(len(options)),
		Options:      options,
		CorrectIndex: correctIndex,
	}
}

// Reduce keeps the correct answer plus keep-1 random other options, in their
// current order, and relabels them from 'A'.
func (s *OptionShuffler) Reduce(set domain.OptionSet, correct string, keep int) domain.OptionSet {
	if keep < 1 {
		keep = 1
	}
	if keep >= len(set.Options) {
		return cloneSet(set)
	}

	correctIndex := set.CorrectIndex
	decoded := decode(correct)
	for i, opt := range set.Options {
		if opt == decoded {
			correctIndex = i
			break
		}
	}

	others := make([]int, 0, len(set.Options)-1)
	for i := range set.Options {
		if i != correctIndex {
			others = append(others, i)
		}
	}
	kept := map[int]bool{correctIndex: true}
	for _, p := range s.rnd.Perm(len(others))[:keep-1] {
		kept[others[p]] = true
	}

	reduced := domain.OptionSet{Options: make([]string, 0, keep)}
	for i, opt := range set.Options {
		if !kept[i] {
			continue
		}
		if i == correctIndex {
			reduced.CorrectIndex = len(reduced.Options)
		}
		reduced.Options = append(reduced.Options, opt)
	}
	reduced.Labels = labels(len(reduced.Options))
	return reduced
}

// booleanOptions is the fixed pair shown for true/false questions.
func booleanOptions(correct string) domain.OptionSet {
	set := domain.OptionSet{
		Labels:  labels(2),
		Options: []string{domain.True, domain.False},
	}
	if correct == domain.False {
		set.CorrectIndex = 1
	}
	return set
}

func labels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('A' + i))
	}
	return out
}

func cloneSet(set domain.OptionSet) domain.OptionSet {
	return domain.OptionSet{
		Labels:       append([]string(nil), set.Labels...),
		Options:      append([]string(nil), set.Options...),
		CorrectIndex: set.CorrectIndex,
	}
}

// decode turns entities such as &quot; back into plain text.
func decode(s string) string {
	return html.UnescapeString(s)
}
