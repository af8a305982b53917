package app_test

import (
	"math/rand"
	"sort"
	"testing"

	"trivia-challenge/internal/app"
)

func TestBuildKeepsEveryOptionOnce(t *testing.T) {
	cases := [][]string{
		{"Lyon"},
		{"Lyon", "Nice"},
		{"Lyon", "Nice", "Lille"},
	}
	for seed := int64(0); seed < 20; seed++ {
		shuffler := app.NewOptionShufflerWithSource(rand.NewSource(seed))
		for _, distractors := range cases {
			set := shuffler.Build("Paris", distractors)

			if len(set.Labels) != len(set.Options) {
				t.Fatalf("labels %v do not match options %v", set.Labels, set.Options)
			}
			if got := set.Options[set.CorrectIndex]; got != "Paris" {
				t.Fatalf("seed %d: correct index points at %q", seed, got)
			}

			want := append([]string{"Paris"}, distractors...)
			got := append([]string(nil), set.Options...)
			sort.Strings(want)
			sort.Strings(got)
			for i := range want {
				if want[i] != got[i] {
					t.Fatalf("seed %d: options %v, want permutation of %v", seed, set.Options, want)
				}
			}
			for i, l := range set.Labels {
				if l != string(rune('A'+i)) {
					t.Fatalf("unexpected label %q at %d", l, i)
				}
			}
		}
	}
}

func TestBuildDecodesEntities(t *testing.T) {
	shuffler := app.NewOptionShufflerWithSource(rand.NewSource(1))
	set := shuffler.Build("&quot;Hamlet&quot;", []string{"Romeo &amp; Juliet", "Macbeth&#039;s"})

	if set.Correct() != `"Hamlet"` {
		t.Fatalf("correct answer not decoded: %q", set.Correct())
	}
	for _, opt := range set.Options {
		if opt == "Romeo &amp; Juliet" || opt == "Macbeth&#039;s" {
			t.Fatalf("distractor not decoded: %q", opt)
		}
	}
}

func TestBuildIsReproducibleWithSameSeed(t *testing.T) {
	a := app.NewOptionShufflerWithSource(rand.NewSource(42)).Build("4", []string{"1", "2", "3"})
	b := app.NewOptionShufflerWithSource(rand.NewSource(42)).Build("4", []string{"1", "2", "3"})
	for i := range a.Options {
		if a.Options[i] != b.Options[i] {
			t.Fatalf("same seed produced %v and %v", a.Options, b.Options)
		}
	}
}

func TestReduceKeepsCorrectAnswer(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		shuffler := app.NewOptionShufflerWithSource(rand.NewSource(seed))
		set := shuffler.Build("Paris", []string{"Lyon", "Nice", "Lille"})

		reduced := shuffler.Reduce(set, "Paris", 2)
		if len(reduced.Options) != 2 || len(reduced.Labels) != 2 {
			t.Fatalf("seed %d: expected 2 options, got %v", seed, reduced.Options)
		}
		if reduced.Correct() != "Paris" {
			t.Fatalf("seed %d: correct answer lost: %v", seed, reduced.Options)
		}
		if reduced.Labels[0] != "A" || reduced.Labels[1] != "B" {
			t.Fatalf("seed %d: expected relabel from A, got %v", seed, reduced.Labels)
		}
		if len(set.Options) != 4 {
			t.Fatalf("reduce must not mutate the original set")
		}
	}
}

func TestReduceNoopWhenAlreadySmall(t *testing.T) {
	shuffler := app.NewOptionShufflerWithSource(rand.NewSource(3))
	set := shuffler.Build("Yes", []string{"No"})

	reduced := shuffler.Reduce(set, "Yes", 2)
	if len(reduced.Options) != 2 || reduced.Correct() != "Yes" {
		t.Fatalf("unexpected reduction %+v", reduced)
	}
}
