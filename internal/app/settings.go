package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"trivia-challenge/internal/domain"
)

// SettingsSource decides the amount, category and difficulty of the next round.
type SettingsSource interface {
	Settings(ctx context.Context) (domain.Settings, error)
}

// CategoryProvider lists the topics the question source knows about.
type CategoryProvider interface {
	Categories(ctx context.Context) ([]domain.Category, error)
}

// FixedSettings replays the same validated settings every round (flags, tests).
type FixedSettings domain.Settings

func (f FixedSettings) Settings(context.Context) (domain.Settings, error) {
	s := domain.Settings(f)
	return s, s.Validate()
}

// Preset pins settings fields chosen up front; nil fields are asked for.
type Preset struct {
	Amount     *int
	Category   *int
	Difficulty *string
}

// Complete reports whether no prompt is needed.
func (p Preset) Complete() bool {
	return p.Amount != nil && p.Category != nil && p.Difficulty != nil
}

// Validate checks the pinned fields only.
func (p Preset) Validate() error {
	if p.Amount != nil {
		if _, err := parseAmount(strconv.Itoa(*p.Amount)); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidSettings, err)
		}
	}
	if p.Category != nil && *p.Category < 0 {
		return fmt.Errorf("%w: category must not be negative", domain.ErrInvalidSettings)
	}
	if p.Difficulty != nil && !domain.ValidDifficulty(*p.Difficulty) {
		return fmt.Errorf("%w: difficulty must be easy, medium or hard", domain.ErrInvalidSettings)
	}
	return nil
}

// PromptSettings asks the player for every round's settings.
type PromptSettings struct {
	console    Console
	categories CategoryProvider
	preset     Preset
	log        *zap.Logger
}

func NewPromptSettings(console Console, categories CategoryProvider, log *zap.Logger) *PromptSettings {
	if log == nil {
		log = zap.NewNop()
	}
	return &PromptSettings{console: console, categories: categories, log: log}
}

// WithPreset skips the prompts for the fields pinned in preset.
func (p *PromptSettings) WithPreset(preset Preset) *PromptSettings {
	p.preset = preset
	return p
}

func (p *PromptSettings) Settings(ctx context.Context) (domain.Settings, error) {
	var s domain.Settings
	var err error

	if p.preset.Amount != nil {
		s.Amount = *p.preset.Amount
	} else {
		prompt := fmt.Sprintf("How many questions would you like? (%d-%d): ", domain.MinAmount, domain.MaxAmount)
		if s.Amount, err = Request(p.console, prompt, parseAmount); err != nil {
			return s, err
		}
	}

	if p.preset.Category != nil {
		s.Category = *p.preset.Category
	} else {
		categories := p.loadCategories(ctx)
		p.console.Printf("\nAvailable categories:\n")
		for _, c := range categories {
			p.console.Printf("- %s\n", c.Name)
		}
		if s.Category, err = Request(p.console, "Choose a category: ", func(raw string) (int, error) {
			return parseCategory(raw, categories)
		}); err != nil {
			return s, err
		}
	}

	if p.preset.Difficulty != nil {
		s.Difficulty = *p.preset.Difficulty
	} else if s.Difficulty, err = Request(p.console, "Choose a difficulty (easy, medium, hard): ", parseDifficulty); err != nil {
		return s, err
	}
	return s, s.Validate()
}

func (p *PromptSettings) loadCategories(ctx context.Context) []domain.Category {
	if p.categories == nil {
		return domain.DefaultCategories()
	}
	categories, err := p.categories.Categories(ctx)
	if err != nil || len(categories) == 0 {
		p.log.Warn("category list unavailable, using defaults", zap.Error(err))
		p.console.Printf("Could not fetch categories, using a default list.\n")
		return domain.DefaultCategories()
	}
	return categories
}

func parseAmount(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("please enter a number")
	}
	if n < domain.MinAmount || n > domain.MaxAmount {
		return 0, fmt.Errorf("please choose a number between %d and %d", domain.MinAmount, domain.MaxAmount)
	}
	return n, nil
}

// parseCategory accepts a listed name (any case) or its numeric id.
func parseCategory(raw string, categories []domain.Category) (int, error) {
	id, numErr := strconv.Atoi(raw)
	for _, c := range categories {
		if strings.EqualFold(c.Name, raw) || (numErr == nil && c.ID == id) {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("please choose a category from the list above")
}

func parseDifficulty(raw string) (string, error) {
	d := strings.ToLower(raw)
	if !domain.ValidDifficulty(d) {
		return "", fmt.Errorf("please enter 'easy', 'medium', or 'hard'")
	}
	return d, nil
}
