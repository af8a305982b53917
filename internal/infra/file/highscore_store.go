package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// HighScoreStore keeps a single integer in a text file.
type HighScoreStore struct {
	path string
}

func NewHighScoreStore(path string) *HighScoreStore {
	return &HighScoreStore{path: path}
}

func (s *HighScoreStore) Load(_ context.Context) (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}
	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse high score %s: %w", s.path, err)
	}
	return score, nil
}

func (s *HighScoreStore) Save(_ context.Context, score int) error {
	if err := writeAtomic(s.path, []byte(strconv.Itoa(score))); err != nil {
		return fmt.Errorf("save high score %s: %w", s.path, err)
	}
	return nil
}
