package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rocketscienceinc/tictactoe-xr/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
)

// fileOptions serves one option record from disk, whatever key is asked for.
type fileOptions struct {
	path string
}

func (that *fileOptions) GetByKey(_ context.Context, _ string) (*entity.OptionSet, error) {
	data, err := os.ReadFile(that.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperror.ErrOptionsNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	return entity.ParseOptionSet(data)
}
