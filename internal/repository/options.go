package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-xr/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
)

type OptionRepository interface {
	Save(ctx context.Context, key string, set *entity.OptionSet) error
	GetByKey(ctx context.Context, key string) (*entity.OptionSet, error)
	DeleteByKey(ctx context.Context, key string) error
}

type dbOptions struct {
	client *redis.Client
}

func NewOptionRepository(client *redis.Client) OptionRepository {
	return &dbOptions{
		client: client,
	}
}

func optionsKey(key string) string {
	return "options:" + key
}

func (that *dbOptions) Save(ctx context.Context, key string, set *entity.OptionSet) error {
	if err := set.Validate(); err != nil {
		return err
	}

	setJSON, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("could not marshal option set: %w", err)
	}

	if err = that.client.Set(ctx, optionsKey(key), setJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set option set: %w", err)
	}

	return nil
}

// GetByKey reads the raw record and parses it leniently, so a record written
// by another tool is rejected with apperror.ErrMalformedOptions rather than
// a json error.
func (that *dbOptions) GetByKey(ctx context.Context, key string) (*entity.OptionSet, error) {
	response, err := that.client.Get(ctx, optionsKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrOptionsNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get option set: %w", err)
	}

	set, err := entity.ParseOptionSet(response)
	if err != nil {
		return nil, fmt.Errorf("option set %q: %w", key, err)
	}

	return set, nil
}

func (that *dbOptions) DeleteByKey(ctx context.Context, key string) error {
	deleted, err := that.client.Del(ctx, optionsKey(key)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete option set: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrOptionsNotFound
	}

	return nil
}
