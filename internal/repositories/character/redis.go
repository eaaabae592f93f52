package character

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-sheet-store/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-sheet-store/internal/redis"
)

const (
	characterKeyPrefix = "character:"
	characterIndexKey  = "characters"
)

type redisRepository struct {
	client redisclient.Client
	addr   string
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
	// Addr is only used to describe the location
	Addr string
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed character repository.
// Each record is one JSON string under character:<id>; the characters set
// indexes the IDs.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
		addr:   cfg.Addr,
	}, nil
}

func (r *redisRepository) Location() string {
	return fmt.Sprintf("redis://%s/%s*", r.addr, characterKeyPrefix)
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if err := ValidateID(input.Character.ID); err != nil {
		return nil, err
	}

	key := characterKeyPrefix + input.Character.ID

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Serialization(err, "encode", key)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0) // No TTL for characters
	pipe.SAdd(ctx, characterIndexKey, input.Character.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.FileIO(err, "write", key)
	}

	slog.DebugContext(ctx, "saved character",
		"character_id", input.Character.ID,
		"key", key)

	return &SaveOutput{Path: key}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := ValidateID(input.ID); err != nil {
		return nil, err
	}

	key := characterKeyPrefix + input.ID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.FileIO(err, "read", key)
	}

	var char dnd5e.Character
	if err := json.Unmarshal([]byte(result), &char); err != nil {
		return nil, errors.Serialization(err, "decode", key)
	}
	char.ID = input.ID

	return &GetOutput{Character: &char}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ValidateID(input.ID); err != nil {
		return nil, err
	}

	key := characterKeyPrefix + input.ID

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, key)
	pipe.SRem(ctx, characterIndexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.FileIO(err, "delete", key)
	}

	return &DeleteOutput{Existed: del.Val() > 0}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	slog.DebugContext(ctx, "fetching character IDs from index",
		"index_key", characterIndexKey)

	characterIDs, err := r.client.SMembers(ctx, characterIndexKey).Result()
	if err != nil {
		return nil, errors.DirectoryAccess(err, "read index", characterIndexKey)
	}
	// Set members come back in no particular order
	sort.Strings(characterIDs)

	output := &ListOutput{Characters: make([]*dnd5e.Character, 0, len(characterIDs))}
	for _, id := range characterIDs {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			// If character doesn't exist, clean up the index
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "character not found, cleaning up index",
					"character_id", id,
					"index_key", characterIndexKey)
				r.client.SRem(ctx, characterIndexKey, id)
				continue
			}
			if !input.SkipCorrupt {
				return nil, err
			}
			slog.WarnContext(ctx, "skipping unreadable character record",
				"character_id", id,
				"error", err.Error())
			output.Skipped = append(output.Skipped, SkippedRecord{ID: id, Path: characterKeyPrefix + id, Err: err})
			continue
		}
		output.Characters = append(output.Characters, getOutput.Character)
	}

	slog.DebugContext(ctx, "successfully retrieved all characters from index",
		"index_key", characterIndexKey,
		"total_found", len(output.Characters))

	return output, nil
}
