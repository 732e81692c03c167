package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.SAdd(ctx, usersIndexKey(), string(user.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	ids, err := s.client.SMembers(ctx, usersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.GetUser(ctx, model.UserID(id))
		if errors.Is(err, model.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// Credential operations

func (s *Storage) SaveCredentials(ctx context.Context, creds *model.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, credentialsKey(creds.UserID), data, 0)
	pipe.Set(ctx, emailIndexKey(creds.Email), string(creds.UserID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCredentialsByEmail(ctx context.Context, email string) (*model.Credentials, error) {
	userID, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, credentialsKey(model.UserID(userID))).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var creds model.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Invitation operations

func (s *Storage) SaveInvitation(ctx context.Context, inv *model.Invitation) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return err
	}

	// Write the record and maintain both lookup indexes atomically
	pipe := s.client.Pipeline()
	pipe.Set(ctx, invitationKey(inv.ID), data, 0)
	pipe.SAdd(ctx, invitationsForGameIndexKey(inv.GameID), string(inv.ID))
	pipe.SAdd(ctx, invitationsForInviteeIndexKey(inv.InviteeID), string(inv.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetInvitation(ctx context.Context, id model.InvitationID) (*model.Invitation, error) {
	data, err := s.client.Get(ctx, invitationKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrInvitationNotFound
	}
	if err != nil {
		return nil, err
	}

	var inv model.Invitation
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *Storage) GetInvitationsForGame(ctx context.Context, gameID model.GameID) ([]*model.Invitation, error) {
	return s.invitationsByIndex(ctx, invitationsForGameIndexKey(gameID), "")
}

func (s *Storage) GetInvitationsForInvitee(ctx context.Context, inviteeID model.UserID, status model.InvitationStatus) ([]*model.Invitation, error) {
	return s.invitationsByIndex(ctx, invitationsForInviteeIndexKey(inviteeID), status)
}

func (s *Storage) invitationsByIndex(ctx context.Context, indexKey string, status model.InvitationStatus) ([]*model.Invitation, error) {
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	var invs []*model.Invitation
	for _, id := range ids {
		inv, err := s.GetInvitation(ctx, model.InvitationID(id))
		if errors.Is(err, model.ErrInvitationNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if status != "" && inv.Status != status {
			continue
		}
		invs = append(invs, inv)
	}
	return invs, nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	game.Version = 1

	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL).Err()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// PutGame commits the game only if the stored version still matches
// expectedVersion. The check-and-set runs under WATCH so a concurrent
// writer aborts the transaction rather than clobbering the newer state.
func (s *Storage) PutGame(ctx context.Context, game *model.Game, expectedVersion int64) error {
	key := gameKey(game.ID)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return model.ErrGameNotFound
		}
		if err != nil {
			return err
		}

		var stored model.Game
		if err := json.Unmarshal(data, &stored); err != nil {
			return err
		}
		if stored.Version != expectedVersion {
			return model.ErrVersionConflict
		}

		game.Version = expectedVersion + 1
		payload, err := json.Marshal(game)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.cfg.GameTTL)
			return nil
		})
		return err
	}, key)

	// The key changed between WATCH and EXEC; same outcome as a stale version
	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrVersionConflict
	}
	return err
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	exists, err := s.client.Exists(ctx, gameKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Word pair operations

func (s *Storage) GetWordPairs(ctx context.Context) ([]model.WordPair, error) {
	key := wordPairsKey()

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrNoWordPairs
	}

	members, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	pairs := make([]model.WordPair, 0, len(members))
	for _, m := range members {
		spyWord, villagerWord, ok := strings.Cut(m, "\x00")
		if !ok {
			continue
		}
		pairs = append(pairs, model.WordPair{SpyWord: spyWord, VillagerWord: villagerWord})
	}
	return pairs, nil
}

func (s *Storage) SaveWordPairs(ctx context.Context, pairs []model.WordPair) error {
	key := wordPairsKey()

	// Replace the catalogue atomically
	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)

	if len(pairs) > 0 {
		members := make([]interface{}, len(pairs))
		for i, p := range pairs {
			members[i] = p.SpyWord + "\x00" + p.VillagerWord
		}
		pipe.SAdd(ctx, key, members...)
	}

	_, err := pipe.Exec(ctx)
	return err
}
