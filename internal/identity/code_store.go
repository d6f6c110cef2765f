package identity

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SignupCodeRecord is what survives between send and verify: the hashed
// passcode and the profile fields submitted with the request.
type SignupCodeRecord struct {
	CodeHash    string `json:"code_hash"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

// SignupCodeStore persists outstanding passcodes with a bounded lifetime.
type SignupCodeStore interface {
	Save(ctx context.Context, email string, record SignupCodeRecord, ttl time.Duration) error
	Get(ctx context.Context, email string) (*SignupCodeRecord, error)
	Delete(ctx context.Context, email string) error
}

const signupCodePrefix = "signup:code:"

type redisCodeStore struct {
	client *redis.Client
}

// NewRedisCodeStore returns a Redis-backed store; expiry rides on the key TTL.
func NewRedisCodeStore(client *redis.Client) SignupCodeStore {
	return &redisCodeStore{client: client}
}

func (s *redisCodeStore) Save(ctx context.Context, email string, record SignupCodeRecord, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, signupCodePrefix+email, payload, ttl).Err()
}

func (s *redisCodeStore) Get(ctx context.Context, email string) (*SignupCodeRecord, error) {
	payload, err := s.client.Get(ctx, signupCodePrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCodeExpired
		}
		return nil, err
	}
	var record SignupCodeRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *redisCodeStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, signupCodePrefix+email).Err()
}
