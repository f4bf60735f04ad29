package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/ports"
)

const sessionKeyPrefix = "session:"

// userNamespace derives stable user ids from e-mail addresses so a returning
// user keeps their roster and inbox history across sessions.
var userNamespace = uuid.MustParse("5d1b0a3e-7c1f-4f55-9f0e-2b8a4c6d9e10")

// StartSession opens a session for the given identity. No credential is
// checked; the account type defaults to what the e-mail suggests.
func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	fields := domain.FieldErrors{}
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "must be an e-mail address"
	}
	userType := domain.InferUserType(email)
	if strings.TrimSpace(in.Type) != "" {
		parsed, err := domain.ParseUserType(in.Type)
		if err != nil {
			fields["type"] = "must be brand or influencer"
		}
		userType = parsed
	}
	if len(fields) > 0 {
		return Session{}, fields
	}
	userID := uuid.NewSHA1(userNamespace, []byte(email)).String()
	known, err := s.users.GetByID(ctx, userID)
	switch {
	case err == nil:
		// a plain login keeps the registered name and type
		if name == "" {
			name = known.Name
		}
		if strings.TrimSpace(in.Type) == "" {
			userType = known.Type
		}
	case !isNotFound(err):
		return Session{}, err
	}
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user, err := s.users.Upsert(ctx, domain.User{
		UserID: userID,
		Name:   name,
		Email:  email,
		Type:   userType,
	})
	if err != nil {
		return Session{}, err
	}
	if user.Type == domain.UserTypeInfluencer {
		if err := s.ensureInfluencerProfile(ctx, user); err != nil {
			return Session{}, err
		}
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return Session{}, err
	}
	token := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	if err := s.cache.Set(ctx, sessionKeyPrefix+token, string(raw), s.cfg.SessionTTL); err != nil {
		return Session{}, fmt.Errorf("%w: store session: %v", domain.ErrStorageUnavailable, err)
	}
	return Session{Token: token, User: user, ExpiresAt: s.nowFn().Add(s.cfg.SessionTTL)}, nil
}

func (s *Service) ResolveSession(ctx context.Context, token string) (domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.User{}, domain.ErrUnauthorized
	}
	raw, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		if errors.Is(err, ports.ErrCacheMiss) {
			return domain.User{}, fmt.Errorf("%w: session expired or unknown", domain.ErrUnauthorized)
		}
		return domain.User{}, fmt.Errorf("%w: load session: %v", domain.ErrStorageUnavailable, err)
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.UserID == "" {
		return domain.User{}, fmt.Errorf("%w: corrupt session", domain.ErrUnauthorized)
	}
	return user, nil
}

func (s *Service) EndSession(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrUnauthorized
	}
	if err := s.cache.Delete(ctx, sessionKeyPrefix+token); err != nil {
		return fmt.Errorf("%w: drop session: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// ensureInfluencerProfile gives a newly seen influencer a directory entry so
// brands can find and invite them.
func (s *Service) ensureInfluencerProfile(ctx context.Context, user domain.User) error {
	_, err := s.influencers.GetByID(ctx, user.UserID)
	if err == nil || !isNotFound(err) {
		return err
	}
	_, err = s.influencers.Upsert(ctx, domain.Influencer{
		InfluencerID: user.UserID,
		Name:         user.Name,
		Platforms:    []string{},
		UpdatedAt:    s.nowFn(),
	})
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
