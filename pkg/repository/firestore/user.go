package firestore

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userDocument struct {
	ID           string    `firestore:"id"`
	Email        string    `firestore:"email"`
	FullName     string    `firestore:"full_name"`
	JobTitle     string    `firestore:"job_title"`
	Area         string    `firestore:"area"`
	Phone        string    `firestore:"phone"`
	Role         string    `firestore:"role"`
	Active       bool      `firestore:"active"`
	PasswordHash string    `firestore:"password_hash"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func (d *userDocument) toModel() *model.User {
	return &model.User{
		ID:           d.ID,
		Email:        d.Email,
		FullName:     d.FullName,
		JobTitle:     d.JobTitle,
		Area:         d.Area,
		Phone:        d.Phone,
		Role:         types.Role(d.Role),
		Active:       d.Active,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// userRepository keeps one document per user plus an email index document
// so that email uniqueness holds under concurrent registration.
type userRepository struct {
	client *firestore.Client
	prefix string
}

func newUserRepository(client *firestore.Client, prefix string) *userRepository {
	return &userRepository{client: client, prefix: prefix}
}

func (r *userRepository) users() *firestore.CollectionRef {
	return r.client.Collection(withPrefix(r.prefix, "users"))
}

func (r *userRepository) emails() *firestore.CollectionRef {
	return r.client.Collection(withPrefix(r.prefix, "user_emails"))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now().UTC()
	doc := &userDocument{
		ID:           user.ID,
		Email:        normalizeEmail(user.Email),
		FullName:     user.FullName,
		JobTitle:     user.JobTitle,
		Area:         user.Area,
		Phone:        user.Phone,
		Role:         string(user.Role),
		Active:       user.Active,
		PasswordHash: user.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(r.emails().Doc(doc.Email), map[string]interface{}{"user_id": doc.ID}); err != nil {
			return err
		}
		return tx.Create(r.users().Doc(doc.ID), doc)
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(model.ErrAlreadyExists, "email already registered", goerr.V(model.EmailKey, doc.Email))
		}
		return nil, goerr.Wrap(err, "failed to create user", goerr.V(model.EmailKey, doc.Email))
	}

	return doc.toModel(), nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*model.User, error) {
	snap, err := r.users().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V(model.UserIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(model.UserIDKey, id))
	}

	var doc userDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V(model.UserIDKey, id))
	}
	return doc.toModel(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = normalizeEmail(email)
	snap, err := r.emails().Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V(model.EmailKey, email))
		}
		return nil, goerr.Wrap(err, "failed to look up email", goerr.V(model.EmailKey, email))
	}

	userID, err := snap.DataAt("user_id")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read email index", goerr.V(model.EmailKey, email))
	}
	id, ok := userID.(string)
	if !ok {
		return nil, goerr.New("email index holds no user ID", goerr.V(model.EmailKey, email))
	}
	return r.Get(ctx, id)
}

func (r *userRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.User, error) {
	cfg := interfaces.BuildListConfig(opts...)
	q := r.users().Query
	if cfg.Area() != "" {
		q = q.Where("area", "==", cfg.Area())
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var users []*model.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate users")
		}

		var doc userDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("doc", snap.Ref.ID))
		}
		users = append(users, doc.toModel())
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// Update replaces the profile, role, status and password hash. The email
// is fixed at registration.
func (r *userRepository) Update(ctx context.Context, user *model.User) (*model.User, error) {
	existing, err := r.Get(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	doc := &userDocument{
		ID:           existing.ID,
		Email:        existing.Email,
		FullName:     user.FullName,
		JobTitle:     user.JobTitle,
		Area:         user.Area,
		Phone:        user.Phone,
		Role:         string(user.Role),
		Active:       user.Active,
		PasswordHash: user.PasswordHash,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    time.Now().UTC(),
	}
	if _, err := r.users().Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update user", goerr.V(model.UserIDKey, user.ID))
	}
	return doc.toModel(), nil
}

type sessionDocument struct {
	ID        string    `firestore:"id"`
	Secret    string    `firestore:"secret"`
	UserID    string    `firestore:"user_id"`
	Role      string    `firestore:"role"`
	CreatedAt time.Time `firestore:"created_at"`
	ExpiresAt time.Time `firestore:"expires_at"`
}

type sessionRepository struct {
	client *firestore.Client
	prefix string
}

func newSessionRepository(client *firestore.Client, prefix string) *sessionRepository {
	return &sessionRepository{client: client, prefix: prefix}
}

func (r *sessionRepository) ref(id string) *firestore.DocumentRef {
	return r.client.Collection(withPrefix(r.prefix, "sessions")).Doc(id)
}

func (r *sessionRepository) Put(ctx context.Context, s *model.Session) error {
	doc := &sessionDocument{
		ID:        s.ID,
		Secret:    s.Secret,
		UserID:    s.UserID,
		Role:      string(s.Role),
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
	if _, err := r.ref(s.ID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put session", goerr.V("session_id", s.ID))
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	snap, err := r.ref(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("session_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get session", goerr.V("session_id", id))
	}

	var doc sessionDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal session", goerr.V("session_id", id))
	}
	return &model.Session{
		ID:        doc.ID,
		Secret:    doc.Secret,
		UserID:    doc.UserID,
		Role:      types.Role(doc.Role),
		CreatedAt: doc.CreatedAt,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.ref(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete session", goerr.V("session_id", id))
	}
	return nil
}
