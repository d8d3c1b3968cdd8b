package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/nexuspost/internal/client/client"
	"github.com/dmitrijs2005/nexuspost/internal/client/models"
)

// fakeClient implements client.Client for the workflow tests.
type fakeClient struct {
	mu sync.Mutex

	LoginRet *client.LoginResponse
	LoginErr error

	RegisterRet *client.RegisterResponse
	RegisterErr error

	InitializeErr error

	// GenerateFn overrides GenerateRet/GenerateErr when set.
	GenerateFn  func(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)
	GenerateRet *models.GenerationResult
	GenerateErr error

	ListRet []models.HistoryPost
	ListErr error

	DeleteErr error

	calls       []string
	lastKeys    models.ProviderKeys
	lastGen     models.GenerationRequest
	lastDeleted models.PostID
	lastEmail   string
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Login(_ context.Context, email, _ string) (*client.LoginResponse, error) {
	f.record("login")
	f.lastEmail = email
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, _, email, _ string) (*client.RegisterResponse, error) {
	f.record("register")
	f.lastEmail = email
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Initialize(_ context.Context, keys models.ProviderKeys) error {
	f.record("initialize")
	f.lastKeys = keys
	return f.InitializeErr
}

func (f *fakeClient) GeneratePost(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	f.record("generate")
	f.mu.Lock()
	f.lastGen = req
	fn := f.GenerateFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return f.GenerateRet, f.GenerateErr
}

func (f *fakeClient) ListPosts(context.Context) ([]models.HistoryPost, error) {
	f.record("list")
	return f.ListRet, f.ListErr
}

func (f *fakeClient) DeletePost(_ context.Context, id models.PostID) error {
	f.record("delete")
	f.lastDeleted = id
	return f.DeleteErr
}

// memStore is an in-memory SessionStore.
type memStore struct {
	sess     models.Session
	SetErr   error
	ClearErr error
	KeysErr  error
	cleared  int
}

func (m *memStore) Get(context.Context) (models.Session, error) { return m.sess, nil }

func (m *memStore) Set(_ context.Context, s models.Session) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	if s.Token != "" {
		m.sess.Token = s.Token
	}
	if s.User != nil {
		m.sess.User = s.User
	}
	if s.ProviderKeys != nil {
		m.sess.ProviderKeys = s.ProviderKeys
	}
	return nil
}

func (m *memStore) SetProviderKeys(_ context.Context, keys models.ProviderKeys) error {
	if m.KeysErr != nil {
		return m.KeysErr
	}
	m.sess.ProviderKeys = &keys
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.cleared++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.sess = models.Session{}
	return nil
}

func (m *memStore) Token(context.Context) (string, error) { return m.sess.Token, nil }

var errBoom = errors.New("boom")
