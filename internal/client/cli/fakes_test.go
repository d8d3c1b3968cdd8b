package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/nexuspost/internal/client/models"
	"github.com/dmitrijs2005/nexuspost/internal/client/services"
)

var errBoom = errors.New("boom")

type fakeAuth struct {
	sess       models.Session
	sessionErr error

	loginOut *services.LoginOutcome
	loginErr error
	regOut   *services.LoginOutcome
	regErr   error

	logoutErr error
	loggedOut int

	lastEmail    string
	lastPassword string
	lastName     string
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*services.LoginOutcome, error) {
	f.lastEmail, f.lastPassword = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.sess = models.Session{Token: "tok", User: f.loginOut.User}
	return f.loginOut, nil
}

func (f *fakeAuth) Register(_ context.Context, name, email, password string) (*services.LoginOutcome, error) {
	f.lastName, f.lastEmail, f.lastPassword = name, email, password
	if f.regErr != nil {
		return nil, f.regErr
	}
	f.sess = models.Session{Token: "tok", User: f.regOut.User}
	return f.regOut, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.loggedOut++
	f.sess = models.Session{}
	return nil
}

func (f *fakeAuth) Session(context.Context) (models.Session, error) {
	return f.sess, f.sessionErr
}

type fakeGen struct {
	state  services.GenerationState
	result *models.GenerationResult

	stored     models.ProviderKeys
	initErr    error
	lastKeys   *models.ProviderKeys
	genErr     error
	lastReq    *models.GenerationRequest
	genResult  *models.GenerationResult
	resetCalls int
}

func (f *fakeGen) State() services.GenerationState  { return f.state }
func (f *fakeGen) Result() *models.GenerationResult { return f.result }
func (f *fakeGen) PrefillKeys(context.Context) (models.ProviderKeys, error) {
	return f.stored, nil
}
func (f *fakeGen) Initialize(_ context.Context, keys models.ProviderKeys) error {
	f.lastKeys = &keys
	return f.initErr
}
func (f *fakeGen) Generate(_ context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	f.lastReq = &req
	if f.genErr != nil {
		return nil, f.genErr
	}
	f.result = f.genResult
	return f.genResult, nil
}
func (f *fakeGen) Reset() {
	f.resetCalls++
	f.result = nil
}

type fakeHistory struct {
	posts     []models.HistoryPost
	remote    []models.HistoryPost
	loadErr   error
	loads     int
	deleteErr error
	deleted   []string
	resets    int
}

func (f *fakeHistory) Load(context.Context) ([]models.HistoryPost, error) {
	f.loads++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	f.posts = append([]models.HistoryPost(nil), f.remote...)
	return f.posts, nil
}
func (f *fakeHistory) Posts() []models.HistoryPost { return f.posts }
func (f *fakeHistory) Find(rawID string) (models.HistoryPost, bool) {
	id, err := models.NormalizePostID(rawID)
	if err != nil {
		return models.HistoryPost{}, false
	}
	for _, p := range f.posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.HistoryPost{}, false
}
func (f *fakeHistory) Delete(_ context.Context, rawID string) error {
	f.deleted = append(f.deleted, rawID)
	return f.deleteErr
}
func (f *fakeHistory) Reset() {
	f.resets++
	f.posts = nil
}

// newTestApp builds an App over fakes with scripted input lines and a
// captured output buffer.
func newTestApp(t *testing.T, auth *fakeAuth, gen *fakeGen, hist *fakeHistory, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	if auth == nil {
		auth = &fakeAuth{}
	}
	if gen == nil {
		gen = &fakeGen{}
	}
	if hist == nil {
		hist = &fakeHistory{}
	}
	a := newApp(auth, gen, hist, nil)
	out := &bytes.Buffer{}
	a.out = out
	a.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	return a, out
}

// stubPassword makes getPassword return the given answers in order.
func stubPassword(t *testing.T, answers ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if i >= len(answers) {
			return nil, io.EOF
		}
		s := answers[i]
		i++
		return []byte(s), nil
	}
	t.Cleanup(func() { getPassword = orig })
}
