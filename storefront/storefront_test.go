package storefront

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (n *recordingNotifier) Alert(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *recordingNotifier) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

type captured struct {
	method      string
	contentType string
	form        url.Values
}

func captureServer(t *testing.T, status int) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.contentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		got.form = r.PostForm
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestHandlePurchase(t *testing.T) {
	tests := []struct {
		name        string
		product     *Product
		proceed     bool
		overlayOpen bool
	}{
		{"standalone", nil, false, true},
		{"unavailable", &Product{Title: "Helm", Available: false}, false, true},
		{"available", &Product{Title: "Helm", Available: true}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.product, NewClient(nil, nil), nil, nil)
			assert.Equal(t, tt.proceed, s.HandlePurchase())
			assert.Equal(t, tt.overlayOpen, s.OverlayOpen())

			s.CloseOverlay()
			assert.False(t, s.OverlayOpen())
		})
	}
}

func TestContactForm(t *testing.T) {
	form := ContactForm("a@b.co", "@helm")
	assert.Equal(t, "customer", form.Get("form_type"))
	assert.Equal(t, "✓", form.Get("utf8"))
	assert.Equal(t, "a@b.co", form.Get("contact[email]"))
	assert.Equal(t, "@helm", form.Get("contact[note][instagram]"))
}

func TestHandleEmailSubmitSuccess(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK)
	notes := &recordingNotifier{}
	s := New(nil, NewClient(srv.Client(), nil), notes, nil)

	require.False(t, s.HandlePurchase())
	require.True(t, s.OverlayOpen())

	err := s.HandleEmailSubmit(context.Background(), srv.URL+"/contact#contact_form", ContactForm("a@b.co", "@helm"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "application/x-www-form-urlencoded", got.contentType)
	assert.Equal(t, "a@b.co", got.form.Get("contact[email]"))
	assert.Equal(t, "@helm", got.form.Get("contact[note][instagram]"))
	assert.Equal(t, "customer", got.form.Get("form_type"))

	assert.Equal(t, []string{MessageThanks}, notes.messages())
	assert.False(t, s.OverlayOpen())
}

func TestHandleEmailSubmitFailures(t *testing.T) {
	t.Run("rejected", func(t *testing.T) {
		srv, _ := captureServer(t, http.StatusUnprocessableEntity)
		notes := &recordingNotifier{}
		s := New(nil, NewClient(srv.Client(), nil), notes, nil)
		s.HandlePurchase()

		err := s.HandleEmailSubmit(context.Background(), srv.URL, ContactForm("a@b.co", ""))
		assert.ErrorIs(t, err, ErrRejected)
		assert.Contains(t, err.Error(), "422")
		assert.Equal(t, []string{MessageError}, notes.messages())
		assert.True(t, s.OverlayOpen(), "the overlay stays up so the user can try again")
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		action := srv.URL
		srv.Close()

		notes := &recordingNotifier{}
		s := New(nil, NewClient(nil, nil), notes, nil)
		err := s.HandleEmailSubmit(context.Background(), action, ContactForm("a@b.co", ""))
		assert.Error(t, err)
		assert.False(t, errors.Is(err, ErrRejected))
		assert.Equal(t, []string{MessageError}, notes.messages())
	})

	t.Run("no action", func(t *testing.T) {
		notes := &recordingNotifier{}
		s := New(nil, NewClient(nil, nil), notes, nil)
		err := s.HandleEmailSubmit(context.Background(), "  ", ContactForm("a@b.co", ""))
		assert.ErrorIs(t, err, ErrNoAction)
		assert.Equal(t, []string{MessageError}, notes.messages())
	})
}

func TestSubmitIsNotRetried(t *testing.T) {
	var mu sync.Mutex
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), nil)
	err := c.Submit(context.Background(), srv.URL, ContactForm("a@b.co", ""))
	assert.ErrorIs(t, err, ErrRejected)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, hits)
}
