// Package storefront holds the purchase and email capture entry points shown
// next to the cube.
package storefront

import (
	"context"
	"net/url"
	"sync"

	"go.uber.org/zap"
)

const (
	MessageThanks = "Thank you! We'll contact you when Helm becomes available."
	MessageError  = "There was an error. Please try again."
)

// Product is the host page's description of what is on sale.
type Product struct {
	Title     string
	Available bool
}

// Notifier shows a short acknowledgement to the user. Alert may be called from
// any goroutine.
type Notifier interface {
	Alert(msg string)
}

type Submitter interface {
	Submit(ctx context.Context, action string, form url.Values) error
}

// Storefront tracks the capture overlay. A nil product is the standalone
// page, where every purchase opens the overlay.
type Storefront struct {
	product *Product
	submit  Submitter
	notify  Notifier
	log     *zap.Logger

	mu      sync.Mutex
	overlay bool
}

func New(product *Product, submit Submitter, notify Notifier, log *zap.Logger) *Storefront {
	if log == nil {
		log = zap.NewNop()
	}
	return &Storefront{
		product: product,
		submit:  submit,
		notify:  notify,
		log:     log,
	}
}

func (s *Storefront) Product() *Product { return s.product }

// HandlePurchase reports whether the purchase should go ahead. When it
// should not, the capture overlay is opened instead.
func (s *Storefront) HandlePurchase() bool {
	if s.product != nil && s.product.Available {
		s.log.Info("purchase", zap.String("product", s.product.Title))
		return true
	}
	s.setOverlay(true)
	s.log.Info("capture overlay opened")
	return false
}

func (s *Storefront) CloseOverlay() {
	s.setOverlay(false)
}

func (s *Storefront) OverlayOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay
}

func (s *Storefront) setOverlay(open bool) {
	s.mu.Lock()
	s.overlay = open
	s.mu.Unlock()
}

// HandleEmailSubmit forwards the capture form and tells the user how it went.
// On success the overlay closes. Failures are not retried.
func (s *Storefront) HandleEmailSubmit(ctx context.Context, action string, form url.Values) error {
	if err := s.submit.Submit(ctx, action, form); err != nil {
		s.log.Error("capture failed", zap.Error(err))
		s.alert(MessageError)
		return err
	}
	s.alert(MessageThanks)
	s.CloseOverlay()
	return nil
}

func (s *Storefront) alert(msg string) {
	if s.notify != nil {
		s.notify.Alert(msg)
	}
}

// ContactForm builds the fields the shop's customer contact form expects.
func ContactForm(email, instagram string) url.Values {
	form := url.Values{}
	form.Set("form_type", "customer")
	form.Set("utf8", "✓")
	form.Set("contact[email]", email)
	form.Set("contact[note][instagram]", instagram)
	return form
}
