package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyMenu      = errors.New("menu must contain at least one option")
	ErrDuplicateToken = errors.New("duplicate menu token")
	ErrInvalidToken   = errors.New("invalid menu token")
)

// Option is one entry of a Menu. Params carries whatever the fetch step needs.
type Option[P any] struct {
	Token       string
	DisplayName string
	Params      P
}

// Menu is an ordered set of options keyed by a short token.
type Menu[P any] struct {
	options []Option[P]
	byToken map[string]int
}

// NewMenu builds a menu from options in display order.
// Tokens must be unique, non-empty and free of surrounding whitespace.
func NewMenu[P any](options ...Option[P]) (*Menu[P], error) {
	if len(options) == 0 {
		return nil, ErrEmptyMenu
	}

	m := &Menu[P]{
		options: make([]Option[P], len(options)),
		byToken: make(map[string]int, len(options)),
	}
	for i, opt := range options {
		if opt.Token == "" || strings.TrimSpace(opt.Token) != opt.Token {
			return nil, fmt.Errorf("%w: %q", ErrInvalidToken, opt.Token)
		}
		if _, ok := m.byToken[opt.Token]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateToken, opt.Token)
		}
		m.options[i] = opt
		m.byToken[opt.Token] = i
	}
	return m, nil
}

// Lookup returns the option for token
func (m *Menu[P]) Lookup(token string) (Option[P], bool) {
	i, ok := m.byToken[token]
	if !ok {
		var zero Option[P]
		return zero, false
	}
	return m.options[i], true
}

// Has reports whether token names an option
func (m *Menu[P]) Has(token string) bool {
	_, ok := m.byToken[token]
	return ok
}

// Options returns a copy of the options in display order
func (m *Menu[P]) Options() []Option[P] {
	out := make([]Option[P], len(m.options))
	copy(out, m.options)
	return out
}

// Render formats the menu as a bold title followed by one "token. name" line per option.
func (m *Menu[P]) Render(title string) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "**%s**\n", title)
	}
	for _, opt := range m.options {
		fmt.Fprintf(&b, "%s. %s\n", opt.Token, opt.DisplayName)
	}
	return b.String()
}
