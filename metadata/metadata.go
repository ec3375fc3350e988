// Package metadata reads contract metadata: the labels, selectors and
// payability of a contract's constructors and messages.
package metadata

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vitwit/inkcall/call"
	"github.com/vitwit/inkcall/utils"
)

var ErrDuplicateSelector = errors.New("duplicate selector")

type Kind string

const (
	KindConstructor Kind = "constructor"
	KindMessage     Kind = "message"
)

// Entry describes one constructor or message.
type Entry struct {
	Label    string `json:"label" validate:"required"`
	Selector string `json:"selector" validate:"required,selector"`
	Payable  bool   `json:"payable"`

	// Returns names the success type of the output, for display only.
	Returns string `json:"returns,omitempty"`
}

// Contract is the metadata document of one contract.
type Contract struct {
	Name         string  `json:"name" validate:"required"`
	Constructors []Entry `json:"constructors" validate:"required,min=1,dive"`
	Messages     []Entry `json:"messages" validate:"dive"`
}

// Parse decodes and validates a JSON metadata document.
func Parse(data []byte) (*Contract, error) {
	var c Contract
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the document's fields and that all selectors are unique.
func (c *Contract) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid metadata: %w", err)
	}
	return c.CheckSelectors()
}

// CheckSelectors reports every selector used by more than one entry.
// Constructors and messages share one namespace.
func (c *Contract) CheckSelectors() error {
	seen := make(map[string]string)
	var errs []error

	check := func(kind Kind, entries []Entry) {
		for _, e := range entries {
			sel, err := call.ParseSelector(e.Selector)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s %s: %w", kind, e.Label, err))
				continue
			}
			name := string(kind) + " " + e.Label
			if prev, ok := seen[sel.String()]; ok {
				errs = append(errs, fmt.Errorf("%w %s: %s and %s", ErrDuplicateSelector, sel, prev, name))
				continue
			}
			seen[sel.String()] = name
		}
	}
	check(KindConstructor, c.Constructors)
	check(KindMessage, c.Messages)

	return errors.Join(errs...)
}

// Lookup finds the entry with the given selector.
func (c *Contract) Lookup(sel call.Selector) (Entry, Kind, bool) {
	for _, e := range c.Constructors {
		if s, err := call.ParseSelector(e.Selector); err == nil && s == sel {
			return e, KindConstructor, true
		}
	}
	for _, e := range c.Messages {
		if s, err := call.ParseSelector(e.Selector); err == nil && s == sel {
			return e, KindMessage, true
		}
	}
	return Entry{}, "", false
}
