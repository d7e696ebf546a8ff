package customer

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("customer: not found")
	ErrInvalidID   = errors.New("customer: id is required")
	ErrInvalidName = errors.New("customer: name is required")
)

// Customer is the subject of saved/deleted events.
type Customer struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(id, name string) (*Customer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	now := time.Now().UTC()
	return &Customer{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *Customer) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	c.Name = name
	c.touch()
	return nil
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (c *Customer) touch() {
	c.UpdatedAt = time.Now().UTC()
}
