package core

import (
	"errors"
	"strings"
	"time"
)

type (
	Money struct {
		Cents int64
	}

	// Expense is a single recorded expense for a Slack user.
	Expense struct {
		ID        int64 // Database ID, zero before the record is stored
		UserID    string
		Amount    Money
		Note      string
		Category  string // Optional, without the leading '#'
		CreatedAt time.Time
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyNote     = errors.New("empty note")
	ErrEmptyUserID   = errors.New("empty user id")
)

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return ErrEmptyUserID
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Note)) == 0 {
		return ErrEmptyNote
	}
	if len(e.Note) > 200 {
		return errors.New("note too long (max 200 characters)")
	}
	return nil
}
