package service

import (
	"errors"
	"fmt"
)

var (
	ErrClientNotFound        = errors.New("client not found")
	ErrSessionNotFound       = errors.New("session not found")
	ErrTemplateNotFound      = errors.New("slot template not found")
	ErrAlreadyBooked         = errors.New("client already booked this time")
	ErrSlotFull              = errors.New("slot is full")
	ErrSlotNotOffered        = errors.New("no active slot template for this time")
	ErrSlotInPast            = errors.New("slot is in the past")
	ErrNotSessionOwner       = errors.New("session belongs to another client")
	ErrSessionNotCancellable = errors.New("session cannot be cancelled")
	ErrInvalidTemplate       = errors.New("invalid slot template")
	ErrInvalidStatus         = errors.New("invalid session status transition")
)

// ErrTemplateExists в это время недели уже есть активное окно; частный случай ErrInvalidTemplate
var ErrTemplateExists = fmt.Errorf("%w: active template already starts at this time", ErrInvalidTemplate)
