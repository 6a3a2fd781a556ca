package ws

import "errors"

var (
	ErrQueueFull    = errors.New("client send queue is full")
	ErrInvalidFrame = errors.New("invalid frame")
)
