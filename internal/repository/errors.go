// Package repository contains data access logic separated from HTTP
// handlers. This file defines the sentinel errors shared across the
// repositories so that handlers can translate failures into HTTP status
// codes with errors.Is instead of string matching.
package repository

import "errors"

// ErrUsernameExists is returned by UserRepo.Create when the username is
// already taken (MySQL duplicate-key error 1062 on the unique index).
var ErrUsernameExists = errors.New("username already exists")

// ErrMovieNotFound is returned when no movies row matches the given id.
var ErrMovieNotFound = errors.New("movie not found")

// ErrApplicationNotFound is returned when no applications row matches
// the given id.
var ErrApplicationNotFound = errors.New("application not found")

// ErrChatNotFound is returned when no chats row matches the given id.
var ErrChatNotFound = errors.New("chat not found")

// ErrChatConflict is returned by ChatRepo.Accept when the conditional
// update matched no row: the chat either does not exist or has already
// been accepted. The two cases are indistinguishable without a follow-up
// read, and handlers report them as one conflict.
var ErrChatConflict = errors.New("chat not found or already accepted")
