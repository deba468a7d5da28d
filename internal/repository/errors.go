// Package repository holds one thin store per MongoDB collection plus the
// sentinel errors shared across them. Handlers translate these sentinels
// into HTTP statuses: ErrNotFound -> 404, the duplicate errors -> 400/409,
// ErrSoldOut -> 409.
package repository

import "errors"

// ErrNotFound is returned when a lookup or targeted update matches no
// document.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when inserting a user whose email is
// already registered.
var ErrDuplicateEmail = errors.New("user already exists")

// ErrClassTaken is returned when inserting a selection for a class that
// already has one.
var ErrClassTaken = errors.New("class already selected")

// ErrDuplicatePayment is returned when a payment with the same gateway
// transaction id has already been recorded. It makes the completion
// workflow safe to retry.
var ErrDuplicatePayment = errors.New("payment already recorded")

// ErrSoldOut is returned when enrolling into a class with no available
// seats.
var ErrSoldOut = errors.New("no seats available")
