// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package fakedata produces synthetic vendor identities and location pings.
package fakedata

import (
	"strconv"

	"github.com/ManuGH/vendorsim/internal/event"
	"github.com/brianvoe/gofakeit/v7"
)

// Identity is the throwaway vendor profile submitted at registration.
type Identity struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"mobile_no"`
}

// Generator is the data source the actor draws from. Generation never fails.
type Generator interface {
	NewIdentity() Identity
	NextEvent() event.Payload
}

// Faker is a Generator backed by gofakeit. Each actor run owns its own Faker.
type Faker struct {
	f *gofakeit.Faker
}

var _ Generator = (*Faker)(nil)

// New returns a Faker. A zero seed draws a random one.
func New(seed uint64) *Faker {
	return &Faker{f: gofakeit.New(seed)}
}

// NewIdentity returns a fresh name, email and 10-digit phone number.
func (g *Faker) NewIdentity() Identity {
	return Identity{
		Name:        g.f.Name(),
		Email:       g.f.Email(),
		PhoneNumber: g.PhoneNumber(),
	}
}

// PhoneNumber returns exactly ten digits with a non-zero leading digit.
func (g *Faker) PhoneNumber() string {
	return strconv.Itoa(g.f.IntRange(1, 9)) + g.f.Numerify("#########")
}

// NextEvent returns a pickup request at a random coordinate.
func (g *Faker) NextEvent() event.Payload {
	return event.New(g.f.Latitude(), g.f.Longitude())
}
