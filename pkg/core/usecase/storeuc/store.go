// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storeuc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
)

// Remotes groups the remote ports of all collections of a Store.
type Remotes struct {
	Cars         Remote[model.Car]
	Packages     Remote[model.Package]
	Testimonials Remote[model.Testimonial]
}

// Store is the single source of truth for the cars, packages, and
// testimonials collections. Views read the collections (or subscribe
// to them) and mutate them exclusively through their methods.
type Store struct {
	Cars         *Collection[model.Car]
	Packages     *Collection[model.Package]
	Testimonials *Collection[model.Testimonial]

	notifier        Notifier
	insurancePerDay float64
	newBookingID    func() string
}

// New instantiates a Store and refreshes all of its collections once,
// concurrently, before returning. Refresh failures are notified and
// logged, but do not fail New, so the store may be used (and
// refreshed again) later.
// Required parameters are passed individually, while optional ones
// are passed as functional options.
func New(
	ctx context.Context, r Remotes, n Notifier, opts ...Option,
) (*Store, error) {
	s := &Store{
		Cars:         NewCollection(r.Cars, n),
		Packages:     NewCollection(r.Packages, n),
		Testimonials: NewCollection(r.Testimonials, n),
		notifier:     n,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if s.insurancePerDay == 0 {
		s.insurancePerDay = model.DefaultInsurancePerDay
	}
	if s.newBookingID == nil {
		s.newBookingID = NewBookingID
	}
	s.RefreshAll(ctx)
	return s, nil
}

// RefreshAll refreshes all collections concurrently and reports if all
// of them were refreshed successfully.
func (s *Store) RefreshAll(ctx context.Context) bool {
	var wg sync.WaitGroup
	var cars, packages, testimonials bool
	wg.Add(3)
	go func() {
		defer wg.Done()
		cars = s.Cars.Refresh(ctx)
	}()
	go func() {
		defer wg.Done()
		packages = s.Packages.Refresh(ctx)
	}()
	go func() {
		defer wg.Done()
		testimonials = s.Testimonials.Refresh(ctx)
	}()
	wg.Wait()
	return cars && packages && testimonials
}

// BookingRequest contains the user choices for booking a car.
// The DistanceKm is the expected travel distance which is charged
// using the car pricing bands and may be zero.
type BookingRequest struct {
	CarID      string
	Start, End time.Time
	Insurance  bool
	DistanceKm float64
}

// ConfirmBooking quotes the requested car for the requested period,
// marks it as On Ride through the remote API (so the change is
// confirmed by the server before being reflected locally), and
// returns the confirmed booking with a fresh identifier like
// BK7Q2M4XZ1P. Only a loaded and available car can be booked.
// Exactly one notification is emitted for the whole operation.
func (s *Store) ConfirmBooking(
	ctx context.Context, req BookingRequest,
) (model.Booking, error) {
	b, err := s.confirmBooking(ctx, req)
	if err != nil {
		err = &OpError{Verb: VerbBook, Kind: model.KindCar, Err: err}
		log.Error(ctx, "booking failed", log.ID(req.CarID), log.Err("err", err))
		s.notifier.Notify(ctx, failure("Failed to book car", err))
		return model.Booking{}, err
	}
	log.Info(ctx, "booking confirmed", log.ID(req.CarID))
	s.notifier.Notify(ctx, success(
		fmt.Sprintf("Booking %s confirmed", b.ID),
	))
	return b, nil
}

func (s *Store) confirmBooking(
	ctx context.Context, req BookingRequest,
) (model.Booking, error) {
	car, ok := s.Cars.Get(req.CarID)
	if !ok {
		return model.Booking{}, fmt.Errorf("car %q: %w", req.CarID, ErrNotLoaded)
	}
	if car.Status != model.CarStatusAvailable {
		return model.Booking{}, fmt.Errorf(
			"car %q is %q: %w", car.ID, car.Status, ErrUnavailable,
		)
	}
	q, err := model.NewQuote(
		car, req.Start, req.End, req.Insurance,
		s.insurancePerDay, req.DistanceKm,
	)
	if err != nil {
		return model.Booking{}, fmt.Errorf("quoting: %w", err)
	}
	car.Status = model.CarStatusOnRide
	if _, err = s.Cars.update(ctx, car); err != nil {
		return model.Booking{}, fmt.Errorf("marking car as on ride: %w", err)
	}
	return model.Booking{
		ID:    s.newBookingID(),
		Start: req.Start,
		End:   req.End,
		Quote: q,
	}, nil
}

const bookingIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewBookingID returns "BK" followed by nine random upper case letters
// or digits. The random bits are taken from a version 4 UUID.
func NewBookingID() string {
	u := uuid.New()
	b := make([]byte, 0, 11)
	b = append(b, 'B', 'K')
	for _, x := range u[:9] {
		b = append(b, bookingIDAlphabet[int(x)%len(bookingIDAlphabet)])
	}
	return string(b)
}
