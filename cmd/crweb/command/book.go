// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"os"
	"time"

	"github.com/momeni/car-rental/pkg/adapter/restclient"
	"github.com/momeni/car-rental/pkg/core/usecase/storeuc"
	"github.com/spf13/cobra"
)

var bookingFlags struct {
	start, end string
	insurance  bool
	distanceKm float64
}

var bookCmd = &cobra.Command{
	Use:   "book CAR-ID --start TIME --end TIME",
	Short: "Book an available car and mark it as On Ride",
	Long: `Book an available car for the given period, marking it as
On Ride on the server and printing the confirmed booking as JSON.
The rental is charged per started day (at least one day), the optional
insurance per day, and the expected travel distance by the pricing
bands of the car. Times must be formatted like 2024-06-01T10:00:00Z.`,
	Args: cobra.ExactArgs(1),
	RunE: book,
}

var quoteCmd = &cobra.Command{
	Use:   "quote CAR-ID --start TIME --end TIME",
	Short: "Ask the server to quote a booking without confirming it",
	Args:  cobra.ExactArgs(1),
	RunE:  quote,
}

func parsePeriod() (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, bookingFlags.start)
	if err != nil {
		return start, end, fmt.Errorf("parsing start: %w", err)
	}
	end, err = time.Parse(time.RFC3339, bookingFlags.end)
	if err != nil {
		return start, end, fmt.Errorf("parsing end: %w", err)
	}
	return start, end, nil
}

func book(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	start, end, err := parsePeriod()
	if err != nil {
		return err
	}
	client, c, err := newClient(ctx)
	if err != nil {
		return err
	}
	s, err := storeuc.New(
		ctx, client.Remotes(), notifier(),
		c.Usecases.Booking.StoreOptions()...,
	)
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	b, err := s.ConfirmBooking(ctx, storeuc.BookingRequest{
		CarID:      args[0],
		Start:      start,
		End:        end,
		Insurance:  bookingFlags.insurance,
		DistanceKm: bookingFlags.distanceKm,
	})
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, b)
}

func quote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	start, end, err := parsePeriod()
	if err != nil {
		return err
	}
	client, _, err := newClient(ctx)
	if err != nil {
		return err
	}
	q, err := client.Quote(ctx, restclient.QuoteRequest{
		CarID:      args[0],
		Start:      start,
		End:        end,
		Insurance:  bookingFlags.insurance,
		DistanceKm: bookingFlags.distanceKm,
	})
	if err != nil {
		return fmt.Errorf("quoting: %w", err)
	}
	return printJSON(os.Stdout, q)
}

func init() {
	for _, cmd := range []*cobra.Command{bookCmd, quoteCmd} {
		flags := cmd.Flags()
		flags.StringVar(&bookingFlags.start, "start", "", "pickup time")
		flags.StringVar(&bookingFlags.end, "end", "", "return time")
		flags.BoolVar(
			&bookingFlags.insurance, "insurance", false,
			"add the daily insurance",
		)
		flags.Float64Var(
			&bookingFlags.distanceKm, "distance", 0,
			"expected travel distance in km",
		)
		_ = cmd.MarkFlagRequired("start")
		_ = cmd.MarkFlagRequired("end")
		rootCmd.AddCommand(cmd)
	}
	bookCmd.Flags().BoolVarP(
		&verbose, "verbose", "v", false, "print success notifications",
	)
}
