// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/momeni/car-rental/pkg/adapter/config/settings"
	"github.com/momeni/car-rental/pkg/adapter/restclient"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/bookinguc"
	"github.com/momeni/car-rental/pkg/core/usecase/storeuc"
)

// Default values of the optional settings.
const (
	DefaultAddress = ":5000"
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 10 * time.Second
)

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and fill them by their default values.
type Gin struct {
	Logger   *bool   // Whether to register the access log middleware
	Recovery *bool   // Whether to register the recovery middleware
	Address  *string // The host:port address to listen on
}

func (g *Gin) normalize() {
	settings.Nil2Zero(&g.Logger)
	settings.Nil2Zero(&g.Recovery)
	addr := DefaultAddress
	settings.OverwriteNil(&g.Address, &addr)
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Booking Booking // booking quotes related settings
}

// Booking contains the configuration settings for the booking use
// cases. A nil InsurancePerDay lets the use cases layer select its
// default value.
type Booking struct {
	// InsurancePerDay is the daily price of the optional insurance.
	InsurancePerDay *float64 `yaml:"insurance-per-day"`
	// MinInsurancePerDay is the inclusive minimum acceptable value
	// for the InsurancePerDay setting.
	// A missing value indicates that there is no lower bound.
	MinInsurancePerDay *float64 `yaml:"insurance-per-day-minimum"`
	// MaxInsurancePerDay is the inclusive maximum acceptable value
	// for the InsurancePerDay setting.
	// A missing value indicates that there is no upper bound.
	MaxInsurancePerDay *float64 `yaml:"insurance-per-day-maximum"`
}

// ValidateAndNormalize ensures that the insurance price falls within
// its boundary values.
func (b *Booking) ValidateAndNormalize() error {
	err := settings.VerifyRange(
		&b.InsurancePerDay, b.MinInsurancePerDay, b.MaxInsurancePerDay,
	)
	if err != nil {
		return fmt.Errorf("insurance-per-day: %w", err)
	}
	return nil
}

// NewUseCase instantiates a new booking use case based on the settings
// in the `b` struct.
func (b Booking) NewUseCase(
	p repo.Pool, r repo.Cars,
) (*bookinguc.UseCase, error) {
	opts := make([]bookinguc.Option, 0, 1)
	if b.InsurancePerDay != nil {
		opts = append(opts, bookinguc.WithInsurancePerDay(
			*b.InsurancePerDay,
		))
	}
	return bookinguc.New(p, r, opts...)
}

// StoreOptions returns the storeuc.New options which correspond to
// the `b` settings, so bookings which are confirmed by the admin
// commands are quoted like the server quotes them.
func (b Booking) StoreOptions() []storeuc.Option {
	if b.InsurancePerDay == nil || *b.InsurancePerDay <= 0 {
		return nil
	}
	return []storeuc.Option{storeuc.WithInsurancePerDay(*b.InsurancePerDay)}
}

// Client contains the REST API client settings which are used by the
// admin commands.
type Client struct {
	BaseURL string             `yaml:"base-url"`
	Timeout *settings.Duration `yaml:"timeout"`
}

// ValidateAndNormalize fills the default base URL and timeout and
// ensures that the base URL is an absolute http(s) URL.
func (c *Client) ValidateAndNormalize() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing base-url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported base-url scheme: %q", u.Scheme)
	}
	d := settings.Duration(DefaultTimeout)
	settings.OverwriteNil(&c.Timeout, &d)
	if *c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

// NewClient instantiates a REST API client based on the `c` settings.
func (c Client) NewClient() (*restclient.Client, error) {
	return restclient.New(
		c.BaseURL, restclient.WithTimeout(c.Timeout.Std()),
	)
}
