// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package restclient_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/adapter/restclient"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/storeuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// fakeAPI is an in-memory implementation of one entity kind of the
// REST API. New entities are prepended, so the newest comes first.
type fakeAPI[E model.Entity] struct {
	mu     sync.Mutex
	items  []E
	last   int
	prefix string
	withID func(e E, id string) E
	// check returns the field errors of a created entity, if any.
	check func(e E) gin.H
}

func (f *fakeAPI[E]) register(r *gin.RouterGroup, kind model.Kind) {
	path := kind.String()
	r.GET(path, func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		c.JSON(http.StatusOK, append([]E{}, f.items...))
	})
	r.POST(path, func(c *gin.Context) {
		var e E
		if err := c.ShouldBindJSON(&e); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		if f.check != nil {
			if errs := f.check(e); len(errs) > 0 {
				c.JSON(http.StatusBadRequest, errs)
				return
			}
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.last++
		e = f.withID(e, fmt.Sprintf("%s-%d", f.prefix, f.last))
		f.items = append([]E{e}, f.items...)
		c.JSON(http.StatusCreated, e)
	})
	r.PUT(path+"/:id", func(c *gin.Context) {
		var e E
		if err := c.ShouldBindJSON(&e); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, item := range f.items {
			if item.EntityID() == c.Param("id") {
				f.items[i] = e
				c.JSON(http.StatusOK, e)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"detail": "record not found"})
	})
	r.DELETE(path+"/:id", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, item := range f.items {
			if item.EntityID() == c.Param("id") {
				f.items = append(f.items[:i], f.items[i+1:]...)
				c.JSON(http.StatusOK, gin.H{"message": "deleted"})
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"detail": "record not found"})
	})
}

type RestClientTestSuite struct {
	suite.Suite

	Ctx    context.Context
	Server *httptest.Server
	Client *restclient.Client

	cars         *fakeAPI[model.Car]
	testimonials *fakeAPI[model.Testimonial]
}

func TestRestClientTestSuite(t *testing.T) {
	suite.Run(t, &RestClientTestSuite{Ctx: context.Background()})
}

func (s *RestClientTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	legacyPrice := 12.0
	s.cars = &fakeAPI[model.Car]{
		prefix: "car",
		withID: func(c model.Car, id string) model.Car {
			c.ID = id
			return c
		},
		check: func(c model.Car) gin.H {
			if c.Name == "" {
				return gin.H{"Name": []string{"required"}}
			}
			return nil
		},
		items: []model.Car{
			{
				ID: "car-legacy", Name: "Legacy", Price: 40,
				Status: model.CarStatusAvailable,
				Pricing: model.Pricing{PerKm: &legacyPrice},
			},
		},
	}
	s.testimonials = &fakeAPI[model.Testimonial]{
		prefix: "t",
		withID: func(t model.Testimonial, id string) model.Testimonial {
			t.ID = id
			return t
		},
	}
	e := gin.New()
	api := e.Group("/api")
	s.cars.register(api, model.KindCar)
	s.testimonials.register(api, model.KindTestimonial)
	(&fakeAPI[model.Package]{
		prefix: "p",
		withID: func(p model.Package, id string) model.Package {
			p.ID = id
			return p
		},
	}).register(api, model.KindPackage)
	api.POST("users/sync", func(c *gin.Context) {
		var u model.User
		if err := c.ShouldBindJSON(&u); err != nil || u.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"Email": []string{"required"}})
			return
		}
		u.ID = "user-" + u.Email
		if u.Role == "" {
			u.Role = model.UserRoleUser
		}
		c.JSON(http.StatusOK, u)
	})
	api.GET("broken/cars", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{
			"Name":  []string{"required"},
			"Brand": []string{"required", "too short"},
		})
	})
	api.GET("slow/cars", func(c *gin.Context) {
		time.Sleep(200 * time.Millisecond)
		c.JSON(http.StatusOK, []model.Car{})
	})
	s.Server = httptest.NewServer(e)
	var err error
	s.Client, err = restclient.New(s.Server.URL + "/api")
	s.Require().NoError(err)
}

func (s *RestClientTestSuite) TearDownTest() {
	s.Server.Close()
}

func (s *RestClientTestSuite) TestListAppliesCarDefaults() {
	cars, err := s.Client.Cars().List(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(cars, 1)
	c := cars[0]
	s.Equal(12.0, *c.PerKm, "present pricing is kept")
	s.Equal(model.DefaultBand0To100, *c.Band0To100)
	s.Equal(model.DefaultBand100To200, *c.Band100To200)
	s.Equal(model.DefaultBand200To300, *c.Band200To300)
}

func (s *RestClientTestSuite) TestCreateUpdateDelete() {
	ts := s.Client.Testimonials()
	s.Equal(model.KindTestimonial, ts.Kind())
	created, err := ts.Create(s.Ctx, model.Testimonial{
		ID: "ignored", Name: "Ananya", Rating: 5, Text: "Great",
	})
	s.Require().NoError(err)
	s.Equal("t-1", created.ID)

	created.Text = "Great service"
	updated, err := ts.Update(s.Ctx, created)
	s.Require().NoError(err)
	s.Equal("Great service", updated.Text)

	s.Require().NoError(ts.Delete(s.Ctx, created.ID))
	items, err := ts.List(s.Ctx)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *RestClientTestSuite) TestStatusError() {
	err := s.Client.Cars().Delete(s.Ctx, "car-missing")
	var se *restclient.StatusError
	s.Require().ErrorAs(err, &se)
	s.True(se.NotFound())
	s.Equal(storeuc.VerbDelete, se.Verb)
	s.Equal(model.KindCar, se.Kind)
	s.Equal("404 Not Found: record not found", se.Error())
}

func (s *RestClientTestSuite) TestValidationErrorDetail() {
	c, err := restclient.New(s.Server.URL + "/api/broken")
	s.Require().NoError(err)
	_, err = c.Cars().List(s.Ctx)
	var se *restclient.StatusError
	s.Require().ErrorAs(err, &se)
	s.Equal(
		"400 Bad Request: Brand: required, too short; Name: required",
		se.Error(),
	)
}

func (s *RestClientTestSuite) TestTimeout() {
	c, err := restclient.New(
		s.Server.URL+"/api/slow",
		restclient.WithTimeout(20*time.Millisecond),
	)
	s.Require().NoError(err)
	_, err = c.Cars().List(s.Ctx)
	s.Error(err)
}

func (s *RestClientTestSuite) TestUpdateWithoutID() {
	_, err := s.Client.Cars().Update(s.Ctx, model.Car{Name: "x"})
	s.ErrorIs(err, restclient.ErrMissingID)
	s.ErrorIs(s.Client.Cars().Delete(s.Ctx, ""), restclient.ErrMissingID)
}

func (s *RestClientTestSuite) TestStoreOverClient() {
	var (
		mu     sync.Mutex
		levels []storeuc.Level
	)
	n := storeuc.NotifierFunc(func(_ context.Context, n storeuc.Notification) {
		mu.Lock()
		defer mu.Unlock()
		levels = append(levels, n.Level)
	})
	st, err := storeuc.New(
		s.Ctx, s.Client.Remotes(), n,
		storeuc.WithBookingIDGenerator(func() string { return "BKTEST0002" }),
	)
	s.Require().NoError(err)
	s.Equal(1, st.Cars.Len())

	created, err := st.Cars.Create(s.Ctx, model.Car{
		Name: "Roadster", Price: 100, Status: model.CarStatusAvailable,
	})
	s.Require().NoError(err)
	s.Equal("car-1", created.ID)
	s.True(created.Pricing.Complete(), "server echo is normalized")
	s.Equal(created.ID, st.Cars.Items()[0].ID)

	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	b, err := st.ConfirmBooking(s.Ctx, storeuc.BookingRequest{
		CarID: created.ID, Start: start, End: start.Add(24 * time.Hour),
	})
	s.Require().NoError(err)
	s.Equal("BKTEST0002", b.ID)
	remote, err := s.Client.Cars().List(s.Ctx)
	s.Require().NoError(err)
	s.Equal(model.CarStatusOnRide, remote[0].Status, "server confirmed")

	before := st.Cars.Items()
	_, err = st.Cars.Create(s.Ctx, model.Car{Price: 10})
	var opErr *storeuc.OpError
	s.Require().ErrorAs(err, &opErr)
	s.Equal(storeuc.VerbCreate, opErr.Verb)
	s.Equal(
		"failed to create car: 400 Bad Request: Name: required", err.Error(),
	)
	s.Equal(before, st.Cars.Items(), "failed create keeps the items")

	err = st.Cars.Delete(s.Ctx, "car-missing")
	s.Require().Error(err)
	s.Equal(
		"failed to delete car: 404 Not Found: record not found", err.Error(),
	)
	var se *restclient.StatusError
	s.ErrorAs(err, &se)
	s.Equal(2, st.Cars.Len(), "failed delete keeps the items")

	mu.Lock()
	defer mu.Unlock()
	s.Equal([]storeuc.Level{
		storeuc.LevelSuccess, storeuc.LevelSuccess, storeuc.LevelSuccess,
		storeuc.LevelSuccess, storeuc.LevelSuccess, storeuc.LevelError,
		storeuc.LevelError,
	}, levels)
}

func (s *RestClientTestSuite) TestSyncUser() {
	u, err := s.Client.SyncUser(s.Ctx, model.User{
		Name: "Neha", Email: "neha@example.com",
	})
	s.Require().NoError(err)
	s.Equal("user-neha@example.com", u.ID)
	s.Equal(model.UserRoleUser, u.Role)

	_, err = s.Client.SyncUser(s.Ctx, model.User{Name: "nobody"})
	var se *restclient.StatusError
	s.Require().ErrorAs(err, &se)
	s.Equal(storeuc.VerbSync, se.Verb)
	s.Equal(model.KindUser, se.Kind)
	s.Equal(http.StatusBadRequest, se.Code)
}

func TestNewRejectsInvalidArguments(t *testing.T) {
	_, err := restclient.New("ftp://localhost/api")
	assert.Error(t, err)
	_, err = restclient.New(
		"http://localhost/api", restclient.WithTimeout(0),
	)
	assert.Error(t, err)
	_, err = restclient.New(
		"http://localhost/api",
		restclient.WithHTTPClient(http.DefaultClient),
		restclient.WithTimeout(time.Second),
	)
	assert.Error(t, err, "only one http client may be configured")
	c, err := restclient.New(
		"http://localhost/api/", restclient.WithHTTPClient(http.DefaultClient),
	)
	require.NoError(t, err)
	assert.Equal(t, model.KindPackage, c.Packages().Kind())
}

func TestStatusErrorWithoutDetail(t *testing.T) {
	err := error(&restclient.StatusError{Code: http.StatusBadGateway})
	assert.Equal(t, "502 Bad Gateway", err.Error())
	assert.False(t, errors.Is(err, context.Canceled))
}
