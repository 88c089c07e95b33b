// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package entityrs realizes the generic entity resource, allowing the
// list, get, create, update, and delete REST APIs of one entity kind
// to be accepted and delegated to its use case.
package entityrs

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
)

// UseCase is the port of an entity use case as required by resource.
// The entityuc.UseCase[E] (and so the kind specific use cases which
// embed it) implements this interface.
type UseCase[E model.Entity] interface {
	Kind() model.Kind
	List(ctx context.Context) ([]E, error)
	Get(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, e E) (E, error)
	Update(ctx context.Context, e E) (E, error)
	Delete(ctx context.Context, id string) error
}

// Request is a bindable request body which can be deserialized as an
// E entity. The id is empty for the creation requests and is taken
// from the path otherwise.
type Request[E model.Entity] interface {
	ToModel(id string) (E, error)
}

type resource[E model.Entity, R Request[E]] struct {
	uc UseCase[E]
}

// Register instantiates a resource adapting the uc use case instance
// with the relevant REST APIs, with {kind} being the plural kind name
// such as cars:
//  1. GET request to /{kind} in order to list all entities (the most
//     recently created first),
//  2. GET request to /{kind}/:id in order to fetch one entity,
//  3. POST request to /{kind} in order to create an entity (201),
//  4. PUT request to /{kind}/:id in order to overwrite an entity,
//  5. DELETE request to /{kind}/:id in order to delete an entity.
//
// The R request type is bound and validated from the JSON body.
func Register[E model.Entity, R Request[E]](
	r *gin.RouterGroup, uc UseCase[E],
) {
	rs := &resource[E, R]{uc: uc}
	path := uc.Kind().String()
	r.GET(path, rs.List)
	r.GET(path+"/:id", rs.Get)
	r.POST(path, rs.Create)
	r.PUT(path+"/:id", rs.Update)
	r.DELETE(path+"/:id", rs.Delete)
}

func (rs *resource[E, R]) List(c *gin.Context) {
	es, err := rs.uc.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if es == nil {
		es = []E{}
	}
	c.JSON(http.StatusOK, es)
}

func (rs *resource[E, R]) Get(c *gin.Context) {
	e, err := rs.uc.Get(c, c.Param("id"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (rs *resource[E, R]) Create(c *gin.Context) {
	e, ok := rs.dser(c, "")
	if !ok {
		return
	}
	created, err := rs.uc.Create(c, e)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (rs *resource[E, R]) Update(c *gin.Context) {
	e, ok := rs.dser(c, c.Param("id"))
	if !ok {
		return
	}
	updated, err := rs.uc.Update(c, e)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (rs *resource[E, R]) Delete(c *gin.Context) {
	if err := rs.uc.Delete(c, c.Param("id")); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": rs.uc.Kind().Title() + " deleted successfully",
	})
}

// dser binds the request body and converts it to an E entity. If it
// returns false, the error response is already written.
func (rs *resource[E, R]) dser(c *gin.Context, id string) (e E, ok bool) {
	req := new(R)
	if !serdser.BindJSON(c, req) {
		return e, false
	}
	e, err := (*req).ToModel(id)
	if err != nil {
		serdser.SerErr(c, cerr.BadRequest(err))
		return e, false
	}
	return e, true
}
