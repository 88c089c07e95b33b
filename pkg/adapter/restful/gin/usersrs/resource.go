// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrs realizes the users directory resource.
package usersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/entityrs"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/usersuc"
)

type resource struct {
	users *usersuc.UseCase
}

// Register adapts the users use case with the generic entity REST APIs
// under /api/users and with:
//  1. POST request to /api/users/sync
//     in order to insert or update a user by its email address.
func Register(r *gin.RouterGroup, users *usersuc.UseCase) {
	entityrs.Register[model.User, userReq](r, users)
	rs := &resource{users: users}
	r.POST("users/sync", rs.Sync)
}

type userReq struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
	Role  string `json:"role" binding:"omitempty,oneof=user admin"`
}

// ToModel converts the request into a user. An empty role is replaced
// by the user role in the use case.
func (req userReq) ToModel(id string) (model.User, error) {
	return model.User{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  model.UserRole(req.Role),
	}, nil
}

func (rs *resource) Sync(c *gin.Context) {
	req := &userReq{}
	if !serdser.BindJSON(c, req) {
		return
	}
	u, _ := req.ToModel("")
	synced, err := rs.users.Sync(c, u)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, synced)
}
