// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package restclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/storeuc"
)

// ErrMissingID indicates that an entity without identifier was asked
// to be updated.
var ErrMissingID = errors.New("missing entity id")

// Resource is the REST resource of one entity kind, served under
// {base}/{kind}. It implements the storeuc.Remote[E] interface.
type Resource[E model.Entity] struct {
	c         *Client
	kind      model.Kind
	normalize func(E) E // applied to each decoded entity, may be nil
}

var (
	_ storeuc.Remote[model.Car]         = (*Resource[model.Car])(nil)
	_ storeuc.Remote[model.Package]     = (*Resource[model.Package])(nil)
	_ storeuc.Remote[model.Testimonial] = (*Resource[model.Testimonial])(nil)
	_ storeuc.Remote[model.User]        = (*Resource[model.User])(nil)
)

// Kind returns the kind of entities of this resource.
func (r *Resource[E]) Kind() model.Kind {
	return r.kind
}

// List fetches all entities in the server order, i.e., the most
// recently created first.
func (r *Resource[E]) List(ctx context.Context) ([]E, error) {
	var es []E
	err := r.c.do(
		ctx, storeuc.VerbFetch, r.kind,
		http.MethodGet, nil, &es, r.kind.String(),
	)
	if err != nil {
		return nil, err
	}
	if r.normalize != nil {
		for i := range es {
			es[i] = r.normalize(es[i])
		}
	}
	return es, nil
}

// Create posts e and returns the created entity as echoed by the
// server. The identifier of e is ignored by the server.
func (r *Resource[E]) Create(ctx context.Context, e E) (E, error) {
	return r.send(ctx, storeuc.VerbCreate, http.MethodPost, e)
}

// Update puts e by its identifier and returns the stored entity.
func (r *Resource[E]) Update(ctx context.Context, e E) (E, error) {
	id := e.EntityID()
	if id == "" {
		var zero E
		return zero, ErrMissingID
	}
	return r.send(
		ctx, storeuc.VerbUpdate, http.MethodPut, e, url.PathEscape(id),
	)
}

// Delete deletes the entity which is identified by id. A missing
// entity is reported as a *StatusError with the 404 code.
func (r *Resource[E]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	return r.c.do(
		ctx, storeuc.VerbDelete, r.kind,
		http.MethodDelete, nil, nil, r.kind.String(), url.PathEscape(id),
	)
}

// send sends e to the {kind}/{id} path (or {kind} if id is absent)
// and decodes the returned entity. The id must be escaped already.
func (r *Resource[E]) send(
	ctx context.Context, v storeuc.Verb, method string, e E, id ...string,
) (E, error) {
	var out E
	elems := append([]string{r.kind.String()}, id...)
	if err := r.c.do(ctx, v, r.kind, method, e, &out, elems...); err != nil {
		var zero E
		return zero, err
	}
	if r.normalize != nil {
		out = r.normalize(out)
	}
	return out, nil
}
