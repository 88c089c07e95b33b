// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/momeni/car-rental/pkg/adapter/config/cfg1"
	"github.com/momeni/car-rental/pkg/adapter/notify"
	"github.com/momeni/car-rental/pkg/adapter/restclient"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/storeuc"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var verbose bool

// newClient instantiates a REST API client based on the client section
// of the configuration file which is returned too. The CRWEB_API_URL
// environment variable may override its base URL.
func newClient(
	ctx context.Context,
) (*restclient.Client, *cfg1.Config, error) {
	c, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	client, err := c.Client.NewClient()
	if err != nil {
		return nil, nil, fmt.Errorf("creating REST client: %w", err)
	}
	return client, c, nil
}

func notifier() storeuc.Notifier {
	return notify.NewWriter(os.Stderr, verbose)
}

// entityCmd creates the list, create, update, and delete sub-commands
// of the kind entities. The remote function selects the resource of
// the kind entities from a REST client.
func entityCmd[E model.Entity](
	kind model.Kind,
	remote func(c *restclient.Client) storeuc.Remote[E],
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind.String(),
		Short: fmt.Sprintf("Manage %s of a running server", kind),
	}
	collection := func(ctx context.Context) (*storeuc.Collection[E], error) {
		c, _, err := newClient(ctx)
		if err != nil {
			return nil, err
		}
		return storeuc.NewCollection(remote(c), notifier()), nil
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("Print all %s as JSON, the newest first", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			col, err := collection(ctx)
			if err != nil {
				return err
			}
			if !col.Refresh(ctx) {
				return fmt.Errorf("fetching %s failed", kind)
			}
			return printJSON(os.Stdout, col.Items())
		},
	}

	var file string
	createCmd := &cobra.Command{
		Use:   "create -f FILE",
		Short: fmt.Sprintf("Create a %s from a YAML or JSON file", kind.Singular()),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := readEntity[E](file, "")
			if err != nil {
				return err
			}
			col, err := collection(ctx)
			if err != nil {
				return err
			}
			created, err := col.Create(ctx, e)
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, created)
		},
	}
	updateCmd := &cobra.Command{
		Use:   "update ID -f FILE",
		Short: fmt.Sprintf("Replace a %s by the contents of a file", kind.Singular()),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := readEntity[E](file, args[0])
			if err != nil {
				return err
			}
			col, err := collection(ctx)
			if err != nil {
				return err
			}
			updated, err := col.Update(ctx, e)
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, updated)
		},
	}
	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringVarP(
			&file, "file", "f", "", "entity file path, or - for stdin",
		)
		_ = c.MarkFlagRequired("file")
	}

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: fmt.Sprintf("Delete a %s", kind.Singular()),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			col, err := collection(ctx)
			if err != nil {
				return err
			}
			return col.Delete(ctx, args[0])
		},
	}

	cmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "print success notifications",
	)
	cmd.AddCommand(listCmd, createCmd, updateCmd, deleteCmd)
	return cmd
}

// readEntity reads an entity from the path file (or stdin if path is
// "-"). The file may be formatted as YAML or JSON and its keys are
// the JSON wire names, such as fuelType. A non-empty id replaces the
// identifier of the read entity.
func readEntity[E model.Entity](path, id string) (e E, err error) {
	var data []byte
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return e, fmt.Errorf("reading entity file: %w", err)
	}
	var doc any
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return e, fmt.Errorf("parsing entity file: %w", err)
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return e, errors.New("entity file must contain a mapping")
	}
	if id != "" {
		m["id"] = id
	}
	// the wire names are defined by the json tags of models
	b, err := json.Marshal(m)
	if err != nil {
		return e, fmt.Errorf("encoding entity: %w", err)
	}
	if err = json.Unmarshal(b, &e); err != nil {
		return e, fmt.Errorf("decoding entity: %w", err)
	}
	return e, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func init() {
	rootCmd.AddCommand(
		entityCmd(model.KindCar, func(
			c *restclient.Client,
		) storeuc.Remote[model.Car] {
			return c.Cars()
		}),
		entityCmd(model.KindPackage, func(
			c *restclient.Client,
		) storeuc.Remote[model.Package] {
			return c.Packages()
		}),
		entityCmd(model.KindTestimonial, func(
			c *restclient.Client,
		) storeuc.Remote[model.Testimonial] {
			return c.Testimonials()
		}),
		usersCmd(),
	)
}

// usersCmd adds the sync sub-command to the users entity commands.
func usersCmd() *cobra.Command {
	cmd := entityCmd(model.KindUser, func(
		c *restclient.Client,
	) storeuc.Remote[model.User] {
		return c.Users()
	})
	var file string
	syncCmd := &cobra.Command{
		Use:   "sync -f FILE",
		Short: "Create or update a user by its email address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u, err := readEntity[model.User](file, "")
			if err != nil {
				return err
			}
			c, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			synced, err := c.SyncUser(ctx, u)
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, synced)
		},
	}
	syncCmd.Flags().StringVarP(
		&file, "file", "f", "", "user file path, or - for stdin",
	)
	_ = syncCmd.MarkFlagRequired("file")
	cmd.AddCommand(syncCmd)
	return cmd
}
