// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/qxf2/acc-model-app/auth"
	"github.com/qxf2/acc-model-app/models"
	"github.com/qxf2/acc-model-app/store"
)

// File is the bootstrap document
type File struct {
	Attributes []Named `yaml:"attributes"`
	Models     []Model `yaml:"models"`
	Users      []User  `yaml:"users"`
}

type Named struct {
	Name        string  `yaml:"name"`
	Description *string `yaml:"description"`
}

type Model struct {
	Named      `yaml:",inline"`
	Components []Component `yaml:"components"`
}

type Component struct {
	Named        `yaml:",inline"`
	Capabilities []Named `yaml:"capabilities"`
}

type User struct {
	Username    string  `yaml:"username"`
	Email       string  `yaml:"email"`
	Password    string  `yaml:"password"`
	Designation *string `yaml:"designation"`
}

// Result counts what Apply created. Skipped rows already existed.
type Result struct {
	Created     int
	Skipped     int
	Assessments int64
}

// Load reads and parses a seed file. Unknown keys are rejected.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("parse seed file: %w", err)
	}
	if err := f.validate(); err != nil {
		return File{}, fmt.Errorf("invalid seed file: %w", err)
	}
	return f, nil
}

// validate rejects users that registration would reject, before anything
// is written
func (f File) validate() error {
	for _, u := range f.Users {
		switch {
		case u.Username == "" || u.Email == "":
			return fmt.Errorf("user %q needs a username and an email", u.Username)
		case utf8.RuneCountInString(u.Password) < 6:
			return fmt.Errorf("user %q: password must be at least 6 characters", u.Username)
		case len(u.Password) > auth.MaxPasswordBytes:
			return fmt.Errorf("user %q: %w", u.Username, auth.ErrPasswordTooLong)
		}
	}
	return nil
}

// Apply writes f through the store. Attributes go first so every new
// capability fans out against them. Names that already exist are reused.
func Apply(ctx context.Context, s *store.Store, f File) (Result, error) {
	var res Result

	for _, a := range f.Attributes {
		_, n, err := s.CreateAttribute(ctx, models.AttributeRequest{Name: a.Name, Description: a.Description})
		if err := res.track("attribute", a.Name, err); err != nil {
			return res, err
		}
		res.Assessments += n
	}

	for _, m := range f.Models {
		modelID, err := applyModel(ctx, s, m.Named, &res)
		if err != nil {
			return res, err
		}

		for _, c := range m.Components {
			componentID, err := applyComponent(ctx, s, modelID, c.Named, &res)
			if err != nil {
				return res, err
			}

			for _, cp := range c.Capabilities {
				_, n, err := s.CreateCapability(ctx, models.CapabilityRequest{
					Name:        cp.Name,
					Description: cp.Description,
					ComponentID: componentID,
				})
				if err := res.track("capability", cp.Name, err); err != nil {
					return res, err
				}
				res.Assessments += n
			}
		}
	}

	for _, u := range f.Users {
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			return res, fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		_, err = s.CreateUser(ctx, u.Username, u.Email, hash, u.Designation)
		if err := res.track("user", u.Username, err); err != nil {
			return res, err
		}
	}

	slog.Info("seed applied",
		"created", res.Created,
		"skipped", res.Skipped,
		"assessments", res.Assessments,
	)
	return res, nil
}

func applyModel(ctx context.Context, s *store.Store, m Named, res *Result) (int64, error) {
	created, err := s.CreateAccModel(ctx, models.AccModelRequest{Name: m.Name, Description: m.Description})
	if err := res.track("acc model", m.Name, err); err != nil {
		return 0, err
	}
	if err == nil {
		return created.ID, nil
	}
	return s.AccModelIDByName(ctx, m.Name)
}

func applyComponent(ctx context.Context, s *store.Store, modelID int64, c Named, res *Result) (int64, error) {
	created, err := s.CreateComponent(ctx, models.ComponentRequest{
		Name:        c.Name,
		Description: c.Description,
		AccModelID:  modelID,
	})
	if err := res.track("component", c.Name, err); err != nil {
		return 0, err
	}
	if err == nil {
		return created.ID, nil
	}
	return s.ComponentIDByName(ctx, modelID, c.Name)
}

// track counts the outcome of one create. Conflicts count as skipped;
// anything else is returned wrapped.
func (r *Result) track(kind, name string, err error) error {
	switch {
	case err == nil:
		r.Created++
		return nil
	case errors.Is(err, store.ErrConflict):
		slog.Debug("seed row exists", "kind", kind, "name", name)
		r.Skipped++
		return nil
	default:
		return fmt.Errorf("seed %s %q: %w", kind, name, err)
	}
}
