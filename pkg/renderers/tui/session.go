package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/pkg/reveal"
	"github.com/goliatone/go-contactform/pkg/section"
	"github.com/goliatone/go-contactform/pkg/submission"
)

// Run prompts for every field, submits, prints the outcome and offers to
// edit and resend after a validation failure. The section is mounted with
// reduced motion for the duration of the session since a terminal has no
// entrance animation to play.
func (r *Renderer) Run(ctx context.Context, s *section.Section) (submission.Snapshot, error) {
	if r.driver == nil {
		return submission.Snapshot{}, ErrNoDriver
	}
	if err := s.Mount(reveal.NewNode(section.ContentColumnID), reveal.NewNode(section.FormColumnID), true); err != nil {
		return submission.Snapshot{}, err
	}
	defer s.Unmount()

	if err := r.driver.Info(ctx, r.text(s.View())); err != nil {
		return submission.Snapshot{}, err
	}

	var snap submission.Snapshot
	for attempt := 1; ; attempt++ {
		if err := r.promptFields(ctx, s); err != nil {
			return s.Machine().Snapshot(), err
		}

		started, err := s.Submit(ctx)
		var missing *section.MissingFieldsError
		if errors.As(err, &missing) {
			if err := r.driver.Info(ctx, r.styles.FieldError.Render("Required: "+strings.Join(missing.Fields, ", "))); err != nil {
				return s.Machine().Snapshot(), err
			}
			if attempt >= r.maxAttempts {
				return s.Machine().Snapshot(), err
			}
			continue
		}
		if err != nil {
			return s.Machine().Snapshot(), err
		}
		if !started {
			r.logger.Debug("tui: submit dropped, attempt already in flight")
		}

		if err := r.driver.Info(ctx, r.styles.Muted.Render(s.View().Submit.Label)); err != nil {
			return s.Machine().Snapshot(), err
		}
		snap, err = s.Await(ctx)
		if err != nil {
			return snap, err
		}
		r.logger.Debug("tui: attempt settled", "attempt", snap.Attempt, "state", snap.State.String())

		if err := r.driver.Info(ctx, r.text(s.View())); err != nil {
			return snap, err
		}
		if snap.State == submission.Succeeded || snap.General || attempt >= r.maxAttempts {
			return snap, nil
		}

		again, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Edit and resend?",
			Default: true,
		})
		if err != nil {
			return snap, err
		}
		if !again {
			return snap, nil
		}
	}
}

func (r *Renderer) promptFields(ctx context.Context, s *section.Section) error {
	for _, field := range s.View().Fields {
		help := strings.Join(field.Errors, "; ")
		var (
			value string
			err   error
		)
		if field.Multiline {
			value, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message:  field.Label,
				Default:  field.Value,
				Help:     help,
				Required: field.Required,
			})
		} else {
			value, err = r.driver.Input(ctx, InputConfig{
				Message:  field.Label,
				Default:  field.Value,
				Help:     help,
				Required: field.Required,
			})
		}
		if err != nil {
			return fmt.Errorf("tui: prompt %s: %w", field.Name, err)
		}
		if err := s.SetField(field.Name, value); err != nil {
			return err
		}
	}
	return nil
}
