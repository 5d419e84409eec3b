package section

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/pkg/reveal"
	"github.com/goliatone/go-contactform/pkg/submission"
)

// NoticeKind distinguishes the status banners.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// View is the render contract of a section at one point in time.
type View struct {
	ID              string       `json:"id"`
	HeadingID       string       `json:"headingId"`
	Heading         string       `json:"heading"`
	FriendlyMessage string       `json:"friendlyMessage"`
	State           string       `json:"state"`
	Notice          *Notice      `json:"notice,omitempty"`
	Fields          []FieldView  `json:"fields"`
	Submit          SubmitView   `json:"submit"`
	Columns         []ColumnView `json:"columns"`
}

// Notice is the status banner above the form.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	// Role is the ARIA role: status for success, alert for errors.
	Role         string `json:"role"`
	Message      string `json:"message"`
	ContactEmail string `json:"contactEmail,omitempty"`
	// Fallback completes Message when there is no ContactEmail.
	Fallback string `json:"fallback,omitempty"`
	// Details lists collaborator messages that are not tied to a field.
	Details []string `json:"details,omitempty"`
}

// FieldView is one input and its inline errors.
type FieldView struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Type      string   `json:"type"`
	Value     string   `json:"value"`
	Required  bool     `json:"required"`
	Multiline bool     `json:"multiline,omitempty"`
	MinRows   int      `json:"minRows,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// SubmitView is the submit control.
type SubmitView struct {
	Label     string `json:"label"`
	AriaLabel string `json:"ariaLabel"`
	Disabled  bool   `json:"disabled"`
}

// ColumnView carries a column's current reveal state. Reveal is nil when no
// client-side animation is pending.
type ColumnView struct {
	ID     string       `json:"id"`
	Style  string       `json:"style,omitempty"`
	Reveal *RevealAttrs `json:"reveal,omitempty"`
}

// RevealAttrs hands an unfinished reveal to the browser runtime.
type RevealAttrs struct {
	Duration float64 `json:"duration"`
	Delay    float64 `json:"delay"`
	Ease     string  `json:"ease"`
	Start    string  `json:"start"`
	OffsetY  float64 `json:"offsetY"`
}

type styled interface {
	Style() reveal.Style
}

// View snapshots the section for rendering.
func (s *Section) View() View {
	snap := s.machine.Snapshot()

	s.mu.Lock()
	values := s.values.Clone()
	targets := append([]reveal.Target(nil), s.targets...)
	reducedMotion := s.reducedMotion
	s.mu.Unlock()

	form := s.content.Form
	view := View{
		ID:              "contact",
		HeadingID:       "contact-heading",
		Heading:         s.content.Heading,
		FriendlyMessage: s.content.FriendlyMessage,
		State:           snap.State.String(),
		Fields: []FieldView{
			s.fieldView(submission.FieldName, form.NameLabel, "text", values, snap),
			s.fieldView(submission.FieldEmail, form.EmailLabel, "email", values, snap),
			s.fieldView(submission.FieldMessage, form.MessageLabel, "text", values, snap),
		},
		Submit: SubmitView{
			Label:     form.SubmitText,
			AriaLabel: form.SubmitText,
		},
		Columns: columnViews(targets, reducedMotion),
	}
	view.Fields[2].Multiline = true
	view.Fields[2].MinRows = 4

	switch snap.State {
	case submission.Submitting:
		view.Submit.Disabled = true
		view.Submit.Label = form.SubmittingText
	case submission.Succeeded:
		view.Notice = &Notice{
			Kind:    NoticeSuccess,
			Role:    "status",
			Message: s.content.Notices.Success,
		}
	case submission.Failed:
		notice := &Notice{
			Kind:         NoticeError,
			Role:         "alert",
			Message:      s.content.Notices.Failure,
			ContactEmail: s.content.Footer.Email,
			Details:      snap.FormErrors,
		}
		if notice.ContactEmail == "" {
			notice.Fallback = s.content.Notices.FailureFallback
		}
		view.Notice = notice
	}
	return view
}

func (s *Section) fieldView(name, label, inputType string, values submission.Values, snap submission.Snapshot) FieldView {
	field := FieldView{
		Name:     name,
		Label:    label,
		Type:     inputType,
		Value:    values[name],
		Required: true,
	}
	// Inline errors use the field name, not the display label.
	prefix := fieldTitle(name)
	for _, message := range snap.ErrorsFor(name) {
		field.Errors = append(field.Errors, fmt.Sprintf("%s %s", prefix, message))
	}
	return field
}

func columnViews(targets []reveal.Target, reducedMotion bool) []ColumnView {
	ids := []string{ContentColumnID, FormColumnID}
	out := make([]ColumnView, 0, len(ids))
	for i, id := range ids {
		column := ColumnView{ID: id}
		if i < len(targets) && targets[i].Element != nil {
			target := targets[i]
			if el, ok := target.Element.(styled); ok {
				column.Style = el.Style().CSS()
			}
			if !reducedMotion {
				column.Reveal = &RevealAttrs{
					Duration: target.Config.Duration.Seconds(),
					Delay:    target.Config.Delay.Seconds(),
					Ease:     target.Config.Ease,
					Start:    fmt.Sprintf("top %g%%", threshold(target.Config)*100),
					OffsetY:  target.Config.From.OffsetY,
				}
			}
		}
		out = append(out, column)
	}
	return out
}

func threshold(cfg reveal.Config) float64 {
	if cfg.Threshold <= 0 {
		return reveal.DefaultThreshold
	}
	return cfg.Threshold
}

func fieldTitle(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
