package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/content"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/reveal/ease"
	"github.com/goliatone/go-contactform/pkg/section"
	"github.com/goliatone/go-contactform/pkg/submission"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

func TestMain(m *testing.M) {
	ease.Install()
	os.Exit(m.Run())
}

type stubDriver struct {
	inputs       []string
	textAreas    []string
	confirm      []bool
	inputConfigs []InputConfig
	infoMessages []string
	inputPos     int
	textPos      int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) transcript() string {
	return strings.Join(s.infoMessages, "\n")
}

func newPlain(driver PromptDriver) *Renderer {
	return New(WithPromptDriver(driver), WithStyles(PlainStyles()))
}

func TestRender_FailureView(t *testing.T) {
	view := section.View{
		Heading:         "Contact",
		FriendlyMessage: "Say <strong>hi</strong> &amp; more",
		Notice: &section.Notice{
			Kind:     section.NoticeError,
			Message:  "Something went wrong. Please contact",
			Fallback: "via email.",
			Details:  []string{"Form disabled"},
		},
		Fields: []section.FieldView{
			{Name: "name", Label: "Name", Value: "Ana"},
			{Name: "email", Label: "Email", Value: "nope", Errors: []string{"Email invalid"}},
		},
		Submit: section.SubmitView{Label: "Send message"},
	}

	out, err := newPlain(&stubDriver{}).Render(context.Background(), view, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := strings.Join([]string{
		"Contact",
		"Say hi & more",
		"",
		"Something went wrong. Please contact via email.",
		"  - Form disabled",
		"",
		"Name: Ana",
		"Email: nope",
		"  ! Email invalid",
		"[Send message]",
		"",
	}, "\n")
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_SuccessOnFirstAttempt(t *testing.T) {
	rec := testsupport.NewRecorder()
	s := section.New(content.Default(), rec)
	driver := &stubDriver{
		inputs:    []string{"Ana", "ana@x.com"},
		textAreas: []string{"hi there"},
	}

	snap, err := newPlain(driver).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if snap.State != submission.Succeeded {
		t.Fatalf("expected success, got %s", snap.State)
	}

	want := []submission.Values{{"name": "Ana", "email": "ana@x.com", "message": "hi there"}}
	if diff := cmp.Diff(want, rec.Calls()); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(driver.transcript(), "Thank you for submitting your response!") {
		t.Fatalf("success notice not printed:\n%s", driver.transcript())
	}
	if s.Value("name") != "" {
		t.Fatalf("fields should be cleared after success")
	}
}

func TestRun_ValidationFailureThenResend(t *testing.T) {
	rejection := &submission.Rejection{
		Errors: []submission.ValidationError{{Field: "email", Message: "invalid"}},
	}
	rec := testsupport.NewRecorder(rejection)
	s := section.New(content.Default(), rec)
	driver := &stubDriver{
		inputs:    []string{"Ana", "nope", "Ana", "ana@x.com"},
		textAreas: []string{"hi", "hi"},
		confirm:   []bool{true},
	}

	snap, err := newPlain(driver).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if snap.State != submission.Succeeded {
		t.Fatalf("expected success after resend, got %s", snap.State)
	}
	if got := len(rec.Calls()); got != 2 {
		t.Fatalf("expected two submissions, got %d", got)
	}
	if !strings.Contains(driver.transcript(), "! Email invalid") {
		t.Fatalf("inline error not printed:\n%s", driver.transcript())
	}

	// The resend prompt carries the previous value and the inline error.
	emailRetry := driver.inputConfigs[3]
	if emailRetry.Default != "nope" || emailRetry.Help != "Email invalid" {
		t.Fatalf("unexpected retry prompt %+v", emailRetry)
	}
}

func TestRun_TransportFailureStops(t *testing.T) {
	s := section.New(content.Default(), testsupport.NewRecorder(errors.New("dial tcp: refused")))
	driver := &stubDriver{
		inputs:    []string{"Ana", "ana@x.com"},
		textAreas: []string{"hi"},
	}

	snap, err := newPlain(driver).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if snap.State != submission.Failed || !snap.General {
		t.Fatalf("expected general failure, got %+v", snap)
	}
	if driver.confirmPos != 0 {
		t.Fatalf("transport failures should not offer a resend")
	}
	if !strings.Contains(driver.transcript(), "Something went wrong. Please contact via email.") {
		t.Fatalf("failure notice not printed:\n%s", driver.transcript())
	}
}

func TestRun_MissingFieldsAreReprompted(t *testing.T) {
	rec := testsupport.NewRecorder()
	s := section.New(content.Default(), rec)
	driver := &stubDriver{
		inputs:    []string{"Ana", "", "Ana", "ana@x.com"},
		textAreas: []string{"hi", "hi"},
	}

	snap, err := newPlain(driver).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if snap.State != submission.Succeeded {
		t.Fatalf("expected success, got %s", snap.State)
	}
	if !strings.Contains(driver.transcript(), "Required: email") {
		t.Fatalf("missing field notice not printed:\n%s", driver.transcript())
	}
	if got := len(rec.Calls()); got != 1 {
		t.Fatalf("blank submission must not reach the collaborator, got %d calls", got)
	}
}

func TestRun_PromptErrorAborts(t *testing.T) {
	s := section.New(content.Default(), testsupport.NewRecorder())
	_, err := newPlain(&stubDriver{}).Run(context.Background(), s)
	if err == nil {
		t.Fatalf("expected prompt error")
	}
	// The section is unmounted again so it can be reused.
	if _, err := newPlain(&stubDriver{inputs: []string{"a", "b@c"}, textAreas: []string{"m"}}).Run(context.Background(), s); err != nil {
		t.Fatalf("rerun: %v", err)
	}
}
