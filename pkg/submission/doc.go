// Package submission tracks the lifecycle of a single form's submissions.
//
// A Machine starts Idle, moves to Submitting when Submit is called, and
// settles on Succeeded or Failed when the Collaborator returns. Only one
// collaborator call is outstanding per Machine; Submit while Submitting is
// dropped, not queued. Validation errors always describe the most recent
// attempt.
package submission
