// Package section composes the contact form: it owns the field values, a
// submission.Machine and a reveal.Controller for its two columns, and turns
// their state into a View for renderers.
package section
