// Package contact serves the contact section over net/http.
//
// GET and HEAD render a fresh section. POST reads the name, email and
// message fields (form-encoded or JSON), submits them through the configured
// collaborator and renders the settled section: 200 on success, 422 when
// the endpoint rejected fields, 502 when it could not be reached, 504 when it
// did not answer past the deadline (rendered as a resubmittable failure) and
// 400 when a required field is blank. The Accept header picks between the HTML
// fragment and the JSON view. Reduced motion follows the
// Sec-CH-Prefers-Reduced-Motion client hint unless overridden.
package contact
