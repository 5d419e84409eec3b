// Package reveal plays scroll-triggered entrance animations on a fixed set of
// elements.
//
// A Controller is attached to a batch of Targets. With reduced motion every
// target is settled immediately. Otherwise each target subscribes to an
// Observer and, once its top crosses the configured viewport threshold,
// tweens from its initial Style to its settled Style after its stagger delay.
// Detach releases every subscription and cancels scheduled frames before it
// returns; callbacks that race with Detach are dropped via a generation token.
//
// Easing curves are resolved through package ease, which must be installed
// once at process start (ease.Install).
package reveal
