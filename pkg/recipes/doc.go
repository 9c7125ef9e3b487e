// Package recipes composes the low-level API calls into maintenance tasks
// that are not part of building a survey.
package recipes
