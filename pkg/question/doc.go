// Package question builds question data dictionaries in the shape expected
// by the survey-definitions API.
//
// Every builder returns a domain.Question. Builders that can be given
// inconsistent arguments also return an error wrapping
// domain.ErrInvalidQuestion.
//
// Not every option of the survey web editor is exposed; the raw Data map of
// the returned question can be edited before upload when something is
// missing.
package question
