package domain

import "errors"

// ErrSurveyNotFound is returned when a survey ID is unknown to the platform.
var ErrSurveyNotFound = errors.New("survey not found")

// ErrBlockNotFound is returned when a block ID is unknown within a survey.
var ErrBlockNotFound = errors.New("block not found")

// ErrQuestionNotFound is returned when a question ID is unknown within a survey.
var ErrQuestionNotFound = errors.New("question not found")

// ErrInvalidQuestion is returned by question builders given inconsistent arguments.
var ErrInvalidQuestion = errors.New("invalid question")
