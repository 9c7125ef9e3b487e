/*
Package qualtrics is a client for the Qualtrics survey-definitions REST API
(v3).

Every call is synchronous and blocking. Responses are unwrapped from the
"result" envelope; failures come back as *APIError. The client implements
ports.SurveyAPI, ports.SurveyAdmin and ports.Linker.

	client := qualtrics.New(token, "syd1", qualtrics.WithLogger(logger))
	id, err := client.CreateSurvey(ctx, "Test Survey")
*/
package qualtrics
