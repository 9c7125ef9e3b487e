/*
Package ports defines the driven ports (interfaces) for the qflow uploader.

These interfaces decouple survey construction from the platform that stores
the result, so the same upload logic runs against the Qualtrics API, the
in-memory platform used in tests, or the mock server.

# Key Interfaces

  - SurveyAPI: the calls needed to create a survey, its blocks, questions and flow.
  - SurveyAdmin: listing, fetching and deleting whole surveys.
  - Linker: web links for a survey (editor and preview).
*/
package ports
