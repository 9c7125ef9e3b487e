/*
Package survey defines virtual surveys: a name, global options, and content
laid out in one of three ways.

  - BasicSurvey: a flat list of questions placed in the survey's default block.
  - BlockSurvey: an ordered list of blocks shown one after another.
  - FlowSurvey: a flow tree (see package flow) arranging blocks into groups,
    randomizers and early exits.

A survey does not talk to the platform itself. Plan describes the uploads it
needs, and the uploader in the root qflow package carries them out.
*/
package survey
