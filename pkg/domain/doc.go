/*
Package domain contains the core survey-content models for qflow.

It defines the entities that are uploaded to the survey platform, such as
Blocks and Questions, together with the lifecycle events emitted while a
survey is being created. This package is kept pure and free of I/O, following
the same hexagonal split used by the adapters.

# Key Entities

  - Block: An ordered list of questions. Its identity is the pointer; two
    blocks with equal contents are still two blocks.
  - Question: A question data dictionary in the platform's wire shape, or a
    page break.
  - LifecycleHooks: Callbacks fired by the uploader for observability.
*/
package domain
