/*
Package domain contains the core domain models for the crema translation engine.

It defines both sides of a translation: the stage-based source profile (Meticulous)
and the phase-based destination profile (Gaggimate), together with the closed
enumerations that connect them. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Profile / Stage: the source timeline. Each stage drives one quantity over a curve
    and carries its own exit triggers.
  - TargetProfile / Phase: the destination timeline. Each phase has a single pump target,
    a single transition and a single list of exit targets.
  - TransitionMode: the caller's choice of how curve interpolation maps to transitions.
  - Errors: typed failures (input shape, relative trigger, range violation) that abort
    the translation of one document.
*/
package domain
