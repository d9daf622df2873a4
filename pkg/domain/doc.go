/*
Package domain contains the core models of the groundwork provisioner.

It describes what should exist in each workspace (the Blueprint) and what a
provisioning run actually did (the Report). The package is kept free of I/O:
adapters translate between these types and the remote APIs.

# Key Entities

  - Blueprint: the static structure to provision (a page tree and a space with lists).
  - PageSpec: a node descriptor in the document workspace. The parent reference
    is resolved at run time from the identifier returned for its parent.
  - ContainerSpec: a named container (list) in the task workspace.
  - Result: the explicit outcome of one remote call, Ok(id) or Err(kind).
  - StepReport / Report: the tri-state outcome of each provisioner and of the run.
*/
package domain
