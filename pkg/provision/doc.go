/*
Package provision implements the provisioning workflow.

A run is three sequential steps: the credential gate, the document provisioner
and the task provisioner. Each remote call is wrapped so that it returns an
explicit domain.Result instead of failing the run; each provisioner reports a
tri-state domain.Outcome (skipped, failed, completed).

# Policies

  - Pages are created top-down. A page whose parent could not be created is
    never submitted, and neither is anything below it. Siblings are unaffected.
  - The space is reused when one with the exact same name exists.
  - Lists are created on every run, even when lists with the same names exist.
*/
package provision
