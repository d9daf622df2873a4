/*
Package ports defines the driven ports (interfaces) of the groundwork provisioner.

These interfaces decouple the provisioning workflow from the REST clients that
talk to the real services, so the same workflow runs against the hosted APIs,
the local sandbox, an in-memory workspace, or test doubles.

# Key Interfaces

  - DocumentService: creates pages in the document workspace.
  - TaskService: lists and creates teams, spaces and lists in the task workspace.
  - DistributedLocker: serializes provisioning runs across machines.
*/
package ports
