// Package service contains the task board's use cases. TaskService and
// UserService coordinate domain objects and the persistence gateways defined
// in internal/store to fulfil the HTTP operations.
//
// Services are stateless apart from their store references and are safe for
// concurrent use. They add no locking or transactions of their own: the
// gateway's concurrency control decides the outcome of racing writes.
//
// Key rules enforced here:
//
//   - Task status strings are parsed leniently. Creation falls back to the
//     default status and updates keep the current one.
//   - Assigning a task checks the user before the task is read.
//   - A user's task IDs are derived at read time through the task store's
//     assignee index and are never stored on the user.
package service
