// Package domain contains the core business entities of the task board:
// tasks, their statuses and the users they can be assigned to, together with
// the validation and partial-update rules that apply to them. It is
// independent of any storage technology or delivery mechanism.
package domain
