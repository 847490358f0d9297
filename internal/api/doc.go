// Package api handles incoming HTTP requests for tasks and users. It decodes
// and validates request bodies, calls the services, maps domain entities to
// their JSON form, and translates failures into application/problem+json
// responses (400, 404, 409 or 500).
package api
