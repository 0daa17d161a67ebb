// Package http provides the HTTP handlers, router, and middleware for the
// scheduling API.
//
// The router exposes the following endpoints:
//   - POST /api/auth/register, POST /api/auth/login: account registration and
//     login, both returning {"token","user"}. GET /api/auth/profile returns
//     the account behind the presented bearer token.
//   - GET/POST /api/availability, POST /api/availability/duration,
//     GET /api/availability/booking-link, GET /api/availability/{day}:
//     authenticated management of the caller's weekly availability window and
//     the slot schedule derived from it.
//   - POST /api/bookings/book, GET /api/bookings/availability/{date},
//     GET /api/bookings/meeting/{id}: the public booking surface used by
//     anonymous visitors following a booking link.
//   - GET/POST /api/meetings, POST /api/meetings/propose,
//     PUT/DELETE /api/meetings/{id}, PUT /api/meetings/{id}/accept and
//     /{id}/decline: authenticated meeting management and the proposal
//     lifecycle.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
